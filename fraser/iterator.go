package fraser

import (
	"context"
	"errors"
)

// pageFunc fetches one page of a list response: the items, the next
// resumption token (empty when the list is complete) and any error.
type pageFunc[T any] func(ctx context.Context, token string) ([]T, string, error)

// Iterator walks a list response lazily, following resumption tokens as
// pages are exhausted:
//
//	it := client.ListRecords(nil)
//	for it.Next(ctx) {
//		use(it.Item())
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[T any] struct {
	fetch   pageFunc[T]
	started bool
	token   string
	items   []T
	idx     int
	cur     T
	err     error
}

func newIterator[T any](fetch pageFunc[T]) *Iterator[T] {
	return &Iterator[T]{fetch: fetch}
}

// Next advances the iterator, fetching the next page from the repository
// when the current one is exhausted. It returns false at the end of the
// list or on error.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	for {
		if it.idx < len(it.items) {
			it.cur = it.items[it.idx]
			it.idx++
			return true
		}
		if it.started && it.token == "" {
			return false
		}

		items, next, err := it.fetch(ctx, it.token)
		if err != nil {
			// An empty result is the end of an empty list, not a failure.
			if errors.Is(err, ErrNoRecordsMatch) {
				it.started = true
				it.token = ""
				return false
			}
			it.err = err
			return false
		}
		it.started = true
		it.items = items
		it.idx = 0
		it.token = next
		if len(items) == 0 && next == "" {
			return false
		}
	}
}

// Item returns the element the last call to Next advanced to.
func (it *Iterator[T]) Item() T {
	return it.cur
}

// Err returns the error that terminated iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}
