package stlouisfed

import (
	"context"
	"time"

	"github.com/TomasKoutek/stlouisfed/internal/api"
)

// SourcesOptions are the optional parameters of Sources.
type SourcesOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy // default source_id
	SortOrder     SortOrder
}

// Sources returns all sources of economic data.
//
// https://fred.stlouisfed.org/docs/api/fred/sources.html
func (f *FRED) Sources(ctx context.Context, opts *SourcesOptions) ([]Source, error) {
	if opts == nil {
		opts = &SourcesOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderBySourceID
	}
	if err := orderByIn(orderBy, OrderBySourceID, OrderByName, OrderByRealtimeStart, OrderByRealtimeEnd); err != nil {
		return nil, err
	}

	params := api.NewParams()
	params.Set("order_by", string(orderBy))
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/sources", "sources", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Source](items)
}

// Source returns a single source of economic data.
//
// https://fred.stlouisfed.org/docs/api/fred/source.html
func (f *FRED) Source(ctx context.Context, sourceID int, opts *RealtimeOptions) (Source, error) {
	if sourceID < 0 {
		return Source{}, NewInvalidParameterError("source_id", sourceID)
	}

	params := api.NewParams()
	params.SetInt("source_id", sourceID)
	start, end := opts.dates()
	if err := f.setRealtime(params, start, end); err != nil {
		return Source{}, err
	}

	items, err := f.client.Get(ctx, "/fred/source", "sources", 0, params)
	if err != nil {
		return Source{}, err
	}
	return decodeOne[Source](items)
}

// SourceReleasesOptions are the optional parameters of SourceReleases.
type SourceReleasesOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy // default release_id
	SortOrder     SortOrder
}

// SourceReleases returns the releases of a source.
//
// https://fred.stlouisfed.org/docs/api/fred/source_releases.html
func (f *FRED) SourceReleases(ctx context.Context, sourceID int, opts *SourceReleasesOptions) ([]Release, error) {
	if sourceID < 0 {
		return nil, NewInvalidParameterError("source_id", sourceID)
	}
	if opts == nil {
		opts = &SourceReleasesOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderByReleaseID
	}
	if err := orderByIn(orderBy, OrderByReleaseID, OrderByName, OrderByPressRelease,
		OrderByRealtimeStart, OrderByRealtimeEnd); err != nil {
		return nil, err
	}

	params := api.NewParams()
	params.SetInt("source_id", sourceID)
	params.Set("order_by", string(orderBy))
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/source/releases", "releases", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Release](items)
}
