package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomasKoutek/stlouisfed/rategate"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{APIKey: "abcdefghijklmnopqrstuvwxyz123456", BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestGet_SinglePage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fred/releases", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("file_type"))
		assert.Equal(t, "abcdefghijklmnopqrstuvwxyz123456", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count": 2, "releases": [{"id": 1}, {"id": 2}]}`)
	}))

	items, err := client.Get(context.Background(), "/fred/releases", "releases", 1000, NewParams())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestGet_Paginates(t *testing.T) {
	var offsets []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		if offset == "0" {
			fmt.Fprint(w, `{"count": 3, "seriess": [{"id": "A"}, {"id": "B"}]}`)
		} else {
			fmt.Fprint(w, `{"count": 3, "seriess": [{"id": "C"}]}`)
		}
	}))

	items, err := client.Get(context.Background(), "/fred/series", "seriess", 2, NewParams())
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, []string{"0", "2"}, offsets)
}

func TestGet_NoCountReturnsSinglePage(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"meta": {"data": {"2020-01-01": [{"region": "Alabama"}]}}}`)
	}))

	items, err := client.Get(context.Background(), "/geofred/series/data", "meta.data", 0, NewParams())
	require.NoError(t, err)
	require.Len(t, items, 1, "a non-array list value is wrapped as a single item")
	assert.Equal(t, int32(1), requests.Load())
}

func TestGet_APIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error_code": 400, "error_message": "Bad Request.  Variable api_key has not been set."}`)
	}))

	_, err := client.Get(context.Background(), "/fred/series", "seriess", 0, NewParams())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "Bad Request. Variable api_key has not been set.", apiErr.Message,
		"doubled whitespace in upstream messages is collapsed")
}

func TestGet_RateLimitStatuses(t *testing.T) {
	for _, status := range []int{403, 420, 429, 500} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				fmt.Fprintf(w, `{"error_code": %d, "error_message": "nope"}`, status)
			}))

			_, err := client.Get(context.Background(), "/fred/series", "seriess", 0, NewParams())
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, status, apiErr.Code)
		})
	}
}

func TestGet_XMLError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8" ?><error code="400" message="The series does not exist."/>`)
	}))

	_, err := client.Get(context.Background(), "/geofred/series/group", "series_group", 0, NewParams())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Code)
	assert.Equal(t, "The series does not exist.", apiErr.Message)
}

func TestGet_UnexpectedContentType(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html></html>")
	}))

	_, err := client.Get(context.Background(), "/fred/series", "seriess", 0, NewParams())
	assert.ErrorIs(t, err, ErrUnexpectedContentType)
}

func TestGet_MissingListKey(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count": 0}`)
	}))

	_, err := client.Get(context.Background(), "/fred/series", "seriess", 0, NewParams())
	assert.ErrorIs(t, err, ErrMissingListKey)
}

// fakeGate counts admissions without ever blocking.
type fakeGate struct {
	acquired atomic.Int32
}

func (g *fakeGate) Acquire(ctx context.Context) error {
	g.acquired.Add(1)
	return nil
}

func (g *fakeGate) Peek(ctx context.Context) (rategate.Status, error) { return rategate.Status{}, nil }
func (g *fakeGate) Reset(ctx context.Context) error                   { return nil }
func (g *fakeGate) Close() error                                      { return nil }

func TestGet_AcquiresGatePerRequest(t *testing.T) {
	gate := &fakeGate{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("offset") == "0" {
			fmt.Fprint(w, `{"count": 2, "tags": [{"name": "a"}]}`)
		} else {
			fmt.Fprint(w, `{"count": 2, "tags": [{"name": "b"}]}`)
		}
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{APIKey: "abcdefghijklmnopqrstuvwxyz123456", BaseURL: server.URL, Gate: gate})
	require.NoError(t, err)

	items, err := client.Get(context.Background(), "/fred/tags", "tags", 1, NewParams())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int32(2), gate.acquired.Load(), "one admission per HTTP request")
}

func TestDeepGet(t *testing.T) {
	doc := map[string]json.RawMessage{
		"meta": json.RawMessage(`{"data": {"x": 1}, "title": "t"}`),
		"flat": json.RawMessage(`[1,2]`),
	}

	raw, ok := deepGet(doc, "meta.data")
	require.True(t, ok)
	assert.JSONEq(t, `{"x": 1}`, string(raw))

	raw, ok = deepGet(doc, "flat")
	require.True(t, ok)
	assert.JSONEq(t, `[1,2]`, string(raw))

	_, ok = deepGet(doc, "meta.missing")
	assert.False(t, ok)

	_, ok = deepGet(doc, "nope.data")
	assert.False(t, ok)
}

func TestValidateAPIKey(t *testing.T) {
	assert.NoError(t, ValidateAPIKey("abcdefghijklmnopqrstuvwxyz123456"))
	assert.NoError(t, ValidateAPIKey("ABCDEFGHIJKLMNOPQRSTUVWXYZ123456"))

	assert.ErrorIs(t, ValidateAPIKey(""), ErrInvalidAPIKey)
	assert.ErrorIs(t, ValidateAPIKey("tooshort"), ErrInvalidAPIKey)
	assert.ErrorIs(t, ValidateAPIKey("abcdefghijklmnopqrstuvwxyz12345!"), ErrInvalidAPIKey)
}
