package stlouisfed

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleases_Defaults(t *testing.T) {
	f := newTestFRED(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fred/releases", r.URL.Path)
		assert.Equal(t, "release_id", r.URL.Query().Get("order_by"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 1, "releases": [{
			"id": 53,
			"realtime_start": "2026-08-31",
			"realtime_end": "2026-08-31",
			"name": "Gross Domestic Product",
			"press_release": true,
			"link": "https://www.bea.gov/data/gdp/gross-domestic-product"
		}]}`))
	}))

	releases, err := f.Releases(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, 53, releases[0].ID)
	assert.True(t, releases[0].PressRelease)
}

func TestReleases_RejectsSeriesOrdering(t *testing.T) {
	f := newTestFRED(t, jsonHandler(`{}`))

	_, err := f.Releases(context.Background(), &ReleasesOptions{OrderBy: OrderBySeriesID})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestReleasesDates_Defaults(t *testing.T) {
	f := newTestFRED(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, startOfYear().Format("2006-01-02"), q.Get("realtime_start"))
		assert.Equal(t, "release_date", q.Get("order_by"))
		assert.Equal(t, "desc", q.Get("sort_order"))
		assert.Equal(t, "false", q.Get("include_release_dates_with_no_data"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 1, "release_dates": [
			{"release_id": 53, "release_name": "Gross Domestic Product", "date": "2026-08-28"}
		]}`))
	}))

	dates, err := f.ReleasesDates(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, "Gross Domestic Product", dates[0].ReleaseName)
}

func TestReleaseDates_ArchivalDefaultStart(t *testing.T) {
	f := newTestFRED(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1776-07-04", r.URL.Query().Get("realtime_start"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 1, "release_dates": [{"release_id": 53, "date": "1997-01-31"}]}`))
	}))

	dates, err := f.ReleaseDates(context.Background(), 53, nil)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Empty(t, dates[0].ReleaseName, "the single release listing carries no name")
}

func TestRelease(t *testing.T) {
	f := newTestFRED(t, jsonHandler(`{"releases": [{
		"id": 53,
		"realtime_start": "2026-08-31",
		"realtime_end": "2026-08-31",
		"name": "Gross Domestic Product",
		"press_release": true
	}]}`))

	release, err := f.Release(context.Background(), 53, nil)
	require.NoError(t, err)
	assert.Equal(t, "Gross Domestic Product", release.Name)
}

func TestReleaseSources(t *testing.T) {
	f := newTestFRED(t, jsonHandler(`{"sources": [
		{"id": 18, "realtime_start": "2026-08-31", "realtime_end": "2026-08-31", "name": "U.S. Bureau of Economic Analysis"}
	]}`))

	sources, err := f.ReleaseSources(context.Background(), 53, nil)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, 18, sources[0].ID)
}

func TestReleaseTables(t *testing.T) {
	f := newTestFRED(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "53", q.Get("release_id"))
		assert.Equal(t, "12886", q.Get("element_id"))
		assert.Equal(t, "9999-12-31", q.Get("observation_date"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Table 1.1.1",
			"element_id": 12886,
			"release_id": "53",
			"elements": {
				"12887": {"element_id": 12887, "release_id": 53, "parent_id": "12886", "line": "3", "type": "series", "name": "Goods", "level": "1", "series_id": "DGDSRL1A225NBEA", "children": []}
			}
		}`))
	}))

	table, err := f.ReleaseTables(context.Background(), 53, &ReleaseTablesOptions{ElementID: 12886})
	require.NoError(t, err)
	assert.Equal(t, "Table 1.1.1", table.Name)
	require.Contains(t, table.Elements, "12887")
	assert.Equal(t, "DGDSRL1A225NBEA", table.Elements["12887"].SeriesID)
}

func TestReleaseTables_NegativeID(t *testing.T) {
	f := newTestFRED(t, jsonHandler(`{}`))

	_, err := f.ReleaseTables(context.Background(), -1, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
