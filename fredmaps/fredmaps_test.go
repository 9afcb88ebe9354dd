package fredmaps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TomasKoutek/stlouisfed"
)

const testKey = "abcdefghijklmnopqrstuvwxyz123456"

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(WithAPIKey(testKey), WithBaseURL(server.URL))
	require.NoError(t, err)
	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}

func TestShapes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geofred/shapes/file", r.URL.Path)
		assert.Equal(t, "state", r.URL.Query().Get("shape"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "United States of America, States",
			"version": "1.1.3",
			"copyright": "Copyright (c) 2020 Highsoft AS",
			"copyrightShort": "Highsoft AS",
			"copyrightUrl": "http://www.highcharts.com",
			"crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:EPSG:54003"}},
			"hc-transform": {"default": {"crs": "+proj=mill +lon_0=0", "scale": 0.0001}},
			"features": [
				{"type": "Feature", "properties": {"name": "Massachusetts", "fips": "25"}, "geometry": {"type": "Point", "coordinates": [100.0, 50.0]}}
			]
		}`))
	}))

	file, err := c.Shapes(context.Background(), stlouisfed.ShapeState)
	require.NoError(t, err)

	assert.Equal(t, "United States of America, States", file.Title)
	assert.Equal(t, "+proj=mill +lon_0=0", file.CRS, "the transform block wins over the mislabeled crs member")
	require.Len(t, file.Features, 1)
	assert.Equal(t, "Massachusetts", file.Features[0].Properties["name"])
	require.NotNil(t, file.Features[0].Geometry)
}

func TestShapes_FallsBackToCRSMember(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"crs": {"type": "name", "properties": {"name": "urn:ogc:def:crs:EPSG:54003"}},
			"features": []
		}`))
	}))

	file, err := c.Shapes(context.Background(), stlouisfed.ShapeCountry)
	require.NoError(t, err)
	assert.Equal(t, "urn:ogc:def:crs:EPSG:54003", file.CRS)
}

func TestShapes_RejectsUnknownShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := c.Shapes(context.Background(), stlouisfed.ShapeType("continent"))
	assert.ErrorIs(t, err, stlouisfed.ErrInvalidParameter)
}

func TestSeriesGroup(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SMU56000000500000001a", r.URL.Query().Get("series_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"series_group": {
			"title": "All Employees: Total Private",
			"region_type": "state",
			"series_group": "1223",
			"season": "NSA",
			"units": "Thousands of Persons",
			"frequency": "Annual",
			"min_date": "1990-01-01",
			"max_date": "2021-01-01"
		}}`))
	}))

	group, err := c.SeriesGroup(context.Background(), "SMU56000000500000001a")
	require.NoError(t, err)
	assert.Equal(t, "1223", group.SeriesGroup)
	assert.Equal(t, 1990, group.MinDate.Year())
	assert.Equal(t, 2021, group.MaxDate.Year())
}

func TestSeriesData(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geofred/series/data", r.URL.Path)
		assert.Equal(t, "2021-12-31", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta": {
			"title": "All Employees: Total Private",
			"region": "state",
			"data": {"2021-01-01": [
				{"region": "Alabama", "code": "01", "value": "1687.3", "series_id": "SMU01000000500000001a"},
				{"region": "Wyoming", "code": "56", "value": ".", "series_id": "SMU56000000500000001a"}
			]}
		}}`))
	}))

	obs, err := c.SeriesData(context.Background(), "SMU56000000500000001a", &SeriesDataOptions{
		Date: time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, obs, 2)

	byRegion := map[string]RegionalObservation{}
	for _, o := range obs {
		byRegion[o.Region] = o
	}
	assert.Equal(t, "01", byRegion["Alabama"].Code, "FIPS codes keep their leading zero")
	assert.Equal(t, 2021, byRegion["Alabama"].Year.Year())
	assert.True(t, byRegion["Wyoming"].Value.IsMissing())
}

func TestRegionalData(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "882", q.Get("series_group"))
		assert.Equal(t, "state", q.Get("region_type"))
		assert.Equal(t, "2013-01-01", q.Get("date"))
		assert.Equal(t, "NSA", q.Get("season"))
		assert.Equal(t, "Dollars", q.Get("units"))
		assert.Equal(t, "lin", q.Get("transformation"))
		assert.Equal(t, "avg", q.Get("aggregation_method"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meta": {"data": {"2013-01-01": [
			{"region": "Alabama", "code": "01", "value": "36014", "series_id": "ALPCPI"}
		]}}}`))
	}))

	obs, err := c.RegionalData(context.Background(), "882", stlouisfed.RegionState,
		time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC),
		stlouisfed.NotSeasonallyAdjusted, nil)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.InDelta(t, 36014, float64(obs[0].Value), 1e-9)
}

func TestRegionalData_Validation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	date := time.Date(2013, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := c.RegionalData(context.Background(), "", stlouisfed.RegionState, date, stlouisfed.NotSeasonallyAdjusted, nil)
	assert.ErrorIs(t, err, stlouisfed.ErrInvalidParameter)

	_, err = c.RegionalData(context.Background(), "882", stlouisfed.RegionType("planet"), date, stlouisfed.NotSeasonallyAdjusted, nil)
	assert.ErrorIs(t, err, stlouisfed.ErrInvalidParameter)

	_, err = c.RegionalData(context.Background(), "882", stlouisfed.RegionState, time.Time{}, stlouisfed.NotSeasonallyAdjusted, nil)
	assert.ErrorIs(t, err, stlouisfed.ErrInvalidParameter)

	_, err = c.RegionalData(context.Background(), "882", stlouisfed.RegionState, date, stlouisfed.Seasonality("XX"), nil)
	assert.ErrorIs(t, err, stlouisfed.ErrInvalidParameter)
}

func TestSeriesGroup_XMLError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8" ?><error code="400" message="The series does not exist."/>`))
	}))

	_, err := c.SeriesGroup(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The series does not exist.")
}
