package stlouisfed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TomasKoutek/stlouisfed/internal/api"
)

// ReleasesOptions are the optional parameters of Releases.
type ReleasesOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy   // default release_id
	SortOrder     SortOrder // default asc
}

// Releases returns all releases of economic data.
//
// https://fred.stlouisfed.org/docs/api/fred/releases.html
func (f *FRED) Releases(ctx context.Context, opts *ReleasesOptions) ([]Release, error) {
	if opts == nil {
		opts = &ReleasesOptions{}
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
	params.Set("order_by", string(orderBy))
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/releases", "releases", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Release](items)
}

// ReleasesDatesOptions are the optional parameters of ReleasesDates.
type ReleasesDatesOptions struct {
	// RealtimeStart defaults to the first day of the current year.
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy   // default release_date
	SortOrder     SortOrder // default desc
	// IncludeNoData also returns release dates with no data available, in
	// particular future dates from the release calendar.
	IncludeNoData bool
}

// ReleasesDates returns release dates for all releases of economic data.
// Release dates are published by data sources and do not necessarily
// represent when data is available on the website.
//
// https://fred.stlouisfed.org/docs/api/fred/releases_dates.html
func (f *FRED) ReleasesDates(ctx context.Context, opts *ReleasesDatesOptions) ([]ReleaseDate, error) {
	if opts == nil {
		opts = &ReleasesDatesOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderByReleaseDate
	}
	if err := orderByIn(orderBy, OrderByReleaseDate, OrderByReleaseID, OrderByReleaseName); err != nil {
		return nil, err
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = SortDesc
	}

	start := orDate(opts.RealtimeStart, startOfYear())
	end := orDate(opts.RealtimeEnd, today())
	if err := validateRealtime(start, end); err != nil {
		return nil, err
	}

	params := api.NewParams()
	params.SetDate("realtime_start", start)
	params.SetDate("realtime_end", end)
	params.Set("order_by", string(orderBy))
	params.Set("sort_order", string(sortOrder))
	params.SetBool("include_release_dates_with_no_data", opts.IncludeNoData)

	items, err := f.client.Get(ctx, "/fred/releases/dates", "release_dates", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[ReleaseDate](items)
}

// Release returns a single release of economic data.
//
// https://fred.stlouisfed.org/docs/api/fred/release.html
func (f *FRED) Release(ctx context.Context, releaseID int, opts *RealtimeOptions) (Release, error) {
	if releaseID < 0 {
		return Release{}, NewInvalidParameterError("release_id", releaseID)
	}

	params := api.NewParams()
	params.SetInt("release_id", releaseID)
	start, end := opts.dates()
	if err := f.setRealtime(params, start, end); err != nil {
		return Release{}, err
	}

	items, err := f.client.Get(ctx, "/fred/release", "releases", 0, params)
	if err != nil {
		return Release{}, err
	}
	return decodeOne[Release](items)
}

// ReleaseDatesOptions are the optional parameters of ReleaseDates.
type ReleaseDatesOptions struct {
	// RealtimeStart defaults to 1776-07-04, matching the endpoint itself.
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	SortOrder     SortOrder // default asc
	IncludeNoData bool
}

// ReleaseDates returns the release dates of a single release.
//
// https://fred.stlouisfed.org/docs/api/fred/release_dates.html
func (f *FRED) ReleaseDates(ctx context.Context, releaseID int, opts *ReleaseDatesOptions) ([]ReleaseDate, error) {
	if releaseID < 0 {
		return nil, NewInvalidParameterError("release_id", releaseID)
	}
	if opts == nil {
		opts = &ReleaseDatesOptions{}
	}

	start := orDate(opts.RealtimeStart, minRealtimeDate)
	end := orDate(opts.RealtimeEnd, today())
	if err := validateRealtime(start, end); err != nil {
		return nil, err
	}

	params := api.NewParams()
	params.SetInt("release_id", releaseID)
	params.SetDate("realtime_start", start)
	params.SetDate("realtime_end", end)
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	params.SetBool("include_release_dates_with_no_data", opts.IncludeNoData)

	items, err := f.client.Get(ctx, "/fred/release/dates", "release_dates", 10000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[ReleaseDate](items)
}

// ReleaseSeriesOptions are the optional parameters of ReleaseSeries.
type ReleaseSeriesOptions struct {
	RealtimeStart   time.Time
	RealtimeEnd     time.Time
	OrderBy         OrderBy   // default series_id
	SortOrder       SortOrder // default asc
	FilterVariable  FilterVariable
	FilterValue     string
	TagNames        []string
	ExcludeTagNames []string // requires TagNames
}

// ReleaseSeries returns the series on a release of economic data.
//
// https://fred.stlouisfed.org/docs/api/fred/release_series.html
func (f *FRED) ReleaseSeries(ctx context.Context, releaseID int, opts *ReleaseSeriesOptions) ([]Series, error) {
	if releaseID < 0 {
		return nil, NewInvalidParameterError("release_id", releaseID)
	}
	if opts == nil {
		opts = &ReleaseSeriesOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderBySeriesID
	}
	if err := orderByIn(orderBy, seriesOrderings...); err != nil {
		return nil, err
	}
	if len(opts.ExcludeTagNames) > 0 && len(opts.TagNames) == 0 {
		return nil, NewInvalidParameterError("exclude_tag_names", "requires tag_names")
	}
	if opts.FilterVariable != "" && !opts.FilterVariable.Valid() {
		return nil, NewEnumParameterError("filter_variable", opts.FilterVariable)
	}

	params := api.NewParams()
	params.SetInt("release_id", releaseID)
	params.Set("order_by", string(orderBy))
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	if opts.FilterVariable != "" {
		params.Set("filter_variable", string(opts.FilterVariable))
		params.Set("filter_value", opts.FilterValue)
	}
	if len(opts.TagNames) > 0 {
		params.SetList("tag_names", opts.TagNames)
	}
	if len(opts.ExcludeTagNames) > 0 {
		params.SetList("exclude_tag_names", opts.ExcludeTagNames)
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/release/series", "seriess", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Series](items)
}

// ReleaseSources returns the sources of a release of economic data.
//
// https://fred.stlouisfed.org/docs/api/fred/release_sources.html
func (f *FRED) ReleaseSources(ctx context.Context, releaseID int, opts *RealtimeOptions) ([]Source, error) {
	if releaseID < 0 {
		return nil, NewInvalidParameterError("release_id", releaseID)
	}

	params := api.NewParams()
	params.SetInt("release_id", releaseID)
	start, end := opts.dates()
	if err := f.setRealtime(params, start, end); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/release/sources", "sources", 0, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Source](items)
}

// ReleaseTagsOptions are the optional parameters of ReleaseTags.
type ReleaseTagsOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy   // default series_count
	SortOrder     SortOrder // default asc
	TagNames      []string
	TagGroupID    TagGroupID
	SearchText    string
}

// ReleaseTags returns the tags of the series on a release.
//
// https://fred.stlouisfed.org/docs/api/fred/release_tags.html
func (f *FRED) ReleaseTags(ctx context.Context, releaseID int, opts *ReleaseTagsOptions) ([]Tag, error) {
	if releaseID < 0 {
		return nil, NewInvalidParameterError("release_id", releaseID)
	}
	if opts == nil {
		opts = &ReleaseTagsOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderBySeriesCount
	}
	if err := orderByIn(orderBy, tagOrderings...); err != nil {
		return nil, err
	}
	if opts.TagGroupID != "" && !opts.TagGroupID.Valid() {
		return nil, NewEnumParameterError("tag_group_id", opts.TagGroupID)
	}

	params := api.NewParams()
	params.SetInt("release_id", releaseID)
	params.Set("order_by", string(orderBy))
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	if len(opts.TagNames) > 0 {
		params.SetList("tag_names", opts.TagNames)
	}
	if opts.TagGroupID != "" {
		params.Set("tag_group_id", string(opts.TagGroupID))
	}
	if opts.SearchText != "" {
		params.Set("search_text", opts.SearchText)
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/release/tags", "tags", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}

// ReleaseRelatedTagsOptions are the optional parameters of
// ReleaseRelatedTags.
type ReleaseRelatedTagsOptions struct {
	RealtimeStart   time.Time
	RealtimeEnd     time.Time
	OrderBy         OrderBy
	SortOrder       SortOrder
	ExcludeTagNames []string
	TagGroupID      TagGroupID
	SearchText      string
}

// ReleaseRelatedTags returns the tags related to the given tags within a
// release.
//
// https://fred.stlouisfed.org/docs/api/fred/release_related_tags.html
func (f *FRED) ReleaseRelatedTags(ctx context.Context, releaseID int, tagNames []string, opts *ReleaseRelatedTagsOptions) ([]Tag, error) {
	if releaseID < 0 {
		return nil, NewInvalidParameterError("release_id", releaseID)
	}
	if len(tagNames) == 0 {
		return nil, NewInvalidParameterError("tag_names", tagNames)
	}
	if opts == nil {
		opts = &ReleaseRelatedTagsOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderBySeriesCount
	}
	if err := orderByIn(orderBy, tagOrderings...); err != nil {
		return nil, err
	}
	if opts.TagGroupID != "" && !opts.TagGroupID.Valid() {
		return nil, NewEnumParameterError("tag_group_id", opts.TagGroupID)
	}

	params := api.NewParams()
	params.SetInt("release_id", releaseID)
	params.SetList("tag_names", tagNames)
	params.Set("order_by", string(orderBy))
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	if len(opts.ExcludeTagNames) > 0 {
		params.SetList("exclude_tag_names", opts.ExcludeTagNames)
	}
	if opts.TagGroupID != "" {
		params.Set("tag_group_id", string(opts.TagGroupID))
	}
	if opts.SearchText != "" {
		params.Set("search_text", opts.SearchText)
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/release/related_tags", "tags", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}

// ReleaseTablesOptions are the optional parameters of ReleaseTables.
type ReleaseTablesOptions struct {
	// ElementID selects the table element to retrieve; zero requests the
	// root element of the release.
	ElementID int
	// IncludeObservationValues returns observation value and date for
	// series-type elements.
	IncludeObservationValues bool
	// ObservationDate defaults to 9999-12-31, the latest available.
	ObservationDate time.Time
}

// ReleaseTables returns the release table tree for a release. Passing an
// element id goes directly to that subtree; leaving it off starts at the
// root for drill-down.
//
// https://fred.stlouisfed.org/docs/api/fred/release_tables.html
func (f *FRED) ReleaseTables(ctx context.Context, releaseID int, opts *ReleaseTablesOptions) (ReleaseTable, error) {
	if releaseID < 0 {
		return ReleaseTable{}, NewInvalidParameterError("release_id", releaseID)
	}
	if opts == nil {
		opts = &ReleaseTablesOptions{}
	}

	params := api.NewParams()
	params.SetInt("release_id", releaseID)
	if opts.ElementID > 0 {
		params.SetInt("element_id", opts.ElementID)
	}
	params.SetBool("include_observation_values", opts.IncludeObservationValues)
	params.SetDate("observation_date", orDate(opts.ObservationDate, maxRealtimeDate))

	// The response is one tree document, not a list.
	doc, err := f.client.GetDocument(ctx, "/fred/release/tables", params)
	if err != nil {
		return ReleaseTable{}, err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return ReleaseTable{}, err
	}
	var table ReleaseTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return ReleaseTable{}, fmt.Errorf("failed to decode release table: %w", err)
	}
	return table, nil
}
