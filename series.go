package stlouisfed

import (
	"context"
	"time"

	"github.com/TomasKoutek/stlouisfed/internal/api"
)

// Series returns an economic data series.
//
// https://fred.stlouisfed.org/docs/api/fred/series.html
func (f *FRED) Series(ctx context.Context, seriesID string, opts *RealtimeOptions) (Series, error) {
	if seriesID == "" {
		return Series{}, NewInvalidParameterError("series_id", seriesID)
	}

	params := api.NewParams()
	params.Set("series_id", seriesID)
	start, end := opts.dates()
	if err := f.setRealtime(params, start, end); err != nil {
		return Series{}, err
	}

	items, err := f.client.Get(ctx, "/fred/series", "seriess", 0, params)
	if err != nil {
		return Series{}, err
	}
	return decodeOne[Series](items)
}

// SeriesCategories returns the categories for an economic data series.
//
// https://fred.stlouisfed.org/docs/api/fred/series_categories.html
func (f *FRED) SeriesCategories(ctx context.Context, seriesID string, opts *RealtimeOptions) ([]Category, error) {
	if seriesID == "" {
		return nil, NewInvalidParameterError("series_id", seriesID)
	}

	params := api.NewParams()
	params.Set("series_id", seriesID)
	start, end := opts.dates()
	if err := f.setRealtime(params, start, end); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/series/categories", "categories", 0, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Category](items)
}

// SeriesObservationsOptions are the optional parameters of
// SeriesObservations and SeriesVintageObservations.
type SeriesObservationsOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	SortOrder     SortOrder // default asc
	// ObservationStart defaults to 1776-07-04.
	ObservationStart time.Time
	// ObservationEnd defaults to 9999-12-31.
	ObservationEnd    time.Time
	Units             Unit              // default lin
	Frequency         Frequency         // no aggregation when unset
	AggregationMethod AggregationMethod // default avg, only used with Frequency
	// VintageDates requests data as it existed on the given YYYY-MM-DD
	// dates in history, instead of a real-time period.
	VintageDates []string
}

func (o *SeriesObservationsOptions) apply(params api.Params) error {
	units := o.Units
	if units == "" {
		units = UnitLin
	}
	if !units.Valid() {
		return NewEnumParameterError("units", units)
	}
	if o.Frequency != "" && !o.Frequency.Valid() {
		return NewEnumParameterError("frequency", o.Frequency)
	}
	method := o.AggregationMethod
	if method == "" {
		method = AggregationAverage
	}
	if !method.Valid() {
		return NewEnumParameterError("aggregation_method", method)
	}
	if o.SortOrder != "" && !o.SortOrder.Valid() {
		return NewEnumParameterError("sort_order", o.SortOrder)
	}

	params.SetDate("observation_start", orDate(o.ObservationStart, minRealtimeDate))
	params.SetDate("observation_end", orDate(o.ObservationEnd, maxRealtimeDate))
	params.Set("units", string(units))
	if o.Frequency != "" {
		params.Set("frequency", string(o.Frequency))
		params.Set("aggregation_method", string(method))
	}
	if o.SortOrder != "" {
		params.Set("sort_order", string(o.SortOrder))
	}
	if len(o.VintageDates) > 0 {
		params.SetList("vintage_dates", o.VintageDates)
	}
	return nil
}

// SeriesObservations returns the data values of a series, one row per
// real-time period. This covers the realtime-period and
// initial-release-only output types; use SeriesVintageObservations for the
// vintage cross tabulations.
//
// https://fred.stlouisfed.org/docs/api/fred/series_observations.html
func (f *FRED) SeriesObservations(ctx context.Context, seriesID string, opts *SeriesObservationsOptions) ([]Observation, error) {
	return seriesObservations[Observation](ctx, f, seriesID, opts, OutputRealtimePeriod)
}

// SeriesInitialReleases returns only the first-published value of each
// observation, never revisions.
func (f *FRED) SeriesInitialReleases(ctx context.Context, seriesID string, opts *SeriesObservationsOptions) ([]Observation, error) {
	return seriesObservations[Observation](ctx, f, seriesID, opts, OutputInitialReleaseOnly)
}

// SeriesVintageObservations returns the vintage cross tabulation of a
// series: one row per observation date with a column per vintage date.
// outputType selects between all observations and new-and-revised only.
//
// https://alfred.stlouisfed.org/help/downloaddata#outputformats
func (f *FRED) SeriesVintageObservations(ctx context.Context, seriesID string, outputType OutputType, opts *SeriesObservationsOptions) ([]VintageObservationRow, error) {
	if outputType != OutputAll && outputType != OutputNewAndRevised {
		return nil, NewEnumParameterError("output_type", outputType)
	}
	return seriesObservations[VintageObservationRow](ctx, f, seriesID, opts, outputType)
}

func seriesObservations[T any](ctx context.Context, f *FRED, seriesID string, opts *SeriesObservationsOptions, outputType OutputType) ([]T, error) {
	if seriesID == "" {
		return nil, NewInvalidParameterError("series_id", seriesID)
	}
	if opts == nil {
		opts = &SeriesObservationsOptions{}
	}

	params := api.NewParams()
	params.Set("series_id", seriesID)
	params.SetInt("output_type", int(outputType))
	if err := opts.apply(params); err != nil {
		return nil, err
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/series/observations", "observations", 100000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[T](items)
}

// SeriesRelease returns the release a series belongs to.
//
// https://fred.stlouisfed.org/docs/api/fred/series_release.html
func (f *FRED) SeriesRelease(ctx context.Context, seriesID string, opts *RealtimeOptions) (Release, error) {
	if seriesID == "" {
		return Release{}, NewInvalidParameterError("series_id", seriesID)
	}

	params := api.NewParams()
	params.Set("series_id", seriesID)
	start, end := opts.dates()
	if err := f.setRealtime(params, start, end); err != nil {
		return Release{}, err
	}

	items, err := f.client.Get(ctx, "/fred/series/release", "releases", 0, params)
	if err != nil {
		return Release{}, err
	}
	return decodeOne[Release](items)
}

// SeriesSearchOptions are the optional parameters of SeriesSearch.
type SeriesSearchOptions struct {
	SearchType    SearchType // default full_text
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	// OrderBy left unset lets the service pick: search_rank for full-text
	// searches, series_id otherwise.
	OrderBy         OrderBy
	SortOrder       SortOrder
	FilterVariable  FilterVariable
	FilterValue     string
	TagNames        []string
	ExcludeTagNames []string // requires TagNames
}

// SeriesSearch searches for economic data series matching text.
//
// https://fred.stlouisfed.org/docs/api/fred/series_search.html
func (f *FRED) SeriesSearch(ctx context.Context, searchText string, opts *SeriesSearchOptions) ([]Series, error) {
	if searchText == "" {
		return nil, NewInvalidParameterError("search_text", searchText)
	}
	if opts == nil {
		opts = &SeriesSearchOptions{}
	}

	searchType := opts.SearchType
	if searchType == "" {
		searchType = SearchFullText
	}
	if !searchType.Valid() {
		return nil, NewEnumParameterError("search_type", searchType)
	}
	if opts.OrderBy != "" {
		if err := orderByIn(opts.OrderBy, append(seriesOrderings, OrderBySearchRank)...); err != nil {
			return nil, err
		}
	}
	if len(opts.ExcludeTagNames) > 0 && len(opts.TagNames) == 0 {
		return nil, NewInvalidParameterError("exclude_tag_names", "requires tag_names")
	}
	if opts.FilterVariable != "" && !opts.FilterVariable.Valid() {
		return nil, NewEnumParameterError("filter_variable", opts.FilterVariable)
	}

	params := api.NewParams()
	params.Set("search_text", searchText)
	params.Set("search_type", string(searchType))
	if opts.OrderBy != "" {
		params.Set("order_by", string(opts.OrderBy))
	}
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

	items, err := f.client.Get(ctx, "/fred/series/search", "seriess", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Series](items)
}

// SeriesSearchTagsOptions are the optional parameters of SeriesSearchTags.
type SeriesSearchTagsOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy // default series_count
	SortOrder     SortOrder
	TagNames      []string
	TagGroupID    TagGroupID
	TagSearchText string
}

// SeriesSearchTags returns the tags of the series matching a search.
//
// https://fred.stlouisfed.org/docs/api/fred/series_search_tags.html
func (f *FRED) SeriesSearchTags(ctx context.Context, seriesSearchText string, opts *SeriesSearchTagsOptions) ([]Tag, error) {
	if seriesSearchText == "" {
		return nil, NewInvalidParameterError("series_search_text", seriesSearchText)
	}
	if opts == nil {
		opts = &SeriesSearchTagsOptions{}
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
	params.Set("series_search_text", seriesSearchText)
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
	if opts.TagSearchText != "" {
		params.Set("tag_search_text", opts.TagSearchText)
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/series/search/tags", "tags", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}

// SeriesSearchRelatedTagsOptions are the optional parameters of
// SeriesSearchRelatedTags.
type SeriesSearchRelatedTagsOptions struct {
	RealtimeStart   time.Time
	RealtimeEnd     time.Time
	OrderBy         OrderBy
	SortOrder       SortOrder
	ExcludeTagNames []string
	TagGroupID      TagGroupID
	TagSearchText   string
}

// SeriesSearchRelatedTags returns the tags related to the given tags,
// scoped to the series matching a search.
//
// https://fred.stlouisfed.org/docs/api/fred/series_search_related_tags.html
func (f *FRED) SeriesSearchRelatedTags(ctx context.Context, seriesSearchText string, tagNames []string, opts *SeriesSearchRelatedTagsOptions) ([]Tag, error) {
	if seriesSearchText == "" {
		return nil, NewInvalidParameterError("series_search_text", seriesSearchText)
	}
	if len(tagNames) == 0 {
		return nil, NewInvalidParameterError("tag_names", tagNames)
	}
	if opts == nil {
		opts = &SeriesSearchRelatedTagsOptions{}
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
	params.Set("series_search_text", seriesSearchText)
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
	if opts.TagSearchText != "" {
		params.Set("tag_search_text", opts.TagSearchText)
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/series/search/related_tags", "tags", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}

// SeriesTagsOptions are the optional parameters of SeriesTags.
type SeriesTagsOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy // default series_count
	SortOrder     SortOrder
}

// SeriesTags returns the tags of a series.
//
// https://fred.stlouisfed.org/docs/api/fred/series_tags.html
func (f *FRED) SeriesTags(ctx context.Context, seriesID string, opts *SeriesTagsOptions) ([]Tag, error) {
	if seriesID == "" {
		return nil, NewInvalidParameterError("series_id", seriesID)
	}
	if opts == nil {
		opts = &SeriesTagsOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderBySeriesCount
	}
	if err := orderByIn(orderBy, tagOrderings...); err != nil {
		return nil, err
	}

	params := api.NewParams()
	params.Set("series_id", seriesID)
	params.Set("order_by", string(orderBy))
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/series/tags", "tags", 0, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}

// SeriesUpdatesOptions are the optional parameters of SeriesUpdates.
type SeriesUpdatesOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	FilterValue   FilterValue // default all
	// StartTime and EndTime restrict results to series updated within the
	// time range, to minute precision. StartTime requires EndTime.
	StartTime time.Time
	EndTime   time.Time
}

// SeriesUpdates returns series sorted by when their observations were
// updated on the server, most recent first.
//
// https://fred.stlouisfed.org/docs/api/fred/series_updates.html
func (f *FRED) SeriesUpdates(ctx context.Context, opts *SeriesUpdatesOptions) ([]Series, error) {
	if opts == nil {
		opts = &SeriesUpdatesOptions{}
	}

	filterValue := opts.FilterValue
	if filterValue == "" {
		filterValue = FilterAll
	}
	if !filterValue.Valid() {
		return nil, NewEnumParameterError("filter_value", filterValue)
	}
	if !opts.StartTime.IsZero() && opts.EndTime.IsZero() {
		return nil, NewInvalidParameterError("start_time", "requires end_time")
	}
	if !opts.StartTime.IsZero() && opts.StartTime.After(opts.EndTime) {
		return nil, NewInvalidParameterError("start_time", "is after end_time")
	}

	params := api.NewParams()
	params.Set("filter_value", string(filterValue))
	if !opts.StartTime.IsZero() {
		params.SetTimestamp("start_time", opts.StartTime)
		params.SetTimestamp("end_time", opts.EndTime)
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/series/updates", "seriess", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Series](items)
}

// SeriesVintageDatesOptions are the optional parameters of
// SeriesVintageDates.
type SeriesVintageDatesOptions struct {
	// RealtimeStart defaults to 1776-07-04.
	RealtimeStart time.Time
	// RealtimeEnd defaults to 9999-12-31.
	RealtimeEnd time.Time
	SortOrder   SortOrder // default asc
}

// SeriesVintageDates returns the dates in history when a series' data
// values were revised or new data values were released.
//
// https://fred.stlouisfed.org/docs/api/fred/series_vintagedates.html
func (f *FRED) SeriesVintageDates(ctx context.Context, seriesID string, opts *SeriesVintageDatesOptions) ([]VintageDate, error) {
	if seriesID == "" {
		return nil, NewInvalidParameterError("series_id", seriesID)
	}
	if opts == nil {
		opts = &SeriesVintageDatesOptions{}
	}

	start := orDate(opts.RealtimeStart, minRealtimeDate)
	end := orDate(opts.RealtimeEnd, maxRealtimeDate)
	if start.After(end) {
		return nil, NewDateRangeError("realtime_start", start, end)
	}

	params := api.NewParams()
	params.Set("series_id", seriesID)
	params.SetDate("realtime_start", start)
	params.SetDate("realtime_end", end)
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}

	items, err := f.client.Get(ctx, "/fred/series/vintagedates", "vintage_dates", 10000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[VintageDate](items)
}
