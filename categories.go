package stlouisfed

import (
	"context"
	"time"

	"github.com/TomasKoutek/stlouisfed/internal/api"
)

// setRealtime applies the client's real-time defaults, validates the period
// and adds it to the request.
func (f *FRED) setRealtime(p api.Params, start, end time.Time) error {
	start = orDate(start, f.realtimeStart())
	end = orDate(end, f.realtimeEnd())
	if err := validateRealtime(start, end); err != nil {
		return err
	}
	p.SetDate("realtime_start", start)
	p.SetDate("realtime_end", end)
	return nil
}

func orderByIn(orderBy OrderBy, allowed ...OrderBy) error {
	for _, a := range allowed {
		if orderBy == a {
			return nil
		}
	}
	return NewEnumParameterError("order_by", orderBy)
}

// seriesOrderings are the order-by attributes accepted by every endpoint
// that lists series.
var seriesOrderings = []OrderBy{
	OrderBySeriesID, OrderByTitle, OrderByUnits, OrderByFrequency,
	OrderBySeasonalAdj, OrderByRealtimeStart, OrderByRealtimeEnd,
	OrderByLastUpdated, OrderByObservationStart, OrderByObservationEnd,
	OrderByPopularity, OrderByGroupPopularity,
}

// tagOrderings are the order-by attributes accepted by every endpoint that
// lists tags.
var tagOrderings = []OrderBy{
	OrderBySeriesCount, OrderByPopularity, OrderByCreated,
	OrderByName, OrderByGroupID,
}

// RealtimeOptions carries the optional real-time period shared by many
// operations. Zero dates take the client's defaults.
type RealtimeOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
}

func (o *RealtimeOptions) dates() (time.Time, time.Time) {
	if o == nil {
		return time.Time{}, time.Time{}
	}
	return o.RealtimeStart, o.RealtimeEnd
}

// Category returns a single category. Category 0 is the root of the tree.
//
// https://fred.stlouisfed.org/docs/api/fred/category.html
func (f *FRED) Category(ctx context.Context, categoryID int) (Category, error) {
	if categoryID < 0 {
		return Category{}, NewInvalidParameterError("category_id", categoryID)
	}

	params := api.NewParams()
	params.SetInt("category_id", categoryID)

	items, err := f.client.Get(ctx, "/fred/category", "categories", 0, params)
	if err != nil {
		return Category{}, err
	}
	return decodeOne[Category](items)
}

// CategoryChildren returns the child categories of a category.
//
// https://fred.stlouisfed.org/docs/api/fred/category_children.html
func (f *FRED) CategoryChildren(ctx context.Context, categoryID int, opts *RealtimeOptions) ([]Category, error) {
	if categoryID < 0 {
		return nil, NewInvalidParameterError("category_id", categoryID)
	}

	params := api.NewParams()
	params.SetInt("category_id", categoryID)
	start, end := opts.dates()
	if err := f.setRealtime(params, start, end); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/category/children", "categories", 0, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Category](items)
}

// CategoryRelated returns the related categories of a category. A related
// category is linked without being part of the parent-child tree.
//
// https://fred.stlouisfed.org/docs/api/fred/category_related.html
func (f *FRED) CategoryRelated(ctx context.Context, categoryID int, opts *RealtimeOptions) ([]Category, error) {
	if categoryID < 0 {
		return nil, NewInvalidParameterError("category_id", categoryID)
	}

	params := api.NewParams()
	params.SetInt("category_id", categoryID)
	start, end := opts.dates()
	if err := f.setRealtime(params, start, end); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/category/related", "categories", 0, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Category](items)
}

// CategorySeriesOptions are the optional parameters of CategorySeries.
type CategorySeriesOptions struct {
	RealtimeStart   time.Time
	RealtimeEnd     time.Time
	OrderBy         OrderBy   // default series_id
	SortOrder       SortOrder // default asc
	FilterVariable  FilterVariable
	FilterValue     string
	TagNames        []string
	ExcludeTagNames []string // requires TagNames
}

// CategorySeries returns the series in a category.
//
// https://fred.stlouisfed.org/docs/api/fred/category_series.html
func (f *FRED) CategorySeries(ctx context.Context, categoryID int, opts *CategorySeriesOptions) ([]Series, error) {
	if categoryID < 0 {
		return nil, NewInvalidParameterError("category_id", categoryID)
	}
	if opts == nil {
		opts = &CategorySeriesOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderBySeriesID
	}
	if err := orderByIn(orderBy, seriesOrderings...); err != nil {
		return nil, err
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = SortAsc
	}
	if !sortOrder.Valid() {
		return nil, NewEnumParameterError("sort_order", sortOrder)
	}
	if len(opts.ExcludeTagNames) > 0 && len(opts.TagNames) == 0 {
		return nil, NewInvalidParameterError("exclude_tag_names", "requires tag_names")
	}
	if opts.FilterVariable != "" && !opts.FilterVariable.Valid() {
		return nil, NewEnumParameterError("filter_variable", opts.FilterVariable)
	}

	params := api.NewParams()
	params.SetInt("category_id", categoryID)
	params.Set("order_by", string(orderBy))
	params.Set("sort_order", string(sortOrder))
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

	items, err := f.client.Get(ctx, "/fred/category/series", "seriess", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Series](items)
}

// CategoryTagsOptions are the optional parameters of CategoryTags.
type CategoryTagsOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy   // default series_count
	SortOrder     SortOrder // default asc
	TagNames      []string
	TagGroupID    TagGroupID
	SearchText    string
}

// CategoryTags returns the tags of the series in a category.
//
// https://fred.stlouisfed.org/docs/api/fred/category_tags.html
func (f *FRED) CategoryTags(ctx context.Context, categoryID int, opts *CategoryTagsOptions) ([]Tag, error) {
	if categoryID < 0 {
		return nil, NewInvalidParameterError("category_id", categoryID)
	}
	if opts == nil {
		opts = &CategoryTagsOptions{}
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
	params.SetInt("category_id", categoryID)
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

	items, err := f.client.Get(ctx, "/fred/category/tags", "tags", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}

// CategoryRelatedTagsOptions are the optional parameters of
// CategoryRelatedTags.
type CategoryRelatedTagsOptions struct {
	RealtimeStart   time.Time
	RealtimeEnd     time.Time
	OrderBy         OrderBy
	SortOrder       SortOrder
	ExcludeTagNames []string
	TagGroupID      TagGroupID
	SearchText      string
}

// CategoryRelatedTags returns the tags related to the given tags within a
// category: tags assigned to series matching all of tagNames.
//
// https://fred.stlouisfed.org/docs/api/fred/category_related_tags.html
func (f *FRED) CategoryRelatedTags(ctx context.Context, categoryID int, tagNames []string, opts *CategoryRelatedTagsOptions) ([]Tag, error) {
	if categoryID < 0 {
		return nil, NewInvalidParameterError("category_id", categoryID)
	}
	if len(tagNames) == 0 {
		return nil, NewInvalidParameterError("tag_names", tagNames)
	}
	if opts == nil {
		opts = &CategoryRelatedTagsOptions{}
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
	params.SetInt("category_id", categoryID)
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

	items, err := f.client.Get(ctx, "/fred/category/related_tags", "tags", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}
