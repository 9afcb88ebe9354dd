package stlouisfed

import (
	"context"
	"time"

	"github.com/TomasKoutek/stlouisfed/internal/api"
)

// TagsOptions are the optional parameters of Tags.
type TagsOptions struct {
	RealtimeStart time.Time
	RealtimeEnd   time.Time
	OrderBy       OrderBy // default series_count
	SortOrder     SortOrder
	TagNames      []string
	TagGroupID    TagGroupID
	SearchText    string
}

// Tags returns tags, optionally filtered by name, group or search text.
//
// https://fred.stlouisfed.org/docs/api/fred/tags.html
func (f *FRED) Tags(ctx context.Context, opts *TagsOptions) ([]Tag, error) {
	if opts == nil {
		opts = &TagsOptions{}
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

	items, err := f.client.Get(ctx, "/fred/tags", "tags", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}

// RelatedTagsOptions are the optional parameters of RelatedTags.
type RelatedTagsOptions struct {
	RealtimeStart   time.Time
	RealtimeEnd     time.Time
	OrderBy         OrderBy
	SortOrder       SortOrder
	ExcludeTagNames []string
	TagGroupID      TagGroupID
	SearchText      string
}

// RelatedTags returns the tags related to the given tags: tags assigned to
// series matching all of tagNames.
//
// https://fred.stlouisfed.org/docs/api/fred/related_tags.html
func (f *FRED) RelatedTags(ctx context.Context, tagNames []string, opts *RelatedTagsOptions) ([]Tag, error) {
	if len(tagNames) == 0 {
		return nil, NewInvalidParameterError("tag_names", tagNames)
	}
	if opts == nil {
		opts = &RelatedTagsOptions{}
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

	items, err := f.client.Get(ctx, "/fred/related_tags", "tags", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Tag](items)
}

// TagsSeriesOptions are the optional parameters of TagsSeries.
type TagsSeriesOptions struct {
	RealtimeStart   time.Time
	RealtimeEnd     time.Time
	OrderBy         OrderBy // default series_id
	SortOrder       SortOrder
	ExcludeTagNames []string
}

// TagsSeries returns the series matching all of the given tags.
//
// https://fred.stlouisfed.org/docs/api/fred/tags_series.html
func (f *FRED) TagsSeries(ctx context.Context, tagNames []string, opts *TagsSeriesOptions) ([]Series, error) {
	if len(tagNames) == 0 {
		return nil, NewInvalidParameterError("tag_names", tagNames)
	}
	if opts == nil {
		opts = &TagsSeriesOptions{}
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = OrderBySeriesID
	}
	if err := orderByIn(orderBy, seriesOrderings...); err != nil {
		return nil, err
	}

	params := api.NewParams()
	params.SetList("tag_names", tagNames)
	params.Set("order_by", string(orderBy))
	if opts.SortOrder != "" {
		params.Set("sort_order", string(opts.SortOrder))
	}
	if len(opts.ExcludeTagNames) > 0 {
		params.SetList("exclude_tag_names", opts.ExcludeTagNames)
	}
	if err := f.setRealtime(params, opts.RealtimeStart, opts.RealtimeEnd); err != nil {
		return nil, err
	}

	items, err := f.client.Get(ctx, "/fred/tags/series", "seriess", 1000, params)
	if err != nil {
		return nil, err
	}
	return decodeList[Series](items)
}
