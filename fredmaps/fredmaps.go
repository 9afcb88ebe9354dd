// Package fredmaps is a client for the FRED Maps endpoints (formerly
// GeoFRED): map boundary shape files and cross sections of regional data.
package fredmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/TomasKoutek/stlouisfed"
	"github.com/TomasKoutek/stlouisfed/internal/api"
	"github.com/TomasKoutek/stlouisfed/rategate"
)

// Client issues FRED Maps requests. Unlike the time-series client it does
// not throttle by default; the maps endpoints are not metered the same
// way. A gate can still be attached with WithQuota or WithGate.
type Client struct {
	client *api.Client
}

type clientConfig struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	gate       rategate.Gate
	quota      *rategate.Quota
	logger     *slog.Logger
}

// Option is a functional option for configuring the client
type Option func(*clientConfig) error

// WithAPIKey sets the API key, shared with the time-series endpoints.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) error {
		if err := api.ValidateAPIKey(key); err != nil {
			return err
		}
		c.apiKey = strings.ToLower(key)
		return nil
	}
}

// WithQuota enables client-side throttling with the given quota.
func WithQuota(quota rategate.Quota) Option {
	return func(c *clientConfig) error {
		c.quota = &quota
		return nil
	}
}

// WithGate attaches a pre-built gate, for sharing one quota with a
// time-series client.
func WithGate(gate rategate.Gate) Option {
	return func(c *clientConfig) error {
		c.gate = gate
		return nil
	}
}

// WithHTTPClient replaces the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) error {
		c.httpClient = client
		return nil
	}
}

// WithBaseURL overrides the production host (tests).
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) error {
		c.baseURL = baseURL
		return nil
	}
}

// WithLogger sets the logger for request debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) error {
		c.logger = logger
		return nil
	}
}

// New creates a maps client. An API key is required.
func New(opts ...Option) (*Client, error) {
	var cfg clientConfig
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if cfg.apiKey == "" {
		return nil, api.ErrInvalidAPIKey
	}

	gate := cfg.gate
	if gate == nil && cfg.quota != nil {
		var err error
		gate, err = rategate.New(rategate.WithQuota(*cfg.quota))
		if err != nil {
			return nil, err
		}
	}

	client, err := api.New(api.Config{
		APIKey:     cfg.apiKey,
		BaseURL:    cfg.baseURL,
		HTTPClient: cfg.httpClient,
		Gate:       gate,
		Logger:     cfg.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{client: client}, nil
}

// Shapes returns the boundary shape file for one of the nine map types.
//
// https://fred.stlouisfed.org/docs/api/geofred/shapes.html
func (c *Client) Shapes(ctx context.Context, shape stlouisfed.ShapeType) (ShapeFile, error) {
	if !shape.Valid() {
		return ShapeFile{}, stlouisfed.NewEnumParameterError("shape", shape)
	}

	params := api.NewParams()
	params.Set("shape", string(shape))

	doc, err := c.client.GetDocument(ctx, "/geofred/shapes/file", params)
	if err != nil {
		return ShapeFile{}, err
	}
	return decodeShapeFile(doc)
}

// SeriesGroup returns the meta information of the series group a regional
// series belongs to, including the available date range. Not all FRED
// series have geographical data.
//
// https://fred.stlouisfed.org/docs/api/geofred/series_group.html
func (c *Client) SeriesGroup(ctx context.Context, seriesID string) (SeriesGroup, error) {
	if seriesID == "" {
		return SeriesGroup{}, stlouisfed.NewInvalidParameterError("series_id", seriesID)
	}

	params := api.NewParams()
	params.Set("series_id", seriesID)

	items, err := c.client.Get(ctx, "/geofred/series/group", "series_group", 0, params)
	if err != nil {
		return SeriesGroup{}, err
	}
	if len(items) == 0 {
		return SeriesGroup{}, stlouisfed.ErrNotFound
	}
	var group SeriesGroup
	if err := json.Unmarshal(items[0], &group); err != nil {
		return SeriesGroup{}, fmt.Errorf("failed to decode series group: %w", err)
	}
	return group, nil
}

// SeriesDataOptions are the optional parameters of SeriesData.
type SeriesDataOptions struct {
	// Date requests the cross section for a specific release date; unset
	// returns the most recent data available.
	Date time.Time
	// StartDate pulls a range of data starting at the given date.
	StartDate time.Time
}

// SeriesData returns a cross section of regional data for a series: one
// value per region, for one release date or a range of them.
//
// https://fred.stlouisfed.org/docs/api/geofred/series_data.html
func (c *Client) SeriesData(ctx context.Context, seriesID string, opts *SeriesDataOptions) ([]RegionalObservation, error) {
	if seriesID == "" {
		return nil, stlouisfed.NewInvalidParameterError("series_id", seriesID)
	}
	if opts == nil {
		opts = &SeriesDataOptions{}
	}

	params := api.NewParams()
	params.Set("series_id", seriesID)
	if !opts.Date.IsZero() {
		params.SetDate("date", opts.Date)
	}
	if !opts.StartDate.IsZero() {
		params.SetDate("start_date", opts.StartDate)
	}

	items, err := c.client.Get(ctx, "/geofred/series/data", "meta.data", 0, params)
	if err != nil {
		return nil, err
	}
	return flattenYears(items)
}

// RegionalDataOptions are the optional parameters of RegionalData.
type RegionalDataOptions struct {
	// Units of the series to pull; the service defaults to "Dollars".
	Units     string
	StartDate time.Time
	// Frequency aggregates higher frequency data down, as on the series
	// observation endpoints.
	Frequency         stlouisfed.Frequency
	Transformation    stlouisfed.Unit              // default lin
	AggregationMethod stlouisfed.AggregationMethod // default avg
}

// RegionalData returns a cross section of regional data for a series
// group.
//
// https://fred.stlouisfed.org/docs/api/geofred/regional_data.html
func (c *Client) RegionalData(ctx context.Context, seriesGroup string, regionType stlouisfed.RegionType, date time.Time, season stlouisfed.Seasonality, opts *RegionalDataOptions) ([]RegionalObservation, error) {
	if seriesGroup == "" {
		return nil, stlouisfed.NewInvalidParameterError("series_group", seriesGroup)
	}
	if !regionType.Valid() {
		return nil, stlouisfed.NewEnumParameterError("region_type", regionType)
	}
	if date.IsZero() {
		return nil, stlouisfed.NewInvalidParameterError("date", date)
	}
	if !season.Valid() {
		return nil, stlouisfed.NewEnumParameterError("season", season)
	}
	if opts == nil {
		opts = &RegionalDataOptions{}
	}

	if opts.Frequency != "" && !opts.Frequency.Valid() {
		return nil, stlouisfed.NewEnumParameterError("frequency", opts.Frequency)
	}
	transformation := opts.Transformation
	if transformation == "" {
		transformation = stlouisfed.UnitLin
	}
	if !transformation.Valid() {
		return nil, stlouisfed.NewEnumParameterError("transformation", transformation)
	}
	method := opts.AggregationMethod
	if method == "" {
		method = stlouisfed.AggregationAverage
	}
	if !method.Valid() {
		return nil, stlouisfed.NewEnumParameterError("aggregation_method", method)
	}
	units := opts.Units
	if units == "" {
		units = "Dollars"
	}

	params := api.NewParams()
	params.Set("series_group", seriesGroup)
	params.Set("region_type", string(regionType))
	params.SetDate("date", date)
	params.Set("season", string(season))
	params.Set("units", units)
	params.Set("transformation", string(transformation))
	params.Set("aggregation_method", string(method))
	if !opts.StartDate.IsZero() {
		params.SetDate("start_date", opts.StartDate)
	}
	if opts.Frequency != "" {
		params.Set("frequency", string(opts.Frequency))
	}

	items, err := c.client.Get(ctx, "/geofred/regional/data", "meta.data", 0, params)
	if err != nil {
		return nil, err
	}
	return flattenYears(items)
}
