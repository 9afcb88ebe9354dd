// Package fraser harvests the FRASER digital library, the St. Louis Fed's
// archive of U.S. economic, financial and banking history, over the
// OAI-PMH 2.0 protocol.
//
// https://research.stlouisfed.org/docs/api/fraser/
package fraser

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// BaseURL is the production repository endpoint.
const BaseURL = "https://fraser.stlouisfed.org/oai"

// DefaultMetadataPrefix is the metadata format requested when none is
// given. FRASER publishes MODS bibliographic metadata.
const DefaultMetadataPrefix = "mods"

// Client is an OAI-PMH harvesting client. The repository publishes no call
// quota, so no rate gate is attached.
type Client struct {
	base   string
	client *http.Client
	log    *slog.Logger
}

// Option is a functional option for configuring the client
type Option func(*Client)

// WithBaseURL overrides the production repository endpoint (tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.base = baseURL
	}
}

// WithHTTPClient replaces the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger sets the logger for request debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		base:   BaseURL,
		client: &http.Client{Timeout: 60 * time.Second},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Identify returns the repository's self description.
//
// https://research.stlouisfed.org/docs/api/fraser/identify.html
func (c *Client) Identify(ctx context.Context) (Identify, error) {
	res, err := c.request(ctx, url.Values{"verb": {"Identify"}})
	if err != nil {
		return Identify{}, err
	}
	if res.Identify == nil {
		return Identify{}, fmt.Errorf("response is missing the Identify element")
	}
	return *res.Identify, nil
}

// GetRecord returns a single record, with its metadata in the given format
// (empty means MODS).
//
// https://research.stlouisfed.org/docs/api/fraser/getRecord.html
func (c *Client) GetRecord(ctx context.Context, identifier, metadataPrefix string) (Record, error) {
	if metadataPrefix == "" {
		metadataPrefix = DefaultMetadataPrefix
	}
	res, err := c.request(ctx, url.Values{
		"verb":           {"GetRecord"},
		"identifier":     {identifier},
		"metadataPrefix": {metadataPrefix},
	})
	if err != nil {
		return Record{}, err
	}
	if res.GetRecord == nil {
		return Record{}, fmt.Errorf("response is missing the GetRecord element")
	}
	return res.GetRecord.Record, nil
}

// ListMetadataFormats returns the metadata formats available from the
// repository, or for one record when identifier is non-empty.
func (c *Client) ListMetadataFormats(ctx context.Context, identifier string) ([]MetadataFormat, error) {
	params := url.Values{"verb": {"ListMetadataFormats"}}
	if identifier != "" {
		params.Set("identifier", identifier)
	}
	res, err := c.request(ctx, params)
	if err != nil {
		return nil, err
	}
	if res.ListMetadataFormats == nil {
		return nil, fmt.Errorf("response is missing the ListMetadataFormats element")
	}
	return res.ListMetadataFormats.Formats, nil
}

// ListOptions restrict a ListRecords or ListIdentifiers harvest.
type ListOptions struct {
	// MetadataPrefix defaults to MODS.
	MetadataPrefix string
	// Set limits the harvest to records in the given setSpec.
	Set string
	// From and Until bound the harvest by record datestamp.
	From  time.Time
	Until time.Time
	// IgnoreDeleted skips records flagged as deleted.
	IgnoreDeleted bool
}

func (o *ListOptions) query(verb string) url.Values {
	params := url.Values{"verb": {verb}}
	prefix := DefaultMetadataPrefix
	if o != nil && o.MetadataPrefix != "" {
		prefix = o.MetadataPrefix
	}
	params.Set("metadataPrefix", prefix)
	if o == nil {
		return params
	}
	if o.Set != "" {
		params.Set("set", o.Set)
	}
	if !o.From.IsZero() {
		params.Set("from", o.From.UTC().Format("2006-01-02"))
	}
	if !o.Until.IsZero() {
		params.Set("until", o.Until.UTC().Format("2006-01-02"))
	}
	return params
}

// ListRecords harvests title records from the repository, transparently
// following resumption tokens.
//
// https://research.stlouisfed.org/docs/api/fraser/listRecords.html
func (c *Client) ListRecords(opts *ListOptions) *Iterator[Record] {
	params := opts.query("ListRecords")
	ignoreDeleted := opts != nil && opts.IgnoreDeleted

	return newIterator(func(ctx context.Context, token string) ([]Record, string, error) {
		res, err := c.request(ctx, resumed(params, token))
		if err != nil {
			return nil, "", err
		}
		if res.ListRecords == nil {
			return nil, "", fmt.Errorf("response is missing the ListRecords element")
		}
		records := res.ListRecords.Records
		if ignoreDeleted {
			records = filterDeleted(records, Record.Deleted)
		}
		return records, tokenValue(res.ListRecords.ResumptionToken), nil
	})
}

// ListIdentifiers harvests record headers only.
//
// https://research.stlouisfed.org/docs/api/fraser/listIdentifiers.html
func (c *Client) ListIdentifiers(opts *ListOptions) *Iterator[Header] {
	params := opts.query("ListIdentifiers")
	ignoreDeleted := opts != nil && opts.IgnoreDeleted

	return newIterator(func(ctx context.Context, token string) ([]Header, string, error) {
		res, err := c.request(ctx, resumed(params, token))
		if err != nil {
			return nil, "", err
		}
		if res.ListIdentifiers == nil {
			return nil, "", fmt.Errorf("response is missing the ListIdentifiers element")
		}
		headers := res.ListIdentifiers.Headers
		if ignoreDeleted {
			headers = filterDeleted(headers, Header.Deleted)
		}
		return headers, tokenValue(res.ListIdentifiers.ResumptionToken), nil
	})
}

// ListSets returns the repository's set hierarchy.
//
// https://research.stlouisfed.org/docs/api/fraser/listSets.html
func (c *Client) ListSets() *Iterator[Set] {
	params := url.Values{"verb": {"ListSets"}}

	return newIterator(func(ctx context.Context, token string) ([]Set, string, error) {
		res, err := c.request(ctx, resumed(params, token))
		if err != nil {
			return nil, "", err
		}
		if res.ListSets == nil {
			return nil, "", fmt.Errorf("response is missing the ListSets element")
		}
		return res.ListSets.Sets, tokenValue(res.ListSets.ResumptionToken), nil
	})
}

// resumed builds the query for a page: the protocol requires that a
// resumption token is the only argument besides the verb.
func resumed(params url.Values, token string) url.Values {
	if token == "" {
		return params
	}
	return url.Values{
		"verb":            params["verb"],
		"resumptionToken": {token},
	}
}

func tokenValue(t *resumptionToken) string {
	if t == nil {
		return ""
	}
	return t.Value
}

func filterDeleted[T any](items []T, deleted func(T) bool) []T {
	kept := items[:0:0]
	for _, item := range items {
		if !deleted(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

func (c *Client) request(ctx context.Context, params url.Values) (*response, error) {
	u := c.base + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Go FRED Client")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received status code: %d for URL %s", res.StatusCode, u)
	}

	c.log.DebugContext(ctx, "oai response", "verb", params.Get("verb"), "bytes", len(body))

	var envelope response
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response for URL %s: %w", u, err)
	}
	if envelope.Error != nil {
		return nil, &OAIError{Code: envelope.Error.Code, Message: envelope.Error.Message}
	}
	return &envelope, nil
}
