// Package api implements the request plumbing shared by every endpoint
// family hosted on api.stlouisfed.org: URL construction, the limit/offset
// pagination loop, upstream error mapping and the rate-gate hook.
package api

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TomasKoutek/stlouisfed/rategate"
)

// BaseURL is the production API host.
const BaseURL = "https://api.stlouisfed.org"

// statusTooManyRequestsShortPeriod is the non-standard status the service
// uses for burst violations.
const statusTooManyRequestsShortPeriod = 420

const userAgent = "Go FRED Client"

// Config configures the shared request client.
type Config struct {
	// APIKey is sent as the api_key query parameter on every request.
	APIKey string
	// BaseURL overrides the production host (tests).
	BaseURL string
	// HTTPClient overrides the default transport.
	HTTPClient *http.Client
	// Gate, when non-nil, is acquired once immediately before each request.
	Gate rategate.Gate
	// Logger receives debug records; nil means slog.Default().
	Logger *slog.Logger
}

// Client issues paginated GET requests and extracts the result list.
type Client struct {
	key    string
	base   *url.URL
	client *http.Client
	gate   rategate.Gate
	log    *slog.Logger
}

func New(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		key:    cfg.APIKey,
		base:   base,
		client: client,
		gate:   cfg.Gate,
		log:    log,
	}, nil
}

// Gate exposes the configured gate so callers can inspect or reset it.
func (c *Client) Gate() rategate.Gate {
	return c.gate
}

// Get fetches endpoint and returns the raw items of the list found under
// listKey (a dotted path into the JSON document). When pageLimit is
// positive the endpoint is paged through with limit/offset until the
// upstream count is exhausted; responses without a count field are returned
// as-is from a single request.
func (c *Client) Get(ctx context.Context, endpoint, listKey string, pageLimit int, params Params) ([]json.RawMessage, error) {
	var result []json.RawMessage
	offset := 0
	request := 1

	for {
		u := c.buildURL(endpoint, pageLimit, offset, params)

		doc, err := c.fetch(ctx, u)
		if err != nil {
			return nil, err
		}

		listRaw, ok := deepGet(doc, listKey)
		if !ok {
			return nil, NewMissingListKeyError(listKey, u)
		}

		items, err := rawItems(listRaw)
		if err != nil {
			return nil, NewDecodeError(u, err)
		}

		countRaw, hasCount := doc["count"]
		if !hasCount {
			// The maps data endpoints return a year-keyed object with no
			// count; there is nothing to page through.
			return items, nil
		}

		var count int
		if err := json.Unmarshal(countRaw, &count); err != nil {
			return nil, NewDecodeError(u, err)
		}

		result = append(result, items...)

		c.log.DebugContext(ctx, "page fetched",
			"endpoint", endpoint, "request", request, "records", count, "offset", offset)

		if pageLimit <= 0 || count < pageLimit || len(items) < pageLimit {
			return result, nil
		}

		offset += pageLimit
		request++
	}
}

// GetDocument fetches endpoint once, without paging, and returns the whole
// response document keyed by field. Some endpoints (release tables, the
// maps cross sections) answer with a structured document instead of a flat
// list.
func (c *Client) GetDocument(ctx context.Context, endpoint string, params Params) (map[string]json.RawMessage, error) {
	return c.fetch(ctx, c.buildURL(endpoint, 0, 0, params))
}

func (c *Client) buildURL(endpoint string, pageLimit, offset int, params Params) string {
	q := url.Values{}
	for k, vs := range params.Values {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.key)
	q.Set("file_type", "json")
	if pageLimit > 0 {
		q.Set("limit", fmt.Sprint(pageLimit))
		q.Set("offset", fmt.Sprint(offset))
	}

	u := *c.base
	u.Path = endpoint
	u.RawQuery = q.Encode()
	return u.String()
}

// fetch performs one rate-gated request and returns the decoded document.
func (c *Client) fetch(ctx context.Context, u string) (map[string]json.RawMessage, error) {
	if c.gate != nil {
		start := time.Now()
		if err := c.gate.Acquire(ctx); err != nil {
			return nil, err
		}
		if waited := time.Since(start); waited > time.Millisecond {
			c.log.DebugContext(ctx, "rate limited", "waited", waited)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	contentType := res.Header.Get("Content-Type")

	// The maps endpoints report errors as XML documents even when JSON
	// output was requested.
	if strings.HasPrefix(contentType, "text/xml") && res.StatusCode != http.StatusOK {
		var xe xmlError
		if err := xml.Unmarshal(body, &xe); err != nil {
			return nil, NewDecodeError(u, err)
		}
		return nil, &APIError{Code: xe.Code, Message: xe.Message, URL: u}
	}

	if !strings.HasPrefix(contentType, "application/json") {
		return nil, NewUnexpectedContentTypeError(contentType, u)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, NewDecodeError(u, err)
	}

	switch res.StatusCode {
	case http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusTooManyRequests,
		statusTooManyRequestsShortPeriod,
		http.StatusInternalServerError:
		return nil, apiError(doc, u)
	case http.StatusOK:
		return doc, nil
	default:
		return nil, NewUnexpectedStatusError(res.StatusCode, u)
	}
}

func apiError(doc map[string]json.RawMessage, u string) error {
	var payload struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	}
	raw, _ := json.Marshal(doc)
	if err := json.Unmarshal(raw, &payload); err != nil {
		return NewDecodeError(u, err)
	}
	return &APIError{
		Code:    payload.ErrorCode,
		Message: strings.Join(strings.Fields(payload.ErrorMessage), " "),
		URL:     u,
	}
}

// deepGet walks a dotted key path ("meta.data") through nested objects.
func deepGet(doc map[string]json.RawMessage, dotted string) (json.RawMessage, bool) {
	keys := strings.Split(dotted, ".")
	cur := doc
	for i, k := range keys {
		raw, ok := cur[k]
		if !ok {
			return nil, false
		}
		if i == len(keys)-1 {
			return raw, true
		}
		next := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &next); err != nil {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// rawItems normalizes the extracted list: a JSON array yields its elements,
// any other value yields a single-element slice.
func rawItems(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	return []json.RawMessage{raw}, nil
}
