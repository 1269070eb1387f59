package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
)

// DefaultURL is the public video game sales dataset.
const DefaultURL = "https://cdn.freecodecamp.org/testable-projects-fcc/data/tree_map/video-game-sales-data.json"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 32 << 20

// ResponseError is the cause of a LOAD_ERROR produced by a non-success
// HTTP status. Body is the decoded JSON error document when the server sent
// one, otherwise the raw body text.
type ResponseError struct {
	StatusCode int
	Body       any
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("status %d: %v", e.StatusCode, e.Body)
}

// Client fetches dataset documents over HTTP.
// It performs a single attempt per call; there is no retry policy.
type Client struct {
	http *http.Client
}

// NewClient creates a Client. A nil httpClient uses a client without a
// request timeout, so the fetch is bounded only by ctx.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient}
}

// Fetch performs one GET against rawURL and decodes the body as a dataset.
// Every failure is a LOAD_ERROR; the caller must not proceed to rendering.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*RawNode, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "fetch dataset")
	}
	u, _ := url.Parse(rawURL)
	hooks := observability.HTTP()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "build request for %s", rawURL)
	}

	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "fetch %s", rawURL)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "read response from %s", rawURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrap(errors.ErrCodeLoad, &ResponseError{
			StatusCode: resp.StatusCode,
			Body:       decodeErrorBody(body),
		}, "fetch %s", rawURL)
	}

	root, err := ReadJSON(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "decode %s", rawURL)
	}
	return root, nil
}

func decodeErrorBody(body []byte) any {
	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return v
	}
	return string(bytes.TrimSpace(body))
}

// Fetch retrieves rawURL with a default [Client].
func Fetch(ctx context.Context, rawURL string) (*RawNode, error) {
	return NewClient(nil).Fetch(ctx, rawURL)
}
