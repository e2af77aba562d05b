package owapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

// ErrNotFound covers every non-200, non-5xx upstream response.
var ErrNotFound = errors.New("stats not found")

// UpstreamError is an upstream 5xx. Detail carries the server's reported
// exception text when the body includes one.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("owapi upstream error: status=%d", e.Status)
}

// Client fetches stat blobs from an OWAPI-compatible endpoint. No retries:
// a fetch either succeeds within the timeout or the command fails visibly.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fasthttp.Client{ReadTimeout: 20 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 16},
		timeout: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BlobURL builds the fetch URL for a canonical tag and platform.
func (c *Client) BlobURL(tag string, platform domain.Platform) string {
	return fmt.Sprintf("%s/api/v3/u/%s/blob?platform=%s", c.baseURL, url.PathEscape(tag), platform)
}

// Blob fetches the full snapshot for a (tag, platform) pair and classifies
// the response: 200 parsed, 5xx → *UpstreamError, anything else → ErrNotFound.
func (c *Client) Blob(ctx context.Context, tag string, platform domain.Platform) (Blob, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(c.BlobURL(tag, platform))

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return nil, fmt.Errorf("owapi request: %w", err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusOK:
		var blob Blob
		if err := json.Unmarshal(resp.Body(), &blob); err != nil {
			return nil, fmt.Errorf("owapi decode: %w", err)
		}
		return blob, nil
	case status >= 500:
		return nil, &UpstreamError{Status: status, Detail: excDetail(resp.Body())}
	default:
		return nil, ErrNotFound
	}
}

func (c *Client) deadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

// excDetail pulls the "exc" field out of an error body, if any.
func excDetail(body []byte) string {
	var payload struct {
		Exc string `json:"exc"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Exc
}
