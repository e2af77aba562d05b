package images

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	catAPIHome  = "http://thecatapi.com"
	catFactsURL = "http://catfacts-api.appspot.com/api/facts"
)

// Categories accepted by the image endpoint.
var Categories = []string{
	"hats", "space", "funny", "sunglasses", "boxes",
	"caturday", "ties", "dream", "sinks", "clothes",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ErrNoCat means the upstream could not produce an image.
var ErrNoCat = errors.New("could not get cat")

// ErrNoFact means the facts endpoint had nothing for us.
var ErrNoFact = errors.New("no cat fact available")

// CatImage is one image record from the XML API.
type CatImage struct {
	ID  string `xml:"id"`
	URL string `xml:"url"`
}

// PageURL is the human-facing page for an image id.
func (i CatImage) PageURL() string {
	return catAPIHome + "/?id=" + url.QueryEscape(i.ID)
}

// Vote is one rating the caller has previously cast.
type Vote struct {
	ID    string `xml:"id"`
	Score int    `xml:"score"`
	URL   string `xml:"url"`
}

// CatAPI talks to thecatapi.com. All endpoints respond with XML except the
// separate facts service, which is JSON.
type CatAPI struct {
	apiKey   string
	baseURL  string
	factsURL string
	http     *fasthttp.Client
	timeout  time.Duration
}

type CatOption func(*CatAPI)

func WithCatTimeout(d time.Duration) CatOption {
	return func(c *CatAPI) { c.timeout = d }
}

func WithCatBaseURL(baseURL, factsURL string) CatOption {
	return func(c *CatAPI) {
		c.baseURL = baseURL
		c.factsURL = factsURL
	}
}

func NewCatAPI(apiKey string, opts ...CatOption) *CatAPI {
	c := &CatAPI{
		apiKey:   apiKey,
		baseURL:  catAPIHome,
		factsURL: catFactsURL,
		http:     &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 8},
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Image fetches one random image, optionally category-filtered. SubID
// attributes the request to a caller so votes and favorites stick to them.
func (c *CatAPI) Image(ctx context.Context, category, subID string) (*CatImage, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("format", "xml")
	q.Set("sub_id", subID)
	if category != "" {
		q.Set("category", category)
	}
	body, err := c.get(ctx, c.baseURL+"/api/images/get?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Images []CatImage `xml:"data>images>image"`
	}
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("cat api decode: %w", err)
	}
	if len(payload.Images) == 0 || payload.Images[0].URL == "" {
		return nil, ErrNoCat
	}
	return &payload.Images[0], nil
}

// ImageBytes downloads the raw image for relaying into chat.
func (c *CatAPI) ImageBytes(ctx context.Context, imageURL string) ([]byte, error) {
	body, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Report flags an image as broken or inappropriate.
func (c *CatAPI) Report(ctx context.Context, subID, imageID, reason string) error {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("sub_id", subID)
	q.Set("image_id", imageID)
	if reason != "" {
		q.Set("reason", reason)
	}
	_, err := c.get(ctx, c.baseURL+"/api/images/report?"+q.Encode())
	return err
}

// Rate casts or replaces the caller's score for an image. Score is 1..10.
func (c *CatAPI) Rate(ctx context.Context, subID, imageID string, score int) error {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("sub_id", subID)
	q.Set("image_id", imageID)
	q.Set("score", fmt.Sprint(score))
	_, err := c.get(ctx, c.baseURL+"/api/images/vote?"+q.Encode())
	return err
}

// Votes lists every rating the caller has cast.
func (c *CatAPI) Votes(ctx context.Context, subID string) ([]Vote, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("sub_id", subID)
	body, err := c.get(ctx, c.baseURL+"/api/images/getvotes?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var payload struct {
		Votes []Vote `xml:"data>images>image"`
	}
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("cat api decode: %w", err)
	}
	return payload.Votes, nil
}

// Favourite adds or removes a favorite. Action is "add" or "remove".
func (c *CatAPI) Favourite(ctx context.Context, subID, imageID, action string) error {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("sub_id", subID)
	q.Set("image_id", imageID)
	q.Set("action", action)
	_, err := c.get(ctx, c.baseURL+"/api/images/favourite?"+q.Encode())
	return err
}

// Favourites lists the caller's favorited images.
func (c *CatAPI) Favourites(ctx context.Context, subID string) ([]CatImage, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("sub_id", subID)
	body, err := c.get(ctx, c.baseURL+"/api/images/getfavourites?"+q.Encode())
	if err != nil {
		return nil, err
	}
	var payload struct {
		Images []CatImage `xml:"data>images>image"`
	}
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("cat api decode: %w", err)
	}
	return payload.Images, nil
}

// Facts returns count cat facts from the facts service.
func (c *CatAPI) Facts(ctx context.Context, count int) ([]string, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s?number=%d", c.factsURL, count))
	if err != nil {
		return nil, ErrNoFact
	}
	var payload struct {
		Facts   []string `json:"facts"`
		Success string   `json:"success"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, ErrNoFact
	}
	if payload.Success != "true" || len(payload.Facts) == 0 {
		return nil, ErrNoFact
	}
	return payload.Facts, nil
}

func (c *CatAPI) get(ctx context.Context, uri string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(uri)

	if err := c.http.DoDeadline(req, resp, c.deadline(ctx)); err != nil {
		return nil, fmt.Errorf("cat api request: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, ErrNoCat
	}
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

func (c *CatAPI) deadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}
