package images

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/valyala/fasthttp"
)

// ErrComicNotFound means xkcd has no comic under that number.
var ErrComicNotFound = errors.New("comic not found")

// Comic is one xkcd strip. PostedOn is assembled from the API's split
// year/month/day fields.
type Comic struct {
	Num       int
	SafeTitle string
	Alt       string
	Img       string
	PostedOn  time.Time
}

// XKCDClient fetches comic metadata from xkcd.com.
type XKCDClient struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
}

func NewXKCDClient() *XKCDClient {
	return &XKCDClient{
		baseURL: "https://xkcd.com",
		http:    &fasthttp.Client{ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second, MaxConnsPerHost: 4},
		timeout: 10 * time.Second,
	}
}

// Latest fetches the newest comic.
func (c *XKCDClient) Latest(ctx context.Context) (*Comic, error) {
	return c.fetch(ctx, c.baseURL+"/info.0.json")
}

// ByNum fetches a specific comic.
func (c *XKCDClient) ByNum(ctx context.Context, num int) (*Comic, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/%d/info.0.json", c.baseURL, num))
}

func (c *XKCDClient) fetch(ctx context.Context, uri string) (*Comic, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(fasthttp.MethodGet)
	req.SetRequestURI(uri)

	clientDL := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		clientDL = dl
	}
	if err := c.http.DoDeadline(req, resp, clientDL); err != nil {
		return nil, fmt.Errorf("xkcd request: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, ErrComicNotFound
	}

	var payload struct {
		Num       int    `json:"num"`
		SafeTitle string `json:"safe_title"`
		Alt       string `json:"alt"`
		Img       string `json:"img"`
		Year      string `json:"year"`
		Month     string `json:"month"`
		Day       string `json:"day"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("xkcd decode: %w", err)
	}

	posted, err := time.Parse("2006-1-2", fmt.Sprintf("%s-%s-%s", payload.Year, payload.Month, payload.Day))
	if err != nil {
		posted = time.Time{}
	}
	return &Comic{
		Num:       payload.Num,
		SafeTitle: payload.SafeTitle,
		Alt:       payload.Alt,
		Img:       payload.Img,
		PostedOn:  posted,
	}, nil
}

// ComicRepo caches comics in Postgres so repeat lookups skip the upstream.
type ComicRepo struct {
	db *sql.DB
}

func NewComicRepo(db *sql.DB) *ComicRepo {
	return &ComicRepo{db: db}
}

// Get returns the cached comic, or (nil, nil) when absent.
func (r *ComicRepo) Get(ctx context.Context, num int) (*Comic, error) {
	var c Comic
	err := r.db.QueryRowContext(ctx, `
		SELECT num, safe_title, alt, img, posted_on
		FROM xkcd_comics WHERE num = $1
	`, num).Scan(&c.Num, &c.SafeTitle, &c.Alt, &c.Img, &c.PostedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("comic lookup: %w", err)
	}
	return &c, nil
}

// Put stores a comic. Re-inserting the same number is a no-op.
func (r *ComicRepo) Put(ctx context.Context, c *Comic) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO xkcd_comics (num, safe_title, alt, img, posted_on)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (num) DO NOTHING
	`, c.Num, c.SafeTitle, c.Alt, c.Img, c.PostedOn)
	if err != nil {
		return fmt.Errorf("comic insert: %w", err)
	}
	return nil
}

// XKCDService resolves comic queries through the cache.
type XKCDService struct {
	client *XKCDClient
	repo   *ComicRepo
}

func NewXKCDService(client *XKCDClient, repo *ComicRepo) *XKCDService {
	return &XKCDService{client: client, repo: repo}
}

// Latest fetches the newest comic and caches it.
func (s *XKCDService) Latest(ctx context.Context) (*Comic, error) {
	comic, err := s.client.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Put(ctx, comic); err != nil {
		return nil, err
	}
	return comic, nil
}

// ByNum returns comic num, cache-aside.
func (s *XKCDService) ByNum(ctx context.Context, num int) (*Comic, error) {
	if cached, err := s.repo.Get(ctx, num); err != nil {
		return nil, err
	} else if cached != nil {
		return cached, nil
	}
	comic, err := s.client.ByNum(ctx, num)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Put(ctx, comic); err != nil {
		return nil, err
	}
	return comic, nil
}

// Random picks a comic between 1 and the latest, never landing on 404:
// xkcd reserves that number and returns an actual 404 for it.
func (s *XKCDService) Random(ctx context.Context) (*Comic, error) {
	latest, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	var num int
	for {
		num = rand.Intn(latest.Num) + 1
		if num != 404 {
			break
		}
	}
	return s.ByNum(ctx, num)
}
