package images

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestXKCD(t *testing.T, handler http.HandlerFunc) *XKCDClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewXKCDClient()
	c.baseURL = srv.URL
	return c
}

func TestXKCDByNum(t *testing.T) {
	c := newTestXKCD(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/353/info.0.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"num": 353, "safe_title": "Python", "alt": "import antigravity",
			"img": "https://imgs.xkcd.com/comics/python.png",
			"year": "2008", "month": "2", "day": "6"}`))
	})

	comic, err := c.ByNum(context.Background(), 353)
	if err != nil {
		t.Fatalf("ByNum: %v", err)
	}
	if comic.Num != 353 || comic.SafeTitle != "Python" {
		t.Fatalf("comic = %+v", comic)
	}
	want := time.Date(2008, 2, 6, 0, 0, 0, 0, time.UTC)
	if !comic.PostedOn.Equal(want) {
		t.Fatalf("posted = %v, want %v", comic.PostedOn, want)
	}
}

func TestXKCDNotFound(t *testing.T) {
	c := newTestXKCD(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if _, err := c.ByNum(context.Background(), 404); !errors.Is(err, ErrComicNotFound) {
		t.Fatalf("err = %v, want ErrComicNotFound", err)
	}
}

func TestFormatComic(t *testing.T) {
	comic := &Comic{
		Num:       353,
		SafeTitle: "Python",
		Alt:       "import antigravity",
		Img:       "https://imgs.xkcd.com/comics/python.png",
		PostedOn:  time.Date(2008, 2, 6, 0, 0, 0, 0, time.UTC),
	}
	want := "Date: 02/06/2008\n" +
		"Title: 353. Python\n" +
		"Alt Text: import antigravity\n" +
		"Image: https://imgs.xkcd.com/comics/python.png"
	if got := formatComic(comic); got != want {
		t.Fatalf("formatComic = %q, want %q", got, want)
	}
}

func TestParseScore(t *testing.T) {
	for raw, want := range map[string]int{"7": 7, "10/10": 10, "1": 1} {
		got, err := parseScore(raw)
		if err != nil {
			t.Fatalf("parseScore(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("parseScore(%q) = %d, want %d", raw, got, want)
		}
	}
	for _, raw := range []string{"0", "11", "abc", "-1/10", ""} {
		if _, err := parseScore(raw); err == nil {
			t.Fatalf("parseScore(%q) accepted", raw)
		}
	}
}
