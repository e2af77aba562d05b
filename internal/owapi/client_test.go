package owapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

func TestBlobParsesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v3/u/Tester-1234/blob") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("platform"); got != "pc" {
			t.Errorf("platform = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"us": {
				"stats": {"competitive": {"competitive": true,
					"overall_stats": {"level": 50, "prestige": 1, "wins": 10},
					"game_stats": {"time_played": 12.5, "kpd": 2.1}}},
				"heroes": {"playtime": {"competitive": {"genji": 4.5}}}
			},
			"eu": null
		}`))
	}))
	defer srv.Close()

	blob, err := New(srv.URL).Blob(context.Background(), "Tester-1234", domain.PlatformPC)
	if err != nil {
		t.Fatalf("Blob: %v", err)
	}
	if blob["eu"] != nil {
		t.Fatal("eu should be null")
	}
	us := blob["us"]
	if us == nil {
		t.Fatal("us missing")
	}
	comp := us.Stats["competitive"]
	if comp == nil || !comp.Competitive {
		t.Fatalf("competitive stats = %+v", comp)
	}
	if comp.OverallStats.Level != 50 || comp.OverallStats.Prestige != 1 {
		t.Fatalf("overall = %+v", comp.OverallStats)
	}
	if us.Heroes.Playtime["competitive"]["genji"] != 4.5 {
		t.Fatalf("playtime = %+v", us.Heroes.Playtime)
	}
}

func TestBlobNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Blob(context.Background(), "Nobody-1", domain.PlatformPC)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBlobUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"exc":"SomeError: mod.py blew up"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Blob(context.Background(), "Tester-1234", domain.PlatformPC)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if upstream.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d", upstream.Status)
	}
	if upstream.Detail != "SomeError: mod.py blew up" {
		t.Fatalf("detail = %q", upstream.Detail)
	}
}

func TestBlobUpstreamErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Blob(context.Background(), "Tester-1234", domain.PlatformPC)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if upstream.Detail != "" {
		t.Fatalf("detail = %q, want empty", upstream.Detail)
	}
}

func TestBlobURLEscapesTag(t *testing.T) {
	c := New("http://owapi.local")
	got := c.BlobURL("Tester-1234", domain.PlatformXBL)
	want := "http://owapi.local/api/v3/u/Tester-1234/blob?platform=xbl"
	if got != want {
		t.Fatalf("BlobURL = %q, want %q", got, want)
	}
}
