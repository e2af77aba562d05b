package overwatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
	"github.com/park285/Lag-KakaoTalk-bot/internal/owapi"
	"github.com/park285/Lag-KakaoTalk-bot/internal/profile"
)

func playedRegion(mode string) *owapi.RegionStats {
	games := 100
	ties := 2
	winRate := 49.5
	return &owapi.RegionStats{
		Stats: map[string]*owapi.ModeStats{
			mode: {
				Competitive: mode == "competitive",
				OverallStats: owapi.OverallStats{
					Level:    45,
					Prestige: 2,
					Games:    &games,
					Wins:     49,
					Ties:     &ties,
					WinRate:  &winRate,
				},
				GameStats: owapi.GameStats{TimePlayed: 30.5, KPD: 1.87, EnvironmentalDeaths: 4},
			},
		},
		Heroes: owapi.HeroStats{
			Playtime: map[string]map[string]float64{
				mode: {"genji": 10, "mercy": 4.5},
			},
		},
	}
}

func statsServer(t *testing.T, blob owapi.Blob) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(blob); err != nil {
			t.Errorf("encode blob: %v", err)
		}
	}))
}

func newTestService(t *testing.T, srv *httptest.Server, store profile.Store, notify Notifier) *Service {
	t.Helper()
	return NewService(store, owapi.New(srv.URL, owapi.WithTimeout(5*time.Second)), notify)
}

func TestStatsRegionPriority(t *testing.T) {
	srv := statsServer(t, owapi.Blob{
		"us": nil,
		"eu": playedRegion("competitive"),
		"kr": playedRegion("competitive"),
	})
	defer srv.Close()
	svc := newTestService(t, srv, profile.NewMemStore(), nil)

	summary, err := svc.Stats(context.Background(), Disambiguate("Tester#1234"), 0)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if summary.Region != domain.RegionEU {
		t.Fatalf("region = %s, want eu (first region with data)", summary.Region)
	}
	if summary.BTag != "Tester#1234" {
		t.Fatalf("btag = %q", summary.BTag)
	}
	if summary.Mode != domain.ModeCompetitive {
		t.Fatalf("mode = %s, want default competitive", summary.Mode)
	}
}

func TestStatsExplicitRegionWithoutData(t *testing.T) {
	srv := statsServer(t, owapi.Blob{
		"us": playedRegion("competitive"),
		"kr": nil,
	})
	defer srv.Close()
	svc := newTestService(t, srv, profile.NewMemStore(), nil)

	_, err := svc.Stats(context.Background(), Disambiguate("Tester#1234", "kr"), 0)
	var regionErr *RegionNotPlayedError
	if !errors.As(err, &regionErr) {
		t.Fatalf("err = %v, want RegionNotPlayedError", err)
	}
	if regionErr.Region != domain.RegionKR {
		t.Fatalf("region = %s", regionErr.Region)
	}
}

func TestStatsStoredRegionHonoredOnlyWithData(t *testing.T) {
	store := profile.NewMemStore()
	mustRegister(t, store, domain.UserPreference{
		AccountID: 42, BTag: "Tester-1234",
		Mode: domain.ModeCompetitive, Region: domain.RegionKR, Platform: domain.PlatformPC,
	})

	// The stored kr preference has no data, so priority order applies.
	srv := statsServer(t, owapi.Blob{
		"us": playedRegion("competitive"),
		"kr": nil,
	})
	defer srv.Close()
	svc := newTestService(t, srv, store, nil)

	summary, err := svc.Stats(context.Background(), Disambiguate(), 42)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if summary.Region != domain.RegionUS {
		t.Fatalf("region = %s, want us fallback", summary.Region)
	}
}

func TestStatsCompetitiveFallsBackToQuickplay(t *testing.T) {
	blob := owapi.Blob{"us": playedRegion("quickplay")}
	srv := statsServer(t, blob)
	defer srv.Close()
	svc := newTestService(t, srv, profile.NewMemStore(), nil)

	summary, err := svc.Stats(context.Background(), Disambiguate("Tester#1234"), 0)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if summary.Mode != domain.ModeQuickplay {
		t.Fatalf("mode = %s, want quickplay fallback", summary.Mode)
	}
}

func TestStatsExplicitQuickplayNeverFallsBack(t *testing.T) {
	// Only competitive data exists; an explicit quickplay request must not
	// silently switch modes.
	srv := statsServer(t, owapi.Blob{"us": playedRegion("competitive")})
	defer srv.Close()
	svc := newTestService(t, srv, profile.NewMemStore(), nil)

	_, err := svc.Stats(context.Background(), Disambiguate("Tester#1234", "qp"), 0)
	var notPlayed *NotPlayedError
	if !errors.As(err, &notPlayed) {
		t.Fatalf("err = %v, want NotPlayedError", err)
	}
}

func TestStatsNonPCUsesAnyRegion(t *testing.T) {
	srv := statsServer(t, owapi.Blob{"any": playedRegion("quickplay")})
	defer srv.Close()
	svc := newTestService(t, srv, profile.NewMemStore(), nil)

	summary, err := svc.Stats(context.Background(), Disambiguate("Tester#1234", "xbl", "qp"), 0)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if summary.Region != domain.RegionAny {
		t.Fatalf("region = %s, want any", summary.Region)
	}
	if summary.Platform != domain.PlatformXBL {
		t.Fatalf("platform = %s", summary.Platform)
	}
}

func TestStatsNoTagAndNoProfile(t *testing.T) {
	srv := statsServer(t, owapi.Blob{})
	defer srv.Close()
	svc := newTestService(t, srv, profile.NewMemStore(), nil)

	_, err := svc.Stats(context.Background(), Disambiguate(), 42)
	if !errors.Is(err, ErrNotInDB) {
		t.Fatalf("err = %v, want ErrNotInDB", err)
	}
}

func TestStatsMentionResolvesThroughStore(t *testing.T) {
	store := profile.NewMemStore()
	mustRegister(t, store, domain.UserPreference{
		AccountID: 777, BTag: "Friend-42",
		Mode: domain.ModeQuickplay, Region: domain.RegionUS, Platform: domain.PlatformPC,
	})
	srv := statsServer(t, owapi.Blob{"us": playedRegion("quickplay")})
	defer srv.Close()
	svc := newTestService(t, srv, store, nil)

	summary, err := svc.Stats(context.Background(), Disambiguate("<@777>"), 1)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if summary.BTag != "Friend#42" {
		t.Fatalf("btag = %q, want Friend#42", summary.BTag)
	}
	if summary.Mode != domain.ModeQuickplay {
		t.Fatalf("mode = %s, want stored quickplay preference", summary.Mode)
	}
}

func TestStatsUpstreamFailureNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"exc":"InternalError: api.mod failed"}`))
	}))
	defer srv.Close()

	notified := make(chan string, 1)
	svc := newTestService(t, srv, profile.NewMemStore(), func(detail string) {
		notified <- detail
	})

	_, err := svc.Stats(context.Background(), Disambiguate("Tester#1234"), 0)
	var upstream *owapi.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}

	select {
	case detail := <-notified:
		if detail != "InternalError: api.mod failed" {
			t.Fatalf("notify detail = %q", detail)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
}

func TestStatsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	svc := newTestService(t, srv, profile.NewMemStore(), nil)

	_, err := svc.Stats(context.Background(), Disambiguate("Tester#1234"), 0)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if notFound.BTag != "Tester#1234" {
		t.Fatalf("btag = %q", notFound.BTag)
	}
}

func TestHeroesReportOrdering(t *testing.T) {
	srv := statsServer(t, owapi.Blob{"us": playedRegion("competitive")})
	defer srv.Close()
	svc := newTestService(t, srv, profile.NewMemStore(), nil)

	report, err := svc.Heroes(context.Background(), Disambiguate("Tester#1234"), 0)
	if err != nil {
		t.Fatalf("Heroes: %v", err)
	}
	if len(report.Entries) != 2 {
		t.Fatalf("entries = %+v", report.Entries)
	}
	if report.Entries[0].Key != "genji" || report.Entries[1].Key != "mercy" {
		t.Fatalf("ordering = %+v", report.Entries)
	}
}

func mustRegister(t *testing.T, store profile.Store, pref domain.UserPreference) {
	t.Helper()
	if err := store.Register(context.Background(), pref); err != nil {
		t.Fatalf("register: %v", err)
	}
}
