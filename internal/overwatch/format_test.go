package overwatch

import (
	"strings"
	"testing"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

func TestFormatSummary(t *testing.T) {
	s := &Summary{
		BTag:      "Tester#1234",
		Platform:  domain.PlatformPC,
		Region:    domain.RegionUS,
		Mode:      domain.ModeCompetitive,
		CareerURL: "https://playoverwatch.com/en-us/career/pc/us/Tester-1234",
		RawURL:    "http://owapi.local/api/v3/u/Tester-1234/blob?platform=pc",
		Fields: []Field{
			{"Time Played", "30 hours, 30 minutes"},
			{"Level", "245"},
		},
	}
	out := FormatSummary(s)
	if !strings.HasPrefix(out, "Tester#1234 — PC/US Competitive Stats") {
		t.Fatalf("header = %q", strings.SplitN(out, "\n", 2)[0])
	}
	for _, want := range []string{
		"Time Played: 30 hours, 30 minutes",
		"Level: 245",
		"Career: https://playoverwatch.com",
		"Raw: http://owapi.local",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatHeroesSkipsZeroPlaytime(t *testing.T) {
	r := &HeroReport{
		BTag:     "Tester#1234",
		Platform: domain.PlatformPC,
		Region:   domain.RegionEU,
		Mode:     domain.ModeQuickplay,
		Entries: []HeroPlaytime{
			{Key: "genji", Name: "Genji", Hours: 10},
			{Key: "mercy", Name: "Mercy", Hours: 0},
		},
		CareerURL: "https://playoverwatch.com/en-us/career/pc/eu/Tester-1234",
	}
	out := FormatHeroes(r)
	if !strings.Contains(out, "Genji") {
		t.Fatal("played hero missing")
	}
	if strings.Contains(out, "Mercy") {
		t.Fatal("zero-playtime hero listed")
	}
	if !strings.HasPrefix(out, "Tester#1234 — PC/EU Quickplay hero stats") {
		t.Fatalf("header = %q", strings.SplitN(out, "\n", 2)[0])
	}
}
