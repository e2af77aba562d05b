package overwatch

import (
	"testing"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

func TestDisambiguateClassifiesEachToken(t *testing.T) {
	a := Disambiguate("Tester#1234", "eu", "qp", "psn")
	if a.Tag != "Tester#1234" {
		t.Fatalf("tag = %q", a.Tag)
	}
	if a.Region == nil || *a.Region != domain.RegionEU {
		t.Fatalf("region = %v", a.Region)
	}
	if a.Mode == nil || *a.Mode != domain.ModeQuickplay {
		t.Fatalf("mode = %v", a.Mode)
	}
	if a.Platform == nil || *a.Platform != domain.PlatformPSN {
		t.Fatalf("platform = %v", a.Platform)
	}
}

func TestDisambiguatePermutationInvariant(t *testing.T) {
	tokens := []string{"kr", "Tester#1234", "comp", "pc"}
	perms := [][]string{
		{tokens[0], tokens[1], tokens[2], tokens[3]},
		{tokens[3], tokens[2], tokens[1], tokens[0]},
		{tokens[1], tokens[3], tokens[0], tokens[2]},
		{tokens[2], tokens[0], tokens[3], tokens[1]},
	}
	want := Disambiguate(perms[0]...)
	for _, p := range perms[1:] {
		got := Disambiguate(p...)
		if got.Tag != want.Tag ||
			*got.Mode != *want.Mode ||
			*got.Region != *want.Region ||
			*got.Platform != *want.Platform {
			t.Fatalf("permutation %v resolved differently: %+v vs %+v", p, got, want)
		}
	}
}

func TestDisambiguateDropsUnrecognized(t *testing.T) {
	a := Disambiguate("bogus", "na", "")
	if a.Tag != "" || a.Mode != nil || a.Region != nil || a.Platform != nil {
		t.Fatalf("unrecognized tokens produced %+v", a)
	}
}

func TestDisambiguateMentionIsTag(t *testing.T) {
	a := Disambiguate("<@123456>", "unranked")
	if a.Tag != "<@123456>" {
		t.Fatalf("tag = %q", a.Tag)
	}
	if a.Mode == nil || *a.Mode != domain.ModeQuickplay {
		t.Fatalf("mode = %v", a.Mode)
	}
}

func TestDisambiguateModeAliases(t *testing.T) {
	cases := map[string]domain.Mode{
		"qp":          domain.ModeQuickplay,
		"quick":       domain.ModeQuickplay,
		"unranked":    domain.ModeQuickplay,
		"quickplay":   domain.ModeQuickplay,
		"comp":        domain.ModeCompetitive,
		"ranked":      domain.ModeCompetitive,
		"default":     domain.ModeCompetitive,
		"competitive": domain.ModeCompetitive,
	}
	for alias, want := range cases {
		a := Disambiguate(alias)
		if a.Mode == nil || *a.Mode != want {
			t.Fatalf("Disambiguate(%q).Mode = %v, want %v", alias, a.Mode, want)
		}
	}
}
