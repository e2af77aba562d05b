package overwatch

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
	"github.com/park285/Lag-KakaoTalk-bot/internal/owapi"
	"github.com/park285/Lag-KakaoTalk-bot/internal/util"
)

// Summary is the projected stats response for one player: an author line,
// a platform/region/mode header, and ordered name/value fields.
type Summary struct {
	BTag     string // display form
	Platform domain.Platform
	Region   domain.Region
	Mode     domain.Mode

	AvatarURL string
	CareerURL string
	RawURL    string

	Fields []Field
}

type Field struct {
	Name  string
	Value string
}

// HeroPlaytime is one row of the most-played ordering.
type HeroPlaytime struct {
	Key   string
	Name  string
	Hours float64
}

// TimeString renders a decimal hour count as "H hour(s)[, M minute(s)]",
// pluralizing each unit independently, or "<1 minute" when the total
// rounds to zero.
func TimeString(decimalHours float64) string {
	total := int(math.Round(decimalHours * 60))
	hours, minutes := total/60, total%60
	switch {
	case hours > 0 && minutes > 0:
		return util.Pluralize(hours, "hour") + ", " + util.Pluralize(minutes, "minute")
	case hours > 0:
		return util.Pluralize(hours, "hour")
	case minutes > 0:
		return util.Pluralize(minutes, "minute")
	default:
		return "<1 minute"
	}
}

// Level folds prestige into the displayed level.
func Level(overall owapi.OverallStats) int {
	return overall.Prestige*100 + overall.Level
}

// MostPlayed orders the per-hero playtime descending, skipping the
// malformed sentinel key. Ties break deterministically by hero key.
func MostPlayed(playtime map[string]float64) []HeroPlaytime {
	entries := make([]HeroPlaytime, 0, len(playtime))
	for key, hours := range playtime {
		if key == malformedHeroKey {
			continue
		}
		entries = append(entries, HeroPlaytime{Key: key, Name: HeroName(key), Hours: hours})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Hours != entries[j].Hours {
			return entries[i].Hours > entries[j].Hours
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// rankString renders the competitive rank block: "Tier 1234" or "Unranked"
// when the tier is null.
func rankString(overall owapi.OverallStats) string {
	if overall.Tier == nil {
		return "Unranked"
	}
	rank := capitalize(*overall.Tier)
	if overall.CompRank != nil {
		rank += " " + strconv.Itoa(*overall.CompRank)
	}
	return rank
}

// buildSummary shapes the resolved snapshot into the response fields.
func buildSummary(res *Resolved) *Summary {
	stats := res.Stats
	s := &Summary{
		BTag:      ToDisplay(res.Tag),
		Platform:  res.Platform,
		Region:    res.Region,
		Mode:      res.Mode,
		AvatarURL: stats.OverallStats.Avatar,
		CareerURL: CareerURL(res.Tag, res.Region, res.Platform),
		RawURL:    res.RawURL,
	}

	s.Fields = append(s.Fields, Field{"Time Played", TimeString(stats.GameStats.TimePlayed)})
	s.Fields = append(s.Fields, Field{"Level", strconv.Itoa(Level(stats.OverallStats))})

	if stats.Competitive {
		s.Fields = append(s.Fields, Field{"Competitive Rank", rankString(stats.OverallStats)})
	}

	if ordered := MostPlayed(res.Playtime); len(ordered) > 0 {
		top := ordered[0]
		s.Fields = append(s.Fields, Field{"Most Played Hero", top.Name + " - " + TimeString(top.Hours)})
	}

	overall := stats.OverallStats
	if overall.Games != nil && *overall.Games > 0 {
		s.Fields = append(s.Fields, Field{"Games Played", strconv.Itoa(*overall.Games)})
		s.Fields = append(s.Fields, Field{"Games Won", strconv.Itoa(overall.Wins)})
		ties := 0
		if overall.Ties != nil {
			ties = *overall.Ties
		}
		s.Fields = append(s.Fields, Field{"Games Tied", strconv.Itoa(ties)})
		if overall.WinRate != nil {
			s.Fields = append(s.Fields, Field{"Win Rate", trimFloat(*overall.WinRate) + "%"})
		}
	} else {
		s.Fields = append(s.Fields, Field{"Games Won", strconv.Itoa(overall.Wins)})
	}

	s.Fields = append(s.Fields, Field{"Kill/Death", fmt.Sprintf("%.2f", stats.GameStats.KPD)})
	s.Fields = append(s.Fields, Field{"Environmental Deaths", strconv.Itoa(int(stats.GameStats.EnvironmentalDeaths))})
	return s
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
