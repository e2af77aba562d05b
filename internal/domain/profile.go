package domain

import "strings"

// Mode is an Overwatch gamemode.
type Mode string

const (
	ModeQuickplay   Mode = "quickplay"
	ModeCompetitive Mode = "competitive"
)

// DefaultMode is used when a player has no stored preference.
const DefaultMode = ModeCompetitive

// modeAliases maps every accepted spelling to its canonical mode.
var modeAliases = map[string]Mode{
	"quickplay":   ModeQuickplay,
	"unranked":    ModeQuickplay,
	"quick":       ModeQuickplay,
	"qp":          ModeQuickplay,
	"competitive": ModeCompetitive,
	"ranked":      ModeCompetitive,
	"comp":        ModeCompetitive,
	"default":     ModeCompetitive,
}

// ParseMode resolves a user-supplied token to a Mode.
func ParseMode(s string) (Mode, bool) {
	m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

// Title renders the mode for display ("Quickplay", "Competitive").
func (m Mode) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Region is an Overwatch stats region.
type Region string

const (
	RegionUS Region = "us"
	RegionEU Region = "eu"
	RegionKR Region = "kr"

	// RegionAny is the sentinel region used for non-PC platforms,
	// whose stats are not split per region upstream.
	RegionAny Region = "any"
)

const DefaultRegion = RegionUS

// Regions lists the selectable regions in resolution priority order.
var Regions = []Region{RegionUS, RegionEU, RegionKR}

func ParseRegion(s string) (Region, bool) {
	switch Region(strings.ToLower(strings.TrimSpace(s))) {
	case RegionUS:
		return RegionUS, true
	case RegionEU:
		return RegionEU, true
	case RegionKR:
		return RegionKR, true
	}
	return "", false
}

// Platform is a platform the game is played on.
type Platform string

const (
	PlatformPC  Platform = "pc"
	PlatformXBL Platform = "xbl"
	PlatformPSN Platform = "psn"
)

const DefaultPlatform = PlatformPC

var Platforms = []Platform{PlatformPC, PlatformXBL, PlatformPSN}

func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformPC:
		return PlatformPC, true
	case PlatformXBL:
		return PlatformXBL, true
	case PlatformPSN:
		return PlatformPSN, true
	}
	return "", false
}

// UserPreference is one stored row per chat account. BTag is kept in the
// canonical API form ("Name-1234"), never the display form.
type UserPreference struct {
	AccountID int64
	BTag      string
	Mode      Mode
	Region    Region
	Platform  Platform
}
