package owapi

// Blob is one upstream snapshot for a (tag, platform) pair: a mapping from
// region to its stats, with null entries for regions never played. It is
// fetched fresh per command and never cached.
type Blob map[string]*RegionStats

// RegionStats is one region's sub-document.
type RegionStats struct {
	Stats  map[string]*ModeStats `json:"stats"`
	Heroes HeroStats             `json:"heroes"`
}

// HeroStats holds the per-hero maps, keyed by mode name first.
type HeroStats struct {
	Playtime map[string]map[string]float64 `json:"playtime"`
	Stats    map[string]map[string]any     `json:"stats"`
}

// ModeStats is one mode's aggregate block.
type ModeStats struct {
	Competitive  bool         `json:"competitive"`
	OverallStats OverallStats `json:"overall_stats"`
	GameStats    GameStats    `json:"game_stats"`
}

type OverallStats struct {
	Avatar   string   `json:"avatar"`
	Level    int      `json:"level"`
	Prestige int      `json:"prestige"`
	Tier     *string  `json:"tier"`
	CompRank *int     `json:"comprank"`
	Games    *int     `json:"games"`
	Wins     int      `json:"wins"`
	Ties     *int     `json:"ties"`
	WinRate  *float64 `json:"win_rate"`
}

type GameStats struct {
	TimePlayed          float64 `json:"time_played"`
	KPD                 float64 `json:"kpd"`
	EnvironmentalDeaths float64 `json:"environmental_deaths"`
}
