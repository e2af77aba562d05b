package overwatch

import (
	"fmt"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

// heroNames maps API hero keys to their display names.
var heroNames = map[string]string{
	"ana":        "Ana",
	"bastion":    "Bastion",
	"dva":        "D.Va",
	"genji":      "Genji",
	"hanzo":      "Hanzo",
	"junkrat":    "Junkrat",
	"lucio":      "Lúcio",
	"mccree":     "McCree",
	"mei":        "Mei",
	"mercy":      "Mercy",
	"pharah":     "Pharah",
	"reaper":     "Reaper",
	"reinhardt":  "Reinhardt",
	"roadhog":    "Roadhog",
	"soldier76":  "Soldier: 76",
	"sombra":     "Sombra",
	"symmetra":   "Symmetra",
	"torbjorn":   "Torbjörn",
	"tracer":     "Tracer",
	"widowmaker": "Widowmaker",
	"winston":    "Winston",
	"zarya":      "Zarya",
	"zenyatta":   "Zenyatta",
}

// HeroName returns the display name for an API hero key, falling back to
// the key itself for heroes added upstream after this table.
func HeroName(key string) string {
	if name, ok := heroNames[key]; ok {
		return name
	}
	return key
}

// The per-hero playtime map sometimes carries this malformed key upstream;
// it is never a hero.
const malformedHeroKey = "overwatchguidundefined"

// CareerURL is the official career page for a canonical tag.
func CareerURL(tag string, region domain.Region, platform domain.Platform) string {
	return fmt.Sprintf("https://playoverwatch.com/en-us/career/%s/%s/%s", platform, region, tag)
}
