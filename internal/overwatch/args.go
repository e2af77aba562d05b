package overwatch

import (
	"strings"

	"github.com/park285/Lag-KakaoTalk-bot/internal/domain"
)

// Args is the resolved 4-tuple of loosely-ordered command arguments.
// Nil fields mean "not supplied".
type Args struct {
	Tag      string
	Mode     *domain.Mode
	Region   *domain.Region
	Platform *domain.Platform
}

// Disambiguate classifies each token independently of position: separator
// characters mark a tag (BattleTags carry '#', mentions carry '@'), then
// region membership, then platform membership, then mode-name lookup.
// Unrecognized tokens are dropped. Any permutation of the same tokens
// yields the same Args.
func Disambiguate(tokens ...string) Args {
	var a Args
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		lower := strings.ToLower(tok)
		switch {
		case strings.ContainsAny(tok, "#@"):
			a.Tag = tok
		default:
			if region, ok := domain.ParseRegion(lower); ok {
				a.Region = &region
				continue
			}
			if platform, ok := domain.ParsePlatform(lower); ok {
				a.Platform = &platform
				continue
			}
			if mode, ok := domain.ParseMode(lower); ok {
				a.Mode = &mode
			}
		}
	}
	return a
}
