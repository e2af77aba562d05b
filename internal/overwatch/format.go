package overwatch

import (
	"fmt"
	"strings"

	"github.com/park285/Lag-KakaoTalk-bot/internal/util"
)

// FormatSummary renders the stats summary as a chat message.
func FormatSummary(s *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — %s/%s %s Stats\n",
		s.BTag,
		strings.ToUpper(string(s.Platform)),
		strings.ToUpper(string(s.Region)),
		s.Mode.Title(),
	)
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "\n%s: %s", f.Name, f.Value)
	}
	fmt.Fprintf(&b, "\n\nCareer: %s", s.CareerURL)
	fmt.Fprintf(&b, "\nRaw: %s", s.RawURL)
	return b.String()
}

// FormatHeroes renders the hero playtime listing. The aligned body hides
// behind the KakaoTalk fold so long rosters don't flood the room.
func FormatHeroes(r *HeroReport) string {
	header := fmt.Sprintf("%s — %s/%s %s hero stats",
		r.BTag,
		strings.ToUpper(string(r.Platform)),
		strings.ToUpper(string(r.Region)),
		r.Mode.Title(),
	)

	width := 0
	for _, e := range r.Entries {
		if n := len([]rune(e.Name)); n > width {
			width = n
		}
	}

	var body strings.Builder
	for _, e := range r.Entries {
		if e.Hours <= 0 {
			continue
		}
		pad := width - len([]rune(e.Name))
		fmt.Fprintf(&body, "%s%s : %s\n", e.Name, strings.Repeat(" ", pad), TimeString(e.Hours))
	}
	fmt.Fprintf(&body, "\nCareer: %s", r.CareerURL)

	return util.SeeMore(header, body.String())
}
