package util

import "strings"

const (
	// KakaoTalk folds long messages behind "see more" once the visible part
	// exceeds roughly this many characters.
	kakaoSeeMorePadding = 500
	kakaoZeroWidthSpace = "​"
)

// SeeMore pads a message with zero-width spaces so only the header shows
// before the KakaoTalk "see more" fold; the body follows after the fold.
func SeeMore(header, body string) string {
	if strings.TrimSpace(body) == "" {
		return header
	}

	var b strings.Builder
	b.Grow(len(header) + kakaoSeeMorePadding + len(body) + 2)
	if header != "" {
		b.WriteString(header)
	}
	b.WriteString(strings.Repeat(kakaoZeroWidthSpace, kakaoSeeMorePadding))
	if !strings.HasPrefix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(body)
	return b.String()
}
