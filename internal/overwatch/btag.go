package overwatch

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidBTag reports malformed BattleTag syntax.
var ErrInvalidBTag = errors.New("invalid battletag")

var mentionRE = regexp.MustCompile(`^<@!?([0-9]+)>$`)

// splitDisplayTag breaks "Name#1234" into its name and discriminator and
// validates the shape: 3-12 character name with no punctuation or spaces,
// not starting with a digit, numeric discriminator.
func splitDisplayTag(display string) (name, disc string, ok bool) {
	parts := strings.Split(display, "#")
	if len(parts) != 2 {
		return "", "", false
	}
	name, disc = parts[0], parts[1]
	n := []rune(name)
	if len(n) < 3 || len(n) > 12 || unicode.IsDigit(n[0]) {
		return "", "", false
	}
	for _, r := range n {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r) {
			return "", "", false
		}
	}
	if disc == "" {
		return "", "", false
	}
	for _, r := range disc {
		if !unicode.IsDigit(r) {
			return "", "", false
		}
	}
	return name, disc, true
}

// ValidDisplayTag reports whether s looks like a display-form BattleTag.
func ValidDisplayTag(s string) bool {
	_, _, ok := splitDisplayTag(s)
	return ok
}

// ToCanonical converts the display form ("Name#1234") to the canonical API
// form ("Name-1234").
func ToCanonical(display string) (string, error) {
	name, disc, ok := splitDisplayTag(display)
	if !ok {
		return "", ErrInvalidBTag
	}
	return name + "-" + disc, nil
}

// ToDisplay converts the canonical form back to the display form by
// replacing the last separator, so names containing dashes survive.
func ToDisplay(canonical string) string {
	i := strings.LastIndex(canonical, "-")
	if i < 0 {
		return canonical
	}
	return canonical[:i] + "#" + canonical[i+1:]
}

// MentionID extracts the account id from a mention token.
func MentionID(token string) (int64, bool) {
	m := mentionRE.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
