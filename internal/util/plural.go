package util

import "fmt"

// Pluralize renders "n unit", appending "s" when n != 1.
func Pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
