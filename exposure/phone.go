package exposure

import "strings"

// NormalizePhone reduces a number to its digits so that entries like
// "+1 555-010-2000", "1 (555) 010-2000" and "15550102000" share one
// join key. An empty result never matches.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
