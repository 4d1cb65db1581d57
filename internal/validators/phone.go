package validators

import "strings"

// NormalizePhone strips separators and validates length. The phone number is
// the natural customer key, so everything that stores or looks one up goes
// through here first.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder

	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", false
		}
	}

	phone := b.String()
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 8 || len(digits) > 15 {
		return "", false
	}

	return phone, true
}
