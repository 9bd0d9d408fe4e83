package services

import "html/template"

// Score thresholds. ShortlistThreshold drives the pass/fail message and
// TipsThreshold only appears in the email copy; the two are kept apart on
// purpose.
const (
	StrongThreshold    = 80
	ShortlistThreshold = 60
	TipsThreshold      = 70
)

type Band string

const (
	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandWeak     Band = "weak"
)

// BandStyle holds the color tokens used for a band on the page and in the
// result email.
type BandStyle struct {
	Token      string       // page CSS modifier
	Background template.CSS // email banner background
	Foreground template.CSS // email score color
}

var bandStyles = map[Band]BandStyle{
	BandStrong:   {Token: "green", Background: "#d1fae5", Foreground: "#10b981"},
	BandModerate: {Token: "yellow", Background: "#fef3c7", Foreground: "#f59e0b"},
	BandWeak:     {Token: "red", Background: "#fee2e2", Foreground: "#ef4444"},
}

func (b Band) Style() BandStyle {
	return bandStyles[b]
}

// ParsePercentage reads the integer prefix of s: optional leading
// whitespace, an optional sign, then decimal digits. "85.7" gives 85 and
// "85%" gives 85; input without leading digits is not a number.
func ParsePercentage(s string) (int, bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	start := i
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if n < 1<<30 {
			n = n*10 + int(s[i]-'0')
		}
		i++
	}
	if i == start {
		return 0, false
	}

	if neg {
		n = -n
	}
	return n, true
}

// BandFor classifies a match percentage. Values that do not parse fall into
// the weak band.
func BandFor(match string) Band {
	p, ok := ParsePercentage(match)
	switch {
	case ok && p >= StrongThreshold:
		return BandStrong
	case ok && p >= ShortlistThreshold:
		return BandModerate
	default:
		return BandWeak
	}
}

// Shortlisted reports whether match clears ShortlistThreshold.
func Shortlisted(match string) bool {
	p, ok := ParsePercentage(match)
	return ok && p >= ShortlistThreshold
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
