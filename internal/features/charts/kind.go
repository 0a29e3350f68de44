package charts

import "strings"

// Kind selects the draw primitive for a series.
type Kind int

const (
	KindLine Kind = iota
	KindBar
	KindScatter
	// KindFallback is what every unrecognised name maps to: a plain line
	// without markers at the default stroke width.
	KindFallback
)

// ParseKind maps a name to a Kind. Matching is case-insensitive and any
// unknown name yields KindFallback.
func ParseKind(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "line":
		return KindLine
	case "bar":
		return KindBar
	case "scatter":
		return KindScatter
	default:
		return KindFallback
	}
}

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBar:
		return "bar"
	case KindScatter:
		return "scatter"
	default:
		return "fallback"
	}
}
