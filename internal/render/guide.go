package render

// Part names the role a guide glyph plays at one depth of one line.
type Part int

const (
	// Space fills the column under a closed branch.
	Space Part = iota
	// Continue is the vertical bar drawn while more siblings follow below.
	Continue
	// Fork connects an entry that has more siblings after it.
	Fork
	// End connects the final entry at a level.
	End
)

func (p Part) String() string {
	switch p {
	case Space:
		return "space"
	case Continue:
		return "continue"
	case Fork:
		return "fork"
	case End:
		return "end"
	default:
		return "unknown"
	}
}

// Guide is a set of glyphs for the four guide parts. Every glyph occupies the
// same number of terminal cells.
type Guide struct {
	Name  string
	parts [4]string
}

var (
	// LineGuide draws with Unicode box-drawing characters.
	LineGuide = Guide{Name: "line", parts: [4]string{"    ", "│   ", "├── ", "└── "}}
	// ASCIIGuide is the fallback for terminals without Unicode support.
	ASCIIGuide = Guide{Name: "ascii", parts: [4]string{"    ", "|   ", "|-- ", "`-- "}}
)

// GuideFor returns the line guide when unicode output is possible and the
// ASCII guide otherwise.
func GuideFor(unicode bool) Guide {
	if unicode {
		return LineGuide
	}
	return ASCIIGuide
}

// Part returns the glyph for p.
func (g Guide) Part(p Part) string {
	if p < Space || p > End {
		return ""
	}
	return g.parts[p]
}
