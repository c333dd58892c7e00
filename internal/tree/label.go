package tree

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

const tabWidth = 4

// Label is the display form of a node's raw text. It is derived data and is
// never persisted.
type Label struct {
	Lines  []string
	Widths []int
}

// NewLabel sanitises raw text for terminal display: escape sequences and
// control runes are dropped, tabs are expanded and the text is split on
// explicit line breaks.
func NewLabel(raw string) Label {
	stripped := ansi.Strip(raw)
	stripped = strings.ReplaceAll(stripped, "\r\n", "\n")
	parts := strings.Split(stripped, "\n")
	l := Label{
		Lines:  make([]string, len(parts)),
		Widths: make([]int, len(parts)),
	}
	for i, part := range parts {
		clean := sanitizeLine(part)
		l.Lines[i] = clean
		l.Widths[i] = ansi.StringWidth(clean)
	}
	return l
}

// String joins the label lines with newlines.
func (l Label) String() string {
	return strings.Join(l.Lines, "\n")
}

// Width reports the widest line in cells.
func (l Label) Width() int {
	w := 0
	for _, lw := range l.Widths {
		if lw > w {
			w = lw
		}
	}
	return w
}

func sanitizeLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteString(strings.Repeat(" ", tabWidth))
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
