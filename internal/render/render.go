// Package render converts a tree into guide-decorated terminal lines.
//
// The traversal is depth-first over an explicit stack of sibling queues. A
// parallel slice of guide levels holds one glyph per depth and is rewritten in
// place as siblings are consumed, which keeps vertical connectors contiguous
// across wrapped labels and nested branches.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/buildtree/internal/tree"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// ErrCycle is matched by every CycleError.
var ErrCycle = errors.New("cycle detected in tree")

// CycleError reports a node reached twice during one render pass.
type CycleError struct {
	Text string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s at %q: unable to render", ErrCycle.Error(), e.Text)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// Options controls a render pass.
type Options struct {
	// MaxWidth is the total line width in cells. Zero or less disables wrapping.
	MaxWidth int
	// Unicode allows box-drawing guides when the tree also asks for them.
	Unicode bool
	// LabelStyle is applied to label segments.
	LabelStyle lipgloss.Style
}

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style lipgloss.Style
}

// Line is one rendered terminal row: guide prefix plus label content.
type Line struct {
	Prefix  []Segment
	Content []Segment
	// Node is the tree node this row depicts.
	Node *tree.Node
	// Continuation is true for wrapped rows after a label's first row.
	Continuation bool
}

// Text returns the row without styling.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Prefix {
		b.WriteString(s.Text)
	}
	for _, s := range l.Content {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Styled returns the row with every segment rendered through its style.
func (l Line) Styled() string {
	var b strings.Builder
	for _, s := range l.Prefix {
		b.WriteString(s.Style.Render(s.Text))
	}
	for _, s := range l.Content {
		b.WriteString(s.Style.Render(s.Text))
	}
	return b.String()
}

// Lines is the result of a render pass.
type Lines []Line

// String joins the plain rows, each terminated by a line break.
func (ls Lines) String() string {
	var b strings.Builder
	for _, l := range ls {
		b.WriteString(l.Text())
		b.WriteByte('\n')
	}
	return b.String()
}

// Styled joins the styled rows, each terminated by a line break.
func (ls Lines) Styled() string {
	var b strings.Builder
	for _, l := range ls {
		b.WriteString(l.Styled())
		b.WriteByte('\n')
	}
	return b.String()
}

// cells measures guide glyphs with a fixed condition so ambiguous-width
// box-drawing characters always count as one cell.
var cells = &runewidth.Condition{EastAsianWidth: false}

// Render depicts t as a sequence of lines. It fails with a *CycleError when a
// node is reachable more than once.
func Render(t *tree.Tree, opts Options) (Lines, error) {
	if t == nil || t.Root == nil {
		return nil, nil
	}
	guide := GuideFor(opts.Unicode && t.Unicode)
	glyph := func(p Part) Segment {
		return Segment{Text: guide.Part(p), Style: t.Style}
	}

	var result Lines
	visited := make(map[*tree.Node]struct{})
	stack := [][]*tree.Node{{t.Root}}
	levels := []Segment{glyph(Continue)}

	for len(stack) > 0 {
		top := len(stack) - 1
		siblings := stack[top]
		if len(siblings) == 0 {
			stack = stack[:top]
			levels = levels[:len(levels)-1]
			if len(levels) > 0 {
				levels[len(levels)-1] = glyph(Fork)
			}
			continue
		}

		isLast := len(siblings) == 1
		current := siblings[0]
		stack[top] = siblings[1:]
		if _, seen := visited[current]; seen {
			return nil, &CycleError{Text: current.Text()}
		}
		visited[current] = struct{}{}

		if isLast {
			levels[len(levels)-1] = glyph(End)
		}

		prefix := append([]Segment(nil), levels[1:]...)
		for i, text := range wrapLabel(current.Label(), contentWidth(opts.MaxWidth, prefix)) {
			result = append(result, Line{
				Prefix:       append([]Segment(nil), prefix...),
				Content:      []Segment{{Text: text, Style: opts.LabelStyle}},
				Node:         current,
				Continuation: i > 0,
			})
			if i == 0 && len(prefix) > 0 {
				part := Continue
				if isLast {
					part = Space
				}
				prefix[len(prefix)-1] = glyph(part)
			}
		}

		if current.Expanded && len(current.Children) > 0 {
			part := Continue
			if isLast {
				part = Space
			}
			levels[len(levels)-1] = glyph(part)
			if len(current.Children) == 1 {
				levels = append(levels, glyph(End))
			} else {
				levels = append(levels, glyph(Fork))
			}
			stack = append(stack, append([]*tree.Node(nil), current.Children...))
		}
	}
	return result, nil
}

// String renders t and returns the plain text.
func String(t *tree.Tree, opts Options) (string, error) {
	lines, err := Render(t, opts)
	if err != nil {
		return "", err
	}
	return lines.String(), nil
}

func contentWidth(maxWidth int, prefix []Segment) int {
	if maxWidth <= 0 {
		return 0
	}
	width := maxWidth - segmentsWidth(prefix)
	if width < 1 {
		width = 1
	}
	return width
}

func segmentsWidth(segments []Segment) int {
	total := 0
	for _, s := range segments {
		total += cells.StringWidth(s.Text)
	}
	return total
}

// wrapLabel word-wraps every label line to width and hard-wraps words that are
// still too long. A width of zero leaves lines untouched.
func wrapLabel(label tree.Label, width int) []string {
	if len(label.Lines) == 0 {
		return []string{""}
	}
	if width <= 0 {
		return append([]string(nil), label.Lines...)
	}
	out := make([]string, 0, len(label.Lines))
	for i, line := range label.Lines {
		if i < len(label.Widths) && label.Widths[i] <= width {
			out = append(out, line)
			continue
		}
		wrapped := wrap.String(wordwrap.String(line, width), width)
		start := len(out)
		for _, part := range strings.Split(wrapped, "\n") {
			// The hard wrap breaks before a rune wider than width even on
			// an empty row. Drop that row.
			if part = strings.TrimRight(part, " "); part != "" {
				out = append(out, part)
			}
		}
		if len(out) == start {
			out = append(out, "")
		}
	}
	return out
}
