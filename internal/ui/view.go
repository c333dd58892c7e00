package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/buildtree/internal/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	menuFooter   = "↑/↓ move  enter select  esc back  ctrl+c exit"
	selectFooter = "↑/↓ move  enter open/pick  tab mark  esc back"
	formFooter   = "enter submit  esc cancel"
	bottomRows   = 2 // status line + filter prompt
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 32)
	lines = append(lines, styledLine{text: m.menuHeader(), style: styles.Header})
	lines = append(lines, m.treeView()...)
	lines = append(lines, styledLine{})

	switch m.mode {
	case ModeNameForm:
		if m.nameForm != nil {
			lines = append(lines,
				styledLine{text: m.nameForm.Title(), style: styles.Title},
				styledLine{text: m.nameForm.InputView(), raw: true},
				styledLine{},
				styledLine{text: m.nameForm.Help(), style: styles.Footer},
			)
		}
	case ModeConfirm:
		if m.confirmForm != nil {
			lines = append(lines,
				styledLine{text: m.confirmForm.Title(), style: styles.Title},
				styledLine{},
				styledLine{text: m.confirmForm.Help(), style: styles.Footer},
			)
		}
	default:
		lines = append(lines, styledLine{text: m.menuTitle(), style: styles.Title})
		lines = append(lines, m.itemLines()...)
	}

	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.footerText(), style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-bottomRows, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	switch {
	case m.errMsg != "":
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.backendLastErr != "":
		statusLine = styledLine{text: fmt.Sprintf("Watch: %s", m.backendLastErr), style: styles.Error}
	}
	promptLine := styledLine{}
	if m.mode == ModeMenu || m.mode == ModeSelect {
		promptLine = styledLine{text: m.filterPrompt(), raw: true}
	}
	lines = append(lines, applyWidth([]styledLine{statusLine, promptLine}, m.width)...)
	return renderLines(lines)
}

func (m *Model) footerText() string {
	switch m.mode {
	case ModeSelect:
		return selectFooter
	case ModeNameForm, ModeConfirm:
		return formFooter
	default:
		return menuFooter
	}
}

func (m *Model) menuTitle() string {
	if m.mode == ModeSelect && m.picker != nil {
		return m.picker.title
	}
	if current := m.currentLevel(); current != nil {
		return current.Title
	}
	return rootMenuTitle
}

// renderTree draws the session tree at the current width.
func (m *Model) renderTree() (render.Lines, error) {
	opts := render.Options{MaxWidth: m.width, Unicode: !m.ascii}
	if styles.Label != nil {
		opts.LabelStyle = *styles.Label
	}
	return m.session.View(opts)
}

// treeView returns the rows of the tree panel, cut to the rows it may use.
func (m *Model) treeView() []styledLine {
	rendered, err := m.renderTree()
	if err != nil {
		return []styledLine{{text: err.Error(), style: styles.Error}}
	}
	lines := make([]styledLine, len(rendered))
	for i, l := range rendered {
		lines[i] = styledLine{text: l.Styled(), raw: true}
	}
	if budget := m.treeBudget(); budget > 0 && len(lines) > budget {
		lines = limitHeight(lines, budget, m.width)
	}
	return lines
}

func (m *Model) treeBudget() int {
	if m.height <= 0 {
		return -1
	}
	budget := m.height / 2
	if budget < 1 {
		budget = 1
	}
	return budget
}

func (m *Model) treeRows() int {
	rendered, err := m.renderTree()
	if err != nil {
		return 1
	}
	if budget := m.treeBudget(); budget > 0 && len(rendered) > budget {
		return budget
	}
	return len(rendered)
}

func (m *Model) itemLines() []styledLine {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	m.syncViewport(current)
	start := 0
	displayItems := current.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = current.ViewportOffset
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			current.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	lines := make([]styledLine, 0, len(displayItems))
	for i, item := range displayItems {
		lines = append(lines, m.buildItemLine(item.ID, item.Label, item.Branch, start+i, current))
	}
	return lines
}

// buildItemLine constructs a single styledLine for a menu item, padded so the
// selected item's background spans the full width.
func (m *Model) buildItemLine(id, label string, branch bool, idx int, current *level) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	mark := ""
	if current.MultiSelect {
		switch {
		case branch:
			mark = "    "
		case current.IsSelected(id):
			mark = "[✓] "
		default:
			mark = "[ ] "
		}
	}
	if branch {
		label += " ›"
		lineStyle = styles.Branch
	}
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + mark + label
	if m.width > 0 {
		if pad := m.width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) menuHeader() string {
	segments := []string{m.rootTitle()}
	for _, l := range m.stack[1:] {
		if title := strings.Join(strings.Fields(l.Title), " "); title != "" {
			segments = append(segments, title)
		}
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport(m.currentLevel())
	return nil
}

// maxVisibleItems is the number of menu rows left once the header, tree
// panel, title, messages and bottom bar are placed.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomRows + 3 // header, blank, title
	used += m.treeRows()
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func paint(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := paint(line.prefixStyle, string(runes[:line.highlightFrom]))
			tail := paint(line.style, string(runes[line.highlightFrom:]))
			text = head + tail
		} else {
			text = paint(line.style, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}
