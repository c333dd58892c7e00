package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/buildtree/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and its rune cursor. A new query moves
// the cursor to the best match; clearing it restores the cursor held before
// filtering started.
func (l *Level) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	wasFiltering := strings.TrimSpace(l.Filter) != ""
	l.Filter = query
	l.FilterCursor = clamp(cursor, 0, len([]rune(query)))

	switch {
	case trimmed != "":
		if !wasFiltering {
			l.LastCursor = l.Cursor
		}
		l.applyFilter()
		l.Cursor = BestMatchIndex(l.Items, trimmed)
		if l.Cursor < 0 {
			l.Cursor = 0
		}
	case wasFiltering:
		l.applyFilter()
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	default:
		l.applyFilter()
	}
}

func (l *Level) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (l *Level) FilterCursorPos() int {
	return clamp(l.FilterCursor, 0, len([]rune(l.Filter)))
}

// InsertFilterText inserts text into the filter at the cursor position.
func (l *Level) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	l.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes the rune before the filter cursor.
func (l *Level) DeleteFilterRuneBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	l.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the filter cursor.
func (l *Level) DeleteFilterWordBackward() bool {
	runes := []rune(l.Filter)
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	start := wordStart(runes, pos)
	updated := append(runes[:start:start], runes[pos:]...)
	l.SetFilter(string(updated), start)
	return true
}

// MoveFilterCursor moves the filter cursor by delta runes.
func (l *Level) MoveFilterCursor(delta int) bool {
	pos := l.FilterCursorPos()
	next := clamp(pos+delta, 0, len([]rune(l.Filter)))
	if next == pos {
		return false
	}
	l.FilterCursor = next
	return true
}

// MoveFilterCursorStart moves the filter cursor to the start.
func (l *Level) MoveFilterCursorStart() bool {
	return l.MoveFilterCursor(-l.FilterCursorPos())
}

// MoveFilterCursorEnd moves the filter cursor to the end.
func (l *Level) MoveFilterCursorEnd() bool {
	return l.MoveFilterCursor(len([]rune(l.Filter)) - l.FilterCursorPos())
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FilterItems returns the items whose label fuzzy-matches query, in their
// original order. A blank query keeps every item.
func FilterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	matches := make(map[int]struct{})
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, labels) {
		matches[rank.OriginalIndex] = struct{}{}
	}
	filtered := make([]menu.Item, 0, len(matches))
	for idx, item := range items {
		if _, ok := matches[idx]; ok {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex returns the index of the item that best matches query: an
// exact label first, then a label prefix, then the closest fuzzy match.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) {
			return i
		}
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	best := -1
	bestDistance := 0
	for _, rank := range fuzzy.RankFindNormalizedFold(trimmed, labels) {
		if best < 0 || rank.Distance < bestDistance || (rank.Distance == bestDistance && rank.OriginalIndex < best) {
			best = rank.OriginalIndex
			bestDistance = rank.Distance
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
