package state

// MoveCursorUp moves one item up, wrapping to the last item.
func (l *Level) MoveCursorUp() bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	if l.Cursor > 0 {
		l.Cursor--
	} else {
		l.Cursor = n - 1
	}
	return n > 1
}

// MoveCursorDown moves one item down, wrapping to the first item.
func (l *Level) MoveCursorDown() bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	if l.Cursor < n-1 {
		l.Cursor++
	} else {
		l.Cursor = 0
	}
	return n > 1
}

// MoveCursorHome moves the cursor to the first item.
func (l *Level) MoveCursorHome() bool {
	return l.moveCursorTo(0)
}

// MoveCursorEnd moves the cursor to the last item.
func (l *Level) MoveCursorEnd() bool {
	return l.moveCursorTo(len(l.Items) - 1)
}

// MoveCursorPageUp moves the cursor up by one page of maxVisible rows.
func (l *Level) MoveCursorPageUp(maxVisible int) bool {
	return l.moveCursorTo(l.Cursor - l.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by one page of maxVisible rows.
func (l *Level) MoveCursorPageDown(maxVisible int) bool {
	return l.moveCursorTo(l.Cursor + l.pageSize(maxVisible))
}

func (l *Level) moveCursorTo(target int) bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	if target < 0 {
		target = 0
	}
	if target > n-1 {
		target = n - 1
	}
	old := l.Cursor
	l.Cursor = target
	return old != target
}

func (l *Level) pageSize(maxVisible int) int {
	size := maxVisible
	if size <= 0 || size > len(l.Items) {
		size = len(l.Items)
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible clamps the cursor and scrolls the viewport so the cursor
// row is among the maxVisible rows shown.
func (l *Level) EnsureCursorVisible(maxVisible int) {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= n {
		l.Cursor = n - 1
	}
	if maxVisible <= 0 {
		l.ViewportOffset = 0
		return
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	switch {
	case l.Cursor < l.ViewportOffset:
		l.ViewportOffset = l.Cursor
	case l.Cursor >= l.ViewportOffset+maxVisible:
		l.ViewportOffset = l.Cursor - maxVisible + 1
	}
	if l.ViewportOffset > maxOffset {
		l.ViewportOffset = maxOffset
	}
	if l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
}
