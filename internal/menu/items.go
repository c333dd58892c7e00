package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/buildtree/internal/format/table"
	"github.com/atomicstack/buildtree/internal/selection"
	"github.com/atomicstack/buildtree/internal/session"
)

const entryPrefix = "entry:"

var descriptions = map[session.Action]string{
	session.ActionAdd:    "append a child node",
	session.ActionRename: "change the text of nodes",
	session.ActionRemove: "detach nodes with their children",
	session.ActionSave:   "write the tree to disk",
	session.ActionExit:   "leave the editor",
}

// ActionItems lists actions with their descriptions aligned in a column.
func ActionItems(actions []session.Action) []Item {
	rows := make([][]string, len(actions))
	for i, action := range actions {
		rows[i] = []string{action.Label(), descriptions[action]}
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft})
	items := make([]Item, len(actions))
	for i, action := range actions {
		items[i] = Item{ID: string(action), Label: strings.TrimRight(lines[i], " ")}
	}
	return items
}

// EntryItems lists the entries nested directly under parent. Pass
// selection.TopLevel for the outermost level.
func EntryItems(entries []selection.Entry, parent int) []Item {
	idxs := selection.Children(entries, parent)
	items := make([]Item, 0, len(idxs))
	for _, idx := range idxs {
		e := entries[idx]
		label := strings.Join(e.Node.Label().Lines, " ")
		if strings.TrimSpace(label) == "" {
			label = "(empty)"
		}
		items = append(items, Item{ID: EntryID(idx), Label: label, Branch: e.IsBranch()})
	}
	return items
}

// EntryID is the item ID of the entry at idx.
func EntryID(idx int) string { return entryPrefix + strconv.Itoa(idx) }

// EntryIndex parses an item ID produced by EntryID.
func EntryIndex(id string) (int, bool) {
	if !strings.HasPrefix(id, entryPrefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(id, entryPrefix))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

// SelectTitle is the heading of the target picker for action.
func SelectTitle(action session.Action) string {
	switch action {
	case session.ActionAdd:
		return "Which node do you want to add a child to?"
	case session.ActionRename:
		return "Which node do you want to rename?"
	case session.ActionRemove:
		return "Which node do you want to remove?"
	default:
		return "Select nodes"
	}
}

// NameTitle is the heading of the name form for count targets.
func NameTitle(action session.Action, count int) string {
	if action == session.ActionRename {
		return fmt.Sprintf("What is the new name for this node%s? (empty to abort)", plural(count))
	}
	return fmt.Sprintf("What is the name of the new node%s? (empty to abort)", plural(count))
}

// RemoveTitle asks to confirm removing count nodes.
func RemoveTitle(count int) string {
	return fmt.Sprintf("Do you want to remove this node%s?", plural(count))
}

// ExitTitle asks whether to save before leaving.
func ExitTitle() string { return "Do you want to save before exit?" }

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
