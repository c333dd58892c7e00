package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/buildtree/internal/backend"
	"github.com/atomicstack/buildtree/internal/menu"
	"github.com/atomicstack/buildtree/internal/selection"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/theme"
	"github.com/atomicstack/buildtree/internal/ui/command"
	uistate "github.com/atomicstack/buildtree/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

type Mode int

const (
	ModeMenu Mode = iota
	ModeSelect
	ModeNameForm
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModeSelect:
		return "select"
	case ModeNameForm:
		return "name"
	case ModeConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

const (
	menuHeaderSeparator = " → "
	defaultRootTitle    = "buildtree"
	rootMenuTitle       = "What do you want to do?"
	infoTTL             = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

func newLevel(id, title string, items []menu.Item, node *menu.Node) *level {
	return uistate.NewLevel(id, title, items, node)
}

// Options configures a Model.
type Options struct {
	// Width and Height pin the layout; zero follows the terminal size.
	Width  int
	Height int
	// ASCII forces ASCII guides in the tree view.
	ASCII      bool
	ShowFooter bool
	// Watcher, when set, reports outside changes to the backing file.
	Watcher *backend.Watcher
}

// picker tracks an open target selection for one edit action.
type picker struct {
	action   session.Action
	title    string
	entries  []selection.Entry
	selected map[string]struct{}
	// base is the stack depth below the picker's first level.
	base int
}

// Model implements the Bubble Tea model for the tree editor.
type Model struct {
	session *session.Session

	stack       []*level
	picker      *picker
	nameForm    *menu.NameForm
	confirmForm *menu.ConfirmForm

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	ascii       bool
	showFooter  bool

	backend        *backend.Watcher
	backendLastErr string

	handlers map[reflect.Type]msgHandler

	registry *menu.Registry
	bus      *command.Bus
	mode     Mode
}

// NewModel initialises the UI around an editing session.
func NewModel(s *session.Session, opts Options) *Model {
	registry := menu.BuildRegistry()
	root := newLevel("root", rootMenuTitle, menu.ActionItems(s.Choices()), registry.Root())
	m := &Model{
		session:    s,
		stack:      []*level{root},
		registry:   registry,
		bus:        command.New(),
		backend:    opts.Watcher,
		showFooter: opts.ShowFooter,
		ascii:      opts.ASCII,
		mode:       ModeMenu,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.applyTreeStyle()
	m.syncViewport(root)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, finishUpdate(cmds)
}

// Mode reports which screen is active.
func (m *Model) Mode() Mode { return m.mode }

// Session returns the session being edited.
func (m *Model) Session() *session.Session { return m.session }

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return false, nil
	}
	switch m.mode {
	case ModeNameForm:
		return m.handleNameForm(msg)
	case ModeConfirm:
		return m.handleConfirmForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(menu.ActionResult{}):  m.handleActionResultMsg,
		reflect.TypeOf(menu.SelectPrompt{}):  m.handleSelectPromptMsg,
		reflect.TypeOf(menu.NamePrompt{}):    m.handleNamePromptMsg,
		reflect.TypeOf(menu.ConfirmPrompt{}): m.handleConfirmPromptMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func finishUpdate(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// deliver turns an already computed message into a command.
func deliver(msg tea.Msg) tea.Cmd {
	if msg == nil {
		return nil
	}
	return func() tea.Msg { return msg }
}

func (m *Model) menuContext() menu.Context {
	return menu.Context{Session: m.session}
}

// applyTreeStyle pushes the theme's guide style onto the current tree.
func (m *Model) applyTreeStyle() {
	if t := m.session.Tree(); t != nil && styles.Guide != nil {
		t.Style = *styles.Guide
	}
}

// refreshRoot rebuilds the action list, which depends on the session state.
func (m *Model) refreshRoot() {
	if len(m.stack) == 0 {
		return
	}
	root := m.stack[0]
	selected, _ := root.Current()
	root.UpdateItems(menu.ActionItems(m.session.Choices()))
	if idx := root.IndexOf(selected.ID); idx >= 0 {
		root.Cursor = idx
	}
	m.syncViewport(root)
}

func (m *Model) rootTitle() string {
	title := defaultRootTitle
	if path := strings.TrimSpace(m.session.Path()); path != "" {
		title = path
	}
	if m.session.Dirty() {
		title += " *"
	}
	return title
}
