package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yumyai/panres/pkg/explorer"
)

type pane int

const (
	treePane pane = iota
	detailPane
)

type rootsLoadedMsg struct{ err error }

type expandedMsg struct {
	id  string
	err error
}

type detailLoadedMsg struct {
	id  string
	err error
}

type linkFollowedMsg struct {
	link explorer.CrossLink
	err  error
}

// Model is the bubbletea program over one Browser session.
type Model struct {
	ctx     context.Context
	browser *explorer.Browser
	styles  *Styles
	keys    *KeyMap
	help    help.Model

	focus  pane
	cursor int
	link   int
	banner string
	status string

	width  int
	height int
}

func NewModel(ctx context.Context, b *explorer.Browser) *Model {
	return &Model{
		ctx:     ctx,
		browser: b,
		styles:  NewStyles(nil),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.loadRoots()
}

func (m *Model) loadRoots() tea.Cmd {
	return func() tea.Msg {
		_, err := m.browser.Start(m.ctx)
		return rootsLoadedMsg{err: err}
	}
}

func (m *Model) expand(n *explorer.TreeNode, toggle bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if toggle {
			err = m.browser.Explorer.Toggle(m.ctx, n)
		} else {
			_, err = m.browser.Explorer.Expand(m.ctx, n)
		}
		return expandedMsg{id: n.ID(), err: err}
	}
}

func (m *Model) show(n *explorer.TreeNode) tea.Cmd {
	return func() tea.Msg {
		_, err := m.browser.Select(m.ctx, n)
		return detailLoadedMsg{id: n.ID(), err: err}
	}
}

func (m *Model) follow(l explorer.CrossLink) tea.Cmd {
	return func() tea.Msg {
		link, err := m.browser.Follow(m.ctx, l.ID)
		return linkFollowedMsg{link: link, err: err}
	}
}

// Banner is the dismissible top-level error, if any.
func (m *Model) Banner() string { return m.banner }

// Status is the last informational message, such as an outbound link.
func (m *Model) Status() string { return m.status }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case rootsLoadedMsg:
		if msg.err != nil {
			m.banner = fmt.Sprintf("Could not load the class hierarchy: %v", msg.err)
		} else {
			m.banner = ""
		}
		return m, nil

	case expandedMsg:
		// The failure is drawn in place of the node's children.
		m.clampCursor()
		return m, nil

	case detailLoadedMsg:
		if !errors.Is(msg.err, explorer.ErrSuperseded) {
			m.link = 0
		}
		return m, nil

	case linkFollowedMsg:
		if !msg.link.Internal {
			m.status = "External link: " + msg.link.Href
			return m, nil
		}
		m.status = ""
		m.link = 0
		m.cursorToSelection()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.banner = ""
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if len(m.browser.Explorer.Roots()) == 0 {
			return m, m.loadRoots()
		}
		return m, nil
	case key.Matches(msg, m.keys.Pane):
		if m.focus == treePane {
			m.focus = detailPane
		} else {
			m.focus = treePane
		}
		return m, nil
	}

	if m.focus == detailPane {
		return m.handleDetailKey(msg)
	}
	return m.handleTreeKey(msg)
}

func (m *Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.browser.Explorer.Visible()
	if len(rows) == 0 {
		return m, nil
	}
	m.clampCursor()
	row := rows[m.cursor]
	ex := m.browser.Explorer

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case row.Placeholder():
	case key.Matches(msg, m.keys.Expand):
		if row.Expandable && !row.Expanded {
			return m, m.expand(row.Node, false)
		}
	case key.Matches(msg, m.keys.Collapse):
		if row.Expanded {
			ex.Collapse(row.Node)
		} else if p := row.Node.Parent(); p != nil {
			m.cursorTo(p)
		}
	case key.Matches(msg, m.keys.Toggle):
		if row.Expandable {
			return m, m.expand(row.Node, true)
		}
	case key.Matches(msg, m.keys.Open):
		return m, m.show(row.Node)
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.browser.Panel.Current()
	if snap.State != explorer.PanelReady {
		return m, nil
	}
	links := DetailLinks(snap.View)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.link > 0 {
			m.link--
		}
	case key.Matches(msg, m.keys.Down):
		if m.link < len(links)-1 {
			m.link++
		}
	case key.Matches(msg, m.keys.Open):
		if m.link < len(links) {
			return m, m.follow(links[m.link])
		}
	}
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.browser.Explorer.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) cursorTo(n *explorer.TreeNode) {
	for i, row := range m.browser.Explorer.Visible() {
		if row.Node == n && !row.Placeholder() {
			m.cursor = i
			return
		}
	}
}

func (m *Model) cursorToSelection() {
	if sel := m.browser.Explorer.Selected(); sel != nil {
		m.cursorTo(sel)
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("PanRes ontology browser"))
	b.WriteByte('\n')
	if m.banner != "" {
		b.WriteString(m.styles.Banner.Render(m.banner + "  (esc to dismiss, r to retry)"))
		b.WriteByte('\n')
	}

	treeWidth, detailWidth := 0, 0
	if m.width > 0 {
		treeWidth = m.width*2/5 - 4
		detailWidth = m.width - treeWidth - 8
	}
	treeStyle, detailStyle := m.styles.Focused, m.styles.Pane
	if m.focus == detailPane {
		treeStyle, detailStyle = m.styles.Pane, m.styles.Focused
	}
	if treeWidth > 0 {
		treeStyle = treeStyle.Width(treeWidth)
		detailStyle = detailStyle.Width(detailWidth)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		treeStyle.Render(m.treeView()),
		detailStyle.Render(m.detailView()),
	))
	b.WriteByte('\n')
	if m.status != "" {
		b.WriteString(m.styles.Muted.Render(m.status))
		b.WriteByte('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// bodyHeight is the number of lines a pane can show, or 0 for no limit.
func (m *Model) bodyHeight() int {
	if m.height == 0 {
		return 0
	}
	h := m.height - 6
	if m.banner != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) treeView() string {
	rows := m.browser.Explorer.Visible()
	if len(rows) == 0 {
		return m.styles.Muted.Render("loading...")
	}

	start, end := 0, len(rows)
	if h := m.bodyHeight(); h > 0 && len(rows) > h {
		start = m.cursor - h/2
		if start < 0 {
			start = 0
		}
		end = start + h
		if end > len(rows) {
			end = len(rows)
			start = end - h
		}
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := rows[i]
		line := TreeLine(row)
		switch {
		case row.Err != nil:
			line = m.styles.Error.Render(line)
		case row.Placeholder():
			line = m.styles.Muted.Render(line)
		case row.Selected:
			line = m.styles.Selected.Render(line)
		}
		if i == m.cursor && m.focus == treePane {
			line = m.styles.Cursor.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) detailView() string {
	snap := m.browser.Panel.Current()
	switch snap.State {
	case explorer.PanelEmpty:
		return m.styles.Muted.Render("Select a node to see its details.")
	case explorer.PanelLoading:
		return m.styles.Muted.Render("Loading " + snap.ID + "...")
	case explorer.PanelError:
		return m.styles.Error.Render(snap.ErrorMessage())
	}

	lines := detailLines(snap.View, func(n int, l explorer.CrossLink) string {
		s := m.styles.Link.Render(l.Label)
		if !l.Internal {
			s = m.styles.External.Render(l.Label + " ↗")
		}
		if m.focus == detailPane && n == m.link {
			s = m.styles.Active.Render(s)
		}
		return s
	}, func(s string) string { return m.styles.Heading.Render(s) })

	if h := m.bodyHeight(); h > 0 && len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}

// Run starts the interactive browser and blocks until the user quits.
func Run(ctx context.Context, b *explorer.Browser) error {
	p := tea.NewProgram(NewModel(ctx, b), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
