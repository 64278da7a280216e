// Package tui is the interactive history browser.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/timeutil"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeConfirmDelete
	modeHelp
)

const helpText = "tab/shift+tab category, j/k move, / search, esc clear search, d delete, r reload, q quit"

// entryItem is one row of the history list.
type entryItem struct{ e entry.Entry }

func (it entryItem) Title() string {
	var b strings.Builder
	b.WriteString(timeutil.LocalDisplay(it.e.Timestamp.Time))
	b.WriteString("  ")
	b.WriteString(categoryStyle(it.e.Category()).Render(it.e.Category().Label()))
	b.WriteString("  ")
	b.WriteString(it.e.Label)
	if s, ok := it.e.Severity(); ok {
		b.WriteString("  ")
		b.WriteString(severityStyle(s).Render(fmt.Sprintf("%d/10", s)))
	}
	return b.String()
}

func (it entryItem) Description() string {
	if it.e.Notes == "" {
		return timeutil.RelativeAge(it.e.Timestamp.Time)
	}
	return timeutil.RelativeAge(it.e.Timestamp.Time) + " · " + it.e.Notes
}

func (it entryItem) FilterValue() string { return it.e.Label }

type entriesLoadedMsg struct{ items []list.Item }

// Model contains UI state
type Model struct {
	svc   *app.Service
	ctx   context.Context
	theme Theme
	mode  mode

	// filter indexes filters(); 0 is every category.
	filter int
	search string

	list  list.Model
	input textinput.Model

	status        string
	pendingDelete *entry.Entry

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service.
func New(ctx context.Context, svc *app.Service) Model {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 80, 20)
	l.Title = "History"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "search label or notes"
	ti.CharLimit = 128
	ti.Prompt = "/"

	return Model{
		svc:    svc,
		ctx:    ctx,
		theme:  DefaultTheme(),
		mode:   modeNormal,
		list:   l,
		input:  ti,
		status: "? for help",
	}
}

func filters() []entry.Category {
	return append([]entry.Category{""}, entry.AllCategories()...)
}

func (m *Model) category() entry.Category {
	return filters()[m.filter]
}

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	svc := m.svc
	q := app.Query{Category: m.category(), Search: m.search}
	return func() tea.Msg {
		if svc == nil {
			return entriesLoadedMsg{nil}
		}
		ents := svc.History(q)
		items := make([]list.Item, 0, len(ents))
		for _, e := range ents {
			items = append(items, entryItem{e: e})
		}
		return entriesLoadedMsg{items}
	}
}

func (m *Model) currentEntry() *entry.Entry {
	sel, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return nil
	}
	e := sel.e
	return &e
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case entriesLoadedMsg:
		m.list.SetItems(msg.items)
		m.list.Title = m.title(len(msg.items))
	case tea.KeyPressMsg:
		skipListRouting = true
		switch m.mode {
		case modeHelp:
			m.mode = modeNormal
		case modeConfirmDelete:
			if msg.String() == "y" && m.pendingDelete != nil {
				if m.svc.DeleteEntry(m.ctx, m.pendingDelete.ID) {
					m.status = "Deleted " + m.pendingDelete.Label
				} else {
					m.status = "Already gone"
				}
				cmds = append(cmds, m.load())
			} else {
				m.status = "Delete cancelled"
			}
			m.pendingDelete = nil
			m.mode = modeNormal
		case modeSearch:
			switch msg.String() {
			case "enter":
				m.search = strings.TrimSpace(m.input.Value())
				m.mode = modeNormal
				m.input.Blur()
				cmds = append(cmds, m.load())
			case "esc":
				m.mode = modeNormal
				m.input.Blur()
				m.status = "Search cancelled"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeNormal:
			switch msg.String() {
			case "q", "ctrl+c":
				cmds = append(cmds, tea.Quit)
			case "tab":
				m.filter = (m.filter + 1) % len(filters())
				cmds = append(cmds, m.load())
			case "shift+tab":
				m.filter = (m.filter + len(filters()) - 1) % len(filters())
				cmds = append(cmds, m.load())
			case "/":
				m.mode = modeSearch
				m.input.SetValue(m.search)
				m.input.CursorEnd()
				if cmd := m.input.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
			case "esc":
				if m.search != "" {
					m.search = ""
					m.status = "Search cleared"
					cmds = append(cmds, m.load())
				}
			case "d":
				if e := m.currentEntry(); e != nil {
					m.pendingDelete = e
					m.mode = modeConfirmDelete
				}
			case "r":
				m.svc.Reload(m.ctx)
				m.status = "Reloaded"
				cmds = append(cmds, m.load())
			case "?":
				m.mode = modeHelp
			default:
				skipListRouting = false
			}
		}
	}

	if m.mode == modeNormal && !skipListRouting {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) title(n int) string {
	t := "History"
	if m.search != "" {
		t += fmt.Sprintf(" matching %q", m.search)
	}
	return fmt.Sprintf("%s (%d)", t, n)
}

// View renders the category tabs, the list and the footer.
func (m Model) View() string {
	tabs := make([]string, 0, len(filters()))
	for i, c := range filters() {
		label := "All"
		if c != "" {
			label = c.Label()
		}
		if i == m.filter {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(label))
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n" + m.list.View()

	switch m.mode {
	case modeSearch:
		body += "\n\n" + m.input.View()
	case modeConfirmDelete:
		if m.pendingDelete != nil {
			body += "\n\n" + m.theme.Confirm.Render(fmt.Sprintf("Delete %s %q? y/n", m.pendingDelete.Category().Label(), m.pendingDelete.Label))
		}
	case modeHelp:
		body += "\n\n" + m.theme.Help.Render(helpText)
	}

	return body + "\n\n" + m.theme.Status.Render(m.status)
}

// applySizes recalculates the list size based on the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	// Leave room for tabs and the footer.
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.list.SetSize(m.termWidth, height)
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, svc *app.Service) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
