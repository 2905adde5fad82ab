// Package tui implements the full-screen issue review surface: a
// scrollable list of lint findings with per-issue suppression.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nomenlabs/nomen/internal/checks"
	"github.com/nomenlabs/nomen/internal/model"
	"github.com/nomenlabs/nomen/internal/store"
)

// issueItem is one lint finding bound to the record that produced it.
type issueItem struct {
	rec     model.Record
	issue   string
	label   string
	ignored bool
}

func (i issueItem) Title() string { return i.rec.String() }

func (i issueItem) Description() string {
	if i.ignored {
		return i.issue + " (suppressed)"
	}
	return i.issue
}

func (i issueItem) FilterValue() string { return i.rec.String() + " " + i.issue }

type reviewKeys struct {
	ignore key.Binding
	quit   key.Binding
}

type reviewModel struct {
	list   list.Model
	st     *store.Store
	keys   reviewKeys
	status string
	err    error
}

// Review opens an interactive list of the issues found in a lint pass.
// Pressing "i" on an issue writes a suppression for its check onto the
// record and saves it.
func Review(st *store.Store, results []checks.RecordResult) error {
	var items []list.Item
	for _, res := range results {
		for _, issue := range res.Issues {
			items = append(items, issueItem{
				rec:   res.Record,
				issue: issue,
				label: issueLabel(issue),
			})
		}
	}
	if len(items) == 0 {
		return nil
	}

	keys := reviewKeys{
		ignore: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "ignore"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = fmt.Sprintf("%d lint issues", len(items))
	l.Styles.Title = lipgloss.NewStyle().Bold(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.ignore, keys.quit}
	}

	m := reviewModel{list: l, st: st, keys: keys}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(reviewModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m reviewModel) Init() tea.Cmd { return nil }

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		// While the list's filter input is active, every key belongs
		// to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.ignore):
			return m.ignoreSelected()
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m reviewModel) View() string {
	view := m.list.View()
	if m.status != "" {
		view += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}
	return view
}

// ignoreSelected suppresses the selected issue's check on its record
// and persists the record.
func (m reviewModel) ignoreSelected() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(issueItem)
	if !ok {
		return m, nil
	}
	if item.ignored {
		m.status = "already suppressed"
		return m, nil
	}
	if item.label == "" {
		m.status = "issue carries no check label"
		return m, nil
	}
	added, err := model.AddIgnoredLint(item.rec, item.label, "")
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	if !added {
		m.status = fmt.Sprintf("%s records cannot carry suppressions", item.rec.RecordKind())
		return m, nil
	}
	if err := m.st.Save(item.rec); err != nil {
		m.err = err
		return m, tea.Quit
	}
	item.ignored = true
	m.status = fmt.Sprintf("suppressed %s on %s", item.label, item.rec)
	return m, m.list.SetItem(m.list.Index(), item)
}

// issueLabel extracts the trailing "[label]" a formatted issue carries.
func issueLabel(issue string) string {
	if !strings.HasSuffix(issue, "]") {
		return ""
	}
	open := strings.LastIndex(issue, "[")
	if open < 0 {
		return ""
	}
	return issue[open+1 : len(issue)-1]
}
