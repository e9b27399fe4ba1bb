package savedtips

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

type DeleteTipMsg struct {
	ID int64
}

type ClearTipsMsg struct{}

type Item struct {
	Tip models.SavedTip
}

func (i Item) Title() string {
	return fmt.Sprintf("%s · %s", i.Tip.Mood, i.Tip.SavedAt.Local().Format(constants.DateFormat))
}

func (i Item) Description() string { return i.Tip.Suggestion }

func (i Item) FilterValue() string { return i.Tip.Mood + " " + i.Tip.Suggestion }

type KeyMap struct {
	Delete key.Binding
	Clear  key.Binding
	Expand key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear all"),
		),
		Expand: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "show all/fewer"),
		),
	}
}

// Model lists saved tips, collapsed to the newest few until expanded
type Model struct {
	list     list.Model
	keys     KeyMap
	tips     []models.SavedTip
	expanded bool
}

func New(saved []models.SavedTip, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete, keys.Clear, keys.Expand}
	}

	m := Model{
		list: l,
		keys: keys,
	}
	m.SetTips(saved)
	return m
}

func (m *Model) SetTips(saved []models.SavedTip) {
	m.tips = saved
	m.refresh()
}

func (m *Model) refresh() {
	shown := m.tips
	if !m.expanded && len(shown) > constants.CollapsedTipCount {
		shown = shown[:constants.CollapsedTipCount]
	}
	items := make([]list.Item, len(shown))
	for i, t := range shown {
		items[i] = Item{Tip: t}
	}
	m.list.SetItems(items)
}

// Count is the number of saved tips, shown or not
func (m Model) Count() int {
	return len(m.tips)
}

// Hidden is how many tips the collapsed view leaves out
func (m Model) Hidden() int {
	return len(m.tips) - len(m.list.Items())
}

func (m Model) Expanded() bool {
	return m.expanded
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				id := i.Tip.ID
				return m, func() tea.Msg { return DeleteTipMsg{ID: id} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if len(m.tips) > 0 {
				return m, func() tea.Msg { return ClearTipsMsg{} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Expand):
			m.expanded = !m.expanded
			m.refresh()
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.tips) == 0 {
		return "\n  No saved tips yet.\n  Save a suggestion with 's' after checking in."
	}
	view := fmt.Sprintf("Your saved tips (%d)\n\n%s", len(m.tips), m.list.View())
	if hidden := m.Hidden(); hidden > 0 {
		view += fmt.Sprintf("\n  %d more · press 'e' to show all", hidden)
	}
	return view
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Keys exposes the bindings for the parent help view
func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Delete, m.keys.Clear, m.keys.Expand}
}
