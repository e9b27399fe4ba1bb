package moodpicker

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/models"
	"github.com/julianstephens/moodlit/internal/suggest"
)

// PickMoodMsg is sent when one of the common moods is chosen
type PickMoodMsg struct {
	Mood string
}

// CustomMoodMsg is sent when the user wants to describe their own mood
type CustomMoodMsg struct{}

type Item struct {
	Mood   models.MoodCategory
	Custom bool
	count  int
}

func (i Item) Title() string {
	if i.Custom {
		return "Something else..."
	}
	return string(i.Mood)
}

func (i Item) Description() string {
	if i.Custom {
		return "describe your mood in your own words"
	}
	if i.count == 1 {
		return "1 tip"
	}
	return fmt.Sprintf("%d tips", i.count)
}

func (i Item) FilterValue() string { return i.Title() }

type KeyMap struct {
	Select key.Binding
	Custom key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "check in"),
		),
		Custom: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "other mood"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	moods := suggest.Moods()
	items := make([]list.Item, 0, len(moods)+1)
	for _, m := range moods {
		items = append(items, Item{Mood: m, count: len(suggest.TipsFor(m))})
	}
	items = append(items, Item{Custom: true})

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "How are you feeling right now?"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select, keys.Custom}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Custom):
			return m, func() tea.Msg { return CustomMoodMsg{} }
		case key.Matches(msg, m.keys.Select):
			if i, ok := m.list.SelectedItem().(Item); ok {
				if i.Custom {
					return m, func() tea.Msg { return CustomMoodMsg{} }
				}
				mood := string(i.Mood)
				return m, func() tea.Msg { return PickMoodMsg{Mood: mood} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Keys exposes the bindings for the parent help view
func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Select, m.keys.Custom}
}
