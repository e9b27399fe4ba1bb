package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/suggest"
	"github.com/julianstephens/moodlit/internal/tips"
	"github.com/julianstephens/moodlit/internal/tui/components/moodpicker"
	"github.com/julianstephens/moodlit/internal/tui/components/savedtips"
	"github.com/julianstephens/moodlit/internal/validation"
)

type CustomMoodFormModel struct {
	Mood string
}

// resolvedMsg carries the outcome of one resolution request
type resolvedMsg struct {
	id         int
	suggestion suggest.Suggestion
	err        error
}

type Model struct {
	tips     *tips.TipStore
	resolver *suggest.Resolver
	instant  bool

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model
	picker        moodpicker.Model
	saved         savedtips.Model
	form          *huh.Form
	moodForm      *CustomMoodFormModel

	mood       string
	suggestion suggest.Suggestion
	text       string
	fallback   bool

	requestID int
	cancel    context.CancelFunc

	status   string
	errMsg   string
	quitting bool
	width    int
	height   int
}

// Option configures a Model
type Option func(*Model)

// WithInstant skips the artificial resolution delay
func WithInstant(instant bool) Option {
	return func(m *Model) { m.instant = instant }
}

func NewModel(store *tips.TipStore, resolver *suggest.Resolver, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = moodStyle

	m := Model{
		tips:     store,
		resolver: resolver,
		state:    constants.StateCheckIn,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		picker:   moodpicker.New(0, 0),
		saved:    savedtips.New(store.List(), 0, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateCheckIn:
		keys = append(keys, m.picker.Keys()...)
	case constants.StateSuggestion:
		keys = append(keys, m.keys.Save, m.keys.NewTip, m.keys.Reset)
	case constants.StateSaved:
		keys = append(keys, m.saved.Keys()...)
	case constants.StateLoading, constants.StateCustomMood:
		keys = []key.Binding{m.keys.Back}
	case constants.StateConfirmClear:
		keys = []key.Binding{m.keys.Yes, m.keys.No}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Back, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case constants.StateCheckIn:
		actions = m.picker.Keys()
	case constants.StateSuggestion:
		actions = []key.Binding{m.keys.Save, m.keys.NewTip, m.keys.Reset}
	case constants.StateSaved:
		actions = m.saved.Keys()
	}
	return [][]key.Binding{global, actions}
}

// startResolve cancels any pending request and resolves mood, with the
// delay unless the model is instant. Stale results are dropped by id.
func (m *Model) startResolve(mood string) tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.requestID++
	m.mood = mood
	m.status = ""
	m.errMsg = ""
	m.state = constants.StateLoading

	id := m.requestID
	resolver := m.resolver
	instant := m.instant
	resolve := func() tea.Msg {
		if instant {
			return resolvedMsg{id: id, suggestion: resolver.ResolveTip(mood)}
		}
		s, err := resolver.ResolveTipWithDelay(ctx, mood)
		return resolvedMsg{id: id, suggestion: s, err: err}
	}
	return tea.Batch(m.spinner.Tick, resolve)
}

func (m *Model) cancelResolve() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.requestID++
}

func (m *Model) newMoodForm() tea.Cmd {
	m.moodForm = &CustomMoodFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Describe your mood").
				Placeholder("e.g. restless, overwhelmed").
				CharLimit(constants.MaxMoodLength).
				Value(&m.moodForm.Mood).
				Validate(func(s string) error {
					_, err := validation.Mood(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
	m.errMsg = ""
	m.state = constants.StateCustomMood
	return m.form.Init()
}

// toggleSave saves the tip on screen, or removes it if it is already saved
func (m *Model) toggleSave() {
	if m.fallback {
		return
	}
	m.errMsg = ""
	if existing, ok := m.tips.Contains(m.mood, m.text); ok {
		if err := m.tips.Delete(existing.ID); err != nil {
			m.errMsg = err.Error()
			return
		}
		m.status = "Removed from saved tips"
	} else {
		if _, err := m.tips.Save(m.mood, m.text); err != nil {
			m.errMsg = err.Error()
			return
		}
		m.status = "Saved!"
	}
	m.refreshSaved()
}

func (m *Model) refreshSaved() {
	m.saved.SetTips(m.tips.List())
}

// isSaved reports whether the tip on screen is in the saved list
func (m Model) isSaved() bool {
	if m.text == "" {
		return false
	}
	_, ok := m.tips.Contains(m.mood, m.text)
	return ok
}

func (m *Model) resize() {
	w, h := m.width-4, m.height-8
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	m.picker.SetSize(w, h)
	m.saved.SetSize(w, max(h-2, 0))
	m.help.Width = m.width
}
