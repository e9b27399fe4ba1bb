package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/logger"
	"github.com/julianstephens/moodlit/internal/suggest"
	"github.com/julianstephens/moodlit/internal/tui/components/moodpicker"
	"github.com/julianstephens/moodlit/internal/tui/components/savedtips"
	"github.com/julianstephens/moodlit/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case resolvedMsg:
		return m.handleResolved(msg)

	case spinner.TickMsg:
		if m.state != constants.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case moodpicker.PickMoodMsg:
		return m, m.startResolve(msg.Mood)

	case moodpicker.CustomMoodMsg:
		return m, m.newMoodForm()

	case savedtips.DeleteTipMsg:
		if err := m.tips.Delete(msg.ID); err != nil {
			m.errMsg = err.Error()
		} else {
			m.status = "Tip deleted"
		}
		m.refreshSaved()
		return m, nil

	case savedtips.ClearTipsMsg:
		m.state = constants.StateConfirmClear
		return m, nil
	}

	switch m.state {
	case constants.StateCustomMood:
		return m.updateCustomMood(msg)
	case constants.StateConfirmClear:
		return m.updateConfirmClear(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateCheckIn:
		m.picker, cmd = m.picker.Update(msg)
	case constants.StateSaved:
		m.saved, cmd = m.saved.Update(msg)
	case constants.StateSuggestion:
		if msg, ok := msg.(tea.KeyMsg); ok {
			cmd = m.handleSuggestionKeys(msg)
		}
	}
	return m, cmd
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelResolve()
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Back):
		if m.state == constants.StateLoading {
			m.cancelResolve()
			m.state = constants.StateCheckIn
			return true, nil
		}
		if m.state == constants.StateSaved {
			m.state = m.checkInState()
			return true, nil
		}
	case key.Matches(msg, m.keys.Tab):
		switch m.state {
		case constants.StateCheckIn, constants.StateSuggestion:
			m.previousState = m.state
			m.refreshSaved()
			m.state = constants.StateSaved
		case constants.StateSaved:
			m.state = m.checkInState()
		}
		return true, nil
	}
	return false, nil
}

// checkInState is the check-in tab's sub-state to return to
func (m Model) checkInState() constants.SessionState {
	if m.previousState == constants.StateSuggestion && m.text != "" {
		return constants.StateSuggestion
	}
	return constants.StateCheckIn
}

func (m *Model) handleSuggestionKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.toggleSave()
	case key.Matches(msg, m.keys.NewTip):
		return m.startResolve(m.mood)
	case key.Matches(msg, m.keys.Reset):
		m.mood, m.text, m.fallback = "", "", false
		m.suggestion = suggest.Suggestion{}
		m.status, m.errMsg = "", ""
		m.previousState = constants.StateCheckIn
		m.state = constants.StateCheckIn
	}
	return nil
}

func (m Model) handleResolved(msg resolvedMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.requestID || m.state != constants.StateLoading {
		return m, nil
	}
	m.cancel = nil
	if errors.Is(msg.err, context.Canceled) {
		m.state = constants.StateCheckIn
		return m, nil
	}

	m.suggestion = msg.suggestion
	m.fallback = msg.err != nil
	m.text = suggest.Fallback(msg.suggestion.Text(), msg.err)
	if m.fallback {
		m.suggestion = suggest.Suggestion{}
	}
	logger.Debug("Resolved mood", "mood", m.mood, "match", msg.suggestion.Match)
	m.previousState = constants.StateSuggestion
	m.state = constants.StateSuggestion
	return m, nil
}

func (m Model) updateCustomMood(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEsc {
			m.form = nil
			m.state = constants.StateCheckIn
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		mood, err := validation.Mood(m.moodForm.Mood)
		m.form = nil
		if err != nil {
			m.errMsg = err.Error()
			m.state = constants.StateCheckIn
			return m, nil
		}
		return m, m.startResolve(mood)
	case huh.StateAborted:
		m.form = nil
		m.state = constants.StateCheckIn
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		if err := m.tips.Clear(); err != nil {
			m.errMsg = err.Error()
		} else {
			m.status = "All saved tips cleared"
		}
		m.refreshSaved()
		m.state = constants.StateSaved
	case key.Matches(keyMsg, m.keys.No):
		m.state = constants.StateSaved
	}
	return m, nil
}
