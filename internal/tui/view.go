package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodlit/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateCheckIn:
		content = docStyle.Render(m.picker.View())
	case constants.StateCustomMood:
		content = docStyle.Render(m.form.View())
	case constants.StateLoading:
		content = docStyle.Render(fmt.Sprintf("%s Finding something for feeling %s...", m.spinner.View(), moodStyle.Render(m.mood)))
	case constants.StateSuggestion:
		content = m.viewSuggestion()
	case constants.StateSaved:
		content = docStyle.Render(m.saved.View())
	case constants.StateConfirmClear:
		content = m.viewConfirmClear()
	}

	parts := []string{m.viewTabs(), content}
	if m.errMsg != "" {
		parts = append(parts, docStyle.Render(dangerStyle.Render("⚠ "+m.errMsg)))
	} else if m.status != "" {
		parts = append(parts, docStyle.Render(successStyle.Render(m.status)))
	}
	parts = append(parts,
		docStyle.Render(disclaimerStyle.Render(constants.Disclaimer)),
		m.help.View(m),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	checkIn := inactiveTabStyle.Render("Check in")
	saved := inactiveTabStyle.Render(fmt.Sprintf("Saved (%d)", m.saved.Count()))
	if m.state == constants.StateSaved || m.state == constants.StateConfirmClear {
		saved = activeTabStyle.Render(fmt.Sprintf("Saved (%d)", m.saved.Count()))
	} else {
		checkIn = activeTabStyle.Render("Check in")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, checkIn, saved)
}

func (m Model) viewSuggestion() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Feeling %s?\n\n", moodStyle.Render(m.mood))

	body := m.text
	if d := m.suggestion.Tip.Duration; d != "" {
		body += "\n\n" + warningStyle.Render(d)
	}
	b.WriteString(tipStyle.Render(body))
	b.WriteString("\n\n")

	var actions []string
	if !m.fallback {
		if m.isSaved() {
			actions = append(actions, "[s] Remove from saved")
		} else {
			actions = append(actions, "[s] Save tip")
		}
	}
	actions = append(actions, "[n] New tip", "[r] Check in with a new mood")
	b.WriteString(strings.Join(actions, "   "))

	return docStyle.Render(b.String())
}

func (m Model) viewConfirmClear() string {
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(fmt.Sprintf("Delete all %d saved tips?", m.saved.Count())),
		"",
		"[y] Yes",
		"[n] No",
	))
}
