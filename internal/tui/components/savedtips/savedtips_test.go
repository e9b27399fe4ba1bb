package savedtips

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodlit/internal/constants"
	"github.com/julianstephens/moodlit/internal/models"
)

func sampleTips(n int) []models.SavedTip {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]models.SavedTip, n)
	for i := range out {
		out[i] = models.SavedTip{
			ID:         int64(100 - i),
			Mood:       fmt.Sprintf("mood-%d", i),
			Suggestion: "Rest. It helps.",
			SavedAt:    at.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestCollapsedView(t *testing.T) {
	m := New(sampleTips(5), 80, 30)

	if m.Count() != 5 {
		t.Errorf("Count() = %d, want 5", m.Count())
	}
	if m.Hidden() != 5-constants.CollapsedTipCount {
		t.Errorf("Hidden() = %d, want %d", m.Hidden(), 5-constants.CollapsedTipCount)
	}
	if !strings.Contains(m.View(), "3 more") {
		t.Errorf("View() missing the more line:\n%s", m.View())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if !m.Expanded() || m.Hidden() != 0 {
		t.Errorf("after expand: Expanded() = %v, Hidden() = %d", m.Expanded(), m.Hidden())
	}
}

func TestFewTipsNotCollapsed(t *testing.T) {
	m := New(sampleTips(constants.CollapsedTipCount), 80, 30)
	if m.Hidden() != 0 {
		t.Errorf("Hidden() = %d, want 0", m.Hidden())
	}
}

func TestEmptyView(t *testing.T) {
	m := New(nil, 80, 30)
	if !strings.Contains(m.View(), "No saved tips yet") {
		t.Errorf("View() = %q", m.View())
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}); cmd != nil {
		t.Error("clear on an empty list should do nothing")
	}
}

func TestDeleteEmitsSelectedID(t *testing.T) {
	m := New(sampleTips(3), 80, 30)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
	msg, ok := cmd().(DeleteTipMsg)
	if !ok || msg.ID != 100 {
		t.Errorf("cmd() = %#v, want DeleteTipMsg{ID: 100}", msg)
	}
}

func TestItemText(t *testing.T) {
	tip := sampleTips(1)[0]
	item := Item{Tip: tip}
	if !strings.HasPrefix(item.Title(), "mood-0 · ") {
		t.Errorf("Title() = %q", item.Title())
	}
	if item.Description() != tip.Suggestion {
		t.Errorf("Description() = %q", item.Description())
	}
}
