package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlit/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = m.viewToday()
	case constants.StateMonth:
		content = docStyle.Render(m.calendarModel.View())
	case constants.StateAddHabit:
		content = m.viewAddHabit()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewTabs(), content}
	if m.statusMessage != "" {
		parts = append(parts, warningStyle.Render(m.statusMessage))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Month"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	p := m.store.DayProgress(m.store.Today())
	summary := progressStyle.Render(fmt.Sprintf("%s  %d/%d done (%.0f%%)",
		p.Date, p.CompletedHabits, p.TotalHabits, p.Rate()*100))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, summary, m.todayModel.View()))
}

func (m Model) viewAddHabit() string {
	if m.formError == "" {
		return docStyle.Render(m.form.View())
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(m.formError),
		m.form.View(),
	))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and its history?", m.habitToDelete.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
