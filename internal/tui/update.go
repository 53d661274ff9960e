package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/tui/components/calendar"
	"github.com/julianstephens/habitlit/internal/tui/components/today"
	"github.com/julianstephens/habitlit/internal/validation"
)

const tabCount = 2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.todayModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit:
		return m.updateAddHabit(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg.(type) {
	case today.AddHabitMsg, today.ToggleHabitMsg, today.DeleteHabitMsg:
		if m.readOnly() {
			m.statusMessage = readOnlyStatus(m.store.LoadErr())
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case today.AddHabitMsg:
		m.habitForm = &HabitFormModel{
			Frequency: string(models.FrequencyDaily),
			Category:  string(models.CategoryOther),
		}
		m.formError = ""
		m.form = newHabitForm(m.habitForm)
		m.previousState = m.state
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case today.ToggleHabitMsg:
		if _, err := m.store.ToggleCompletion(m.ctx, msg.ID, m.store.Today()); err != nil {
			m.statusMessage = err.Error()
		} else {
			m.statusMessage = ""
		}
		m.refresh()
		return m, nil

	case today.DeleteHabitMsg:
		m.habitToDelete = msg
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case calendar.MonthChangedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case constants.StateMonth:
		m.calendarModel, cmd = m.calendarModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		in, err := m.habitForm.toInput()
		if err == nil {
			err = validation.ValidateInput(in)
		}
		if err == nil {
			_, err = m.store.Add(m.ctx, in)
		}
		if err != nil {
			// Rebuild the form with the entered values so the user can fix them
			m.formError = err.Error()
			m.form = newHabitForm(m.habitForm)
			return m, m.form.Init()
		}
		m.formError = ""
		m.statusMessage = ""
		m.refresh()
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if err := m.store.Delete(m.ctx, m.habitToDelete.ID); err != nil {
			m.statusMessage = err.Error()
		} else {
			m.statusMessage = ""
		}
		m.habitToDelete = today.DeleteHabitMsg{}
		m.refresh()
		m.state = m.previousState
	case key.Matches(keyMsg, m.keys.Cancel):
		m.habitToDelete = today.DeleteHabitMsg{}
		m.state = m.previousState
	}
	return m, nil
}
