package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/habitstore"
	"github.com/julianstephens/habitlit/internal/tui/components/calendar"
	"github.com/julianstephens/habitlit/internal/tui/components/today"
)

// HabitFormModel backs the add-habit form. Schedule holds the raw
// comma-separated days or dates for the chosen frequency.
type HabitFormModel struct {
	Name      string
	Frequency string
	Schedule  string
	Category  string
	Emoji     string
	Time      string
}

type Model struct {
	store         *habitstore.Store
	ctx           context.Context
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	todayModel    today.Model
	calendarModel calendar.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	formError     string
	statusMessage string
	habitToDelete today.DeleteHabitMsg
	quitting      bool
	width         int
	height        int
}

func NewModel(ctx context.Context, store *habitstore.Store) Model {
	m := Model{
		store:         store,
		ctx:           ctx,
		state:         constants.StateToday,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		todayModel:    today.New(0, 0),
		calendarModel: calendar.New(store.Today()),
	}
	if m.readOnly() {
		m.statusMessage = readOnlyStatus(store.LoadErr())
	}
	m.refresh()
	return m
}

// readOnly reports whether the stored collection failed to load. Writing in
// that state would replace the unread habits, so changes are disabled.
func (m Model) readOnly() bool {
	return m.store.LoadErr() != nil
}

func readOnlyStatus(err error) string {
	return fmt.Sprintf("Stored habits could not be read, changes are disabled. Run '%s doctor': %v", constants.AppName, err)
}

// refresh reloads both tabs from the store.
func (m *Model) refresh() {
	date := m.store.Today()

	due := m.store.HabitsForDate(date)
	streaks := make(map[string]int, len(due))
	for _, h := range due {
		streaks[h.ID] = m.store.Streak(h.ID)
	}
	m.todayModel.SetHabits(due, date, streaks)

	year, month := m.calendarModel.Month()
	m.calendarModel.SetProgress(m.store.MonthlyProgress(year, month), date)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		tk := today.DefaultKeyMap()
		keys = append(keys, tk.Toggle, tk.Add, tk.Delete)
	case constants.StateMonth:
		keys = append(keys, m.calendarModel.Keys.Prev, m.calendarModel.Keys.Next)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
