package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/progress"
	"github.com/julianstephens/habitlit/internal/utils"
)

// MonthChangedMsg asks the parent to load progress for a new month.
type MonthChangedMsg struct {
	Year  int
	Month time.Month
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2d4150")).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b6c1cd")).Width(4).Align(lipgloss.Right)
	cellStyle   = lipgloss.NewStyle().Width(4).Align(lipgloss.Right)
	todayStyle  = lipgloss.NewStyle().Underline(true).Bold(true)

	bandColors = map[progress.Band]lipgloss.Color{
		progress.BandEmpty: lipgloss.Color("#7f8c8d"),
		progress.BandNone:  lipgloss.Color("#e74c3c"),
		progress.BandLow:   lipgloss.Color("#f39c12"),
		progress.BandHigh:  lipgloss.Color("#3498db"),
		progress.BandFull:  lipgloss.Color("#27ae60"),
	}
)

// Render draws a Sunday-first month grid with each day coloured by its
// completion band. today is underlined when it falls in the month.
func Render(year int, month time.Month, days models.MonthlyProgress, today utils.Date) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n")

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		b.WriteString(headerStyle.Render(wd.String()[:2]))
	}
	b.WriteString("\n")

	first := utils.NewDate(year, month, 1)
	offset := int(first.Weekday())
	b.WriteString(strings.Repeat(cellStyle.Render(""), offset))

	n := utils.DaysInMonth(year, month)
	for day := 1; day <= n; day++ {
		d := utils.NewDate(year, month, day)
		style := cellStyle.Foreground(bandColors[progress.BandFor(days[d.String()])])
		if d == today {
			style = style.Inherit(todayStyle)
		}
		b.WriteString(style.Render(fmt.Sprintf("%d", day)))
		if (offset+day)%7 == 0 && day != n {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Legend explains the band colours.
func Legend() string {
	parts := make([]string, 0, len(bandColors))
	for _, band := range []progress.Band{progress.BandFull, progress.BandHigh, progress.BandLow, progress.BandNone, progress.BandEmpty} {
		parts = append(parts, lipgloss.NewStyle().Foreground(bandColors[band]).Render("■ "+band.String()))
	}
	return strings.Join(parts, "  ")
}

type KeyMap struct {
	Prev key.Binding
	Next key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev month"),
		),
		Next: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
	}
}

type Model struct {
	Keys  KeyMap
	year  int
	month time.Month
	days  models.MonthlyProgress
	today utils.Date
}

func New(today utils.Date) Model {
	return Model{
		Keys:  DefaultKeyMap(),
		year:  today.Year,
		month: today.Month,
		today: today,
		days:  models.MonthlyProgress{},
	}
}

// Month returns the displayed year and month.
func (m Model) Month() (int, time.Month) {
	return m.year, m.month
}

func (m *Model) SetProgress(days models.MonthlyProgress, today utils.Date) {
	m.days = days
	m.today = today
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		delta := 0
		switch {
		case key.Matches(msg, m.Keys.Prev):
			delta = -1
		case key.Matches(msg, m.Keys.Next):
			delta = 1
		}
		if delta != 0 {
			t := time.Date(m.year, m.month+time.Month(delta), 1, 0, 0, 0, 0, time.Local)
			m.year, m.month = t.Year(), t.Month()
			year, month := m.year, m.month
			return m, func() tea.Msg { return MonthChangedMsg{Year: year, Month: month} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	return Render(m.year, m.month, m.days, m.today) + "\n" + Legend()
}
