package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// clock is swapped in tests.
var clock = time.Now

// period is a named range relative to today. Both bounds are inclusive.
type period struct {
	label  string
	bounds func(today time.Time) (from, to time.Time)
}

var periods = []period{
	{
		label:  "Month to date",
		bounds: func(t time.Time) (time.Time, time.Time) { return monthStart(t), t },
	},
	{
		label: "Last month",
		bounds: func(t time.Time) (time.Time, time.Time) {
			start := monthStart(t).AddDate(0, -1, 0)
			return start, start.AddDate(0, 1, -1)
		},
	},
	{
		label:  "Quarter to date",
		bounds: func(t time.Time) (time.Time, time.Time) { return quarterStart(t), t },
	},
	{
		label: "Last quarter",
		bounds: func(t time.Time) (time.Time, time.Time) {
			start := quarterStart(t).AddDate(0, -3, 0)
			return start, start.AddDate(0, 3, -1)
		},
	},
	{
		label:  "Year to date",
		bounds: func(t time.Time) (time.Time, time.Time) { return yearStart(t), t },
	},
	{
		label: "Last year",
		bounds: func(t time.Time) (time.Time, time.Time) {
			start := yearStart(t).AddDate(-1, 0, 0)
			return start, start.AddDate(1, 0, -1)
		},
	},
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func quarterStart(t time.Time) time.Time {
	first := (t.Month()-1)/3*3 + 1
	return time.Date(t.Year(), first, 1, 0, 0, 0, 0, time.UTC)
}

func yearStart(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

var (
	errRangeFormat   = errors.New("use FROM..TO, e.g. 2024-01-01..2024-03-31")
	errRangeInverted = errors.New("start date is after end date")
)

// parseRange reads an inclusive "YYYY-MM-DD..YYYY-MM-DD" range.
func parseRange(s string) (time.Time, time.Time, error) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "..")
	if !ok {
		return time.Time{}, time.Time{}, errRangeFormat
	}

	from, err := time.Parse(time.DateOnly, strings.TrimSpace(a))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", strings.TrimSpace(a))
	}

	to, err := time.Parse(time.DateOnly, strings.TrimSpace(b))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", strings.TrimSpace(b))
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, errRangeInverted
	}

	return from, to, nil
}

// PeriodSelectedMsg carries the inclusive range the user picked.
type PeriodSelectedMsg struct {
	From time.Time
	To   time.Time
}

func selected(from, to time.Time) tea.Cmd {
	from, to = day(from), day(to)

	return func() tea.Msg {
		return PeriodSelectedMsg{From: from, To: to}
	}
}

// PeriodPicker offers the preset periods plus a typed custom range, which
// sits on the row after the last preset.
type PeriodPicker struct {
	cursor  int
	editing bool
	input   textinput.Model
	err     error
}

func NewPeriodPicker() PeriodPicker {
	in := textinput.New()
	in.Placeholder = "2024-01-01..2024-03-31"
	in.CharLimit = 32
	in.Width = 26
	in.Prompt = "Range: "

	return PeriodPicker{input: in}
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	if m.editing {
		if isKey {
			switch key.Type {
			case tea.KeyEnter:
				return m.submit()
			case tea.KeyEsc:
				m.editing = false
				m.err = nil
				m.input.Blur()

				return m, nil
			}
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	if !isKey {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(periods) {
			m.cursor++
		}
	case "enter":
		if m.cursor == len(periods) {
			m.editing = true
			m.input.Focus()

			return m, textinput.Blink
		}

		return m, selected(periods[m.cursor].bounds(day(clock())))
	}

	return m, nil
}

func (m PeriodPicker) submit() (PeriodPicker, tea.Cmd) {
	from, to, err := parseRange(m.input.Value())
	if err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil

	return m, selected(from, to)
}

func (m PeriodPicker) View() string {
	var sb strings.Builder

	if m.editing {
		sb.WriteString("Custom range (both days included):\n\n")
		sb.WriteString(m.input.View())
		sb.WriteString("\n\n" + faintStyle.Render("enter confirm • esc back"))
	} else {
		sb.WriteString("Period:\n\n")

		for i := 0; i <= len(periods); i++ {
			label := "Custom range"
			if i < len(periods) {
				label = periods[i].label
			}

			if i == m.cursor {
				sb.WriteString(activeStyle("> "+label) + "\n")
			} else {
				sb.WriteString("  " + label + "\n")
			}
		}

		sb.WriteString("\n" + faintStyle.Render("enter select • esc back"))
	}

	if m.err != nil {
		sb.WriteString("\n\n" + errorStyle.Render("Error: "+m.err.Error()))
	}

	return sb.String()
}

// IsSelecting reports whether the preset list is showing, so esc belongs
// to the parent view.
func (m PeriodPicker) IsSelecting() bool {
	return !m.editing
}

func (m *PeriodPicker) Reset() {
	m.cursor = 0
	m.editing = false
	m.err = nil
	m.input.Blur()
	m.input.SetValue("")
}
