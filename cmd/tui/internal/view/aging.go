package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

type agingState int

const (
	agingStatePeriod agingState = iota
	agingStateAsOf
	agingStateReport
)

type AgingModel struct {
	CommonModel
	account Account

	state        agingState
	periodPicker PeriodPicker
	form         *huh.Form
	table        table.Model

	from, to time.Time
	asOf     string
	report   *ledger.AgingReport
	loading  bool
	err      error
}

func NewAgingModel(account Account) AgingModel {
	columns := []table.Column{
		{Title: "Bucket", Width: 8},
		{Title: "Invoice", Width: 18},
		{Title: "Date", Width: 12},
		{Title: "Pending", Width: 12},
		{Title: "Days", Width: 6},
	}

	return AgingModel{
		account:      account,
		periodPicker: NewPeriodPicker(),
		table:        newTable(columns, 15),
	}
}

func (m AgingModel) Title() string { return "Aging" }

func (m AgingModel) ShortHelp() string {
	if m.state == agingStateReport {
		return "Esc: back"
	}

	return "Esc: back | Enter: confirm"
}

func (m AgingModel) Init() tea.Cmd {
	return nil
}

// Report returns the last computed report, if any.
func (m AgingModel) Report() *ledger.AgingReport {
	return m.report
}

func (m AgingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.from, m.to = msg.From, msg.To
		m.asOf = FormatDate(clock())
		m.form = m.buildAsOfForm()
		m.state = agingStateAsOf

		return m, m.form.Init()

	case ledgerLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			asOf, _ := time.Parse(time.DateOnly, m.asOf)
			report := m.account.Ledger.BuildAgingReport(msg.result.Invoices, asOf)
			m.report = &report
			m.refreshTable()
		}

		return m, nil
	}

	switch m.state {
	case agingStatePeriod:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.periodPicker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.periodPicker, cmd = m.periodPicker.Update(msg)

		return m, cmd

	case agingStateAsOf:
		return m.updateAsOf(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m AgingModel) updateAsOf(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = agingStatePeriod
		m.periodPicker.Reset()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.asOf = m.form.GetString("as_of")
	m.state = agingStateReport
	m.loading = true

	return m, loadLedger(m.account, m.from, m.to)
}

func (m *AgingModel) buildAsOfForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("as_of").
				Title("As of").
				Description("Invoice ages are counted up to this day").
				Placeholder("YYYY-MM-DD").
				Value(&m.asOf).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *AgingModel) refreshTable() {
	var rows []table.Row

	for _, b := range m.report.Buckets {
		for _, e := range b.Entries {
			rows = append(rows, table.Row{
				b.Label,
				e.Invoice.InvoiceNo,
				FormatDate(e.Invoice.Date),
				ledger.FormatAmount(e.Invoice.PendingAmount),
				strconv.Itoa(e.DaysPast),
			})
		}
	}

	m.table.SetRows(rows)
}

func (m AgingModel) View() string {
	switch {
	case m.state == agingStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())
	case m.state == agingStateAsOf:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case m.loading:
		return lipgloss.NewStyle().Padding(2).Render("Building ledger...")
	case m.err != nil:
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.report == nil:
		return ""
	}

	r := m.report

	buckets := ""
	for _, b := range r.Buckets {
		buckets += fmt.Sprintf("%-6s %3d  %12s\n", b.Label, b.Count, ledger.FormatAmount(b.Amount))
	}

	risk := fmt.Sprintf("Outstanding %s | High risk %s | Medium risk %s",
		activeStyle(ledger.FormatAmount(r.TotalOutstanding)),
		fmt.Sprintf("%d (%s)", r.HighRiskCount, ledger.FormatAmount(r.HighRiskAmount)),
		fmt.Sprintf("%d (%s)", r.MediumRiskCount, ledger.FormatAmount(r.MediumRiskAmount)))

	content := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Aging as of %s (%s to %s)\n", FormatDate(r.AsOf), FormatDate(m.from), FormatDate(m.to)),
		buckets,
		boxStyle.Render(m.table.View()),
		risk,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}
