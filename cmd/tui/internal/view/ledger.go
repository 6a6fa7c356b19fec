package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

type ledgerState int

const (
	ledgerStatePeriod ledgerState = iota
	ledgerStateBrowse
	ledgerStateSearch
)

var (
	typeFilters = []ledger.DocumentType{
		"", ledger.TypeSale, ledger.TypeStudioSale, ledger.TypePayment, ledger.TypeDiscount,
		ledger.TypePurchase, ledger.TypeExpense, ledger.TypeJob, ledger.TypeOther,
	}
	sortFields = []ledger.SortField{
		ledger.SortNone, ledger.SortDate, ledger.SortReference, ledger.SortType,
		ledger.SortDebit, ledger.SortCredit, ledger.SortBalance,
	}
)

type LedgerModel struct {
	CommonModel
	account Account

	state        ledgerState
	periodPicker PeriodPicker
	table        table.Model
	search       textinput.Model

	result  *ledger.Result
	rows    []ledger.Transaction
	typeIdx int
	sortIdx int
	order   ledger.SortOrder

	loading bool
	err     error
}

func NewLedgerModel(account Account) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 14},
		{Title: "Reference", Width: 18},
		{Title: "Description", Width: 30},
		{Title: "Debit", Width: 12},
		{Title: "Credit", Width: 12},
		{Title: "Balance", Width: 12},
	}

	si := textinput.New()
	si.Placeholder = "reference, description, account or notes"
	si.Prompt = "Search: "
	si.Width = 40

	return LedgerModel{
		account:      account,
		periodPicker: NewPeriodPicker(),
		table:        newTable(columns, 15),
		search:       si,
		order:        ledger.OrderAsc,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	switch m.state {
	case ledgerStatePeriod:
		return "Esc: back | Enter: select"
	case ledgerStateSearch:
		return "Enter: apply | Esc: cancel"
	}

	return "Esc: back | /: search | t: type | s: sort | o: order | r: refresh | c: change range"
}

func (m LedgerModel) Init() tea.Cmd {
	return nil
}

// Query is the view currently applied to the ledger.
func (m LedgerModel) Query() ledger.Query {
	return ledger.Query{
		Search: strings.TrimSpace(m.search.Value()),
		Type:   typeFilters[m.typeIdx],
		Sort:   sortFields[m.sortIdx],
		Order:  m.order,
	}
}

// Rows returns the transactions currently shown.
func (m LedgerModel) Rows() []ledger.Transaction {
	return m.rows
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PeriodSelectedMsg:
		m.state = ledgerStateBrowse
		m.loading = true

		return m, m.loadCmd(msg.From, msg.To)

	case ledgerLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.result = msg.result
		m.applyQuery()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case ledgerStatePeriod:
		return m.updatePeriod(msg)
	case ledgerStateSearch:
		return m.updateSearch(msg)
	}

	return m.updateBrowse(msg)
}

func (m LedgerModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.periodPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)

	return m, cmd
}

func (m LedgerModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.state = ledgerStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.applyQuery()

			return m, nil
		case tea.KeyEsc:
			m.state = ledgerStateBrowse
			m.search.Blur()
			m.search.SetValue("")
			m.table.Focus()
			m.applyQuery()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m LedgerModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "/":
			m.state = ledgerStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			m.applyQuery()

			return m, nil
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(sortFields)
			m.applyQuery()

			return m, nil
		case "o":
			if m.order == ledger.OrderAsc {
				m.order = ledger.OrderDesc
			} else {
				m.order = ledger.OrderAsc
			}

			m.applyQuery()

			return m, nil
		case "r":
			if m.result != nil {
				m.loading = true
				return m, m.loadCmd(m.result.From, m.result.To)
			}
		case "c":
			m.state = ledgerStatePeriod
			m.periodPicker.Reset()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// applyQuery recomputes the visible rows from the loaded ledger. The ledger
// itself is never rebuilt for a view change.
func (m *LedgerModel) applyQuery() {
	m.rows = m.account.Ledger.QueryLedger(m.result, m.Query())

	rows := make([]table.Row, 0, len(m.rows))
	for _, tx := range m.rows {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.DocumentType),
			tx.ReferenceNo,
			tx.Description,
			FormatAmount(tx.Debit),
			FormatAmount(tx.Credit),
			ledger.FormatAmount(tx.RunningBalance),
		})
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m LedgerModel) View() string {
	switch {
	case m.state == ledgerStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())
	case m.loading:
		return lipgloss.NewStyle().Padding(2).Render("Building ledger...")
	case m.err != nil:
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.result == nil:
		return ""
	}

	q := m.Query()

	typeLabel := "All"
	if q.Type != "" {
		typeLabel = string(q.Type)
	}

	sortLabel := "Chronological"
	if q.Sort != ledger.SortNone {
		sortLabel = fmt.Sprintf("%s %s", q.Sort, q.Order)
	}

	header := fmt.Sprintf("%s  %s to %s\n[t] Type: %s | [s] Sort: %s | [o] Order: %s",
		m.account.Name, FormatDate(m.result.From), FormatDate(m.result.To),
		activeStyle(typeLabel), activeStyle(sortLabel), activeStyle(string(q.Order)))

	if m.state == ledgerStateSearch || q.Search != "" {
		header += "\n" + m.search.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxStyle.Render(m.table.View()),
		summaryView(m.result),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func summaryView(result *ledger.Result) string {
	s := result.Summary
	inv := s.Invoices

	lines := []string{
		fmt.Sprintf("Opening %s | Debit %s | Credit %s | Closing %s",
			ledger.FormatAmount(s.OpeningBalance), ledger.FormatAmount(s.TotalDebit),
			ledger.FormatAmount(s.TotalCredit), activeStyle(ledger.FormatAmount(s.ClosingBalance))),
		fmt.Sprintf("Invoices %d: %d paid, %d partial, %d unpaid | Pending %s",
			inv.Count, inv.FullyPaid.Count, inv.PartiallyPaid.Count, inv.Unpaid.Count,
			ledger.FormatAmount(inv.PendingAmount)),
	}

	if n := len(result.Warnings); n > 0 {
		lines = append(lines, faintStyle.Render(fmt.Sprintf("%d records excluded", n)))
	}

	return strings.Join(lines, "\n")
}

type ledgerLoadedMsg struct {
	result *ledger.Result
	err    error
}

func (m LedgerModel) loadCmd(from, to time.Time) tea.Cmd {
	return loadLedger(m.account, from, to)
}

func loadLedger(account Account, from, to time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := LoadCtx()
		defer cancel()

		result, err := account.Ledger.BuildLedger(ctx, account.ID, from, to)

		return ledgerLoadedMsg{result: result, err: err}
	}
}
