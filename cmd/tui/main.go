package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/arledger/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/arledger/internal/config"
	"github.com/MrJamesThe3rd/arledger/internal/database"
	"github.com/MrJamesThe3rd/arledger/internal/export"
	"github.com/MrJamesThe3rd/arledger/internal/importer"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/ledger/memstore"
	ledgerStore "github.com/MrJamesThe3rd/arledger/internal/ledger/store"
	"github.com/MrJamesThe3rd/arledger/internal/logger"
)

type model struct {
	account view.Account

	currentView View

	ledgerView view.LedgerModel
	agingView  view.AgingModel
	exportView view.ExportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewLedger View = 1
	ViewAging  View = 2
	ViewExport View = 3
)

func initialModel(account view.Account) model {
	return model{
		account:     account,
		currentView: ViewMenu,
		ledgerView:  view.NewLedgerModel(account),
		agingView:   view.NewAgingModel(account),
		exportView:  view.NewExportModel(account),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.account)

				return m, m.ledgerView.Init()
			case "2":
				m.currentView = ViewAging
				m.agingView = view.NewAgingModel(m.account)

				return m, m.agingView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.account)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewAging:
		var newModel tea.Model
		newModel, cmd = m.agingView.Update(msg)
		m.agingView = newModel.(view.AgingModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Receivables Ledger: " + m.account.Name + "\n\n" +
				"1. Browse Ledger\n" +
				"2. Aging Report\n" +
				"3. Export Ledger\n\n" +
				"q. Quit",
		)
	case ViewLedger:
		return withHelp(m.ledgerView)
	case ViewAging:
		return withHelp(m.agingView)
	case ViewExport:
		return withHelp(m.exportView)
	}

	return "Unknown View"
}

func withHelp(v view.View) string {
	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, v.View(), help)
}

type options struct {
	account  string
	records  []string
	invoices []string
	opening  string
}

func main() {
	_ = godotenv.Load()

	var opts options

	cmd := &cobra.Command{
		Use:          "tui",
		Short:        "Browse a receivables ledger in the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.account, "account", "", "Account ID to read from the database")
	cmd.Flags().StringSliceVar(&opts.records, "records", nil, "Transaction CSV export to load instead of the database")
	cmd.Flags().StringSliceVar(&opts.invoices, "invoices", nil, "Invoice CSV export to load with --records")
	cmd.Flags().StringVar(&opts.opening, "opening", "0", "Opening balance for --records")
	cmd.MarkFlagsOneRequired("account", "records")
	cmd.MarkFlagsMutuallyExclusive("account", "records")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to bubbletea; logs only go to a file when asked.
	logCfg := cfg.Logger()
	if logCfg.Output == "stdout" || logCfg.Output == "stderr" {
		logCfg.Output = ""
	}

	log := zap.NewNop()
	if logCfg.Output != "" {
		if log, err = logger.New(logCfg); err != nil {
			return err
		}
	}
	defer func() { _ = log.Sync() }()

	var account view.Account

	if opts.account != "" {
		account, err = databaseAccount(ctx, cfg, opts.account, log)
	} else {
		account, err = fileAccount(opts, log)
	}

	if err != nil {
		return err
	}

	account.Export = export.NewService(account.Ledger)

	p := tea.NewProgram(initialModel(account), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func databaseAccount(ctx context.Context, cfg *config.Config, rawID string, log *zap.Logger) (view.Account, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return view.Account{}, fmt.Errorf("invalid --account: %w", err)
	}

	db, err := database.New(ctx, cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		return view.Account{}, err
	}

	return view.Account{
		ID:     id,
		Name:   id.String(),
		Ledger: ledger.NewService(ledgerStore.New(db), log),
	}, nil
}

func fileAccount(opts options, log *zap.Logger) (view.Account, error) {
	opening, err := decimal.NewFromString(opts.opening)
	if err != nil {
		return view.Account{}, fmt.Errorf("invalid --opening: %w", err)
	}

	var (
		svc   = importer.NewService()
		batch importer.Batch
	)

	load := func(kind importer.File, paths []string) error {
		for _, path := range paths {
			f, err := os.Open(path)
			if err != nil {
				return err
			}

			err = svc.Import(kind, f, &batch)
			f.Close()

			if err != nil {
				return fmt.Errorf("importing %s: %w", path, err)
			}
		}

		return nil
	}

	if err := errors.Join(load(importer.FileRecords, opts.records), load(importer.FileInvoices, opts.invoices)); err != nil {
		return view.Account{}, err
	}

	store := memstore.New()
	name := opts.records[0]
	id := store.Put(memstore.Account{
		Name:           name,
		OpeningBalance: opening,
		Records:        batch.Records,
		Invoices:       batch.Invoices,
	})

	return view.Account{ID: id, Name: name, Ledger: ledger.NewService(store, log)}, nil
}
