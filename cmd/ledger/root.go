package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/arledger/internal/importer"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
	"github.com/MrJamesThe3rd/arledger/internal/ledger/memstore"
	"github.com/MrJamesThe3rd/arledger/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Build receivables ledgers and aging reports from CSV exports",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newBuildCommand(), newAgingCommand(), newTokenCommand())

	return rootCmd
}

// source holds the flags shared by every command that builds a ledger.
type source struct {
	records  []string
	invoices []string
	opening  string
	from     string
	to       string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&s.records, "records", nil, "Transaction CSV export (repeatable)")
	cmd.Flags().StringSliceVar(&s.invoices, "invoices", nil, "Invoice CSV export (repeatable)")
	cmd.Flags().StringVar(&s.opening, "opening", "0", "Balance carried in before every record")
	cmd.Flags().StringVar(&s.from, "from", "", "First day of the ledger (YYYY-MM-DD)")
	cmd.Flags().StringVar(&s.to, "to", "", "Last day of the ledger (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("records")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

// build imports the CSV files into a throwaway account and builds its ledger.
func (s *source) build(cmd *cobra.Command) (*ledger.Service, *ledger.Result, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}

	from, err := parseDay("from", s.from)
	if err != nil {
		return nil, nil, err
	}

	to, err := parseDay("to", s.to)
	if err != nil {
		return nil, nil, err
	}

	opening, err := decimal.NewFromString(s.opening)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --opening %q: %w", s.opening, err)
	}

	var (
		svc   = importer.NewService()
		batch importer.Batch
	)

	for _, path := range s.records {
		if err := importFile(svc, importer.FileRecords, path, &batch); err != nil {
			return nil, nil, err
		}
	}

	for _, path := range s.invoices {
		if err := importFile(svc, importer.FileInvoices, path, &batch); err != nil {
			return nil, nil, err
		}
	}

	log.Debug("imported",
		zap.Int("records", len(batch.Records)),
		zap.Int("invoices", len(batch.Invoices)),
	)

	store := memstore.New()
	accountID := store.Put(memstore.Account{
		OpeningBalance: opening,
		Records:        batch.Records,
		Invoices:       batch.Invoices,
	})

	ledgerSvc := ledger.NewService(store, log)

	result, err := ledgerSvc.BuildLedger(cmd.Context(), accountID, from, to)
	if err != nil {
		return nil, nil, err
	}

	return ledgerSvc, result, nil
}

func importFile(svc *importer.Service, kind importer.File, path string, batch *importer.Batch) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := svc.Import(kind, f, batch); err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}

	return nil
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")

	return logger.New(logger.Config{Level: level, Format: "console", Output: "stderr"})
}

func parseDay(name, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", name, value)
	}

	return t, nil
}
