package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/arledger/internal/export"
	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

func newBuildCommand() *cobra.Command {
	var (
		src       source
		search    string
		docType   string
		sortField string
		order     string
		csvDir    string
		statement bool
		asOf      string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the ledger of an account for a date range",
		Example: `  # Ledger for January with an opening balance
  ledger build --records sales.csv --invoices invoices.csv --opening 1000 --from 2024-01-01 --to 2024-01-31

  # Payments only, newest first, written to ./out
  ledger build --records sales.csv --from 2024-01-01 --to 2024-03-31 --type payment --sort date --order desc --csv out`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			field, err := ledger.ParseSortField(sortField)
			if err != nil {
				return err
			}

			dir, err := ledger.ParseSortOrder(order)
			if err != nil {
				return err
			}

			q := ledger.Query{Search: search, Sort: field, Order: dir}
			if docType != "" {
				q.Type = ledger.ParseDocumentType(docType)
			}

			svc, result, err := src.build(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if statement {
				var report *ledger.AgingReport

				if asOf != "" {
					day, err := parseDay("as-of", asOf)
					if err != nil {
						return err
					}

					r := svc.BuildAgingReport(result.Invoices, day)
					report = &r
				}

				fmt.Fprint(out, export.GenerateStatement(result, report))
			} else {
				fmt.Fprintln(out, renderLedger(svc.QueryLedger(result, q)))
				fmt.Fprintln(out, renderSummary(result.Summary))
			}

			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}

			if csvDir == "" {
				return nil
			}

			path, err := export.NewService(svc).ExportFile(cmd.Context(), export.Request{
				AccountID: result.AccountID,
				From:      result.From,
				To:        result.To,
				Query:     q,
			}, csvDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Exported to %s\n", path)

			return nil
		},
	}

	src.register(cmd)

	cmd.Flags().StringVarP(&search, "search", "q", "", "Case-insensitive search over reference, description, payment account and notes")
	cmd.Flags().StringVar(&docType, "type", "", "Only show one document type")
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort by date, reference, type, debit, credit or balance")
	cmd.Flags().StringVar(&order, "order", "asc", "Sort order (asc, desc)")
	cmd.Flags().StringVar(&csvDir, "csv", "", "Also write the view as CSV into this directory")
	cmd.Flags().BoolVar(&statement, "statement", false, "Print a plain-text statement instead of the table")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Add aging as of this day to the statement (YYYY-MM-DD)")

	return cmd
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

func renderLedger(txs []ledger.Transaction) string {
	rows := make([][]string, 0, len(txs))

	for _, tx := range txs {
		rows = append(rows, []string{
			tx.Date.Format(time.DateOnly),
			string(tx.DocumentType),
			tx.ReferenceNo,
			tx.Description,
			blankZero(tx.Debit.IsZero(), ledger.FormatAmount(tx.Debit)),
			blankZero(tx.Credit.IsZero(), ledger.FormatAmount(tx.Credit)),
			ledger.FormatAmount(tx.RunningBalance),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Type", "Reference", "Description", "Debit", "Credit", "Balance").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 4:
				return amountStyle
			default:
				return cellStyle
			}
		}).
		String()
}

func renderSummary(s ledger.LedgerSummary) string {
	inv := s.Invoices

	return fmt.Sprintf("Opening %s  Debit %s  Credit %s  Closing %s  (%d transactions)\n"+
		"Invoices %d: %d paid, %d partial, %d unpaid, pending %s",
		ledger.FormatAmount(s.OpeningBalance), ledger.FormatAmount(s.TotalDebit),
		ledger.FormatAmount(s.TotalCredit), ledger.FormatAmount(s.ClosingBalance), s.TransactionCount,
		inv.Count, inv.FullyPaid.Count, inv.PartiallyPaid.Count, inv.Unpaid.Count,
		ledger.FormatAmount(inv.PendingAmount))
}

func blankZero(zero bool, s string) string {
	if zero {
		return ""
	}

	return s
}
