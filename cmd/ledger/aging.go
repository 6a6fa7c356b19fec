package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/arledger/internal/ledger"
)

func newAgingCommand() *cobra.Command {
	var (
		src  source
		asOf string
	)

	cmd := &cobra.Command{
		Use:     "aging",
		Short:   "Classify the outstanding invoices of a period by age",
		Example: `  ledger aging --records sales.csv --invoices invoices.csv --from 2024-01-01 --to 2024-03-31 --as-of 2024-04-15`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay("as-of", asOf)
			if err != nil {
				return err
			}

			svc, result, err := src.build(cmd)
			if err != nil {
				return err
			}

			report := svc.BuildAgingReport(result.Invoices, day)
			fmt.Fprintln(cmd.OutOrStdout(), renderAging(report))

			return nil
		},
	}

	src.register(cmd)

	cmd.Flags().StringVar(&asOf, "as-of", "", "Day the invoice ages are measured against (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("as-of")

	return cmd
}

func renderAging(report ledger.AgingReport) string {
	var rows [][]string

	for _, b := range report.Buckets {
		rows = append(rows, []string{b.Label, strconv.Itoa(b.Count), ledger.FormatAmount(b.Amount), ""})

		for _, e := range b.Entries {
			rows = append(rows, []string{
				"  " + e.Invoice.InvoiceNo,
				e.Invoice.Date.Format(time.DateOnly),
				ledger.FormatAmount(e.Invoice.PendingAmount),
				strconv.Itoa(e.DaysPast) + "d",
			})
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Bucket", "Count", "Pending", "Age").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			if col == 2 {
				return amountStyle
			}

			return cellStyle
		})

	return fmt.Sprintf("Aging as of %s\n%s\nTotal outstanding %s  High risk %d (%s)  Medium risk %d (%s)",
		report.AsOf.Format(time.DateOnly), t.String(),
		ledger.FormatAmount(report.TotalOutstanding),
		report.HighRiskCount, ledger.FormatAmount(report.HighRiskAmount),
		report.MediumRiskCount, ledger.FormatAmount(report.MediumRiskAmount))
}
