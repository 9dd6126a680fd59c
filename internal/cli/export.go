package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"trade-journal/internal/errors"
	"trade-journal/internal/journal"
	"trade-journal/internal/models"
)

var exportHeader = []string{
	"id", "instrument", "type", "bias", "setup", "strategy", "lots", "quantity",
	"capital", "max_profit", "max_loss", "pnl", "pnl_percent", "ratio",
	"status", "closing_date", "notes",
}

func newExportCmd(app *App) *cobra.Command {
	var (
		format  string
		outFile string
		status  string
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trades to CSV or JSON",
		Long: `Export every trade of a tab with its derived figures. Amounts are plain
decimals so the file opens cleanly in a spreadsheet. Use -o - for stdout.`,
		Example: `  tradejournal export --status closed
  tradejournal export --format json -o trades.json
  tradejournal export --offline -o - | head`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			format = strings.ToLower(format)
			if format != "csv" && format != "json" {
				return errors.NewValidationError("format", format, "want csv or json")
			}
			tab, err := journal.ParseStatus(status)
			if err != nil {
				return errors.NewValidationError("status", status, err.Error())
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			views, err := app.Journal.Views(ctx, tab, offline)
			if err != nil {
				return err
			}

			if outFile == "" {
				outFile = fmt.Sprintf("trades_%s.%s", strings.ToLower(tabName(tab)), format)
			}

			var w io.Writer = cmd.OutOrStdout()
			if outFile != "-" {
				file, err := os.Create(outFile)
				if err != nil {
					output.Error("Failed to create file: %v", err)
					return err
				}
				defer file.Close()
				w = file
			}

			if format == "json" {
				err = (&Output{writer: w}).JSON(views)
			} else {
				err = writeTradesCSV(w, views)
			}
			if err != nil {
				return err
			}

			if outFile != "-" {
				output.Success("✓ Exported %d trades to %s", len(views), outFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format (csv, json)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "output file path, - for stdout")
	cmd.Flags().StringVarP(&status, "status", "s", "all", "tab: active, closed or all")
	cmd.Flags().BoolVar(&offline, "offline", false, "export the local snapshot")
	return cmd
}

func tabName(tab models.TradeStatus) string {
	if tab == "" {
		return "all"
	}
	return string(tab)
}

func writeTradesCSV(w io.Writer, views []models.TradeView) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	for _, v := range views {
		writer.Write([]string{
			fmt.Sprintf("%d", v.ID),
			csvText(v.Instrument.Name),
			string(v.Instrument.Type),
			v.Bias,
			csvText(v.Setup),
			csvText(v.Strategy),
			fmt.Sprintf("%d", v.Lots),
			v.Quantity,
			v.Capital.Amount.StringFixed(2),
			v.MaxProfit.Amount.StringFixed(2),
			v.MaxLoss.Amount.StringFixed(2),
			v.ProfitLoss.Amount.StringFixed(2),
			v.ProfitLoss.Percentage,
			fmt.Sprintf("%.4f", v.Ratio),
			string(v.Status),
			v.ClosingDate,
			csvText(v.Notes),
		})
	}

	writer.Flush()
	return writer.Error()
}

// csvText neutralises user text that a spreadsheet would run as a formula.
func csvText(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	switch trimmed[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
