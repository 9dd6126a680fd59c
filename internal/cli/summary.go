package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trade-journal/internal/errors"
	"trade-journal/internal/journal"
	"trade-journal/internal/metrics"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
	"trade-journal/pkg/utils"
)

// addSummaryCommands adds the dashboard, transfers, sync and export commands.
func addSummaryCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newSummaryCmd(app))
	rootCmd.AddCommand(newTransfersCmd(app))
	rootCmd.AddCommand(newSyncCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
}

func newSummaryCmd(app *App) *cobra.Command {
	var (
		status  string
		offline bool
	)

	cmd := &cobra.Command{
		Use:     "summary",
		Aliases: []string{"dashboard"},
		Short:   "Show dashboard aggregates",
		Long: `Show total P&L, deployed capital, return, max profit/loss, current capital,
buying power and risk for one tab of trades.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			tab, err := journal.ParseStatus(status)
			if err != nil {
				return errors.NewValidationError("status", status, err.Error())
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			summary, err := app.Journal.Dashboard(ctx, tab, offline)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}
			if offline {
				output.Dim("Offline: %s", store.FormatFreshness(app.Journal.Freshness()))
			}
			renderSummary(output, tabTitle(tab), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "active", "tab: active, closed or all")
	cmd.Flags().BoolVar(&offline, "offline", false, "summarise the local snapshot")
	return cmd
}

func tabTitle(tab models.TradeStatus) string {
	switch tab {
	case models.StatusActive:
		return "Active Trades"
	case models.StatusClosed:
		return "Closed Trades"
	}
	return "All Trades"
}

func renderSummary(output *Output, title string, s metrics.Summary) {
	lines := []string{
		fmt.Sprintf("Trades:            %d", s.TotalTrades),
		fmt.Sprintf("Total P&L:         %s", output.FormatPnL(s.TotalPnL)),
		fmt.Sprintf("Return:            %s", output.Colorize(s.TotalPnL, s.PercentageReturn+"%")),
		fmt.Sprintf("Deployed Capital:  %s (%s of capital)", utils.FormatRupees(s.DeployedCapital), utils.FormatPercent(s.DeployedPercent)),
		fmt.Sprintf("Max Profit:        %s", output.Green(utils.FormatRupees(s.TotalMaxProfit))),
		fmt.Sprintf("Max Loss:          %s", output.Red(utils.FormatRupees(s.TotalMaxLoss))),
		fmt.Sprintf("Total Risk:        %s", utils.FormatPercent(s.TotalRisk)),
		fmt.Sprintf("Current Capital:   %s (%s)", utils.FormatRupees(s.CurrentCapital), utils.FormatCompact(s.CurrentCapital)),
		fmt.Sprintf("Buying Power Left: %s", utils.FormatRupees(s.BuyingPowerUsed)),
	}
	output.Box(title, lines)
}

func newTransfersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "transfers",
		Short: "List capital transfers",
		Long:  "List deposits and withdrawals and the net capital they provide.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := app.context(cmd)
			defer cancel()

			list, err := app.Journal.Transfers(ctx)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(list)
			}

			output.Bold("Capital Transfers")
			output.Println()
			if len(list.Transfers) == 0 {
				output.Info("No transfers recorded.")
			} else {
				table := NewTable(output, "ID", "Date", "Type", "Amount", "Notes")
				for _, t := range list.Transfers {
					date := t.Date
					if parsed, ok := utils.ParseTime(t.Date); ok {
						date = utils.FormatDate(parsed)
					}
					amount := utils.FormatRupees(t.Amount.Decimal())
					if strings.EqualFold(string(t.Type), string(models.TransferWithdrawal)) {
						amount = output.Red("-" + amount)
					} else {
						amount = output.Green(amount)
					}
					table.AddRow(fmt.Sprintf("%d", t.ID), date, string(t.Type), amount, TruncateString(orDash(t.Notes), 30))
				}
				table.Render()
			}

			output.Println()
			output.Printf("  Deposits:     %s\n", utils.FormatRupees(list.Summary.TotalDeposits.Decimal()))
			output.Printf("  Withdrawals:  %s\n", utils.FormatRupees(list.Summary.TotalWithdrawals.Decimal()))
			output.Printf("  Net:          %s\n", utils.FormatRupees(list.Net()))
			return nil
		},
	}
}

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local snapshot",
		Long:  "Fetch every trade from the backend and replace the local snapshot used by --offline.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := app.context(cmd)
			defer cancel()

			result, err := app.Journal.Sync(ctx)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			output.Success("✓ Synced %d trades", result.Trades)
			output.Dim("Snapshot taken %s", result.At.In(utils.IndiaLocation).Format("02-Jan-2006 15:04 MST"))
			return nil
		},
	}
}
