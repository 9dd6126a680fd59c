package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"trade-journal/internal/errors"
	"trade-journal/internal/journal"
	"trade-journal/internal/models"
	"trade-journal/internal/store"
	"trade-journal/pkg/utils"
)

// addTradeCommands adds the trades command group.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:     "trades",
		Aliases: []string{"trade", "t"},
		Short:   "Browse and record trades",
		Long:    "List, inspect, add, modify, close and delete journal trades.",
	}

	cmd.AddCommand(newTradesListCmd(app))
	cmd.AddCommand(newTradesShowCmd(app))
	cmd.AddCommand(newTradesAddCmd(app))
	cmd.AddCommand(newTradesModifyCmd(app))
	cmd.AddCommand(newTradesCloseCmd(app))
	cmd.AddCommand(newTradesDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradesListCmd(app *App) *cobra.Command {
	var (
		status   string
		search   string
		page     int
		pageSize int
		offline  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		Long:  "List trades for one tab (active, closed or all), with search and pagination.",
		Example: `  tradejournal trades list --status active
  tradejournal trades list --search nifty --page 2
  tradejournal trades list --offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			tab, err := journal.ParseStatus(status)
			if err != nil {
				return errors.NewValidationError("status", status, err.Error())
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			result, err := app.Journal.List(ctx, journal.Query{
				Status:   tab,
				Search:   search,
				Page:     page,
				PageSize: pageSize,
				Offline:  offline,
			})
			if output.IsJSON() {
				if err != nil {
					return err
				}
				return output.JSON(result)
			}

			if err != nil {
				renderTrades(output, result, tab)
				if errors.Is(err, errors.ErrStoreDisabled) {
					output.Dim("The snapshot store is disabled; enable [store] in config.toml for offline reads.")
				} else {
					output.Dim("Could not reach the backend. Retry, or use --offline to read the last snapshot.")
				}
				return err
			}

			if offline {
				output.Dim("Offline: %s", store.FormatFreshness(app.Journal.Freshness()))
			}
			renderTrades(output, result, tab)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "tab: active, closed or all")
	cmd.Flags().StringVarP(&search, "search", "q", "", "search instrument, setup, strategy and notes")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "trades per page (default from config)")
	cmd.Flags().BoolVar(&offline, "offline", false, "read the local snapshot instead of the backend")

	return cmd
}

func renderTrades(output *Output, page journal.Page, tab models.TradeStatus) {
	output.Bold("%s (page %d of %d, %d total)", tabTitle(tab), page.Page, page.TotalPages, page.Total)
	output.Println()

	if len(page.Items) == 0 {
		output.Info("No trades found.")
		return
	}

	table := NewTable(output, "ID", "Date", "Instrument", "Bias", "Strategy", "Lots", "P&L", "Max Profit", "Max Loss", "Ratio", "Status")
	for _, v := range page.Items {
		table.AddRow(
			fmt.Sprintf("%d", v.ID),
			formatDisplayDate(v.Date),
			fmt.Sprintf("%s %s", v.Instrument.Name, output.DimText(string(v.Instrument.Type))),
			v.Bias,
			TruncateString(v.Strategy, 18),
			v.Quantity,
			pnlCell(output, v),
			v.MaxProfit.Value,
			v.MaxLoss.Value,
			RatioBar(v.Ratio, 10),
			string(v.Status),
		)
	}
	table.Render()

	if page.Page < page.TotalPages {
		output.Println()
		output.Dim("Next page: --page %d", page.Page+1)
	}
}

func pnlCell(output *Output, v models.TradeView) string {
	if !v.IsClosed() {
		return output.DimText("-")
	}
	return output.Colorize(v.ProfitLoss.Amount, fmt.Sprintf("%s (%s)", v.ProfitLoss.Value, v.ProfitLoss.Percentage))
}

func formatDisplayDate(d models.DisplayDate) string {
	if d.Month == "" {
		return "-"
	}
	return fmt.Sprintf("%02d %s", d.Day, d.Month)
}

func newTradesShowCmd(app *App) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			var view *models.TradeView
			if offline {
				view, err = app.Journal.GetOffline(ctx, id)
			} else {
				view, err = app.Journal.Get(ctx, id)
			}
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(view)
			}
			renderTrade(output, *view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "read the local snapshot instead of the backend")
	return cmd
}

func renderTrade(output *Output, v models.TradeView) {
	lines := []string{
		fmt.Sprintf("Instrument:  %s (%s)", v.Instrument.Name, v.Instrument.Type),
		fmt.Sprintf("Opened:      %s", formatDisplayDate(v.Date)),
		fmt.Sprintf("Bias:        %s", v.Bias),
		fmt.Sprintf("Setup:       %s", orDash(v.Setup)),
		fmt.Sprintf("Strategy:    %s", orDash(v.Strategy)),
		fmt.Sprintf("Size:        %d lots, %s", v.Lots, v.Quantity),
		fmt.Sprintf("Capital:     %s", v.Capital.Value),
		fmt.Sprintf("Max Profit:  %s (%s)", output.Green(v.MaxProfit.Value), v.MaxProfit.Percentage),
		fmt.Sprintf("Max Loss:    %s (%s)", output.Red(v.MaxLoss.Value), v.MaxLoss.Percentage),
		fmt.Sprintf("Ratio:       %s %.0f%%", RatioBar(v.Ratio, 20), v.Ratio*100),
		fmt.Sprintf("Status:      %s", v.Status),
	}
	if v.IsClosed() {
		lines = append(lines,
			fmt.Sprintf("P&L:         %s", pnlCell(output, v)),
			fmt.Sprintf("Closed:      %s", orDash(v.ClosingDate)),
		)
	}
	if v.Notes != "" {
		lines = append(lines, fmt.Sprintf("Notes:       %s", TruncateString(v.Notes, 60)))
	}
	output.Box(fmt.Sprintf("Trade #%d", v.ID), lines)

	if len(v.Legs) == 0 {
		return
	}
	output.Println()
	output.Bold("Legs")
	table := NewTable(output, "Position", "Type", "Strike", "Premium", "Lots", "Expiry")
	for _, l := range v.Legs {
		expiry := "-"
		if !l.ExpiryDate.IsZero() {
			expiry = utils.FormatDate(l.ExpiryDate)
		}
		table.AddRow(
			string(l.Position),
			l.OptionType.WireCode(),
			l.StrikePrice.String(),
			l.Premium.StringFixed(2),
			fmt.Sprintf("%d", l.Lots),
			expiry,
		)
	}
	table.Render()
}

func newTradesAddCmd(app *App) *cobra.Command {
	var (
		instrument string
		bias       string
		setup      string
		strategy   string
		capital    string
		lots       int
		maxProfit  string
		maxLoss    string
		notes      string
		legs       []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new trade",
		Long: `Record a new trade. Each --leg is POSITION:TYPE:STRIKE:PREMIUM[:LOTS[:EXPIRY]].
With a buy and a sell leg, max profit and max loss are derived from the spread
unless given explicitly.`,
		Example: `  tradejournal trades add --instrument NIFTY --bias bullish --setup Breakout \
    --strategy "Bull put spread" --capital 100000 \
    --leg B:PE:22000:40:1:2025-01-30 --leg S:PE:22100:90:1:2025-01-30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			draft := models.TradeDraft{
				Instrument: instrument,
				Bias:       models.Bias(strings.ToUpper(bias)),
				Setup:      setup,
				Strategy:   strategy,
				MainLots:   lots,
				Notes:      notes,
			}

			var err error
			if draft.Capital, err = parseAmount("capital", capital); err != nil {
				return err
			}
			if maxProfit != "" {
				if draft.MaxProfit, err = parseAmount("max-profit", maxProfit); err != nil {
					return err
				}
			}
			if maxLoss != "" {
				if draft.MaxLoss, err = parseAmount("max-loss", maxLoss); err != nil {
					return err
				}
			}
			if draft.Legs, err = parseLegs(legs); err != nil {
				return err
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			view, err := app.Journal.Create(ctx, draft)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(view)
			}
			output.Success("✓ Trade #%d recorded", view.ID)
			renderTrade(output, *view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&instrument, "instrument", "i", "", "instrument symbol, e.g. NIFTY")
	cmd.Flags().StringVarP(&bias, "bias", "b", "", "bullish, bearish or neutral")
	cmd.Flags().StringVar(&setup, "setup", "", "setup name")
	cmd.Flags().StringVar(&strategy, "strategy", "", "strategy, e.g. \"Bull put spread\"")
	cmd.Flags().StringVarP(&capital, "capital", "c", "", "capital allocated in INR")
	cmd.Flags().IntVar(&lots, "lots", 0, "main lots (default from the first leg)")
	cmd.Flags().StringVar(&maxProfit, "max-profit", "", "override the derived max profit")
	cmd.Flags().StringVar(&maxLoss, "max-loss", "", "override the derived max loss")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().StringArrayVar(&legs, "leg", nil, "spread leg POSITION:TYPE:STRIKE:PREMIUM[:LOTS[:EXPIRY]] (repeatable)")
	cmd.MarkFlagRequired("instrument")
	cmd.MarkFlagRequired("bias")
	cmd.MarkFlagRequired("capital")

	return cmd
}

func newTradesModifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modify <id>",
		Short: "Modify a trade",
		Long:  "Change fields of an active or closed trade. Only the flags given are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			update, err := updateFromFlags(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			view, err := app.Journal.Modify(ctx, id, update)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(view)
			}
			output.Success("✓ Trade #%d updated", view.ID)
			renderTrade(output, *view)
			return nil
		},
	}

	cmd.Flags().String("instrument", "", "instrument symbol")
	cmd.Flags().String("bias", "", "bullish, bearish or neutral")
	cmd.Flags().String("setup", "", "setup name")
	cmd.Flags().String("strategy", "", "strategy")
	cmd.Flags().String("capital", "", "capital allocated in INR")
	cmd.Flags().Int("lots", 0, "main lots")
	cmd.Flags().String("max-profit", "", "max profit")
	cmd.Flags().String("max-loss", "", "max loss")
	cmd.Flags().String("notes", "", "notes")
	cmd.Flags().StringArray("leg", nil, "replace legs (repeatable)")

	return cmd
}

// updateFromFlags builds an update from the flags that were set.
func updateFromFlags(cmd *cobra.Command) (models.TradeUpdate, error) {
	var u models.TradeUpdate
	flags := cmd.Flags()

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	u.Instrument = str("instrument")
	u.Setup = str("setup")
	u.Strategy = str("strategy")
	u.Notes = str("notes")

	if b := str("bias"); b != nil {
		bias := models.Bias(strings.ToUpper(*b))
		u.Bias = &bias
	}
	if flags.Changed("lots") {
		lots, _ := flags.GetInt("lots")
		u.MainLots = &lots
	}

	for name, target := range map[string]**decimal.Decimal{
		"capital":    &u.Capital,
		"max-profit": &u.MaxProfit,
		"max-loss":   &u.MaxLoss,
	} {
		if s := str(name); s != nil {
			d, err := parseAmount(name, *s)
			if err != nil {
				return u, err
			}
			*target = &d
		}
	}

	if flags.Changed("leg") {
		specs, _ := flags.GetStringArray("leg")
		legs, err := parseLegs(specs)
		if err != nil {
			return u, err
		}
		u.Legs = legs
	}
	return u, nil
}

func newTradesCloseCmd(app *App) *cobra.Command {
	var (
		pnl   string
		date  string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Close an active trade",
		Long:  "Book the realized P&L of an active trade. A trade can be closed once.",
		Example: `  tradejournal trades close 42 --pnl 2500 --notes "target hit"
  tradejournal trades close 42 --pnl -1800 --date 2025-01-28`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			req := models.CloseRequest{Notes: notes}
			if req.RealizedPnL, err = parseAmount("pnl", pnl); err != nil {
				return err
			}
			if date != "" {
				t, ok := utils.ParseTime(date)
				if !ok {
					return errors.NewValidationError("date", date, "want YYYY-MM-DD")
				}
				req.ClosingDate = t
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			view, err := app.Journal.Close(ctx, id, req)
			if err != nil {
				if errors.Is(err, errors.ErrTradeClosed) {
					output.Warning("Trade #%d is already closed.", id)
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(view)
			}
			output.Success("✓ Trade #%d closed with %s", view.ID, output.FormatPnL(view.ProfitLoss.Amount))
			return nil
		},
	}

	cmd.Flags().StringVar(&pnl, "pnl", "", "realized P&L in INR (negative for a loss)")
	cmd.Flags().StringVar(&date, "date", "", "closing date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "closing notes")
	cmd.MarkFlagRequired("pnl")

	return cmd
}

func newTradesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a trade",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := app.context(cmd)
			defer cancel()

			if err := app.Journal.Delete(ctx, id); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"deleted": id})
			}
			output.Success("✓ Trade #%d deleted", id)
			return nil
		},
	}
}
