package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newExamplesCmd())
	rootCmd.AddCommand(newQuickstartCmd())
}

type helpEntry struct {
	cmd  string
	desc string
}

var commandCategories = []struct {
	name     string
	commands []helpEntry
}{
	{
		name: "Trades",
		commands: []helpEntry{
			{"trades list", "Browse a tab with search and pagination"},
			{"trades show <id>", "Trade detail with spread legs"},
			{"trades add", "Record a new spread"},
			{"trades modify <id>", "Change fields of a trade"},
			{"trades close <id> --pnl", "Book realized P&L"},
			{"trades delete <id>", "Delete a trade"},
		},
	},
	{
		name: "Capital",
		commands: []helpEntry{
			{"summary", "Dashboard aggregates for a tab"},
			{"transfers", "Deposits, withdrawals and net capital"},
		},
	},
	{
		name: "Offline",
		commands: []helpEntry{
			{"sync", "Refresh the local snapshot"},
			{"trades list --offline", "Read the last snapshot"},
			{"export --format csv|json", "Export a tab with derived figures"},
		},
	},
	{
		name: "Utilities",
		commands: []helpEntry{
			{"config show/path/validate", "Configuration"},
			{"version", "Version information"},
			{"commands", "List all commands"},
			{"examples", "Common workflows"},
			{"quickstart", "New user guide"},
		},
	},
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Trade Journal Commands")
			output.Println()

			for _, cat := range commandCategories {
				output.Bold(cat.name)
				for _, c := range cat.commands {
					output.Printf("  %-30s %s\n", output.Cyan(c.cmd), c.desc)
				}
				output.Println()
			}

			output.Dim("Use 'tradejournal help <command>' for detailed help on any command")
			return nil
		},
	}
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Record a Bull Put Spread",
					commands: []string{
						"tradejournal trades add -i NIFTY -b bullish --setup Breakout --strategy \"Bull put spread\" -c 100000 \\",
						"    --leg B:PE:22000:40:1:2025-01-30 --leg S:PE:22100:90:1:2025-01-30",
						"tradejournal trades list -s active   # Max profit derived from the legs",
					},
				},
				{
					title: "Close a Trade",
					commands: []string{
						"tradejournal trades close 42 --pnl 2500 --notes \"target hit\"",
						"tradejournal trades close 43 --pnl -1800   # Negative for a loss",
						"tradejournal summary -s closed             # Realized P&L and return",
					},
				},
				{
					title: "Review Capital",
					commands: []string{
						"tradejournal transfers                    # Net deposits",
						"tradejournal summary -s all               # Current capital and risk",
					},
				},
				{
					title: "Work Offline",
					commands: []string{
						"tradejournal sync                         # Take a snapshot",
						"tradejournal trades list --offline -q nifty",
						"tradejournal summary --offline",
					},
				},
				{
					title: "Scripting",
					commands: []string{
						"tradejournal trades list --json | jq '.items[].maxProfit'",
						"tradejournal summary --json",
					},
				},
			}

			for _, ex := range examples {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}
			return nil
		},
	}
}

func newQuickstartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quickstart",
		Short: "New user guide",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Trade Journal - Quick Start Guide")
			output.Println()

			steps := []struct {
				title string
				desc  string
				cmd   string
			}{
				{"Point at the Backend", "Set api.base_url in config.toml.", "tradejournal config path"},
				{"Check the Connection", "List your trades.", "tradejournal trades list"},
				{"Record a Trade", "Add a spread with its two legs.", "tradejournal examples"},
				{"Close It", "Book the realized P&L once the trade is done.", "tradejournal trades close <id> --pnl <amount>"},
				{"Review", "See return, risk and current capital.", "tradejournal summary -s all"},
			}

			for i, s := range steps {
				output.Printf("%s Step %d: %s\n", output.Cyan("→"), i+1, output.BoldText(s.title))
				output.Printf("  %s\n", s.desc)
				output.Printf("  %s\n\n", output.DimText(s.cmd))
			}

			output.Bold("Leg Format")
			output.Println()
			output.Printf("  %s\n", output.Cyan("POSITION:TYPE:STRIKE:PREMIUM[:LOTS[:EXPIRY]]"))
			output.Printf("  POSITION is B or S, TYPE is CE or PE, EXPIRY is YYYY-MM-DD\n")
			output.Println()

			output.Bold("Important Notes")
			output.Println()
			output.Printf("  %s Closing a trade stores the realized P&L in its max profit field\n", output.Yellow("⚠"))
			output.Printf("  %s A trade can be closed only once\n", output.Yellow("⚠"))
			output.Printf("  %s Offline reads show the snapshot from the last sync\n", output.Yellow("⚠"))
			return nil
		},
	}
}
