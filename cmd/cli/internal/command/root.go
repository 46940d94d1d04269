// Package command holds the cobra commands of the ledgerbridge CLI.
package command

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/config"
	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
)

// Deps are the collaborators shared by every command.
type Deps struct {
	Connector ledger.Connector
	// Ledger holds the env defaults for connection fields left empty by flags and mapping files.
	Ledger config.Ledger
	// Confirm asks the user a yes/no question.
	Confirm func(title string) (bool, error)
}

type ledgerFlags struct {
	server string
	budget string
}

func (f ledgerFlags) config() ledger.Config {
	return ledger.Config{ServerURL: f.server, BudgetID: f.budget}
}

func NewRoot(deps Deps) *cobra.Command {
	var (
		verbose bool
		flags   ledgerFlags
	)

	root := &cobra.Command{
		Use:           "ledgerbridge",
		Short:         "Map bank exports onto ledger transactions and import them",
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().StringVar(&flags.server, "server", "", "ledger server url (default $LEDGER_URL)")
	root.PersistentFlags().StringVar(&flags.budget, "budget", "", "ledger budget id (default $LEDGER_BUDGET_ID)")

	root.AddCommand(
		newImportCmd(deps, &flags),
		newAccountsCmd(deps, &flags),
		newBudgetsCmd(deps, &flags),
	)

	return root
}
