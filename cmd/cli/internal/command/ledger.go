package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/ledgerbridge/internal/ledger"
)

func newAccountsCmd(deps Deps, flags *ledgerFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the open accounts of the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := connect(deps, flags)
			if err != nil {
				return err
			}

			accounts, err := client.ListAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("list accounts: %w", err)
			}

			t := newTable("ID", "Name")
			for _, a := range accounts {
				t.Row(a.ID, a.Name)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			return nil
		},
	}
}

func newBudgetsCmd(deps Deps, flags *ledgerFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "budgets",
		Short: "List the budgets on the ledger server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := connect(deps, flags)
			if err != nil {
				return err
			}

			budgets, err := client.ListBudgets(cmd.Context())
			if err != nil {
				return fmt.Errorf("list budgets: %w", err)
			}

			t := newTable("ID", "Name")
			for _, b := range budgets {
				t.Row(b.ID, b.Name)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			return nil
		},
	}
}

func connect(deps Deps, flags *ledgerFlags) (ledger.Client, error) {
	client, err := deps.Connector.Connect(deps.Ledger.Resolve(flags.config()))
	if err != nil {
		return nil, fmt.Errorf("connect to ledger: %w", err)
	}

	return client, nil
}
