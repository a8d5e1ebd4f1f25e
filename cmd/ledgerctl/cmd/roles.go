package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Inspect the account role mapping",
}

var rolesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Resolve every account role against the chart of accounts",
	Long: `check loads the role mapping file and resolves each role to an active
account of the expected type. Every problem is reported, and the command
fails if any role cannot be resolved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer l.close()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ROLE\tCODE\tNAME\tTYPE")
		for _, role := range domain.AllAccountRoles {
			acc := l.chart.Account(role)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", role, acc.Code, acc.Name, acc.AccountType)
		}
		return tw.Flush()
	},
}

func init() {
	rolesCmd.AddCommand(rolesCheckCmd)
}
