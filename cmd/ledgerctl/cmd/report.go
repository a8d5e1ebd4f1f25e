package cmd

import (
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/utils"
	"github.com/spf13/cobra"
)

var (
	fromDate  string
	toDate    string
	asOfDate  string
	side      string
	buckets   string
	reportCcy string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print ledger reports",
}

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Per-account activity for entries dated in a range",
	Example: `  ledgerctl report trial-balance --from 2024-01-01 --to 2024-12-31
  ledgerctl report trial-balance --from 2024-01-01 --to 2024-03-31 --format csv > q1.csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := time.Parse(time.DateOnly, fromDate)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := time.Parse(time.DateOnly, toDate)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}

		l, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer l.close()

		tb, err := l.services.Reporting.BuildTrialBalance(cmd.Context(), from, to)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), dto.ToTrialBalanceResponse(tb))
	},
}

var agingCmd = &cobra.Command{
	Use:   "aging",
	Short: "Open receivables or payables by overdue bucket",
	Example: `  ledgerctl report aging --side ar
  ledgerctl report aging --side ap --as-of 2024-06-30 --buckets 15,15,30 --currency USD --format csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asOf := domain.DateOnly(time.Now())
		if asOfDate != "" {
			var err error
			if asOf, err = time.Parse(time.DateOnly, asOfDate); err != nil {
				return fmt.Errorf("--as-of: %w", err)
			}
		}
		widths, err := utils.ParseBucketWidths(buckets)
		if err != nil {
			return fmt.Errorf("--buckets: %w", err)
		}

		l, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer l.close()

		build := l.services.Reporting.BuildARAging
		switch side {
		case "ar":
		case "ap":
			build = l.services.Reporting.BuildAPAging
		default:
			return fmt.Errorf("--side must be ar or ap, got %q", side)
		}

		report, err := build(cmd.Context(), asOf, widths, reportCcy)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), dto.ToAgingReportResponse(report))
	},
}

func init() {
	reportCmd.PersistentFlags().StringVar(&format, "format", "json", "output format: json or csv")

	trialBalanceCmd.Flags().StringVar(&fromDate, "from", "", "range start, YYYY-MM-DD")
	trialBalanceCmd.Flags().StringVar(&toDate, "to", "", "range end, inclusive, YYYY-MM-DD")
	_ = trialBalanceCmd.MarkFlagRequired("from")
	_ = trialBalanceCmd.MarkFlagRequired("to")

	agingCmd.Flags().StringVar(&side, "side", "ar", "ar for receivables, ap for payables")
	agingCmd.Flags().StringVar(&asOfDate, "as-of", "", "aging date, YYYY-MM-DD (default today)")
	agingCmd.Flags().StringVar(&buckets, "buckets", "", "comma-separated bucket widths in days (default from AGING_BUCKETS)")
	agingCmd.Flags().StringVar(&reportCcy, "currency", "", "reporting currency (default base currency)")

	reportCmd.AddCommand(trialBalanceCmd, agingCmd)
}
