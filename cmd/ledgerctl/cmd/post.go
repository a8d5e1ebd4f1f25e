package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/spf13/cobra"
)

var actor string

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post source documents to the general ledger",
}

var postInvoiceCmd = &cobra.Command{
	Use:   "invoice INVOICE_ID...",
	Short: "Post invoices",
	Long:  "Posts each invoice in turn. Already posted invoices are reported and skipped.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer l.close()

		var failed []error
		for _, id := range args {
			entry, created, err := l.services.InvoicePoster.PostInvoiceToGL(cmd.Context(), id, actor)
			if err != nil {
				slog.Error("Failed to post invoice", slog.String("invoice_id", id), slog.String("error", err.Error()))
				failed = append(failed, fmt.Errorf("invoice %s: %w", id, err))
				continue
			}
			slog.Info("Invoice posted", slog.String("invoice_id", id), slog.String("journal_id", entry.EntryID), slog.Bool("created", created))
			if err := render(cmd.OutOrStdout(), dto.PostInvoiceResponse{Created: created, Entry: dto.ToJournalEntryResponse(entry)}); err != nil {
				return err
			}
		}
		return errors.Join(failed...)
	},
}

var postPaymentCmd = &cobra.Command{
	Use:   "payment PAYMENT_ID...",
	Short: "Post payments",
	Long:  "Posts each payment in turn, settling its allocations and booking realized FX.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer l.close()

		var failed []error
		for _, id := range args {
			res, err := l.services.PaymentPoster.PostPaymentToGL(cmd.Context(), id, actor)
			if err != nil {
				slog.Error("Failed to post payment", slog.String("payment_id", id), slog.String("error", err.Error()))
				failed = append(failed, fmt.Errorf("payment %s: %w", id, err))
				continue
			}
			if err := render(cmd.OutOrStdout(), dto.ToPostPaymentResponse(res)); err != nil {
				return err
			}
		}
		return errors.Join(failed...)
	},
}

var reverseCmd = &cobra.Command{
	Use:   "reverse ENTRY_ID",
	Short: "Reverse a journal entry as of today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := openLedger(cmd.Context())
		if err != nil {
			return err
		}
		defer l.close()

		reversal, err := l.services.Journal.ReverseEntry(cmd.Context(), args[0], actor)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), dto.ToJournalEntryResponse(reversal))
	},
}

func init() {
	for _, c := range []*cobra.Command{postInvoiceCmd, postPaymentCmd, reverseCmd} {
		c.Flags().StringVar(&actor, "actor", "", "actor recorded on created entries")
		_ = c.MarkFlagRequired("actor")
	}
	postCmd.AddCommand(postInvoiceCmd, postPaymentCmd)
}
