package accounting

import (
	"fmt"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NaturalBalance signs debit minus credit by the account type's natural side.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func NaturalBalance(debit, credit decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	net := debit.Sub(credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Income:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ValidateLine checks that exactly one side of the line is non-zero and neither side is negative.
func ValidateLine(line domain.LineDraft) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("%w: line amounts must not be negative (account %s)", apperrors.ErrValidation, line.AccountID)
	}
	if line.Debit.IsZero() == line.Credit.IsZero() {
		return fmt.Errorf("%w: exactly one of debit or credit must be non-zero (account %s)", apperrors.ErrValidation, line.AccountID)
	}
	return nil
}

// ValidateEntryBalance checks that rounded debits equal rounded credits exactly in the currency's
// minor units.
func ValidateEntryBalance(lines []domain.LineDraft, currencyCode string) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	}
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(Round(l.Debit, currencyCode))
		credits = credits.Add(Round(l.Credit, currencyCode))
	}
	if !debits.Equal(credits) {
		p := Precision(currencyCode)
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", apperrors.ErrUnbalancedEntry,
			debits.StringFixed(p), credits.StringFixed(p))
	}
	return nil
}
