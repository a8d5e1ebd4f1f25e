package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/platform/config"
)

// ChartOfAccounts resolves posting accounts by role. It is built and validated once at startup.
type ChartOfAccounts struct {
	accountRepo portsrepo.AccountReader
	byRole      map[domain.AccountRole]domain.Account
	byTaxCode   map[string]domain.Account
}

// NewChartOfAccounts resolves every role and tax code of the mapping and checks account types.
// All problems are reported together.
func NewChartOfAccounts(ctx context.Context, accountRepo portsrepo.AccountReader, mapping config.RoleMapping) (*ChartOfAccounts, error) {
	c := &ChartOfAccounts{
		accountRepo: accountRepo,
		byRole:      make(map[domain.AccountRole]domain.Account, len(domain.AllAccountRoles)),
		byTaxCode:   make(map[string]domain.Account, len(mapping.TaxAccounts)),
	}

	var problems []error
	for _, role := range domain.AllAccountRoles {
		code, ok := mapping.Roles[role]
		if !ok || code == "" {
			problems = append(problems, fmt.Errorf("role %s is not mapped", role))
			continue
		}
		acc, err := c.lookup(ctx, code)
		if err != nil {
			problems = append(problems, fmt.Errorf("role %s: %w", role, err))
			continue
		}
		if acc.AccountType != role.ExpectedType() {
			problems = append(problems, fmt.Errorf("role %s: account %s is %s, want %s", role, code, acc.AccountType, role.ExpectedType()))
			continue
		}
		c.byRole[role] = *acc
	}

	for taxCode, code := range mapping.TaxAccounts {
		acc, err := c.lookup(ctx, code)
		if err != nil {
			problems = append(problems, fmt.Errorf("tax code %s: %w", taxCode, err))
			continue
		}
		if acc.AccountType != domain.Asset && acc.AccountType != domain.Liability {
			problems = append(problems, fmt.Errorf("tax code %s: account %s is %s, want ASSET or LIABILITY", taxCode, code, acc.AccountType))
			continue
		}
		c.byTaxCode[taxCode] = *acc
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: invalid account role mapping: %w", apperrors.ErrValidation, errors.Join(problems...))
	}
	return c, nil
}

func (c *ChartOfAccounts) lookup(ctx context.Context, code string) (*domain.Account, error) {
	acc, err := c.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", code, err)
	}
	if !acc.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, code)
	}
	return acc, nil
}

// Account returns the account mapped to role.
func (c *ChartOfAccounts) Account(role domain.AccountRole) domain.Account {
	return c.byRole[role]
}

// TaxAccount returns the account for a tax code, or the fallback role's account.
func (c *ChartOfAccounts) TaxAccount(taxCode string, fallback domain.AccountRole) domain.Account {
	if acc, ok := c.byTaxCode[taxCode]; ok {
		return acc
	}
	return c.byRole[fallback]
}

// AccountByCode resolves an explicit account code carried on a document.
func (c *ChartOfAccounts) AccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	acc, err := c.lookup(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		return nil, err
	}
	return acc, nil
}
