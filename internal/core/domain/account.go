package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsDebitNormal reports whether the account's natural balance sits on the debit side.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a ledger account. Accounts referenced by a posted line are never changed.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	Code        string      `json:"code"`        // Stable chart-of-accounts code, unique
	Name        string      `json:"name"`        // Display name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string      `json:"description"` // Nullable
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// AccountRole is a well-known position in the chart of accounts that posting resolves by role,
// never by free-text code.
type AccountRole string

const (
	RoleARControl           AccountRole = "AR_CONTROL"
	RoleAPControl           AccountRole = "AP_CONTROL"
	RoleBank                AccountRole = "BANK"
	RoleFXGain              AccountRole = "FX_GAIN"
	RoleFXLoss              AccountRole = "FX_LOSS"
	RoleRevenue             AccountRole = "REVENUE"
	RoleExpense             AccountRole = "EXPENSE"
	RoleTaxPayable          AccountRole = "TAX_PAYABLE"
	RoleTaxReceivable       AccountRole = "TAX_RECEIVABLE"
	RoleUnallocatedReceipts AccountRole = "UNALLOCATED_RECEIPTS"
	RoleUnallocatedPayments AccountRole = "UNALLOCATED_PAYMENTS"
)

// AllAccountRoles lists every role a chart of accounts must map.
var AllAccountRoles = []AccountRole{
	RoleARControl, RoleAPControl, RoleBank, RoleFXGain, RoleFXLoss,
	RoleRevenue, RoleExpense, RoleTaxPayable, RoleTaxReceivable,
	RoleUnallocatedReceipts, RoleUnallocatedPayments,
}

// ExpectedType returns the account type an account must have to fill the role.
func (r AccountRole) ExpectedType() AccountType {
	switch r {
	case RoleARControl, RoleBank, RoleTaxReceivable, RoleUnallocatedPayments:
		return Asset
	case RoleAPControl, RoleTaxPayable, RoleUnallocatedReceipts:
		return Liability
	case RoleFXGain, RoleRevenue:
		return Income
	case RoleFXLoss, RoleExpense:
		return Expense
	default:
		return ""
	}
}
