package domain

// RootType is the top-level statement classification of an account.
type RootType string

const (
	RootAsset     RootType = "asset"
	RootLiability RootType = "liability"
	RootEquity    RootType = "equity"
	RootRevenue   RootType = "revenue"
	RootExpense   RootType = "expense"
)

// IsProfitAndLoss reports whether the root type belongs to the P&L statement.
func (r RootType) IsProfitAndLoss() bool {
	return r == RootRevenue || r == RootExpense
}

// IsBalanceSheet reports whether the root type belongs to the balance sheet.
func (r RootType) IsBalanceSheet() bool {
	return r == RootAsset || r == RootLiability || r == RootEquity
}

// AccountKind refines the root type for transaction rules.
type AccountKind string

const (
	KindReceivable AccountKind = "receivable"
	KindPayable    AccountKind = "payable"
	KindBank       AccountKind = "bank"
	KindCash       AccountKind = "cash"
	KindIncome     AccountKind = "income"
	KindExpense    AccountKind = "expense"
	KindTax        AccountKind = "tax"
	KindOther      AccountKind = "other"
)

// RequiresParty reports whether postings to this kind must name a party.
func (k AccountKind) RequiresParty() bool {
	return k == KindReceivable || k == KindPayable
}

// BalanceSide is the normal balance side an account is expected to carry.
type BalanceSide string

const (
	SideDebit  BalanceSide = "debit"
	SideCredit BalanceSide = "credit"
)

// Account categories used for current vs non-current classification.
const (
	CategoryCash             = "cash"
	CategoryBank             = "bank"
	CategoryReceivable       = "accounts_receivable"
	CategoryInventory        = "inventory"
	CategoryPrepaidExpenses  = "prepaid_expenses"
	CategoryFixedAsset       = "fixed_asset"
	CategoryInvestment       = "investment"
	CategoryIntangible       = "intangible"
	CategoryPayable          = "accounts_payable"
	CategoryShortTermLoan    = "short_term_loan"
	CategoryAccruedLiability = "accrued_liability"
	CategoryTaxesPayable     = "taxes_payable"
	CategoryLongTermLoan     = "long_term_loan"
	CategoryShareCapital     = "share_capital"
	CategoryRetainedEarnings = "retained_earnings"
	CategoryReserves         = "reserves"
)

// Account is chart-of-accounts metadata owned by the account directory.
// This engine reads it and never mutates it.
type Account struct {
	ID            string
	CompanyID     string
	Code          string
	Name          string
	RootType      RootType
	Kind          AccountKind
	Category      string
	Currency      string
	IsGroup       bool
	IsActive      bool
	IsFrozen      bool
	BalanceMustBe BalanceSide
	ParentID      string
	Depth         int
}

// CanPost reports whether the account may receive postings at all.
// Group, inactive and frozen accounts cannot.
func (a *Account) CanPost() bool {
	return !a.IsGroup && a.IsActive && !a.IsFrozen
}
