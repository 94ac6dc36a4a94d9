package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	AccountTypeAsset       AccountType = "ASSET"
	AccountTypeContraAsset AccountType = "CONTRA_ASSET"
	AccountTypeLiability   AccountType = "LIABILITY"
	AccountTypeBudgetary   AccountType = "BUDGETARY"
	AccountTypeRevenue     AccountType = "REVENUE"
	AccountTypeExpense     AccountType = "EXPENSE"
	AccountTypeMemo        AccountType = "MEMO"
)

// Fixed chart of accounts. Synthesis templates reference these codes directly
// so that every generated entry lands on a known account pair.
const (
	AcctFundBalanceWithTreasury = "1010"
	AcctAccountsReceivable      = "1310"
	AcctOperatingMaterials      = "1520"
	AcctGeneralEquipment        = "1750"
	AcctAccumulatedDepreciation = "1759"
	AcctAccountsPayable         = "2110"
	AcctAllotments              = "4610"
	AcctUndeliveredOrders       = "4801"
	AcctServiceRevenue          = "5200"
	AcctOtherRevenue            = "5900"
	AcctOperatingExpenses       = "6100"
	AcctDepreciationExpense     = "6710"
	AcctDisposalLosses          = "7210"
	AcctContingencyMemo         = "8802"
)

// Account describes one entry in the chart of accounts.
type Account struct {
	Code  string      `json:"code"`
	Title string      `json:"title"`
	Type  AccountType `json:"type"`
}

// ChartOfAccounts returns the default chart used when no seed overrides it.
func ChartOfAccounts() []Account {
	return []Account{
		{Code: AcctFundBalanceWithTreasury, Title: "Fund Balance With Treasury", Type: AccountTypeAsset},
		{Code: AcctAccountsReceivable, Title: "Accounts Receivable", Type: AccountTypeAsset},
		{Code: AcctOperatingMaterials, Title: "Operating Materials Inventory", Type: AccountTypeAsset},
		{Code: AcctGeneralEquipment, Title: "General Equipment", Type: AccountTypeAsset},
		{Code: AcctAccumulatedDepreciation, Title: "Accumulated Depreciation", Type: AccountTypeContraAsset},
		{Code: AcctAccountsPayable, Title: "Accounts Payable", Type: AccountTypeLiability},
		{Code: AcctAllotments, Title: "Allotments - Realized Resources", Type: AccountTypeBudgetary},
		{Code: AcctUndeliveredOrders, Title: "Undelivered Orders - Obligations", Type: AccountTypeBudgetary},
		{Code: AcctServiceRevenue, Title: "Revenue From Services Provided", Type: AccountTypeRevenue},
		{Code: AcctOtherRevenue, Title: "Other Revenue", Type: AccountTypeRevenue},
		{Code: AcctOperatingExpenses, Title: "Operating Expenses", Type: AccountTypeExpense},
		{Code: AcctDepreciationExpense, Title: "Depreciation Expense", Type: AccountTypeExpense},
		{Code: AcctDisposalLosses, Title: "Losses on Disposition of Assets", Type: AccountTypeExpense},
		{Code: AcctContingencyMemo, Title: "Contingency Operations Memo", Type: AccountTypeMemo},
	}
}
