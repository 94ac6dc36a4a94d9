package domain

import "github.com/shopspring/decimal"

// ProjectTraceability is the fixed-shape cross-reference linking a project to
// its funding, acquisition, execution, accounting and asset records. It is a
// pure read view; nothing in it is authoritative state.
type ProjectTraceability struct {
	ProjectID   string           `json:"projectID"`
	ProjectName string           `json:"projectName"`
	Funding     FundingTrace     `json:"funding"`
	Acquisition AcquisitionTrace `json:"acquisition"`
	Execution   ExecutionTrace   `json:"execution"`
	Accounting  AccountingTrace  `json:"accounting"`
	Assets      []AssetTrace     `json:"assets"`
}

// FundingTrace names the fund control node financing the project and its
// current authority position.
type FundingTrace struct {
	FundCode           string          `json:"fundCode"`
	NodeID             string          `json:"nodeID"`
	NodeName           string          `json:"nodeName"`
	TotalAuthority     decimal.Decimal `json:"totalAuthority"`
	AvailableAuthority decimal.Decimal `json:"availableAuthority"`
}

// AcquisitionTrace carries the pre-award document references.
type AcquisitionTrace struct {
	PurchaseRequestID string `json:"purchaseRequestID"`
	ContractID        string `json:"contractID"`
}

// ExecutionTrace summarizes obligation and disbursement activity.
type ExecutionTrace struct {
	ObligationIDs    []string        `json:"obligationIDs"`
	ObligatedAmount  decimal.Decimal `json:"obligatedAmount"`
	DisbursementIDs  []string        `json:"disbursementIDs"`
	DisbursedAmount  decimal.Decimal `json:"disbursedAmount"`
}

// AccountingTrace lists every ledger entry referencing the project.
type AccountingTrace struct {
	Entries []AccountingTraceEntry `json:"entries"`
}

// AccountingTraceEntry is one ledger entry in the accounting group.
type AccountingTraceEntry struct {
	TransactionID string            `json:"transactionID"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
}

// AssetTrace is one capitalized asset attributable to the project.
type AssetTrace struct {
	AssetID      string          `json:"assetID"`
	NetBookValue decimal.Decimal `json:"netBookValue"`
}
