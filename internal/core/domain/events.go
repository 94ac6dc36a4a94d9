package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business events raised by the independent domain modules. Each carries just
// enough to synthesize its ledger entry; the orchestrator validates shape with
// struct tags before building anything.

// Expense is an accepted invoice or similar payable raised by a spend module.
type Expense struct {
	ExpenseID   string          `validate:"required"`
	Description string          `validate:"required"`
	Amount      decimal.Decimal `validate:"required"`
	Vendor      string
	FundCode    string
	CostCenter  string
}

// Asset describes a capital asset for capitalization, depreciation and
// disposal entries.
type Asset struct {
	AssetID                 string          `validate:"required"`
	Description             string          `validate:"required"`
	AcquisitionCost         decimal.Decimal `validate:"required"`
	UsefulLifeYears         int             `validate:"required,gt=0"`
	AccumulatedDepreciation decimal.Decimal
	FundCode                string
	CostCenter              string
	ProjectID               string
}

// TravelOrder obligates estimated travel cost before the trip occurs.
type TravelOrder struct {
	OrderID       string          `validate:"required"`
	Traveler      string          `validate:"required"`
	Purpose       string
	EstimatedCost decimal.Decimal `validate:"required"`
	FundCode      string
	CostCenter    string
}

// TravelVoucher settles a completed trip at actual cost.
type TravelVoucher struct {
	VoucherID  string          `validate:"required"`
	OrderID    string          `validate:"required"`
	Traveler   string          `validate:"required"`
	ActualCost decimal.Decimal `validate:"required"`
	FundCode   string
	CostCenter string
}

// CostTransfer moves already-recorded cost between two cost centers.
type CostTransfer struct {
	TransferID     string          `validate:"required"`
	Description    string          `validate:"required"`
	Amount         decimal.Decimal `validate:"required"`
	FundCode       string
	FromCostCenter string `validate:"required"`
	ToCostCenter   string `validate:"required,nefield=FromCostCenter"`
}

// ContingencyOperation tags execution dollars to a named contingency
// operation for downstream reporting.
type ContingencyOperation struct {
	OperationID string          `validate:"required"`
	Name        string          `validate:"required"`
	Amount      decimal.Decimal `validate:"required"`
	FundCode    string
	CostCenter  string
}

// ProjectOrder obligates funds against an accepted project order.
type ProjectOrder struct {
	OrderID     string          `validate:"required"`
	ProjectID   string          `validate:"required"`
	Description string
	Amount      decimal.Decimal `validate:"required"`
	FundCode    string
	CostCenter  string
}

// ReimbursableAgreement recognizes earned revenue on a reimbursable customer
// agreement.
type ReimbursableAgreement struct {
	AgreementID      string          `validate:"required"`
	Customer         string          `validate:"required"`
	RecognizedAmount decimal.Decimal `validate:"required"`
	FundCode         string
	ProjectID        string
}

// Outgrant bills a grantee for use of real property.
type Outgrant struct {
	OutgrantID    string          `validate:"required"`
	Grantee       string          `validate:"required"`
	PropertyID    string          `validate:"required"`
	BillingAmount decimal.Decimal `validate:"required"`
	FundCode      string
}

// PurchaseRequest is a pre-award spending request submitted for fund
// certification; no ledger entry results from certifying it.
type PurchaseRequest struct {
	RequestID   string          `validate:"required"`
	Description string
	Amount      decimal.Decimal `validate:"required"`
	FundCode    string          `validate:"required"`
	CostCenter  string
}

// InventoryItem is the stock position checked by drawdown validation.
type InventoryItem struct {
	ItemID      string          `validate:"required"`
	Description string
	OnHand      decimal.Decimal
	UnitCost    decimal.Decimal
}

// OverheadPool maps a business function to its overhead rate in percent.
type OverheadPool struct {
	Function string          `json:"function"`
	Rate     decimal.Decimal `json:"rate"` // percent, e.g. 12.5
}

// ManualJournalDraft is the author-supplied raw material for a manual journal
// or adjusting entry. Lines come straight from the user and are expected to
// be transiently invalid while editing; the ADA validator gates posting.
type ManualJournalDraft struct {
	Description string `validate:"required"`
	Date        time.Time
	Type        TransactionType // TypeManualJournal or TypeAdjustingEntry
	Lines       []Line          `validate:"required,min=2"`
}

// CertificationDecision is the advisory result of a fund certification check.
type CertificationDecision struct {
	Certified bool   `json:"certified"`
	Message   string `json:"message"`
}

// Project ties together the documents whose financial artifacts the
// traceability projector joins end-to-end.
type Project struct {
	ProjectID         string `validate:"required"`
	Name              string
	FundCode          string
	CostCenter        string
	PurchaseRequestID string
	ContractID        string
	AgreementID       string
	AssetIDs          []string
}
