package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a ledger entry with the business event that produced it.
type TransactionType string

const (
	TypeAccrual            TransactionType = "ACCRUAL"
	TypeDisbursement       TransactionType = "DISBURSEMENT"
	TypeDepreciation       TransactionType = "DEPRECIATION"
	TypeObligation         TransactionType = "OBLIGATION"
	TypeRevenue            TransactionType = "REVENUE"
	TypeTransfer           TransactionType = "TRANSFER"
	TypeCapitalization     TransactionType = "CAPITALIZATION"
	TypeDisposal           TransactionType = "DISPOSAL"
	TypeManualJournal      TransactionType = "MANUAL_JOURNAL"
	TypeAdjustingEntry     TransactionType = "ADJUSTING_ENTRY"
	TypeContingencyTagging TransactionType = "CONTINGENCY_TAGGING"
)

// TransactionStatus indicates the state of a ledger entry.
type TransactionStatus string

const (
	StatusPendingApproval TransactionStatus = "PENDING_APPROVAL"
	StatusPosted          TransactionStatus = "POSTED"
)

// Line is a single debit or credit within a Transaction, affecting one account.
// By convention exactly one of Debit/Credit is non-zero, though both are
// modeled for generality. Amounts are never negative.
type Line struct {
	AccountCode string          `json:"accountCode"` // chart-of-accounts code
	Memo        string          `json:"memo"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	FundCode    string          `json:"fundCode"`
	CostCenter  string          `json:"costCenter"`
}

// Transaction represents a single, balanced ledger entry composed of multiple
// lines. Once Status reaches Posted the lines are immutable; corrections are
// made by a reversing entry, never by editing in place.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // prefixed by synthesis source, e.g. ACR-, TRV-
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	Type          TransactionType   `json:"type"`
	SourceModule  string            `json:"sourceModule"` // module that raised the originating event
	ReferenceID   string            `json:"referenceID"`  // originating document reference
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	Status        TransactionStatus `json:"status"`
	Lines         []Line            `json:"lines"`
	AuditTrail    []AuditEvent      `json:"auditTrail"`
	AuditFields
}
