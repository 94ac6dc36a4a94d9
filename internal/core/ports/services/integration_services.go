package services

import (
	"context"

	"github.com/fmops/finledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IntegrationSvcFacade synthesizes balanced ledger entries from the business
// events the domain modules raise. Posting functions write the synthesized
// transaction into the ledger store exactly once; callers must not post the
// returned transaction again. Advisory functions have no side effects.
type IntegrationSvcFacade interface {
	// Posting synthesis, one per event kind.
	GenerateAccrualFromExpense(ctx context.Context, e domain.Expense, creatorUserID string) (*domain.Transaction, error)
	GenerateDisbursementFromExpense(ctx context.Context, e domain.Expense, disbursementRef string, creatorUserID string) (*domain.Transaction, error)
	GenerateDepreciationEntry(ctx context.Context, a domain.Asset, creatorUserID string) (*domain.Transaction, error)
	GenerateObligationFromTravelOrder(ctx context.Context, o domain.TravelOrder, creatorUserID string) (*domain.Transaction, error)
	GenerateSettlementFromTravelVoucher(ctx context.Context, v domain.TravelVoucher, creatorUserID string) (*domain.Transaction, error)
	GenerateCostTransfer(ctx context.Context, t domain.CostTransfer, creatorUserID string) (*domain.Transaction, error)
	GenerateContingencyTagging(ctx context.Context, op domain.ContingencyOperation, creatorUserID string) (*domain.Transaction, error)
	GenerateProjectOrderObligation(ctx context.Context, o domain.ProjectOrder, creatorUserID string) (*domain.Transaction, error)
	GenerateRevenueRecognition(ctx context.Context, a domain.ReimbursableAgreement, creatorUserID string) (*domain.Transaction, error)
	GenerateOutgrantBilling(ctx context.Context, o domain.Outgrant, creatorUserID string) (*domain.Transaction, error)
	GenerateCapitalizationEntry(ctx context.Context, a domain.Asset, creatorUserID string) (*domain.Transaction, error)
	GenerateDisposalEntry(ctx context.Context, a domain.Asset, creatorUserID string) (*domain.Transaction, error)

	// Manual journal authoring.
	BuildManualJournal(ctx context.Context, draft domain.ManualJournalDraft, creatorUserID string) (*domain.Transaction, error)
	PostManualJournal(ctx context.Context, txn domain.Transaction, approverUserID string) (*domain.Transaction, error)
	ReverseTransaction(ctx context.Context, transactionID string, creatorUserID string) (*domain.Transaction, error)

	// Authority movement.
	ApplyAuthorityTransfer(ctx context.Context, transfer domain.TransferAction, creatorUserID string) error

	// Pre-posting advisory operations; never touch the ledger store.
	CertifyFundsForPurchaseRequest(ctx context.Context, pr domain.PurchaseRequest) (domain.CertificationDecision, error)
	ValidateInventoryDrawdown(ctx context.Context, item domain.InventoryItem, quantity decimal.Decimal) error
	ComputeOverheadAllocation(ctx context.Context, laborCost decimal.Decimal, function string, pools []domain.OverheadPool) decimal.Decimal
}

// TraceabilitySvcFacade derives the read-only cross-reference view for a
// project.
type TraceabilitySvcFacade interface {
	GetProjectTraceability(ctx context.Context, p domain.Project) (*domain.ProjectTraceability, error)
}
