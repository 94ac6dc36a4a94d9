package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fmops/finledger/internal/apperrors"
	"github.com/fmops/finledger/internal/core/domain"
	"github.com/fmops/finledger/internal/core/ports"
	portssvc "github.com/fmops/finledger/internal/core/ports/services"
	"github.com/fmops/finledger/internal/utils/accounting"
)

var four = decimal.NewFromInt(4)

// integrationService synthesizes balanced ledger entries from business
// events. It holds no state of its own: every call reads from and writes into
// the injected stores. Each event kind is a fixed template with a hard-coded
// account pair, so balance is structural rather than checked after the fact.
type integrationService struct {
	ledger   ports.LedgerStore
	funds    ports.FundAuthorityTree
	validate *validator.Validate
	logger   *slog.Logger
}

// NewIntegrationService creates the orchestrator over the given stores.
func NewIntegrationService(ledger ports.LedgerStore, funds ports.FundAuthorityTree, logger *slog.Logger) portssvc.IntegrationSvcFacade {
	if logger == nil {
		logger = slog.Default()
	}
	return &integrationService{
		ledger:   ledger,
		funds:    funds,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

var _ portssvc.IntegrationSvcFacade = (*integrationService)(nil)

// newTransactionID builds a human-traceable id: synthesis-source prefix plus
// a random suffix.
func newTransactionID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// checkEvent fails fast on malformed events. A missing required field is
// programmer error in the emitting module, never a business-rule condition.
func (s *integrationService) checkEvent(event any) error {
	if err := s.validate.Struct(event); err != nil {
		return fmt.Errorf("%w: malformed event: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func requirePositive(field string, amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return fmt.Errorf("%w: %s must be positive, got %s", apperrors.ErrValidation, field, amount.String())
	}
	return nil
}

// newEntry assembles the common transaction envelope around a synthesized
// line set.
func newEntry(prefix string, typ domain.TransactionType, source, referenceID, description string, lines []domain.Line, creatorUserID string) domain.Transaction {
	now := time.Now().UTC()
	return domain.Transaction{
		TransactionID: newTransactionID(prefix),
		Date:          now,
		Description:   description,
		Type:          typ,
		SourceModule:  source,
		ReferenceID:   referenceID,
		TotalAmount:   accounting.EntryAmount(lines),
		Status:        domain.StatusPosted,
		Lines:         lines,
		AuditTrail: []domain.AuditEvent{
			{At: now, Actor: creatorUserID, Action: "SYNTHESIZED"},
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

// post writes the synthesized entry into the ledger store exactly once.
func (s *integrationService) post(txn domain.Transaction) (*domain.Transaction, error) {
	if err := s.ledger.AddTransaction(txn); err != nil {
		return nil, err
	}
	s.logger.Info("entry synthesized",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("reference_id", txn.ReferenceID),
	)
	return &txn, nil
}

// GenerateAccrualFromExpense books an accepted expense as operating expense
// against accounts payable.
func (s *integrationService) GenerateAccrualFromExpense(ctx context.Context, e domain.Expense, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(e); err != nil {
		return nil, err
	}
	if err := requirePositive("expense amount", e.Amount); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctOperatingExpenses, Memo: e.Description, Debit: e.Amount, FundCode: e.FundCode, CostCenter: e.CostCenter},
		{AccountCode: domain.AcctAccountsPayable, Memo: "Payable accrual for " + e.ExpenseID, Credit: e.Amount, FundCode: e.FundCode, CostCenter: e.CostCenter},
	}
	txn := newEntry("ACR", domain.TypeAccrual, "expense", e.ExpenseID,
		fmt.Sprintf("Accrual - %s", e.Description), lines, creatorUserID)
	return s.post(txn)
}

// GenerateDisbursementFromExpense relieves the payable established by the
// accrual and draws down Fund Balance With Treasury.
func (s *integrationService) GenerateDisbursementFromExpense(ctx context.Context, e domain.Expense, disbursementRef string, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(e); err != nil {
		return nil, err
	}
	if err := requirePositive("expense amount", e.Amount); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctAccountsPayable, Memo: "Payable relieved by " + disbursementRef, Debit: e.Amount, FundCode: e.FundCode, CostCenter: e.CostCenter},
		{AccountCode: domain.AcctFundBalanceWithTreasury, Memo: "Disbursement " + disbursementRef, Credit: e.Amount, FundCode: e.FundCode, CostCenter: e.CostCenter},
	}
	txn := newEntry("DSB", domain.TypeDisbursement, "expense", e.ExpenseID,
		fmt.Sprintf("Disbursement - %s (%s)", e.Description, disbursementRef), lines, creatorUserID)
	return s.post(txn)
}

// GenerateDepreciationEntry books one quarter of straight-line depreciation:
// (acquisition cost / useful life in years) / 4.
func (s *integrationService) GenerateDepreciationEntry(ctx context.Context, a domain.Asset, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(a); err != nil {
		return nil, err
	}
	if err := requirePositive("acquisition cost", a.AcquisitionCost); err != nil {
		return nil, err
	}
	quarterly := a.AcquisitionCost.
		Div(decimal.NewFromInt(int64(a.UsefulLifeYears))).
		Div(four).
		Round(2)
	lines := []domain.Line{
		{AccountCode: domain.AcctDepreciationExpense, Memo: "Quarterly depreciation - " + a.Description, Debit: quarterly, FundCode: a.FundCode, CostCenter: a.CostCenter},
		{AccountCode: domain.AcctAccumulatedDepreciation, Memo: "Accumulated depreciation - " + a.AssetID, Credit: quarterly, FundCode: a.FundCode, CostCenter: a.CostCenter},
	}
	txn := newEntry("DEP", domain.TypeDepreciation, "assets", a.AssetID,
		fmt.Sprintf("Depreciation - %s", a.Description), lines, creatorUserID)
	return s.post(txn)
}

// GenerateObligationFromTravelOrder obligates the estimated trip cost against
// the allotment before travel occurs.
func (s *integrationService) GenerateObligationFromTravelOrder(ctx context.Context, o domain.TravelOrder, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(o); err != nil {
		return nil, err
	}
	if err := requirePositive("estimated cost", o.EstimatedCost); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctAllotments, Memo: "Travel obligation - " + o.Traveler, Debit: o.EstimatedCost, FundCode: o.FundCode, CostCenter: o.CostCenter},
		{AccountCode: domain.AcctUndeliveredOrders, Memo: "Undelivered order " + o.OrderID, Credit: o.EstimatedCost, FundCode: o.FundCode, CostCenter: o.CostCenter},
	}
	txn := newEntry("TRV", domain.TypeObligation, "travel", o.OrderID,
		fmt.Sprintf("Travel obligation - %s", o.Purpose), lines, creatorUserID)
	return s.post(txn)
}

// GenerateSettlementFromTravelVoucher settles a completed trip at actual
// cost.
func (s *integrationService) GenerateSettlementFromTravelVoucher(ctx context.Context, v domain.TravelVoucher, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(v); err != nil {
		return nil, err
	}
	if err := requirePositive("actual cost", v.ActualCost); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctOperatingExpenses, Memo: "Travel expense - " + v.Traveler, Debit: v.ActualCost, FundCode: v.FundCode, CostCenter: v.CostCenter},
		{AccountCode: domain.AcctFundBalanceWithTreasury, Memo: "Travel settlement for " + v.OrderID, Credit: v.ActualCost, FundCode: v.FundCode, CostCenter: v.CostCenter},
	}
	txn := newEntry("STL", domain.TypeDisbursement, "travel", v.VoucherID,
		fmt.Sprintf("Travel settlement - %s", v.Traveler), lines, creatorUserID)
	return s.post(txn)
}

// GenerateCostTransfer moves recorded cost between two cost centers. Both
// sides hit Operating Expenses; only the cost-center attribution changes.
func (s *integrationService) GenerateCostTransfer(ctx context.Context, t domain.CostTransfer, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(t); err != nil {
		return nil, err
	}
	if err := requirePositive("transfer amount", t.Amount); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctOperatingExpenses, Memo: "Cost in - " + t.Description, Debit: t.Amount, FundCode: t.FundCode, CostCenter: t.ToCostCenter},
		{AccountCode: domain.AcctOperatingExpenses, Memo: "Cost out - " + t.Description, Credit: t.Amount, FundCode: t.FundCode, CostCenter: t.FromCostCenter},
	}
	txn := newEntry("CT", domain.TypeTransfer, "cost-transfer", t.TransferID,
		fmt.Sprintf("Cost transfer - %s", t.Description), lines, creatorUserID)
	return s.post(txn)
}

// GenerateContingencyTagging tags execution dollars to a named contingency
// operation via an offsetting memo pair. The entry carries no budgetary
// effect; it exists for downstream contingency reporting.
func (s *integrationService) GenerateContingencyTagging(ctx context.Context, op domain.ContingencyOperation, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(op); err != nil {
		return nil, err
	}
	if err := requirePositive("operation amount", op.Amount); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctContingencyMemo, Memo: "Tagged to operation " + op.Name, Debit: op.Amount, FundCode: op.FundCode, CostCenter: op.CostCenter},
		{AccountCode: domain.AcctContingencyMemo, Memo: "Offset for operation " + op.Name, Credit: op.Amount, FundCode: op.FundCode, CostCenter: op.CostCenter},
	}
	txn := newEntry("CTG", domain.TypeContingencyTagging, "contingency", op.OperationID,
		fmt.Sprintf("Contingency tagging - %s", op.Name), lines, creatorUserID)
	return s.post(txn)
}

// GenerateProjectOrderObligation obligates funds for an accepted project
// order.
func (s *integrationService) GenerateProjectOrderObligation(ctx context.Context, o domain.ProjectOrder, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(o); err != nil {
		return nil, err
	}
	if err := requirePositive("order amount", o.Amount); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctAllotments, Memo: "Project order obligation - " + o.ProjectID, Debit: o.Amount, FundCode: o.FundCode, CostCenter: o.CostCenter},
		{AccountCode: domain.AcctUndeliveredOrders, Memo: "Undelivered order " + o.OrderID, Credit: o.Amount, FundCode: o.FundCode, CostCenter: o.CostCenter},
	}
	txn := newEntry("PO", domain.TypeObligation, "projects", o.OrderID,
		fmt.Sprintf("Project order obligation - %s", o.Description), lines, creatorUserID)
	return s.post(txn)
}

// GenerateRevenueRecognition recognizes earned revenue on a reimbursable
// agreement.
func (s *integrationService) GenerateRevenueRecognition(ctx context.Context, a domain.ReimbursableAgreement, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(a); err != nil {
		return nil, err
	}
	if err := requirePositive("recognized amount", a.RecognizedAmount); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctAccountsReceivable, Memo: "Receivable from " + a.Customer, Debit: a.RecognizedAmount, FundCode: a.FundCode},
		{AccountCode: domain.AcctServiceRevenue, Memo: "Revenue earned on " + a.AgreementID, Credit: a.RecognizedAmount, FundCode: a.FundCode},
	}
	txn := newEntry("REV", domain.TypeRevenue, "reimbursables", a.AgreementID,
		fmt.Sprintf("Revenue recognition - %s", a.Customer), lines, creatorUserID)
	return s.post(txn)
}

// GenerateOutgrantBilling bills a grantee for use of real property.
func (s *integrationService) GenerateOutgrantBilling(ctx context.Context, o domain.Outgrant, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(o); err != nil {
		return nil, err
	}
	if err := requirePositive("billing amount", o.BillingAmount); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctAccountsReceivable, Memo: "Receivable from " + o.Grantee, Debit: o.BillingAmount, FundCode: o.FundCode},
		{AccountCode: domain.AcctOtherRevenue, Memo: "Outgrant billing for " + o.PropertyID, Credit: o.BillingAmount, FundCode: o.FundCode},
	}
	txn := newEntry("OG", domain.TypeRevenue, "outgrants", o.OutgrantID,
		fmt.Sprintf("Outgrant billing - %s", o.Grantee), lines, creatorUserID)
	return s.post(txn)
}

// GenerateCapitalizationEntry places a delivered asset into service.
func (s *integrationService) GenerateCapitalizationEntry(ctx context.Context, a domain.Asset, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(a); err != nil {
		return nil, err
	}
	if err := requirePositive("acquisition cost", a.AcquisitionCost); err != nil {
		return nil, err
	}
	lines := []domain.Line{
		{AccountCode: domain.AcctGeneralEquipment, Memo: "Capitalize " + a.Description, Debit: a.AcquisitionCost, FundCode: a.FundCode, CostCenter: a.CostCenter},
		{AccountCode: domain.AcctAccountsPayable, Memo: "Payable for asset " + a.AssetID, Credit: a.AcquisitionCost, FundCode: a.FundCode, CostCenter: a.CostCenter},
	}
	txn := newEntry("CAP", domain.TypeCapitalization, "assets", a.AssetID,
		fmt.Sprintf("Capitalization - %s", a.Description), lines, creatorUserID)
	return s.post(txn)
}

// GenerateDisposalEntry removes a retired asset from the books. Accumulated
// depreciation is relieved, any remaining net book value is recognized as a
// loss, and the asset account is credited at cost. The three legs balance by
// construction: accumulated + loss == cost.
func (s *integrationService) GenerateDisposalEntry(ctx context.Context, a domain.Asset, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(a); err != nil {
		return nil, err
	}
	if err := requirePositive("acquisition cost", a.AcquisitionCost); err != nil {
		return nil, err
	}
	if a.AccumulatedDepreciation.IsNegative() || a.AccumulatedDepreciation.GreaterThan(a.AcquisitionCost) {
		return nil, fmt.Errorf("%w: accumulated depreciation %s outside [0, %s]",
			apperrors.ErrValidation, a.AccumulatedDepreciation.String(), a.AcquisitionCost.String())
	}
	netBookValue := a.AcquisitionCost.Sub(a.AccumulatedDepreciation)

	var lines []domain.Line
	if a.AccumulatedDepreciation.IsPositive() {
		lines = append(lines, domain.Line{
			AccountCode: domain.AcctAccumulatedDepreciation,
			Memo:        "Relieve accumulated depreciation - " + a.AssetID,
			Debit:       a.AccumulatedDepreciation,
			FundCode:    a.FundCode, CostCenter: a.CostCenter,
		})
	}
	if netBookValue.IsPositive() {
		lines = append(lines, domain.Line{
			AccountCode: domain.AcctDisposalLosses,
			Memo:        "Loss on disposal - " + a.Description,
			Debit:       netBookValue,
			FundCode:    a.FundCode, CostCenter: a.CostCenter,
		})
	}
	lines = append(lines, domain.Line{
		AccountCode: domain.AcctGeneralEquipment,
		Memo:        "Retire asset " + a.AssetID,
		Credit:      a.AcquisitionCost,
		FundCode:    a.FundCode, CostCenter: a.CostCenter,
	})

	txn := newEntry("DSP", domain.TypeDisposal, "assets", a.AssetID,
		fmt.Sprintf("Disposal - %s", a.Description), lines, creatorUserID)
	return s.post(txn)
}

// BuildManualJournal constructs a Pending Approval entry from author-supplied
// lines. Nothing is posted; the draft goes through PostManualJournal once the
// author is done.
func (s *integrationService) BuildManualJournal(ctx context.Context, draft domain.ManualJournalDraft, creatorUserID string) (*domain.Transaction, error) {
	if err := s.checkEvent(draft); err != nil {
		return nil, err
	}
	if err := accounting.ValidateLines(draft.Lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	typ := draft.Type
	if typ == "" {
		typ = domain.TypeManualJournal
	}
	date := draft.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: newTransactionID("MJ"),
		Date:          date,
		Description:   draft.Description,
		Type:          typ,
		SourceModule:  "manual",
		TotalAmount:   accounting.EntryAmount(draft.Lines),
		Status:        domain.StatusPendingApproval,
		Lines:         draft.Lines,
		AuditTrail: []domain.AuditEvent{
			{At: now, Actor: creatorUserID, Action: "CREATED"},
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	return &txn, nil
}

// PostManualJournal runs the ADA validator against the current hierarchy
// snapshot and posts the entry on a passing verdict. The validator message is
// surfaced on rejection. If the draft was previously stored as pending it is
// updated in place; otherwise it is appended.
func (s *integrationService) PostManualJournal(ctx context.Context, txn domain.Transaction, approverUserID string) (*domain.Transaction, error) {
	result := ValidateTransaction(txn, s.funds.GetHierarchy())
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, result.Message)
	}

	now := time.Now().UTC()
	txn.Status = domain.StatusPosted
	txn.TotalAmount = accounting.EntryAmount(txn.Lines)
	txn.AuditTrail = append(txn.AuditTrail, domain.AuditEvent{At: now, Actor: approverUserID, Action: "POSTED"})
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = approverUserID

	if _, err := s.ledger.GetTransaction(txn.TransactionID); err == nil {
		if err := s.ledger.UpdateTransaction(txn); err != nil {
			return nil, err
		}
		return &txn, nil
	}
	return s.post(txn)
}

// ReverseTransaction synthesizes and posts the reversing entry for a Posted
// transaction: the same lines with debit and credit swapped. The original's
// audit trail records the reversal.
func (s *integrationService) ReverseTransaction(ctx context.Context, transactionID string, creatorUserID string) (*domain.Transaction, error) {
	original, err := s.ledger.GetTransaction(transactionID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.StatusPosted {
		return nil, fmt.Errorf("%w: only posted transactions can be reversed", apperrors.ErrValidation)
	}

	lines := make([]domain.Line, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = l
		lines[i].Debit, lines[i].Credit = l.Credit, l.Debit
		lines[i].Memo = "Reversal - " + l.Memo
	}

	reversal := newEntry("RVS", domain.TypeAdjustingEntry, original.SourceModule, original.TransactionID,
		fmt.Sprintf("Reversal of %s - %s", original.TransactionID, original.Description), lines, creatorUserID)
	posted, err := s.post(reversal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := *original
	updated.AuditTrail = append(append([]domain.AuditEvent{}, original.AuditTrail...), domain.AuditEvent{
		At: now, Actor: creatorUserID, Action: "REVERSED_BY " + posted.TransactionID,
	})
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = creatorUserID
	if err := s.ledger.UpdateTransaction(updated); err != nil {
		return nil, err
	}
	return posted, nil
}

// ApplyAuthorityTransfer moves authority between two fund nodes: it appends
// the transfer action to the log and issues the two offsetting node updates,
// keeping log and tree consistent. The source must have enough undistributed
// authority to give up.
func (s *integrationService) ApplyAuthorityTransfer(ctx context.Context, transfer domain.TransferAction, creatorUserID string) error {
	if err := requirePositive("transfer amount", transfer.Amount); err != nil {
		return err
	}
	source, err := s.funds.FindNode(transfer.FromNodeID)
	if err != nil {
		return err
	}
	if _, err := s.funds.FindNode(transfer.ToNodeID); err != nil {
		return err
	}
	if source.Available().LessThan(transfer.Amount) {
		return fmt.Errorf("%w: node %s has only %s available for transfer of %s",
			apperrors.ErrValidation, source.NodeID,
			source.Available().String(), transfer.Amount.String())
	}

	now := time.Now().UTC()
	if transfer.TransferID == "" {
		transfer.TransferID = newTransactionID("XFR")
	}
	if transfer.Date.IsZero() {
		transfer.Date = now
	}
	transfer.CreatedAt = now
	transfer.CreatedBy = creatorUserID
	transfer.LastUpdatedAt = now
	transfer.LastUpdatedBy = creatorUserID

	if err := s.funds.AddTransfer(transfer); err != nil {
		return err
	}

	newSource := *source
	newSource.TotalAuthority = source.TotalAuthority.Sub(transfer.Amount)
	if err := s.funds.UpdateNode(&newSource); err != nil {
		return err
	}

	// The copy-on-write rebuild above replaced the target's snapshot whenever
	// the two nodes share a lineage; resolve it fresh so the credit lands on
	// the tree that already carries the debit.
	target, err := s.funds.FindNode(transfer.ToNodeID)
	if err != nil {
		return err
	}
	newTarget := *target
	newTarget.TotalAuthority = target.TotalAuthority.Add(transfer.Amount)
	if err := s.funds.UpdateNode(&newTarget); err != nil {
		return err
	}

	s.logger.Info("authority transfer applied",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("from", transfer.FromNodeID),
		slog.String("to", transfer.ToNodeID),
		slog.String("amount", transfer.Amount.String()),
	)
	return nil
}

// CertifyFundsForPurchaseRequest is the pre-award advisory check: would this
// request fit within the named fund node's available authority? No ledger
// entry results either way.
func (s *integrationService) CertifyFundsForPurchaseRequest(ctx context.Context, pr domain.PurchaseRequest) (domain.CertificationDecision, error) {
	if err := s.checkEvent(pr); err != nil {
		return domain.CertificationDecision{}, err
	}
	node := findNodeByID(s.funds.GetHierarchy(), pr.FundCode)
	if node == nil {
		return domain.CertificationDecision{
			Certified: false,
			Message:   fmt.Sprintf("no fund control node for fund code %s", pr.FundCode),
		}, nil
	}
	if node.Available().LessThan(pr.Amount) {
		return domain.CertificationDecision{
			Certified: false,
			Message: fmt.Sprintf("insufficient authority on %s: available %s, requested %s",
				node.Name, node.Available().String(), pr.Amount.String()),
		}, nil
	}
	return domain.CertificationDecision{
		Certified: true,
		Message: fmt.Sprintf("funds certified against %s: available %s covers %s",
			node.Name, node.Available().String(), pr.Amount.String()),
	}, nil
}

// ValidateInventoryDrawdown checks that a requested drawdown does not exceed
// the on-hand balance. Advisory only.
func (s *integrationService) ValidateInventoryDrawdown(ctx context.Context, item domain.InventoryItem, quantity decimal.Decimal) error {
	if err := s.checkEvent(item); err != nil {
		return err
	}
	if err := requirePositive("drawdown quantity", quantity); err != nil {
		return err
	}
	if quantity.GreaterThan(item.OnHand) {
		return fmt.Errorf("%w: drawdown of %s exceeds on-hand balance %s for item %s",
			apperrors.ErrValidation, quantity.String(), item.OnHand.String(), item.ItemID)
	}
	return nil
}

// ComputeOverheadAllocation applies the pool rate for the given function:
// laborCost * (rate / 100). An unknown pool contributes nothing: the
// allocation is zero, not an error.
func (s *integrationService) ComputeOverheadAllocation(ctx context.Context, laborCost decimal.Decimal, function string, pools []domain.OverheadPool) decimal.Decimal {
	for _, pool := range pools {
		if pool.Function == function {
			return laborCost.Mul(pool.Rate).Div(decimal.NewFromInt(100)).Round(2)
		}
	}
	return decimal.Zero
}
