package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fmops/finledger/internal/apperrors"
	"github.com/fmops/finledger/internal/core/domain"
	"github.com/fmops/finledger/internal/core/ports"
	portssvc "github.com/fmops/finledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// traceabilityService derives the end-to-end cross-reference for a project.
// It is a read-only join over the two stores; nothing here mutates state.
type traceabilityService struct {
	ledger ports.LedgerStore
	funds  ports.FundAuthorityTree
	logger *slog.Logger
}

// NewTraceabilityService creates the projector over the given stores.
func NewTraceabilityService(ledger ports.LedgerStore, funds ports.FundAuthorityTree, logger *slog.Logger) portssvc.TraceabilitySvcFacade {
	if logger == nil {
		logger = slog.Default()
	}
	return &traceabilityService{ledger: ledger, funds: funds, logger: logger}
}

var _ portssvc.TraceabilitySvcFacade = (*traceabilityService)(nil)

// GetProjectTraceability joins the project's funding, acquisition, execution,
// accounting and asset records from the current store snapshots. A ledger
// entry belongs to the project when its reference matches the project id or
// any of the project's document ids.
func (s *traceabilityService) GetProjectTraceability(ctx context.Context, p domain.Project) (*domain.ProjectTraceability, error) {
	if p.ProjectID == "" {
		return nil, fmt.Errorf("%w: project id is required", apperrors.ErrValidation)
	}

	refs := map[string]struct{}{p.ProjectID: {}}
	for _, id := range []string{p.PurchaseRequestID, p.ContractID, p.AgreementID} {
		if id != "" {
			refs[id] = struct{}{}
		}
	}
	assetIDs := make(map[string]struct{}, len(p.AssetIDs))
	for _, id := range p.AssetIDs {
		refs[id] = struct{}{}
		assetIDs[id] = struct{}{}
	}

	trace := &domain.ProjectTraceability{
		ProjectID:   p.ProjectID,
		ProjectName: p.Name,
		Acquisition: domain.AcquisitionTrace{
			PurchaseRequestID: p.PurchaseRequestID,
			ContractID:        p.ContractID,
		},
	}

	if p.FundCode != "" {
		if node := findNodeByID(s.funds.GetHierarchy(), p.FundCode); node != nil {
			trace.Funding = domain.FundingTrace{
				FundCode:           p.FundCode,
				NodeID:             node.NodeID,
				NodeName:           node.Name,
				TotalAuthority:     node.TotalAuthority,
				AvailableAuthority: node.Available(),
			}
		} else {
			trace.Funding = domain.FundingTrace{FundCode: p.FundCode}
		}
	}

	capitalized := make(map[string]decimal.Decimal)
	depreciated := make(map[string]decimal.Decimal)
	obligated := decimal.Zero
	disbursed := decimal.Zero

	for _, txn := range s.ledger.GetTransactions() {
		if _, ok := refs[txn.ReferenceID]; !ok {
			continue
		}
		trace.Accounting.Entries = append(trace.Accounting.Entries, domain.AccountingTraceEntry{
			TransactionID: txn.TransactionID,
			Type:          txn.Type,
			Status:        txn.Status,
			TotalAmount:   txn.TotalAmount,
		})

		switch txn.Type {
		case domain.TypeObligation:
			trace.Execution.ObligationIDs = append(trace.Execution.ObligationIDs, txn.TransactionID)
			obligated = obligated.Add(txn.TotalAmount)
		case domain.TypeDisbursement:
			trace.Execution.DisbursementIDs = append(trace.Execution.DisbursementIDs, txn.TransactionID)
			disbursed = disbursed.Add(txn.TotalAmount)
		case domain.TypeCapitalization:
			if _, ok := assetIDs[txn.ReferenceID]; ok {
				capitalized[txn.ReferenceID] = capitalized[txn.ReferenceID].Add(txn.TotalAmount)
			}
		case domain.TypeDepreciation:
			if _, ok := assetIDs[txn.ReferenceID]; ok {
				depreciated[txn.ReferenceID] = depreciated[txn.ReferenceID].Add(txn.TotalAmount)
			}
		}
	}
	trace.Execution.ObligatedAmount = obligated
	trace.Execution.DisbursedAmount = disbursed

	// Asset order follows the project's own asset list so the view is stable.
	for _, id := range p.AssetIDs {
		cost, ok := capitalized[id]
		if !ok {
			continue
		}
		trace.Assets = append(trace.Assets, domain.AssetTrace{
			AssetID:      id,
			NetBookValue: cost.Sub(depreciated[id]),
		})
	}

	s.logger.Debug("traceability derived",
		slog.String("project_id", p.ProjectID),
		slog.Int("accounting_entries", len(trace.Accounting.Entries)),
	)
	return trace, nil
}
