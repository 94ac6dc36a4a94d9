package services

import (
	"fmt"

	"github.com/fmops/finledger/internal/core/domain"
	"github.com/fmops/finledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ValidationResult is the structured verdict of the ADA validator. A failed
// check is a recoverable condition surfaced to the caller, never an error:
// draft entries are expected to be transiently invalid while being edited.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidateTransaction checks a candidate entry against bookkeeping and fund
// control rules. Checks run in order: (1) debits equal credits within
// accounting.BalanceEpsilon, (2) no line's obligation pushes a matched fund
// node's AmountDistributed above its TotalAuthority. The first failing check
// is returned. The function is pure: same candidate and hierarchy always
// produce the same verdict, and nothing is mutated.
//
// A line maps to a fund node by exact id match of its FundCode, falling back
// to its CostCenter, pre-order, first match. Lines matching no node are
// exempt from fund control.
func ValidateTransaction(candidate domain.Transaction, hierarchy []*domain.FundControlNode) ValidationResult {
	debits := accounting.SumDebits(candidate.Lines)
	credits := accounting.SumCredits(candidate.Lines)
	if debits.Sub(credits).Abs().GreaterThan(accounting.BalanceEpsilon) {
		return ValidationResult{
			Valid: false,
			Message: fmt.Sprintf("Ledger imbalance: debits total %s but credits total %s",
				debits.String(), credits.String()),
		}
	}

	// Aggregate obligations per node so multiple lines against the same node
	// are checked together. Node order follows line order to keep the verdict
	// deterministic.
	obligations := make(map[string]decimal.Decimal)
	nodes := make(map[string]*domain.FundControlNode)
	var order []string
	for _, line := range candidate.Lines {
		node := resolveLineNode(line, hierarchy)
		if node == nil {
			continue
		}
		if _, seen := nodes[node.NodeID]; !seen {
			nodes[node.NodeID] = node
			order = append(order, node.NodeID)
		}
		obligations[node.NodeID] = obligations[node.NodeID].Add(line.Debit)
	}

	for _, nodeID := range order {
		node := nodes[nodeID]
		obligation := obligations[nodeID]
		if node.AmountDistributed.Add(obligation).GreaterThan(node.TotalAuthority) {
			return ValidationResult{
				Valid: false,
				Message: fmt.Sprintf("fund control violation: obligation of %s exceeds available authority %s on %s (%s)",
					obligation.String(), node.Available().String(), node.Name, node.NodeID),
			}
		}
	}

	return ValidationResult{Valid: true, Message: "transaction passes ledger balance and fund control checks"}
}

func resolveLineNode(line domain.Line, hierarchy []*domain.FundControlNode) *domain.FundControlNode {
	if line.FundCode != "" {
		if n := findNodeByID(hierarchy, line.FundCode); n != nil {
			return n
		}
	}
	if line.CostCenter != "" {
		if n := findNodeByID(hierarchy, line.CostCenter); n != nil {
			return n
		}
	}
	return nil
}

func findNodeByID(hierarchy []*domain.FundControlNode, nodeID string) *domain.FundControlNode {
	for _, root := range hierarchy {
		if n := searchNode(root, nodeID); n != nil {
			return n
		}
	}
	return nil
}

func searchNode(n *domain.FundControlNode, nodeID string) *domain.FundControlNode {
	if n.NodeID == nodeID {
		return n
	}
	for _, c := range n.Children {
		if found := searchNode(c, nodeID); found != nil {
			return found
		}
	}
	return nil
}
