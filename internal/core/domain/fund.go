package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundControlNode is one node in the fund authority hierarchy
// (command -> sub-command -> cost center). Nodes are treated as immutable
// once handed out in a snapshot: every mutation goes through the tree store,
// which rebuilds the path from the root and leaves untouched subtrees shared
// by reference. Invariant: AmountDistributed <= TotalAuthority at all times.
type FundControlNode struct {
	NodeID            string             `json:"nodeID"`
	Name              string             `json:"name"`
	TotalAuthority    decimal.Decimal    `json:"totalAuthority"`
	AmountDistributed decimal.Decimal    `json:"amountDistributed"`
	Children          []*FundControlNode `json:"children,omitempty"`
}

// Available returns the authority not yet distributed to children.
func (n *FundControlNode) Available() decimal.Decimal {
	return n.TotalAuthority.Sub(n.AmountDistributed)
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *FundControlNode) Clone() *FundControlNode {
	cp := *n
	if len(n.Children) > 0 {
		cp.Children = make([]*FundControlNode, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return &cp
}

// Distribution records authority pushed down from Treasury apportionment to a
// named target unit. It is self-contained, not a double-entry pair: applying
// it raises both TotalAuthority and AmountDistributed of the matched node by
// the same amount.
type Distribution struct {
	DistributionID string          `json:"distributionID"`
	ToUnit         string          `json:"toUnit"` // exact node id of the target
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Date           time.Time       `json:"date"`
}

// TransferAction records an authority reassignment between two fund nodes.
// Unlike a Distribution it is bookkept as a pair of offsetting node
// adjustments; appending the action to the transfer log does not itself
// rebalance the nodes.
type TransferAction struct {
	TransferID  string          `json:"transferID"`
	FromNodeID  string          `json:"fromNodeID"`
	ToNodeID    string          `json:"toNodeID"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	AuditFields
}
