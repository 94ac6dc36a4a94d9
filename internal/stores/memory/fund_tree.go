package memory

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fmops/finledger/internal/apperrors"
	"github.com/fmops/finledger/internal/core/domain"
	"github.com/fmops/finledger/internal/core/ports"
	"github.com/fmops/finledger/internal/pubsub"
)

// FundAuthorityTree owns the fund control hierarchy and the transfer log.
// Every node mutation rebuilds the path from the affected root down to the
// changed node; sibling subtrees are carried over by reference. A reader
// holding an older snapshot therefore never observes a torn write.
type FundAuthorityTree struct {
	mu        sync.RWMutex
	roots     []*domain.FundControlNode
	transfers []domain.TransferAction
	notifier  pubsub.Notifier
	logger    *slog.Logger
}

var _ ports.FundAuthorityTree = (*FundAuthorityTree)(nil)

// NewFundAuthorityTree creates a tree store seeded with the given hierarchy.
// The seed is deep-copied so the store exclusively owns its node state.
func NewFundAuthorityTree(logger *slog.Logger, seed []*domain.FundControlNode) *FundAuthorityTree {
	if logger == nil {
		logger = slog.Default()
	}
	roots := make([]*domain.FundControlNode, len(seed))
	for i, n := range seed {
		roots[i] = n.Clone()
	}
	return &FundAuthorityTree{roots: roots, logger: logger}
}

// GetHierarchy returns the current top-level fund trees. The slice is a copy;
// the nodes are shared immutable snapshots.
func (s *FundAuthorityTree) GetHierarchy() []*domain.FundControlNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]*domain.FundControlNode, len(s.roots))
	copy(snapshot, s.roots)
	return snapshot
}

// FindNode resolves a node by exact id, pre-order across the roots.
func (s *FundAuthorityTree) FindNode(nodeID string) (*domain.FundControlNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, root := range s.roots {
		if n := findByID(root, nodeID); n != nil {
			return n, nil
		}
	}
	return nil, fmt.Errorf("fund node %s: %w", nodeID, apperrors.ErrNotFound)
}

// FindNodesByName returns every node whose display name equals name, in
// pre-order. This is a convenience query for reporting; mutation paths
// resolve targets by id only, since names are not unique.
func (s *FundAuthorityTree) FindNodesByName(name string) []*domain.FundControlNode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []*domain.FundControlNode
	for _, root := range s.roots {
		collectByName(root, name, &matches)
	}
	return matches
}

// AddDistribution applies d to the node whose id exactly equals d.ToUnit
// within the fund rooted at fundID. TotalAuthority and AmountDistributed each
// rise by d.Amount, so the distributed-within-authority invariant is
// preserved by construction.
func (s *FundAuthorityTree) AddDistribution(fundID string, d domain.Distribution) error {
	if d.Amount.IsNegative() || d.Amount.IsZero() {
		return fmt.Errorf("%w: distribution amount must be positive", apperrors.ErrValidation)
	}

	s.mu.Lock()
	rootIdx := -1
	for i, root := range s.roots {
		if root.NodeID == fundID {
			rootIdx = i
			break
		}
	}
	if rootIdx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("fund %s: %w", fundID, apperrors.ErrNotFound)
	}

	target := findByID(s.roots[rootIdx], d.ToUnit)
	if target == nil {
		s.mu.Unlock()
		return fmt.Errorf("distribution target %q: %w", d.ToUnit, apperrors.ErrInvalidTarget)
	}

	updated := *target
	updated.TotalAuthority = target.TotalAuthority.Add(d.Amount)
	updated.AmountDistributed = target.AmountDistributed.Add(d.Amount)

	newRoot, _ := replaceNode(s.roots[rootIdx], &updated)
	s.setRoot(rootIdx, newRoot)
	s.mu.Unlock()

	s.logger.Info("distribution applied",
		slog.String("fund_id", fundID),
		slog.String("to_unit", d.ToUnit),
		slog.String("amount", d.Amount.String()),
	)
	s.notifier.Notify()
	return nil
}

// UpdateNode replaces the node with matching id anywhere in the hierarchy by
// rebuilding the path from its root. The replacement node (and the subtree it
// carries) becomes part of the new snapshot as-is.
func (s *FundAuthorityTree) UpdateNode(node *domain.FundControlNode) error {
	if node == nil {
		return fmt.Errorf("%w: node must not be nil", apperrors.ErrValidation)
	}
	if node.AmountDistributed.GreaterThan(node.TotalAuthority) {
		return fmt.Errorf("%w: node %s would have distributed %s above authority %s",
			apperrors.ErrValidation, node.NodeID,
			node.AmountDistributed.String(), node.TotalAuthority.String())
	}

	s.mu.Lock()
	replaced := false
	for i, root := range s.roots {
		if newRoot, ok := replaceNode(root, node); ok {
			s.setRoot(i, newRoot)
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if !replaced {
		return fmt.Errorf("fund node %s: %w", node.NodeID, apperrors.ErrNotFound)
	}

	s.logger.Info("fund node updated", slog.String("node_id", node.NodeID))
	s.notifier.Notify()
	return nil
}

// GetTransfers returns the transfer log, oldest first.
func (s *FundAuthorityTree) GetTransfers() []domain.TransferAction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.TransferAction, len(s.transfers))
	copy(snapshot, s.transfers)
	return snapshot
}

// AddTransfer appends t to the transfer log and notifies subscribers. The
// nodes themselves are not rebalanced here; without the offsetting UpdateNode
// calls the log and the tree diverge. Use the orchestrator's
// ApplyAuthorityTransfer for the full discipline.
func (s *FundAuthorityTree) AddTransfer(t domain.TransferAction) error {
	if t.Amount.IsNegative() || t.Amount.IsZero() {
		return fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	s.mu.Lock()
	next := make([]domain.TransferAction, 0, len(s.transfers)+1)
	next = append(next, s.transfers...)
	next = append(next, t)
	s.transfers = next
	s.mu.Unlock()

	s.logger.Info("transfer logged",
		slog.String("transfer_id", t.TransferID),
		slog.String("from", t.FromNodeID),
		slog.String("to", t.ToNodeID),
		slog.String("amount", t.Amount.String()),
	)
	s.notifier.Notify()
	return nil
}

// Subscribe registers a change listener; see pubsub.Notifier for the
// notification contract.
func (s *FundAuthorityTree) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

// setRoot swaps one root pointer via a copied top-level slice, keeping older
// GetHierarchy snapshots intact.
func (s *FundAuthorityTree) setRoot(i int, root *domain.FundControlNode) {
	next := make([]*domain.FundControlNode, len(s.roots))
	copy(next, s.roots)
	next[i] = root
	s.roots = next
}

// findByID walks the subtree pre-order and returns the first node whose id
// matches, or nil.
func findByID(n *domain.FundControlNode, nodeID string) *domain.FundControlNode {
	if n.NodeID == nodeID {
		return n
	}
	for _, c := range n.Children {
		if found := findByID(c, nodeID); found != nil {
			return found
		}
	}
	return nil
}

func collectByName(n *domain.FundControlNode, name string, out *[]*domain.FundControlNode) {
	if n.Name == name {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		collectByName(c, name, out)
	}
}

// replaceNode returns a new tree in which the node whose id matches
// updated.NodeID is replaced by updated. Only the path from root to the match
// is reconstructed; every sibling subtree is reused by reference. The second
// return reports whether a match was found.
func replaceNode(root *domain.FundControlNode, updated *domain.FundControlNode) (*domain.FundControlNode, bool) {
	if root.NodeID == updated.NodeID {
		return updated, true
	}
	for i, child := range root.Children {
		newChild, ok := replaceNode(child, updated)
		if !ok {
			continue
		}
		cp := *root
		cp.Children = make([]*domain.FundControlNode, len(root.Children))
		copy(cp.Children, root.Children)
		cp.Children[i] = newChild
		return &cp, true
	}
	return root, false
}
