// Package ports defines the interfaces through which the service layer and
// host application reach the stores. Callers receive handles by injection;
// there are no process-wide singletons.
package ports

import "github.com/fmops/finledger/internal/core/domain"

// LedgerStore owns the ordered collection of posted and pending transactions.
// Mutations notify subscribers synchronously after they are applied; accessors
// return snapshots the store never mutates in place.
type LedgerStore interface {
	// GetTransactions returns the current snapshot, newest first. Callers
	// must not mutate the returned entries.
	GetTransactions() []domain.Transaction
	// GetTransaction returns the entry with the given id, or ErrNotFound.
	GetTransaction(transactionID string) (*domain.Transaction, error)
	// AddTransaction appends at the front. Returns ErrDuplicate when the id
	// already exists and ErrValidation when a Posted entry does not balance.
	AddTransaction(txn domain.Transaction) error
	// UpdateTransaction replaces the entry matching txn.TransactionID.
	// Returns ErrNotFound when there is no match and ErrValidation when the
	// update would alter the lines of a Posted entry or move an unbalanced
	// entry into Posted status.
	UpdateTransaction(txn domain.Transaction) error
	// Subscribe registers a change listener and returns its unsubscribe
	// function. Listeners receive no payload; they re-read via the accessors.
	Subscribe(fn func()) func()
}

// FundAuthorityTree owns the fund control hierarchy and the transfer log.
// Node mutations rebuild the path from the root (copy-on-write), so snapshots
// held by readers stay valid and unchanged across later updates.
type FundAuthorityTree interface {
	// GetHierarchy returns the current top-level fund trees. Callers must
	// not mutate the returned nodes.
	GetHierarchy() []*domain.FundControlNode
	// FindNode resolves a node by exact id anywhere in the hierarchy,
	// pre-order, first match. Returns ErrNotFound when absent.
	FindNode(nodeID string) (*domain.FundControlNode, error)
	// FindNodesByName is the explicitly-labeled convenience lookup by display
	// name. Names are not unique; all matches are returned in pre-order.
	// Mutation paths never resolve targets by name.
	FindNodesByName(name string) []*domain.FundControlNode
	// AddDistribution applies d to the node whose id exactly equals d.ToUnit
	// within the fund rooted at fundID, raising TotalAuthority and
	// AmountDistributed by d.Amount. Returns ErrNotFound for an unknown
	// fundID and ErrInvalidTarget when no node matches d.ToUnit.
	AddDistribution(fundID string, d domain.Distribution) error
	// UpdateNode replaces the node with matching id anywhere in the
	// hierarchy. Returns ErrNotFound when absent and ErrValidation when the
	// replacement violates AmountDistributed <= TotalAuthority.
	UpdateNode(node *domain.FundControlNode) error
	// GetTransfers returns the transfer log, oldest first.
	GetTransfers() []domain.TransferAction
	// AddTransfer appends to the transfer log. It does not rebalance nodes;
	// callers must issue the offsetting UpdateNode calls themselves (the
	// orchestrator's ApplyAuthorityTransfer bundles both).
	AddTransfer(t domain.TransferAction) error
	// Subscribe registers a change listener and returns its unsubscribe
	// function.
	Subscribe(fn func()) func()
}
