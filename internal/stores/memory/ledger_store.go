// Package memory holds the in-memory stores: the ledger of transactions and
// the fund authority tree. Both follow the same discipline: mutations replace
// the top-level collection rather than editing elements in place, so any
// snapshot handed to a reader stays valid and unchanged across later writes.
package memory

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/fmops/finledger/internal/apperrors"
	"github.com/fmops/finledger/internal/core/domain"
	"github.com/fmops/finledger/internal/core/ports"
	"github.com/fmops/finledger/internal/pubsub"
	"github.com/fmops/finledger/internal/utils/accounting"
)

// LedgerStore owns the ordered transaction collection, newest first.
type LedgerStore struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
	ids          map[string]struct{}
	notifier     pubsub.Notifier
	logger       *slog.Logger
}

var _ ports.LedgerStore = (*LedgerStore)(nil)

// NewLedgerStore creates an empty ledger store.
func NewLedgerStore(logger *slog.Logger) *LedgerStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerStore{
		ids:    make(map[string]struct{}),
		logger: logger,
	}
}

// GetTransactions returns the current snapshot, newest first. The slice is a
// copy; the entries are shared but never mutated in place by the store.
func (s *LedgerStore) GetTransactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.Transaction, len(s.transactions))
	copy(snapshot, s.transactions)
	return snapshot
}

// GetTransaction returns the entry with the given id, or ErrNotFound.
func (s *LedgerStore) GetTransaction(transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.transactions {
		if s.transactions[i].TransactionID == transactionID {
			txn := s.transactions[i]
			return &txn, nil
		}
	}
	return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
}

// AddTransaction appends txn at the front of the collection and notifies
// subscribers. The id must be unique; a duplicate returns ErrDuplicate with
// the store unchanged. A Posted entry must balance; the store enforces this
// itself so no caller path can slip an unbalanced entry into Posted state.
func (s *LedgerStore) AddTransaction(txn domain.Transaction) error {
	if err := postedEntryBalances(txn); err != nil {
		return err
	}

	s.mu.Lock()
	if _, exists := s.ids[txn.TransactionID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
	}

	next := make([]domain.Transaction, 0, len(s.transactions)+1)
	next = append(next, txn)
	next = append(next, s.transactions...)
	s.transactions = next
	s.ids[txn.TransactionID] = struct{}{}
	s.mu.Unlock()

	s.logger.Info("transaction added",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("total", txn.TotalAmount.String()),
	)
	s.notifier.Notify()
	return nil
}

// UpdateTransaction replaces the entry matching txn.TransactionID and
// notifies subscribers. Posted entries are immutable in their financial
// content: only the audit trail and audit fields of a Posted entry may
// change, and a Posted entry can never leave Posted status. Pending entries
// may be edited freely, including the transition to Posted, but an entry
// entering Posted status must balance.
func (s *LedgerStore) UpdateTransaction(txn domain.Transaction) error {
	if err := postedEntryBalances(txn); err != nil {
		return err
	}

	s.mu.Lock()
	idx := -1
	for i := range s.transactions {
		if s.transactions[i].TransactionID == txn.TransactionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrNotFound)
	}

	existing := s.transactions[idx]
	if existing.Status == domain.StatusPosted {
		if err := postedUpdateAllowed(existing, txn); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	next := make([]domain.Transaction, len(s.transactions))
	copy(next, s.transactions)
	next[idx] = txn
	s.transactions = next
	s.mu.Unlock()

	s.logger.Info("transaction updated",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("status", string(txn.Status)),
	)
	s.notifier.Notify()
	return nil
}

// Subscribe registers a change listener; see pubsub.Notifier for the
// notification contract.
func (s *LedgerStore) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

// postedEntryBalances gates entry into Posted status on the balance
// invariant. Pending drafts may be unbalanced while under edit.
func postedEntryBalances(txn domain.Transaction) error {
	if txn.Status != domain.StatusPosted {
		return nil
	}
	if err := accounting.ValidateEntryBalance(txn.Lines); err != nil {
		return fmt.Errorf("%w: transaction %s: %s",
			apperrors.ErrValidation, txn.TransactionID, err.Error())
	}
	return nil
}

// postedUpdateAllowed enforces the immutability boundary for Posted entries:
// corrections happen through reversing entries, never by editing lines.
func postedUpdateAllowed(existing, updated domain.Transaction) error {
	if updated.Status != domain.StatusPosted {
		return fmt.Errorf("%w: posted transaction %s cannot leave posted status",
			apperrors.ErrValidation, existing.TransactionID)
	}
	if !linesEqual(existing.Lines, updated.Lines) ||
		!existing.TotalAmount.Equal(updated.TotalAmount) ||
		existing.Type != updated.Type ||
		!existing.Date.Equal(updated.Date) {
		return fmt.Errorf("%w: posted transaction %s is immutable; post a reversing entry instead",
			apperrors.ErrValidation, existing.TransactionID)
	}
	return nil
}

func linesEqual(a, b []domain.Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].AccountCode != b[i].AccountCode ||
			a[i].FundCode != b[i].FundCode ||
			a[i].CostCenter != b[i].CostCenter ||
			!a[i].Debit.Equal(b[i].Debit) ||
			!a[i].Credit.Equal(b[i].Credit) {
			return false
		}
	}
	return true
}
