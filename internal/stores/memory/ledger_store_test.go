package memory_test

import (
	"testing"
	"time"

	"github.com/fmops/finledger/internal/apperrors"
	"github.com/fmops/finledger/internal/core/domain"
	"github.com/fmops/finledger/internal/stores/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testTransaction(id string, status domain.TransactionStatus) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Date:          time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Description:   "Utilities accrual",
		Type:          domain.TypeAccrual,
		SourceModule:  "expense",
		ReferenceID:   "EXP-1",
		TotalAmount:   dec("1000"),
		Status:        status,
		Lines: []domain.Line{
			{AccountCode: domain.AcctOperatingExpenses, Debit: dec("1000"), FundCode: "CC-ENG"},
			{AccountCode: domain.AcctAccountsPayable, Credit: dec("1000"), FundCode: "CC-ENG"},
		},
	}
}

type LedgerStoreTestSuite struct {
	suite.Suite
	store *memory.LedgerStore
}

func (s *LedgerStoreTestSuite) SetupTest() {
	s.store = memory.NewLedgerStore(nil)
}

func (s *LedgerStoreTestSuite) TestAddTransactionAppendsAtFront() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-2", domain.StatusPosted)))

	txns := s.store.GetTransactions()
	require.Len(s.T(), txns, 2)
	assert.Equal(s.T(), "ACR-2", txns[0].TransactionID, "newest entry comes first")
	assert.Equal(s.T(), "ACR-1", txns[1].TransactionID)
}

func (s *LedgerStoreTestSuite) TestAddTransactionRejectsDuplicateID() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))

	err := s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted))
	assert.ErrorIs(s.T(), err, apperrors.ErrDuplicate)
	assert.Len(s.T(), s.store.GetTransactions(), 1, "store is unchanged after a rejected add")
}

func (s *LedgerStoreTestSuite) TestAddTransactionRejectsUnbalancedPostedEntry() {
	lopsided := testTransaction("ACR-1", domain.StatusPosted)
	lopsided.Lines[1].Credit = dec("80")

	err := s.store.AddTransaction(lopsided)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	assert.Empty(s.T(), s.store.GetTransactions(), "store is unchanged after a rejected add")
}

func (s *LedgerStoreTestSuite) TestAddTransactionAcceptsUnbalancedPendingDraft() {
	draft := testTransaction("MJ-1", domain.StatusPendingApproval)
	draft.Lines[1].Credit = dec("80")

	require.NoError(s.T(), s.store.AddTransaction(draft))
}

func (s *LedgerStoreTestSuite) TestGetTransactionsIsIdempotent() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))

	first := s.store.GetTransactions()
	second := s.store.GetTransactions()
	assert.Equal(s.T(), first, second)
}

func (s *LedgerStoreTestSuite) TestSnapshotIsolation() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))

	snapshot := s.store.GetTransactions()
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-2", domain.StatusPosted)))

	assert.Len(s.T(), snapshot, 1, "earlier snapshot is unaffected by later mutation")
	assert.Len(s.T(), s.store.GetTransactions(), 2)
}

func (s *LedgerStoreTestSuite) TestGetTransactionByID() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))

	txn, err := s.store.GetTransaction("ACR-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "ACR-1", txn.TransactionID)

	_, err = s.store.GetTransaction("ACR-404")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *LedgerStoreTestSuite) TestUpdateTransactionUnknownID() {
	err := s.store.UpdateTransaction(testTransaction("ACR-404", domain.StatusPosted))
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *LedgerStoreTestSuite) TestUpdatePendingTransaction() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("MJ-1", domain.StatusPendingApproval)))

	edited := testTransaction("MJ-1", domain.StatusPendingApproval)
	edited.Lines[0].Debit = dec("500")
	edited.Lines[1].Credit = dec("500")
	edited.TotalAmount = dec("500")
	require.NoError(s.T(), s.store.UpdateTransaction(edited))

	stored, err := s.store.GetTransaction("MJ-1")
	require.NoError(s.T(), err)
	assert.True(s.T(), stored.TotalAmount.Equal(dec("500")))
}

func (s *LedgerStoreTestSuite) TestPendingToPostedTransition() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("MJ-1", domain.StatusPendingApproval)))

	posted := testTransaction("MJ-1", domain.StatusPosted)
	require.NoError(s.T(), s.store.UpdateTransaction(posted))

	stored, err := s.store.GetTransaction("MJ-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.StatusPosted, stored.Status)
}

func (s *LedgerStoreTestSuite) TestPendingToPostedRequiresBalance() {
	draft := testTransaction("MJ-1", domain.StatusPendingApproval)
	draft.Lines[1].Credit = dec("80")
	require.NoError(s.T(), s.store.AddTransaction(draft))

	posted := testTransaction("MJ-1", domain.StatusPosted)
	posted.Lines[1].Credit = dec("80")
	err := s.store.UpdateTransaction(posted)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)

	stored, getErr := s.store.GetTransaction("MJ-1")
	require.NoError(s.T(), getErr)
	assert.Equal(s.T(), domain.StatusPendingApproval, stored.Status)
}

func (s *LedgerStoreTestSuite) TestPostedLinesAreImmutable() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))

	tampered := testTransaction("ACR-1", domain.StatusPosted)
	tampered.Lines[0].Debit = dec("999999")
	err := s.store.UpdateTransaction(tampered)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)

	stored, getErr := s.store.GetTransaction("ACR-1")
	require.NoError(s.T(), getErr)
	assert.True(s.T(), stored.Lines[0].Debit.Equal(dec("1000")))
}

func (s *LedgerStoreTestSuite) TestPostedCannotLeavePostedStatus() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))

	demoted := testTransaction("ACR-1", domain.StatusPendingApproval)
	err := s.store.UpdateTransaction(demoted)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *LedgerStoreTestSuite) TestPostedAuditTrailMayGrow() {
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))

	annotated := testTransaction("ACR-1", domain.StatusPosted)
	annotated.AuditTrail = append(annotated.AuditTrail, domain.AuditEvent{
		At: time.Now().UTC(), Actor: "auditor", Action: "REVERSED_BY RVS-1",
	})
	require.NoError(s.T(), s.store.UpdateTransaction(annotated))

	stored, err := s.store.GetTransaction("ACR-1")
	require.NoError(s.T(), err)
	assert.Len(s.T(), stored.AuditTrail, 1)
}

func (s *LedgerStoreTestSuite) TestSubscribersNotifiedAfterMutation() {
	var observed []int
	unsubscribe := s.store.Subscribe(func() {
		observed = append(observed, len(s.store.GetTransactions()))
	})
	defer unsubscribe()

	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))
	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-2", domain.StatusPosted)))

	// Each read-back inside the listener reflects exactly the mutation that
	// triggered it.
	assert.Equal(s.T(), []int{1, 2}, observed)
}

func (s *LedgerStoreTestSuite) TestNoNotificationOnRejectedMutation() {
	notified := 0
	unsubscribe := s.store.Subscribe(func() { notified++ })
	defer unsubscribe()

	require.NoError(s.T(), s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted)))
	_ = s.store.AddTransaction(testTransaction("ACR-1", domain.StatusPosted))

	assert.Equal(s.T(), 1, notified)
}

func TestLedgerStoreTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerStoreTestSuite))
}
