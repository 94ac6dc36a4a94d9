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

func seedHierarchy() []*domain.FundControlNode {
	return []*domain.FundControlNode{
		{
			NodeID: "FUND-OMA", Name: "Operations & Maintenance",
			TotalAuthority:    decimal.NewFromInt(5000),
			AmountDistributed: decimal.NewFromInt(3000),
			Children: []*domain.FundControlNode{
				{
					NodeID: "CMD-NW", Name: "Northwest Command",
					TotalAuthority:    decimal.NewFromInt(2000),
					AmountDistributed: decimal.NewFromInt(1500),
					Children: []*domain.FundControlNode{
						{NodeID: "CC-ENG", Name: "Engineering", TotalAuthority: decimal.NewFromInt(800), AmountDistributed: decimal.NewFromInt(650)},
						{NodeID: "CC-OPS", Name: "Operations", TotalAuthority: decimal.NewFromInt(600), AmountDistributed: decimal.NewFromInt(480)},
					},
				},
				{NodeID: "CMD-SE", Name: "Southeast Command", TotalAuthority: decimal.NewFromInt(1000), AmountDistributed: decimal.NewFromInt(900)},
			},
		},
	}
}

type FundTreeTestSuite struct {
	suite.Suite
	store *memory.FundAuthorityTree
}

func (s *FundTreeTestSuite) SetupTest() {
	s.store = memory.NewFundAuthorityTree(nil, seedHierarchy())
}

func (s *FundTreeTestSuite) TestSeedIsDeepCopied() {
	seed := seedHierarchy()
	store := memory.NewFundAuthorityTree(nil, seed)

	seed[0].TotalAuthority = decimal.NewFromInt(1)
	root := store.GetHierarchy()[0]
	assert.True(s.T(), root.TotalAuthority.Equal(decimal.NewFromInt(5000)))
}

func (s *FundTreeTestSuite) TestAddDistributionPropagation() {
	err := s.store.AddDistribution("FUND-OMA", domain.Distribution{
		DistributionID: "DIST-1",
		ToUnit:         "CC-ENG",
		Amount:         decimal.NewFromInt(500),
		Date:           time.Now().UTC(),
	})
	require.NoError(s.T(), err)

	node, err := s.store.FindNode("CC-ENG")
	require.NoError(s.T(), err)
	assert.True(s.T(), node.TotalAuthority.Equal(decimal.NewFromInt(1300)))
	assert.True(s.T(), node.AmountDistributed.Equal(decimal.NewFromInt(1150)))

	// No other node changes.
	sibling, err := s.store.FindNode("CC-OPS")
	require.NoError(s.T(), err)
	assert.True(s.T(), sibling.TotalAuthority.Equal(decimal.NewFromInt(600)))
	parent, err := s.store.FindNode("CMD-NW")
	require.NoError(s.T(), err)
	assert.True(s.T(), parent.TotalAuthority.Equal(decimal.NewFromInt(2000)))
}

func (s *FundTreeTestSuite) TestAddDistributionToRootNode() {
	store := memory.NewFundAuthorityTree(nil, []*domain.FundControlNode{
		{NodeID: "root", Name: "root"},
	})

	err := store.AddDistribution("root", domain.Distribution{ToUnit: "root", Amount: decimal.NewFromInt(500)})
	require.NoError(s.T(), err)

	root := store.GetHierarchy()[0]
	assert.True(s.T(), root.TotalAuthority.Equal(decimal.NewFromInt(500)))
	assert.True(s.T(), root.AmountDistributed.Equal(decimal.NewFromInt(500)))
}

func (s *FundTreeTestSuite) TestAddDistributionUnknownFund() {
	err := s.store.AddDistribution("FUND-404", domain.Distribution{ToUnit: "CC-ENG", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *FundTreeTestSuite) TestAddDistributionUnknownTarget() {
	err := s.store.AddDistribution("FUND-OMA", domain.Distribution{ToUnit: "CC-404", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidTarget)
}

func (s *FundTreeTestSuite) TestAddDistributionMatchesByIDOnly() {
	// "Engineering" is a display name, not an id; mutation paths must not
	// resolve it.
	err := s.store.AddDistribution("FUND-OMA", domain.Distribution{ToUnit: "Engineering", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidTarget)
}

func (s *FundTreeTestSuite) TestAddDistributionRejectsNonPositiveAmount() {
	err := s.store.AddDistribution("FUND-OMA", domain.Distribution{ToUnit: "CC-ENG", Amount: decimal.NewFromInt(-5)})
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *FundTreeTestSuite) TestCopyOnWriteLeavesOldSnapshotIntact() {
	before := s.store.GetHierarchy()
	beforeEng := before[0].Children[0].Children[0]
	require.Equal(s.T(), "CC-ENG", beforeEng.NodeID)

	require.NoError(s.T(), s.store.AddDistribution("FUND-OMA", domain.Distribution{
		ToUnit: "CC-ENG", Amount: decimal.NewFromInt(500),
	}))

	// The old snapshot still shows the pre-mutation values.
	assert.True(s.T(), beforeEng.TotalAuthority.Equal(decimal.NewFromInt(800)))

	after := s.store.GetHierarchy()
	assert.NotSame(s.T(), before[0], after[0], "path to the mutated node is rebuilt")
	assert.NotSame(s.T(), before[0].Children[0], after[0].Children[0])

	// Untouched subtrees are carried over by reference, not deep-rebuilt.
	assert.Same(s.T(), before[0].Children[1], after[0].Children[1])
	assert.Same(s.T(), before[0].Children[0].Children[1], after[0].Children[0].Children[1])
}

func (s *FundTreeTestSuite) TestUpdateNodeReplacesByID() {
	replacement := &domain.FundControlNode{
		NodeID:            "CC-OPS",
		Name:              "Operations (renamed)",
		TotalAuthority:    decimal.NewFromInt(700),
		AmountDistributed: decimal.NewFromInt(480),
	}
	require.NoError(s.T(), s.store.UpdateNode(replacement))

	node, err := s.store.FindNode("CC-OPS")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Operations (renamed)", node.Name)
	assert.True(s.T(), node.TotalAuthority.Equal(decimal.NewFromInt(700)))
}

func (s *FundTreeTestSuite) TestUpdateNodeUnknownID() {
	err := s.store.UpdateNode(&domain.FundControlNode{NodeID: "CC-404"})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *FundTreeTestSuite) TestUpdateNodeRejectsInvariantViolation() {
	err := s.store.UpdateNode(&domain.FundControlNode{
		NodeID:            "CC-ENG",
		TotalAuthority:    decimal.NewFromInt(100),
		AmountDistributed: decimal.NewFromInt(200),
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *FundTreeTestSuite) TestInvariantHoldsAcrossMutations() {
	require.NoError(s.T(), s.store.AddDistribution("FUND-OMA", domain.Distribution{
		ToUnit: "CMD-SE", Amount: decimal.NewFromInt(250),
	}))

	var check func(n *domain.FundControlNode)
	check = func(n *domain.FundControlNode) {
		assert.False(s.T(), n.AmountDistributed.GreaterThan(n.TotalAuthority),
			"node %s: distributed must not exceed authority", n.NodeID)
		for _, c := range n.Children {
			check(c)
		}
	}
	for _, root := range s.store.GetHierarchy() {
		check(root)
	}
}

func (s *FundTreeTestSuite) TestFindNodesByName() {
	matches := s.store.FindNodesByName("Engineering")
	require.Len(s.T(), matches, 1)
	assert.Equal(s.T(), "CC-ENG", matches[0].NodeID)

	assert.Empty(s.T(), s.store.FindNodesByName("No Such Unit"))
}

func (s *FundTreeTestSuite) TestTransferLog() {
	transfer := domain.TransferAction{
		TransferID: "XFR-1",
		FromNodeID: "CC-ENG",
		ToNodeID:   "CC-OPS",
		Amount:     decimal.NewFromInt(100),
	}
	require.NoError(s.T(), s.store.AddTransfer(transfer))

	log := s.store.GetTransfers()
	require.Len(s.T(), log, 1)
	assert.Equal(s.T(), "XFR-1", log[0].TransferID)

	// AddTransfer alone does not rebalance nodes.
	node, err := s.store.FindNode("CC-ENG")
	require.NoError(s.T(), err)
	assert.True(s.T(), node.TotalAuthority.Equal(decimal.NewFromInt(800)))
}

func (s *FundTreeTestSuite) TestSubscribersNotifiedOnDistribution() {
	notified := 0
	unsubscribe := s.store.Subscribe(func() { notified++ })
	defer unsubscribe()

	require.NoError(s.T(), s.store.AddDistribution("FUND-OMA", domain.Distribution{
		ToUnit: "CC-ENG", Amount: decimal.NewFromInt(10),
	}))
	assert.Equal(s.T(), 1, notified)
}

func TestFundTreeTestSuite(t *testing.T) {
	suite.Run(t, new(FundTreeTestSuite))
}
