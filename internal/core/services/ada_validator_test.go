package services_test

import (
	"testing"

	"github.com/fmops/finledger/internal/core/domain"
	"github.com/fmops/finledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validationHierarchy() []*domain.FundControlNode {
	return []*domain.FundControlNode{
		{
			NodeID: "FUND-OMA", Name: "Operations & Maintenance",
			TotalAuthority:    dec("10000"),
			AmountDistributed: dec("6000"),
			Children: []*domain.FundControlNode{
				{NodeID: "CC-ENG", Name: "Engineering", TotalAuthority: dec("1000"), AmountDistributed: dec("950")},
			},
		},
	}
}

func TestValidateTransaction_BalancedEntryPasses(t *testing.T) {
	candidate := domain.Transaction{Lines: []domain.Line{
		{AccountCode: domain.AcctOperatingExpenses, Debit: dec("40"), FundCode: "CC-ENG"},
		{AccountCode: domain.AcctAccountsPayable, Credit: dec("40"), FundCode: "CC-ENG"},
	}}

	result := services.ValidateTransaction(candidate, validationHierarchy())
	assert.True(t, result.Valid, result.Message)
}

func TestValidateTransaction_RejectsImbalance(t *testing.T) {
	candidate := domain.Transaction{Lines: []domain.Line{
		{Debit: dec("100")},
		{Credit: dec("80")},
	}}

	result := services.ValidateTransaction(candidate, validationHierarchy())
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "Ledger imbalance")
}

func TestValidateTransaction_ImbalanceWithinEpsilonPasses(t *testing.T) {
	candidate := domain.Transaction{Lines: []domain.Line{
		{Debit: dec("100.005")},
		{Credit: dec("100")},
	}}

	result := services.ValidateTransaction(candidate, validationHierarchy())
	assert.True(t, result.Valid, result.Message)
}

func TestValidateTransaction_RejectsFundControlBreach(t *testing.T) {
	// CC-ENG has 1000 authority with 950 distributed: an obligation of 100
	// would breach it.
	candidate := domain.Transaction{Lines: []domain.Line{
		{AccountCode: domain.AcctOperatingExpenses, Debit: dec("100"), FundCode: "CC-ENG"},
		{AccountCode: domain.AcctAccountsPayable, Credit: dec("100")},
	}}

	result := services.ValidateTransaction(candidate, validationHierarchy())
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "fund control violation")
	assert.Contains(t, result.Message, "Engineering")
}

func TestValidateTransaction_AggregatesObligationsPerNode(t *testing.T) {
	// Two 30-unit debits against the same node together exceed the 50
	// available, even though each alone would fit.
	candidate := domain.Transaction{Lines: []domain.Line{
		{Debit: dec("30"), FundCode: "CC-ENG"},
		{Debit: dec("30"), FundCode: "CC-ENG"},
		{Credit: dec("60")},
	}}

	result := services.ValidateTransaction(candidate, validationHierarchy())
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "fund control violation")
}

func TestValidateTransaction_CostCenterFallbackLookup(t *testing.T) {
	candidate := domain.Transaction{Lines: []domain.Line{
		{Debit: dec("100"), FundCode: "NOT-A-NODE", CostCenter: "CC-ENG"},
		{Credit: dec("100")},
	}}

	result := services.ValidateTransaction(candidate, validationHierarchy())
	assert.False(t, result.Valid, "cost center maps the line to the breached node")
}

func TestValidateTransaction_UnmappedLinesAreExempt(t *testing.T) {
	candidate := domain.Transaction{Lines: []domain.Line{
		{Debit: dec("99999"), FundCode: "ELSEWHERE"},
		{Credit: dec("99999")},
	}}

	result := services.ValidateTransaction(candidate, validationHierarchy())
	assert.True(t, result.Valid, result.Message)
}

func TestValidateTransaction_IsPureAndDeterministic(t *testing.T) {
	hierarchy := validationHierarchy()
	candidate := domain.Transaction{Lines: []domain.Line{
		{Debit: dec("100"), FundCode: "CC-ENG"},
		{Credit: dec("80")},
	}}

	first := services.ValidateTransaction(candidate, hierarchy)
	second := services.ValidateTransaction(candidate, hierarchy)
	assert.Equal(t, first, second)

	// The hierarchy is untouched.
	assert.True(t, hierarchy[0].Children[0].AmountDistributed.Equal(dec("950")))
}
