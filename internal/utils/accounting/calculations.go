package accounting

import (
	"fmt"

	"github.com/fmops/finledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance within which debit and credit totals are
// considered equal.
var BalanceEpsilon = decimal.RequireFromString("0.01")

// SumDebits returns the total of all debit amounts across the lines.
func SumDebits(lines []domain.Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Debit)
	}
	return sum
}

// SumCredits returns the total of all credit amounts across the lines.
func SumCredits(lines []domain.Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Credit)
	}
	return sum
}

// EntryAmount computes the economic value of a balanced entry. For a balanced
// entry the debit side equals the credit side, so the debit total represents
// the money movement.
func EntryAmount(lines []domain.Line) decimal.Decimal {
	return SumDebits(lines)
}

// ValidateLines checks the per-line invariants: amounts non-negative and at
// least one side of each line non-zero.
func ValidateLines(lines []domain.Line) error {
	for i, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("line %d: amounts must be non-negative", i)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return fmt.Errorf("line %d: either debit or credit must be non-zero", i)
		}
	}
	return nil
}

// ValidateEntryBalance checks that the lines balance: the sum of debits must
// equal the sum of credits within BalanceEpsilon.
func ValidateEntryBalance(lines []domain.Line) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	debits := SumDebits(lines)
	credits := SumCredits(lines)
	if debits.Sub(credits).Abs().GreaterThan(BalanceEpsilon) {
		return fmt.Errorf("entry does not balance: debits sum is %s and credits sum is %s",
			debits.String(), credits.String())
	}
	return nil
}
