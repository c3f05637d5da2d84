package split

import (
	"fmt"
	"math"
)

// =============================================================================
// CUSTOM SPLIT STRATEGY
// Each participant owes a caller-supplied amount (must sum to total)
// =============================================================================

// CustomStrategy implements the Strategy interface for custom amount splits
type CustomStrategy struct{}

// Type returns the split type identifier
func (s *CustomStrategy) Type() Type {
	return TypeCustom
}

// Validate checks if the inputs are valid for a custom split.
// The length check runs before any summing so a short or long amounts list
// never silently truncates.
func (s *CustomStrategy) Validate(total float64, names []string, amounts []float64) error {
	if len(names) == 0 {
		return ErrNoParticipants
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return &InvalidAmountError{Field: "total"}
	}
	if len(amounts) != len(names) {
		return ErrCountMismatch
	}

	var sum float64
	for i, a := range amounts {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return &InvalidAmountError{Field: fmt.Sprintf("amount[%d]", i)}
		}
		if a < 0 {
			return ErrNegativeAmount
		}
		sum += a
	}

	// Allow for small floating point errors
	if math.Abs(sum-total) > ReconcileTolerance {
		return &SumMismatchError{Expected: total, Actual: sum}
	}

	return nil
}

// Compute pairs each name with its amount strictly by position. Validation is
// all-or-nothing: no participant is assigned anything unless every amount
// passed and the sum reconciled.
func (s *CustomStrategy) Compute(total float64, names []string, amounts []float64) ([]Participant, error) {
	if err := s.Validate(total, names, amounts); err != nil {
		return nil, err
	}

	out := make([]Participant, len(names))
	for i, name := range names {
		out[i] = Participant{Name: name, Amount: amounts[i]}
	}
	return out, nil
}
