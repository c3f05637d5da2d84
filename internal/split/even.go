package split

import "math"

// =============================================================================
// EVEN SPLIT STRATEGY
// Divides the total equally among all participants
// =============================================================================

// EvenStrategy implements the Strategy interface for even splits
type EvenStrategy struct{}

// Type returns the split type identifier
func (s *EvenStrategy) Type() Type {
	return TypeEven
}

// Validate checks if the inputs are valid for an even split.
// The total's sign is not validated: a negative total splits into negative
// shares, which the presentation layer may render as it sees fit.
func (s *EvenStrategy) Validate(total float64, names []string, _ []float64) error {
	if len(names) == 0 {
		return ErrNoParticipants
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return &InvalidAmountError{Field: "total"}
	}
	return nil
}

// Compute assigns total/n to every participant. Full float precision is
// carried; formatting to two decimals is the presentation layer's job, so the
// returned amounts always sum back to the total (modulo float division).
func (s *EvenStrategy) Compute(total float64, names []string, amounts []float64) ([]Participant, error) {
	if err := s.Validate(total, names, amounts); err != nil {
		return nil, err
	}

	share := total / float64(len(names))

	out := make([]Participant, len(names))
	for i, name := range names {
		out[i] = Participant{Name: name, Amount: share}
	}
	return out, nil
}
