package split

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type identifies a split policy
type Type string

const (
	TypeEven   Type = "EVEN"
	TypeCustom Type = "CUSTOM"
)

// ReconcileTolerance is the absolute allowance for floating-point drift when
// validating that custom amounts sum to the total.
const ReconcileTolerance = 0.01

// Participant pairs a person's name with the amount they owe.
// Identity is positional: two participants may share a name.
type Participant struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Strategy is the interface that all split policies implement.
// Compute returns one Participant per name; amounts is only consulted by
// policies that take per-person candidates and is matched to names by index.
type Strategy interface {
	// Compute produces the per-person obligations for the given total.
	Compute(total float64, names []string, amounts []float64) ([]Participant, error)

	// Type returns the policy identifier
	Type() Type

	// Validate checks the inputs without producing a result
	Validate(total float64, names []string, amounts []float64) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given type
func (f *Factory) Create(t Type) (Strategy, error) {
	switch t {
	case TypeEven:
		return &EvenStrategy{}, nil
	case TypeCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", t)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(t string) (Strategy, error) {
	return f.Create(Type(strings.ToUpper(t)))
}

var (
	ErrNoParticipants = errors.New("at least one participant is required")
	ErrCountMismatch  = errors.New("one amount is required per participant")
	ErrNegativeAmount = errors.New("amounts cannot be negative")
)

// InvalidAmountError reports a malformed or non-numeric amount, naming the
// field that failed so the caller can point the user at it.
type InvalidAmountError struct {
	Field string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount for %s", e.Field)
}

// SumMismatchError reports custom amounts that do not reconcile to the total
// within ReconcileTolerance.
type SumMismatchError struct {
	Expected float64
	Actual   float64
}

func (e *SumMismatchError) Error() string {
	return fmt.Sprintf("amounts must sum to total: expected %.2f, got %.2f", e.Expected, e.Actual)
}

// ParseAmount parses a raw currency string as supplied by a client.
// A malformed or non-finite value yields an InvalidAmountError naming field.
func ParseAmount(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InvalidAmountError{Field: field}
	}
	return v, nil
}
