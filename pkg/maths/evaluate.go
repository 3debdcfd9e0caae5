package maths

import (
	"fmt"
	"math/big"
	"strings"
)

// Limit is the result cap. Results above it are failures.
const Limit = 1000

// CapMode selects how the result cap is applied.
type CapMode string

const (
	// CapUpper fails only results greater than Limit. Large negative results
	// pass as long as they fit in an int64.
	CapUpper CapMode = "upper"
	// CapSymmetric fails results whose magnitude is greater than Limit.
	CapSymmetric CapMode = "symmetric"
)

// ParseCapMode resolves a cap mode name. The empty string selects CapUpper.
func ParseCapMode(s string) (CapMode, error) {
	switch CapMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", CapUpper:
		return CapUpper, nil
	case CapSymmetric:
		return CapSymmetric, nil
	default:
		return "", fmt.Errorf("unsupported cap mode: %q", s)
	}
}

// exponents at or above this overflow int64 for any base with |base| >= 2.
const maxPowerExponent = 64

var (
	limitHigh = big.NewInt(Limit)
	limitLow  = big.NewInt(-Limit)
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithCapMode sets how the result cap is applied.
func WithCapMode(mode CapMode) Option {
	return func(e *Evaluator) {
		e.mode = mode
	}
}

// Evaluator computes operations under a fixed result policy. It holds no
// mutable state and is safe for concurrent use.
type Evaluator struct {
	mode CapMode
}

// New returns an Evaluator. Without options it uses CapUpper.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{mode: CapUpper}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CapMode returns the configured cap mode.
func (e *Evaluator) CapMode() CapMode {
	return e.mode
}

// Evaluate resolves name, validates the raw operands and computes the result.
func (e *Evaluator) Evaluate(name string, a, b any) (int64, error) {
	op, err := ParseOperation(name)
	if err != nil {
		return 0, err
	}
	x, y, err := Validate(op, a, b)
	if err != nil {
		return 0, err
	}
	return e.Compute(op, x, y)
}

// Compute applies op to already validated operands and checks the result
// against the cap.
func (e *Evaluator) Compute(op Operation, a, b int64) (int64, error) {
	x, y := big.NewInt(a), big.NewInt(b)
	r := new(big.Int)

	switch op {
	case Add:
		r.Add(x, y)
	case Subtract:
		r.Sub(x, y)
	case Multiply:
		r.Mul(x, y)
	case Divide:
		if b == 0 {
			return 0, newError(KindDivisionByZero, "Division by zero is not allowed")
		}
		floorDiv(r, x, y)
	case Power:
		if b < 0 {
			return 0, newError(KindInvalidOperand, "b must be a non-negative integer")
		}
		if b >= maxPowerExponent && (a > 1 || a < -1) {
			return 0, newError(KindResultTooLarge, "Result exceeds character limit")
		}
		r.Exp(x, y, nil)
	default:
		return 0, newError(KindUnknownOperation, "Unknown operation")
	}

	return e.apply(r)
}

// apply enforces the result cap.
func (e *Evaluator) apply(r *big.Int) (int64, error) {
	if r.Cmp(limitHigh) > 0 {
		return 0, newError(KindResultTooLarge, "Result exceeds character limit")
	}
	if e.mode == CapSymmetric && r.Cmp(limitLow) < 0 {
		return 0, newError(KindResultTooLarge, "Result exceeds character limit")
	}
	if !r.IsInt64() {
		return 0, newError(KindResultTooLarge, "Result exceeds character limit")
	}
	return r.Int64(), nil
}

// floorDiv sets r to x / y rounded toward negative infinity.
func floorDiv(r, x, y *big.Int) {
	m := new(big.Int)
	r.QuoRem(x, y, m)
	if m.Sign() != 0 && m.Sign() != y.Sign() {
		r.Sub(r, big.NewInt(1))
	}
}

var defaultEvaluator = New()

// Evaluate computes name(a, b) with the default CapUpper policy.
func Evaluate(name string, a, b any) (int64, error) {
	return defaultEvaluator.Evaluate(name, a, b)
}
