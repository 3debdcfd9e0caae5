package maths

import (
	"encoding/json"
	"math"
	"strconv"
)

// MaxSafeInteger is the largest magnitude a float64 operand may have. Above
// it a float64 no longer tells neighbouring integers apart, so the value the
// caller sent may already have been rounded.
const MaxSafeInteger = 1<<53 - 1

// Validate checks that a and b are integers and that they satisfy the
// constraints of op. It returns the operands as int64 values.
func Validate(op Operation, a, b any) (int64, int64, error) {
	x, ok := toInt64(a)
	if !ok {
		return 0, 0, newError(KindInvalidOperand, "a must be an integer")
	}
	y, ok := toInt64(b)
	if !ok {
		return 0, 0, newError(KindInvalidOperand, "b must be an integer")
	}

	switch op {
	case Divide:
		if y == 0 {
			return 0, 0, newError(KindDivisionByZero, "Division by zero is not allowed")
		}
	case Power:
		if y < 0 {
			return 0, 0, newError(KindInvalidOperand, "b must be a non-negative integer")
		}
	}
	return x, y, nil
}

// toInt64 accepts native integers and integral JSON numbers. Strings, bools
// and fractional values are rejected, never coerced. Native integers and
// json.Number cover the whole int64 range; floats stop at MaxSafeInteger.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	case json.Number:
		i, err := strconv.ParseInt(string(n), 10, 64)
		if err != nil {
			return floatToInt64FromString(string(n))
		}
		return i, true
	default:
		return 0, false
	}
}

func uintToInt64(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Trunc(f) != f {
		return 0, false
	}
	if math.Abs(f) > MaxSafeInteger {
		return 0, false
	}
	return int64(f), true
}

// floatToInt64FromString handles JSON numbers written with an exponent or a
// zero fraction, such as 1e3 or 4.0.
func floatToInt64FromString(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt64(f)
}
