// Package maths validates and evaluates the integer operations served by the
// maths tools.
//
// Every call is pure: operands are validated, the operation is computed with
// exact integer arithmetic, and the result is checked against the result cap.
// Failures are returned as *Error values carrying a Kind.
package maths

// Operation names one of the supported arithmetic operations.
type Operation string

const (
	Add      Operation = "add"
	Subtract Operation = "subtract"
	Multiply Operation = "multiply"
	Divide   Operation = "divide"
	Power    Operation = "power"
)

var operations = []Operation{Add, Subtract, Multiply, Divide, Power}

// Operations returns all supported operations in a stable order.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// ParseOperation resolves an operation by its exact name.
func ParseOperation(name string) (Operation, error) {
	for _, op := range operations {
		if string(op) == name {
			return op, nil
		}
	}
	return "", newError(KindUnknownOperation, "Unknown operation")
}

func (o Operation) String() string {
	return string(o)
}
