// Package engine holds the example algorithms exposed by the engine service.
// Both are pure functions; transports live in pkg/adapters/http and pkg/adapters/mcp.
package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrDivisionByZero   = errors.New("division by zero is not allowed")
)

// Operation is an arithmetic operator.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// Operations lists every supported operator.
var Operations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}

// ParseOperation accepts the lowercase operator names.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.TrimSpace(s))
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// Calculate applies op to a and b.
func Calculate(a, b float64, op Operation) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
}
