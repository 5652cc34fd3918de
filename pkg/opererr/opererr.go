// Package opererr defines the structured error type used throughout the
// operator tree for contract violations — type mismatches, schema
// mismatches, out-of-range indices, and protocol misuse (§4.10, §7). These
// are programmer errors, not recoverable runtime conditions; end-of-stream
// is never represented here, since it is conveyed solely by Advance
// returning false (§7).
package opererr

import (
	"fmt"
)

// Kind classifies the nature of a contract violation.
type Kind int

const (
	// KindTypeMismatch: comparing or aggregating Registers of different
	// variants, or a column value of the wrong variant for its position.
	KindTypeMismatch Kind = iota
	// KindSchemaMismatch: binary operators combining inputs whose arity
	// disagrees, or an operator configured with an empty column, key or
	// aggregate list. A per-column variant disagreement is reported as
	// KindTypeMismatch.
	KindSchemaMismatch
	// KindIndexOutOfRange: a configured column index falls outside the
	// input schema.
	KindIndexOutOfRange
	// KindProtocolMisuse: Output called without a successful prior Advance,
	// or an operator method invoked outside the §4.9 state machine.
	KindProtocolMisuse
)

func (k Kind) String() string {
	switch k {
	case KindTypeMismatch:
		return "TYPE_MISMATCH"
	case KindSchemaMismatch:
		return "SCHEMA_MISMATCH"
	case KindIndexOutOfRange:
		return "INDEX_OUT_OF_RANGE"
	case KindProtocolMisuse:
		return "PROTOCOL_MISUSE"
	default:
		return "UNKNOWN"
	}
}

// Violation is a structured contract-violation error with provenance:
// which operator and which operation detected it.
type Violation struct {
	Kind      Kind
	Operation string // e.g. "HashJoin.Open", "Selection.New"
	Component string // e.g. "hashjoin", "selection"
	Message   string
	Cause     error
}

// New creates a Violation with the given kind, operation/component
// provenance, and message.
func New(kind Kind, operation, component, message string) *Violation {
	return &Violation{Kind: kind, Operation: operation, Component: component, Message: message}
}

// Wrap wraps cause as a Violation, attaching operation/component
// provenance. Returns nil if cause is nil.
func Wrap(cause error, kind Kind, operation, component string) *Violation {
	if cause == nil {
		return nil
	}
	return &Violation{Kind: kind, Operation: operation, Component: component, Cause: cause}
}

// Error implements the error interface.
func (v *Violation) Error() string {
	msg := v.Message
	if msg == "" && v.Cause != nil {
		msg = v.Cause.Error()
	}
	if v.Operation != "" {
		return fmt.Sprintf("[%s] %s (operation: %s, component: %s)", v.Kind, msg, v.Operation, v.Component)
	}
	return fmt.Sprintf("[%s] %s", v.Kind, msg)
}

// Unwrap returns the wrapped cause, enabling errors.Is/errors.As traversal.
func (v *Violation) Unwrap() error { return v.Cause }
