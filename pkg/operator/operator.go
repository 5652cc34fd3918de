// Package operator implements the uniform pull-based operator protocol
// (§4.1) shared by every physical operator in the execution engine: Open,
// Advance, Output, Close, plus the Created→Open→Emitting→Exhausted→Closed
// state machine (§4.9).
package operator

import (
	"voltano/pkg/register"
	"voltano/pkg/tuple"
)

// Operator is the contract every physical operator in the tree satisfies.
//
//   - Open prepares for iteration. It must recursively open all inputs.
//     Callers invoke it exactly once, before the first Advance.
//   - Advance attempts to produce the next output tuple. It returns true if
//     a tuple is available via Output, false once exhausted. After a false
//     return, further calls must keep returning false.
//   - Output returns the current output tuple. Valid only between a
//     successful Advance and the next Advance or Close; the returned Tuple
//     may alias storage owned by the producing operator (the borrowing
//     contract of §4.1) — callers that must retain it across their own
//     Advance call Tuple.Clone.
//   - Close recursively closes inputs and releases buffered state.
type Operator interface {
	Open() error
	Advance() (bool, error)
	Output() *tuple.Tuple
	Close() error

	// Schema returns the per-position variant sequence of tuples this
	// operator produces. It is constant across one Open/Close cycle and
	// may be queried at any time after construction.
	Schema() Schema
}

// Schema is the per-position Register-variant sequence of a tuple stream
// (§3's "schema"). It intentionally carries only kinds, not field names —
// this layer has no catalog to name columns against.
type Schema []register.Kind
