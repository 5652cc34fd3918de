package operator

import (
	"voltano/pkg/logging"
	"voltano/pkg/opererr"
	"voltano/pkg/tuple"
)

// ReadNextFunc produces the next output tuple for an operator, or nil once
// the operator is exhausted.
type ReadNextFunc func() (*tuple.Tuple, error)

// Base implements the Advance/Output half of the protocol plus the §4.9
// state machine, given a ReadNextFunc that knows how to produce one more
// tuple. Concrete operators hold a *Base and supply readNext; Base is
// deliberately ignorant of Open/Close, since those are operator-specific
// (recursing into children differently for unary vs. binary operators).
type Base struct {
	name     string
	readNext ReadNextFunc
	current  *tuple.Tuple
	state    State
}

// NewBase constructs a Base for an operator named name (used in protocol-
// misuse error messages), backed by readNext.
func NewBase(name string, readNext ReadNextFunc) *Base {
	return &Base{name: name, readNext: readNext, state: Created}
}

// MarkOpened transitions the state machine from Created to Opened. Concrete
// operators call this at the end of their own Open, after opening children.
func (b *Base) MarkOpened() {
	b.state = Opened
	b.current = nil
	logging.WithOperator(b.name).Debug("opened")
}

// Advance produces the next tuple via readNext and updates the state
// machine accordingly.
func (b *Base) Advance() (bool, error) {
	if b.state == Created || b.state == Closed {
		return false, opererr.New(opererr.KindProtocolMisuse, b.name+".Advance", b.name,
			"Advance called outside Opened/Emitting state")
	}
	if b.state == Exhausted {
		return false, nil
	}

	t, err := b.readNext()
	if err != nil {
		logging.WithError(err).Debug("readNext failed", "operator", b.name)
		return false, err
	}
	if t == nil {
		b.current = nil
		b.state = Exhausted
		return false, nil
	}

	b.current = t
	b.state = Emitting
	return true, nil
}

// Output returns the tuple produced by the most recent successful Advance.
// Panics if called without one, per §4.1's "unspecified behavior" clause —
// callers that violate the protocol get a loud, immediate failure rather
// than a silently wrong tuple.
func (b *Base) Output() *tuple.Tuple {
	if b.state != Emitting || b.current == nil {
		panic(opererr.New(opererr.KindProtocolMisuse, b.name+".Output", b.name,
			"Output called without a prior successful Advance").Error())
	}
	return b.current
}

// MarkClosed transitions the state machine to Closed and drops the cached
// tuple. Concrete operators call this after closing children and releasing
// their own buffers.
func (b *Base) MarkClosed() {
	b.current = nil
	b.state = Closed
}

// State reports the current lifecycle state.
func (b *Base) State() State { return b.state }
