// Package limitop restricts a child operator's output to at most limit
// tuples after skipping the first offset tuples.
package limitop

import (
	"fmt"

	"voltano/pkg/opererr"
	"voltano/pkg/operator"
	"voltano/pkg/tuple"
)

// Limit passes through up to limit tuples from its child, after first
// discarding offset tuples. Pipelining: the offset skip happens once in
// Open, then each Advance costs one child Advance.
type Limit struct {
	unary   *operator.Unary
	base    *operator.Base
	limit   int64
	offset  int64
	emitted int64
}

// New builds a Limit over child. limit and offset must be non-negative.
func New(child operator.Operator, limit, offset int64) (*Limit, error) {
	if limit < 0 {
		return nil, opererr.New(opererr.KindIndexOutOfRange, "Limit.New", "limitop",
			fmt.Sprintf("limit must be non-negative, got %d", limit))
	}
	if offset < 0 {
		return nil, opererr.New(opererr.KindIndexOutOfRange, "Limit.New", "limitop",
			fmt.Sprintf("offset must be non-negative, got %d", offset))
	}

	u, err := operator.NewUnary(child)
	if err != nil {
		return nil, err
	}

	l := &Limit{unary: u, limit: limit, offset: offset}
	l.base = operator.NewBase("Limit", l.readNext)
	return l, nil
}

func (l *Limit) skipOffset() error {
	for i := int64(0); i < l.offset; i++ {
		t, err := l.unary.FetchChild()
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
	}
	return nil
}

func (l *Limit) readNext() (*tuple.Tuple, error) {
	if l.emitted >= l.limit {
		return nil, nil
	}
	t, err := l.unary.FetchChild()
	if err != nil || t == nil {
		return nil, err
	}
	l.emitted++
	return t, nil
}

func (l *Limit) Open() error {
	if err := l.unary.OpenChild(); err != nil {
		return err
	}
	l.emitted = 0
	if err := l.skipOffset(); err != nil {
		return err
	}
	l.base.MarkOpened()
	return nil
}

func (l *Limit) Advance() (bool, error) { return l.base.Advance() }
func (l *Limit) Output() *tuple.Tuple   { return l.base.Output() }

func (l *Limit) Close() error {
	err := l.unary.CloseChild()
	l.base.MarkClosed()
	return err
}

func (l *Limit) Schema() operator.Schema { return l.unary.Schema() }
