package operator

import (
	"voltano/pkg/tuple"
)

// Source is a minimal in-memory Operator over a fixed slice of tuples. It
// stands in for the scan-like leaf sources that §1 and §4.1 assume exist
// externally: anything satisfying Operator can take a Source's place in a
// real deployment, but tests and the scenario suite in pkg/engine need a
// concrete, trivial leaf to build trees over.
type Source struct {
	base   *Base
	data   []*tuple.Tuple
	schema Schema
	pos    int
}

// NewSource builds a Source over data, tagged with schema. data is not
// copied — callers should treat it as owned by the Source once passed in.
func NewSource(schema Schema, data []*tuple.Tuple) *Source {
	s := &Source{data: data, schema: schema}
	s.base = NewBase("Source", s.readNext)
	return s
}

func (s *Source) readNext() (*tuple.Tuple, error) {
	if s.pos >= len(s.data) {
		return nil, nil
	}
	t := s.data[s.pos]
	s.pos++
	return t, nil
}

func (s *Source) Open() error {
	s.pos = 0
	s.base.MarkOpened()
	return nil
}

func (s *Source) Advance() (bool, error) { return s.base.Advance() }
func (s *Source) Output() *tuple.Tuple   { return s.base.Output() }

func (s *Source) Close() error {
	s.base.MarkClosed()
	return nil
}

func (s *Source) Schema() Schema { return s.schema }
