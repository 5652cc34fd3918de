// Package hashagg implements grouped aggregation: a single bucket per
// group key carrying one accumulator per aggregate spec, so that
// multiple simultaneous aggregates (e.g. MIN and SUM in the same query)
// share a group's lifecycle instead of drifting out of sync across
// separate per-function maps.
package hashagg

import (
	"fmt"
	"sort"

	"voltano/pkg/logging"
	"voltano/pkg/opererr"
	"voltano/pkg/operator"
	"voltano/pkg/register"
	"voltano/pkg/tuple"
)

// Func is an aggregate function.
type Func int

const (
	Min Func = iota
	Max
	Sum
	Count
)

// Spec names one aggregate: the function and the input column it reads.
type Spec struct {
	Fn  Func
	Col int
}

// accumulator tracks one Spec's running state for one group.
type accumulator struct {
	fn      Func
	has     bool // true once at least one value has been seen (MIN/MAX/SUM)
	extreme register.Register
	sum     int64
	count   int64
}

func newAccumulator(fn Func) *accumulator { return &accumulator{fn: fn} }

func (a *accumulator) add(v register.Register) {
	switch a.fn {
	case Min:
		if !a.has || v.Less(a.extreme) {
			a.extreme = v
		}
		a.has = true
	case Max:
		if !a.has || a.extreme.Less(v) {
			a.extreme = v
		}
		a.has = true
	case Sum:
		a.sum += v.Int64()
		a.has = true
	case Count:
		a.count++
		a.has = true
	}
}

// result returns (register, ok). ok is false only for MIN/MAX that never
// saw a value, signaling "no row" for this group per §4.7.
func (a *accumulator) result() (register.Register, bool) {
	switch a.fn {
	case Min, Max:
		return a.extreme, a.has
	case Sum:
		return register.NewInt64(a.sum), true
	case Count:
		return register.NewInt64(a.count), true
	default:
		return register.Register{}, false
	}
}

type group struct {
	key  []register.Register
	accs []*accumulator
}

// HashAggregation groups its child's output by the columns named in
// groupCols, computing one accumulator per spec in specs. Blocking.
type HashAggregation struct {
	unary *operator.Unary
	base  *operator.Base

	groupCols []int
	specs     []Spec
	schema    operator.Schema

	groups       map[uint64][]*group
	order        []*group
	emitPos      int
	materialized bool
}

// New builds a HashAggregation over child. groupCols may be empty (one
// implicit group over the whole input). specs must be non-empty.
func New(child operator.Operator, groupCols []int, specs []Spec) (*HashAggregation, error) {
	if len(specs) == 0 {
		return nil, opererr.New(opererr.KindSchemaMismatch, "HashAggregation.New", "hashagg",
			"at least one aggregate spec is required")
	}

	u, err := operator.NewUnary(child)
	if err != nil {
		return nil, err
	}

	childSchema := child.Schema()
	for _, c := range groupCols {
		if c < 0 || c >= len(childSchema) {
			return nil, opererr.New(opererr.KindIndexOutOfRange, "HashAggregation.New", "hashagg",
				fmt.Sprintf("group column %d out of range", c))
		}
	}
	for _, s := range specs {
		if s.Col < 0 || s.Col >= len(childSchema) {
			return nil, opererr.New(opererr.KindIndexOutOfRange, "HashAggregation.New", "hashagg",
				fmt.Sprintf("aggregate column %d out of range", s.Col))
		}
		if s.Fn == Sum && childSchema[s.Col] != register.Int64 {
			return nil, opererr.New(opererr.KindTypeMismatch, "HashAggregation.New", "hashagg",
				fmt.Sprintf("SUM requires an INT64 column, got column %d", s.Col))
		}
	}

	schema := make(operator.Schema, 0, len(groupCols)+len(specs))
	for _, c := range groupCols {
		schema = append(schema, childSchema[c])
	}
	for _, s := range specs {
		if s.Fn == Count || s.Fn == Sum {
			schema = append(schema, register.Int64)
		} else {
			schema = append(schema, childSchema[s.Col])
		}
	}

	h := &HashAggregation{unary: u, groupCols: groupCols, specs: specs, schema: schema}
	h.base = operator.NewBase("HashAggregation", h.readNext)
	return h, nil
}

func keyHash(key []register.Register) uint64 {
	var h uint64 = 14695981039346656037
	for _, r := range key {
		h = (h ^ r.Hash()) * 1099511628211
	}
	return h
}

func keysEqual(a, b []register.Register) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}

func (h *HashAggregation) findOrCreate(key []register.Register) *group {
	hk := keyHash(key)
	for _, g := range h.groups[hk] {
		if keysEqual(g.key, key) {
			return g
		}
	}
	accs := make([]*accumulator, len(h.specs))
	for i, s := range h.specs {
		accs[i] = newAccumulator(s.Fn)
	}
	g := &group{key: key, accs: accs}
	h.groups[hk] = append(h.groups[hk], g)
	h.order = append(h.order, g)
	return g
}

func (h *HashAggregation) materialize() error {
	h.groups = make(map[uint64][]*group)
	h.order = nil

	sawAnyRow := false
	for {
		t, err := h.unary.FetchChild()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
		sawAnyRow = true

		key := make([]register.Register, len(h.groupCols))
		for i, c := range h.groupCols {
			key[i] = t.Field(c)
		}
		g := h.findOrCreate(key)
		for i, s := range h.specs {
			g.accs[i].add(t.Field(s.Col))
		}
	}

	// Empty G, empty input: one implicit group with no rows contributed.
	// COUNT/SUM still emit zero; MIN/MAX emit "no row" (handled in emit).
	if len(h.groupCols) == 0 && !sawAnyRow {
		h.findOrCreate(nil)
	}

	sort.SliceStable(h.order, func(i, j int) bool {
		a, b := h.order[i].key, h.order[j].key
		for k := range a {
			cmp := a[k].Compare(b[k])
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	logging.WithPhase("HashAggregation", "materialize").Debug("grouped input",
		"groups", len(h.order), "specs", len(h.specs))
	h.materialized = true
	return nil
}

func (h *HashAggregation) readNext() (*tuple.Tuple, error) {
	if !h.materialized {
		if err := h.materialize(); err != nil {
			return nil, err
		}
	}

	for h.emitPos < len(h.order) {
		g := h.order[h.emitPos]
		h.emitPos++

		regs := make([]register.Register, 0, len(g.key)+len(h.specs))
		regs = append(regs, g.key...)

		skip := false
		for _, a := range g.accs {
			v, ok := a.result()
			if !ok {
				skip = true
				break
			}
			regs = append(regs, v)
		}
		if skip {
			continue
		}
		return tuple.New(regs...), nil
	}
	return nil, nil
}

func (h *HashAggregation) Open() error {
	if err := h.unary.OpenChild(); err != nil {
		return err
	}
	h.groups = nil
	h.order = nil
	h.emitPos = 0
	h.materialized = false
	h.base.MarkOpened()
	return nil
}

func (h *HashAggregation) Advance() (bool, error) { return h.base.Advance() }
func (h *HashAggregation) Output() *tuple.Tuple   { return h.base.Output() }

func (h *HashAggregation) Close() error {
	err := h.unary.CloseChild()
	h.groups = nil
	h.order = nil
	h.base.MarkClosed()
	return err
}

func (h *HashAggregation) Schema() operator.Schema { return h.schema }
