// Package hashjoin implements an equi-join using the build/probe
// algorithm: the right child is fully materialized into a hash table
// once, then the left child is pipelined against it.
package hashjoin

import (
	"fmt"

	"voltano/pkg/logging"
	"voltano/pkg/opererr"
	"voltano/pkg/operator"
	"voltano/pkg/tuple"
)

// HashJoin implements §4.6: build a hash table from the right child
// (once, in Open), then for each left tuple probe the table and emit one
// output tuple per match. Output layout is left columns followed by
// right columns, per tuple.Concat.
type HashJoin struct {
	binary *operator.Binary
	base   *operator.Base

	leftCol  int
	rightCol int

	table map[uint64][]*tuple.Tuple // right tuples bucketed by join-key hash

	currentLeft    *tuple.Tuple
	currentMatches []*tuple.Tuple
	matchIdx       int

	schema operator.Schema
}

// New builds a HashJoin over left and right, equating left's leftCol
// against right's rightCol. Both columns must share a Kind.
func New(left, right operator.Operator, leftCol, rightCol int) (*HashJoin, error) {
	b, err := operator.NewBinary(left, right)
	if err != nil {
		return nil, err
	}

	leftSchema := left.Schema()
	rightSchema := right.Schema()
	if leftCol < 0 || leftCol >= len(leftSchema) {
		return nil, opererr.New(opererr.KindIndexOutOfRange, "HashJoin.New", "hashjoin",
			fmt.Sprintf("left column %d out of range", leftCol))
	}
	if rightCol < 0 || rightCol >= len(rightSchema) {
		return nil, opererr.New(opererr.KindIndexOutOfRange, "HashJoin.New", "hashjoin",
			fmt.Sprintf("right column %d out of range", rightCol))
	}
	if leftSchema[leftCol] != rightSchema[rightCol] {
		return nil, opererr.New(opererr.KindTypeMismatch, "HashJoin.New", "hashjoin",
			fmt.Sprintf("join column kinds differ (%v vs %v)", leftSchema[leftCol], rightSchema[rightCol]))
	}

	schema := make(operator.Schema, 0, len(leftSchema)+len(rightSchema))
	schema = append(schema, leftSchema...)
	schema = append(schema, rightSchema...)

	hj := &HashJoin{
		binary:   b,
		leftCol:  leftCol,
		rightCol: rightCol,
		schema:   schema,
	}
	hj.base = operator.NewBase("HashJoin", hj.readNext)
	return hj, nil
}

// buildTable fully drains the right child into the hash table. Called
// exactly once, from Open, before any left tuple is probed — the build
// and probe phases never interleave.
func (hj *HashJoin) buildTable() error {
	hj.table = make(map[uint64][]*tuple.Tuple)
	rows := 0
	for {
		t, err := hj.binary.FetchRight()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
		rt := t.Clone()
		key := rt.Field(hj.rightCol).Hash()
		hj.table[key] = append(hj.table[key], rt)
		rows++
	}
	logging.WithPhase("HashJoin", "build").Debug("hash table built", "rows", rows, "buckets", len(hj.table))
	return nil
}

func (hj *HashJoin) matchesFor(left *tuple.Tuple) []*tuple.Tuple {
	leftReg := left.Field(hj.leftCol)
	bucket := hj.table[leftReg.Hash()]
	if len(bucket) == 0 {
		return nil
	}
	var out []*tuple.Tuple
	for _, rt := range bucket {
		if rt.Field(hj.rightCol).Equals(leftReg) {
			out = append(out, rt)
		}
	}
	return out
}

func (hj *HashJoin) readNext() (*tuple.Tuple, error) {
	for {
		if hj.currentMatches != nil && hj.matchIdx < len(hj.currentMatches) {
			out := tuple.Concat(hj.currentLeft, hj.currentMatches[hj.matchIdx])
			hj.matchIdx++
			if hj.matchIdx >= len(hj.currentMatches) {
				hj.currentMatches = nil
				hj.currentLeft = nil
			}
			return out, nil
		}

		left, err := hj.binary.FetchLeft()
		if err != nil {
			return nil, err
		}
		if left == nil {
			return nil, nil
		}

		matches := hj.matchesFor(left)
		if len(matches) == 0 {
			continue
		}
		hj.currentLeft = left
		hj.currentMatches = matches
		hj.matchIdx = 0
	}
}

func (hj *HashJoin) Open() error {
	if err := hj.binary.OpenChildren(); err != nil {
		return err
	}
	if err := hj.buildTable(); err != nil {
		return err
	}
	hj.currentLeft = nil
	hj.currentMatches = nil
	hj.base.MarkOpened()
	return nil
}

func (hj *HashJoin) Advance() (bool, error) { return hj.base.Advance() }
func (hj *HashJoin) Output() *tuple.Tuple   { return hj.base.Output() }

func (hj *HashJoin) Close() error {
	err := hj.binary.CloseChildren()
	hj.table = nil
	hj.base.MarkClosed()
	return err
}

func (hj *HashJoin) Schema() operator.Schema { return hj.schema }
