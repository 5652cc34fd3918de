package operator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltano/pkg/operator"
	"voltano/pkg/register"
	"voltano/pkg/tuple"
)

func intTuple(vs ...int64) *tuple.Tuple {
	regs := make([]register.Register, len(vs))
	for i, v := range vs {
		regs[i] = register.NewInt64(v)
	}
	return tuple.New(regs...)
}

func intSource(schema operator.Schema, rows ...[]int64) *operator.Source {
	data := make([]*tuple.Tuple, len(rows))
	for i, r := range rows {
		data[i] = intTuple(r...)
	}
	return operator.NewSource(schema, data)
}

func drain(t *testing.T, op operator.Operator) []*tuple.Tuple {
	t.Helper()
	var out []*tuple.Tuple
	for {
		ok, err := op.Advance()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, op.Output().Clone())
	}
	return out
}

func TestSource_EmitsAllRowsThenExhausts(t *testing.T) {
	schema := operator.Schema{register.Int64}
	src := intSource(schema, []int64{1}, []int64{2}, []int64{3})

	require.NoError(t, src.Open())
	got := drain(t, src)
	require.NoError(t, src.Close())

	require.Len(t, got, 3)
	assert.True(t, got[1].Equals(intTuple(2)))
}

func TestSource_EmptyData_ExhaustsImmediately(t *testing.T) {
	src := operator.NewSource(operator.Schema{register.Int64}, nil)
	require.NoError(t, src.Open())

	ok, err := src.Advance()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, src.Close())
}

func TestBase_OutputWithoutAdvance_Panics(t *testing.T) {
	src := operator.NewSource(operator.Schema{register.Int64}, nil)
	require.NoError(t, src.Open())

	assert.Panics(t, func() { src.Output() })
}

func TestBase_AdvanceBeforeOpen_ReturnsProtocolError(t *testing.T) {
	src := operator.NewSource(operator.Schema{register.Int64}, []*tuple.Tuple{intTuple(1)})

	_, err := src.Advance()
	assert.Error(t, err)
}

func TestBase_AdvanceAfterExhausted_StaysExhausted(t *testing.T) {
	src := intSource(operator.Schema{register.Int64}, []int64{1})
	require.NoError(t, src.Open())

	ok, err := src.Advance()
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = src.Advance()
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = src.Advance()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUnary_NewUnary_NilChild_Errors(t *testing.T) {
	_, err := operator.NewUnary(nil)
	assert.Error(t, err)
}

func TestBinary_NewBinary_NilChild_Errors(t *testing.T) {
	src := intSource(operator.Schema{register.Int64}, []int64{1})

	_, err := operator.NewBinary(nil, src)
	assert.Error(t, err)

	_, err = operator.NewBinary(src, nil)
	assert.Error(t, err)
}

func TestBinary_OpenAndCloseChildren(t *testing.T) {
	left := intSource(operator.Schema{register.Int64}, []int64{1})
	right := intSource(operator.Schema{register.Int64}, []int64{2})

	b, err := operator.NewBinary(left, right)
	require.NoError(t, err)

	require.NoError(t, b.OpenChildren())

	l, err := b.FetchLeft()
	require.NoError(t, err)
	require.True(t, l.Equals(intTuple(1)))

	r, err := b.FetchRight()
	require.NoError(t, err)
	require.True(t, r.Equals(intTuple(2)))

	require.NoError(t, b.CloseChildren())
}
