package limitop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltano/pkg/limitop"
	"voltano/pkg/operator"
	"voltano/pkg/register"
	"voltano/pkg/tuple"
)

func src(vs ...int64) *operator.Source {
	schema := operator.Schema{register.Int64}
	data := make([]*tuple.Tuple, len(vs))
	for i, v := range vs {
		data[i] = tuple.New(register.NewInt64(v))
	}
	return operator.NewSource(schema, data)
}

func drainInts(t *testing.T, op operator.Operator) []int64 {
	t.Helper()
	var out []int64
	for {
		ok, err := op.Advance()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, op.Output().Field(0).Int64())
	}
	return out
}

func TestLimit_OffsetThenLimit(t *testing.T) {
	s := src(1, 2, 3, 4, 5)
	l, err := limitop.New(s, 2, 1)
	require.NoError(t, err)

	require.NoError(t, l.Open())
	got := drainInts(t, l)
	require.NoError(t, l.Close())

	assert.Equal(t, []int64{2, 3}, got)
}

func TestLimit_ZeroLimit_EmitsNothing(t *testing.T) {
	s := src(1, 2, 3)
	l, err := limitop.New(s, 0, 0)
	require.NoError(t, err)

	require.NoError(t, l.Open())
	got := drainInts(t, l)
	require.NoError(t, l.Close())

	assert.Empty(t, got)
}

func TestLimit_OffsetBeyondInput_EmitsNothing(t *testing.T) {
	s := src(1, 2)
	l, err := limitop.New(s, 5, 10)
	require.NoError(t, err)

	require.NoError(t, l.Open())
	got := drainInts(t, l)
	require.NoError(t, l.Close())

	assert.Empty(t, got)
}

func TestLimit_NegativeLimit_Errors(t *testing.T) {
	s := src(1)
	_, err := limitop.New(s, -1, 0)
	assert.Error(t, err)
}

func TestLimit_NegativeOffset_Errors(t *testing.T) {
	s := src(1)
	_, err := limitop.New(s, 1, -1)
	assert.Error(t, err)
}
