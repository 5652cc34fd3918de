package operator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltano/pkg/operator"
	"voltano/pkg/register"
	"voltano/pkg/tuple"
)

func TestForEach_VisitsEveryTuple(t *testing.T) {
	s := intSource(operator.Schema{register.Int64}, []int64{1}, []int64{2}, []int64{3})
	require.NoError(t, s.Open())

	var sum int64
	err := operator.ForEach(s, func(tup *tuple.Tuple) error {
		sum += tup.Field(0).Int64()
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, int64(6), sum)
}

func TestFilter_KeepsMatching(t *testing.T) {
	s := intSource(operator.Schema{register.Int64}, []int64{1}, []int64{2}, []int64{3})
	require.NoError(t, s.Open())

	got, err := operator.Filter(s, func(tup *tuple.Tuple) (bool, error) {
		return tup.Field(0).Int64() > 1, nil
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.Len(t, got, 2)
}

func TestTake_LimitsCount(t *testing.T) {
	s := intSource(operator.Schema{register.Int64}, []int64{1}, []int64{2}, []int64{3})
	require.NoError(t, s.Open())

	got, err := operator.Take(s, 2)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	require.Len(t, got, 2)
}

func TestReduce_AccumulatesSum(t *testing.T) {
	s := intSource(operator.Schema{register.Int64}, []int64{1}, []int64{2}, []int64{3})
	require.NoError(t, s.Open())

	sum, err := operator.Reduce(s, int64(0), func(acc int64, tup *tuple.Tuple) (int64, error) {
		return acc + tup.Field(0).Int64(), nil
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, int64(6), sum)
}
