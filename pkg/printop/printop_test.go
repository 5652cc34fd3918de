package printop_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltano/pkg/operator"
	"voltano/pkg/printop"
	"voltano/pkg/register"
	"voltano/pkg/tuple"
)

func TestPrint_FormatsIntAndCharColumns(t *testing.T) {
	schema := operator.Schema{register.Int64, register.Char16}
	data := []*tuple.Tuple{
		tuple.New(register.NewInt64(42), register.NewChar16([]byte("hi"))),
	}
	s := operator.NewSource(schema, data)

	var buf bytes.Buffer
	p, err := printop.New(s, &buf)
	require.NoError(t, err)

	require.NoError(t, p.Open())
	ok, err := p.Advance()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, p.Close())

	assert.Equal(t, "42,hi\n", buf.String())
}

func TestPrint_MultipleRows(t *testing.T) {
	schema := operator.Schema{register.Int64}
	data := []*tuple.Tuple{
		tuple.New(register.NewInt64(1)),
		tuple.New(register.NewInt64(2)),
	}
	s := operator.NewSource(schema, data)

	var buf bytes.Buffer
	p, err := printop.New(s, &buf)
	require.NoError(t, err)

	require.NoError(t, p.Open())
	for {
		ok, err := p.Advance()
		require.NoError(t, err)
		if !ok {
			break
		}
	}
	require.NoError(t, p.Close())

	assert.Equal(t, "1\n2\n", buf.String())
}

func TestPrint_EmptyTuple_ProducesNoLine(t *testing.T) {
	schema := operator.Schema{}
	data := []*tuple.Tuple{tuple.New()}
	s := operator.NewSource(schema, data)

	var buf bytes.Buffer
	p, err := printop.New(s, &buf)
	require.NoError(t, err)

	require.NoError(t, p.Open())
	ok, err := p.Advance()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, p.Close())

	assert.Empty(t, buf.String())
}
