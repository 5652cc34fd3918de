package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64_EqualsAndCompare(t *testing.T) {
	a := NewInt64(42)
	b := NewInt64(42)
	c := NewInt64(7)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.Equal(t, 0, a.Compare(b))
	assert.True(t, c.Compare(a) < 0)
	assert.True(t, a.Compare(c) > 0)
}

func TestInt64_Zero_IsUnambiguous(t *testing.T) {
	zero := NewInt64(0)
	assert.Equal(t, Int64, zero.Kind())
	assert.Equal(t, int64(0), zero.Int64())
	assert.True(t, zero.Equals(NewInt64(0)))
}

func TestChar16_EqualsAndCompare(t *testing.T) {
	a := NewChar16([]byte("apple"))
	b := NewChar16([]byte("apple"))
	c := NewChar16([]byte("banana"))

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.True(t, a.Compare(c) < 0)
	assert.True(t, c.Compare(a) > 0)
}

func TestChar16_ExactlyMaxLength(t *testing.T) {
	full := []byte("0123456789abcdef") // 16 bytes
	require.Len(t, full, MaxChar16Len)
	r := NewChar16(full)
	assert.Equal(t, full, r.Bytes())
}

func TestChar16_TooLong_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewChar16([]byte("this string is way too long for sure"))
	})
}

func TestCompare_DifferentVariants_Panics(t *testing.T) {
	i := NewInt64(1)
	s := NewChar16([]byte("x"))

	assert.Panics(t, func() { i.Equals(s) })
	assert.Panics(t, func() { i.Compare(s) })
}

func TestHash_DependsOnlyOnValue(t *testing.T) {
	assert.Equal(t, NewInt64(42).Hash(), NewInt64(42).Hash())
	assert.NotEqual(t, NewInt64(42).Hash(), NewInt64(43).Hash())

	assert.Equal(t, NewChar16([]byte("foo")).Hash(), NewChar16([]byte("foo")).Hash())
	assert.NotEqual(t, NewChar16([]byte("foo")).Hash(), NewChar16([]byte("bar")).Hash())
}

func TestHash_AgreesWithEquals(t *testing.T) {
	values := []Register{
		NewInt64(0), NewInt64(-5), NewInt64(100),
		NewChar16([]byte("")), NewChar16([]byte("x")), NewChar16([]byte("hello world")),
	}
	for i, a := range values {
		for j, b := range values {
			if a.Kind() != b.Kind() {
				continue
			}
			if a.Equals(b) {
				assert.Equal(t, a.Hash(), b.Hash(), "equal registers %d,%d must hash equal", i, j)
			}
		}
	}
}

func TestString_Formatting(t *testing.T) {
	assert.Equal(t, "42", NewInt64(42).String())
	assert.Equal(t, "-7", NewInt64(-7).String())
	assert.Equal(t, "hello", NewChar16([]byte("hello")).String())
}
