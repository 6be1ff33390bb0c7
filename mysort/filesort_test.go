package mysort

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInts(t *testing.T) {
	got, err := ReadInts(strings.NewReader("  12 7\n\t0 999\n\n3"))
	require.NoError(t, err)
	assert.Equal(t, []int{12, 7, 0, 999, 3}, got)

	got, err = ReadInts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadInts(strings.NewReader("1 2 x3 4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token 2")
}

func TestWriteReadInts(t *testing.T) {
	data := []int{0, 5, 5, 1000, 42}
	var buf bytes.Buffer
	require.NoError(t, WriteInts(&buf, data))
	assert.Equal(t, "0\n5\n5\n1000\n42\n", buf.String())

	got, err := ReadInts(&buf)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRandomInts(t *testing.T) {
	a := RandomInts(100, 50, 3)
	b := RandomInts(100, 50, 3)
	assert.Equal(t, a, b)
	for _, v := range a {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 50)
	}
	assert.NotEqual(t, a, RandomInts(100, 50, 4))
	assert.Equal(t, make([]int, 10), RandomInts(10, 0, 1))
}

func TestRandomIntsFullRange(t *testing.T) {
	data := RandomInts(64, maxInt, 5)
	require.Len(t, data, 64)
	for _, v := range data {
		assert.GreaterOrEqual(t, v, 0)
	}
	assert.Equal(t, slices.Sorted(slices.Values(data)), RadixSort(data, 256, Passes(maxInt, 256)))
}
