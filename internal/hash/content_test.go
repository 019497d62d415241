package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum_DeterministicAndDistinct(t *testing.T) {
	a1 := Sum([]byte("content a"))
	a2 := Sum([]byte("content a"))
	b := Sum([]byte("content b"))

	require.Equal(t, a1, a2)
	require.NotEqual(t, a1, b)
	require.Len(t, a1[:], Size)
}

func TestSum_EmptyInput(t *testing.T) {
	empty := Sum(nil)
	require.NotEqual(t, [Size]byte{}, empty, "BLAKE3 of empty input is not all zeros")
}
