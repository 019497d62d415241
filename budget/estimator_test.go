package budget

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeuristicEstimator(t *testing.T) {
	e := HeuristicEstimator{}

	require.Zero(t, e.Estimate(""))
	require.Equal(t, uint32(1), e.Estimate("a"))
	require.Equal(t, uint32(1), e.Estimate("abc"))
	require.Equal(t, uint32(1), e.Estimate("abcd"))
	require.Equal(t, uint32(25), e.Estimate(strings.Repeat("x", 100)))
}

func TestCodeAwareEstimator_ProseUsesDivisorFour(t *testing.T) {
	e := CodeAwareEstimator{}

	prose := strings.Repeat("This is a plain sentence without indentation.\n", 10)
	require.Equal(t, uint32(len(prose)/4), e.Estimate(prose))
}

func TestCodeAwareEstimator_IndentedCodeUsesDivisorThree(t *testing.T) {
	e := CodeAwareEstimator{}

	code := "func main() {\n" + strings.Repeat("\tdoWork()\n", 10) + "}\n"
	require.Equal(t, uint32(len(code)/3), e.Estimate(code))
}

func TestCodeAwareEstimator_EmptyAndBlankLines(t *testing.T) {
	e := CodeAwareEstimator{}

	require.Zero(t, e.Estimate(""))
	// Whitespace-only lines do not count toward the indentation ratio.
	require.Equal(t, uint32(1), e.Estimate("\n\n\n"))
}

type countingEstimator struct {
	calls atomic.Int64
}

func (c *countingEstimator) Estimate(text string) uint32 {
	c.calls.Add(1)

	return uint32(len(text))
}

func TestCachedEstimator_MemoizesByContent(t *testing.T) {
	inner := &countingEstimator{}
	cached := NewCachedEstimator(inner)

	for range 5 {
		require.Equal(t, uint32(5), cached.Estimate("hello"))
	}
	require.Equal(t, int64(1), inner.calls.Load(), "inner estimator runs once per distinct text")

	cached.Estimate("other")
	require.Equal(t, int64(2), inner.calls.Load())
}

func TestCachedEstimator_Concurrent(t *testing.T) {
	cached := NewCachedEstimator(HeuristicEstimator{})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			text := strings.Repeat("y", 4*(n+1))
			for range 100 {
				if cached.Estimate(text) != uint32(n+1) {
					t.Error("wrong cached estimate")
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
