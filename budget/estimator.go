// Package budget implements token estimation and the two-pass,
// priority-aware allocation engine that assigns each block a render
// decision under a token budget.
package budget

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// TokenEstimator estimates the token cost of rendering a piece of text.
//
// Estimates are advisory: the engine uses them to plan, not to bill.
// Exact tokenizers (a BPE, a model-specific vocabulary) plug in through
// the same interface.
type TokenEstimator interface {
	Estimate(text string) uint32
}

// HeuristicEstimator approximates tokens as max(1, len/4) for non-empty
// text. Cheap, deterministic, and close enough for budget planning over
// prose.
type HeuristicEstimator struct{}

var _ TokenEstimator = HeuristicEstimator{}

// Estimate implements TokenEstimator.
func (HeuristicEstimator) Estimate(text string) uint32 {
	if text == "" {
		return 0
	}

	chars := uint32(len(text))
	if chars < 4 {
		return 1
	}

	return chars / 4
}

// CodeAwareEstimator refines the heuristic for source code: when more
// than 30% of non-empty lines start with whitespace, text is treated as
// code and divided by 3 instead of 4, reflecting the denser
// tokenization of indented source.
type CodeAwareEstimator struct{}

var _ TokenEstimator = CodeAwareEstimator{}

// Estimate implements TokenEstimator.
func (CodeAwareEstimator) Estimate(text string) uint32 {
	if text == "" {
		return 0
	}

	divisor := uint32(4)
	if isCodeLike(text) {
		divisor = 3
	}

	tokens := uint32(len(text)) / divisor
	if tokens == 0 {
		return 1
	}

	return tokens
}

func isCodeLike(text string) bool {
	nonEmpty := 0
	indented := 0
	for line := range strings.Lines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		nonEmpty++
		if line[0] == ' ' || line[0] == '\t' {
			indented++
		}
	}

	if nonEmpty == 0 {
		return false
	}

	return indented*100/nonEmpty > 30
}

// CachedEstimator memoizes another estimator's results, keyed by the
// xxhash64 of the text. Useful when the same blocks are re-planned
// under several budgets (e.g. a caller probing budget sizes): the
// underlying estimator, possibly an expensive exact tokenizer, runs
// once per distinct text.
//
// Safe for concurrent use.
type CachedEstimator struct {
	inner TokenEstimator

	mu    sync.RWMutex
	cache map[uint64]uint32
}

var _ TokenEstimator = (*CachedEstimator)(nil)

// NewCachedEstimator wraps inner with an xxhash-keyed memo table.
func NewCachedEstimator(inner TokenEstimator) *CachedEstimator {
	return &CachedEstimator{
		inner: inner,
		cache: make(map[uint64]uint32),
	}
}

// Estimate implements TokenEstimator.
func (c *CachedEstimator) Estimate(text string) uint32 {
	key := xxhash.Sum64String(text)

	c.mu.RLock()
	tokens, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return tokens
	}

	tokens = c.inner.Estimate(text)

	c.mu.Lock()
	c.cache[key] = tokens
	c.mu.Unlock()

	return tokens
}
