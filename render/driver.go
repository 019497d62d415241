package render

import (
	"slices"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/budget"
	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
)

// Render filters, budgets, and renders a decoded block list.
//
// Annotation and END blocks are filtered out unconditionally, but the
// full list, annotations included, feeds priority resolution, so
// annotation targets resolve against original block indices. Unknown
// block types are skipped unless named in the allowlist. If a token
// budget is configured, the budget engine attaches a decision to every
// filtered block; otherwise Verbosity decides between full rendering
// and summary substitution.
func Render(blocks []block.Block, cfg Config) (string, error) {
	filtered, originalIndices := filterBlocks(blocks, cfg.IncludeTypes)
	if len(filtered) == 0 {
		return "", errs.ErrEmptyInput
	}

	var items []Item
	switch {
	case cfg.TokenBudget != nil:
		estimator := cfg.Estimator
		if estimator == nil {
			estimator = budget.HeuristicEstimator{}
		}
		decisions := budget.Compute(blocks, filtered, originalIndices, *cfg.TokenBudget, estimator)
		items = make([]Item, len(filtered))
		for i, b := range filtered {
			items[i] = Item{Block: b, Decision: decisions[i]}
		}

	case cfg.Verbosity == VerbositySummary:
		items = make([]Item, len(filtered))
		for i, b := range filtered {
			kind := budget.DecisionFull
			if b.HasSummary() {
				kind = budget.DecisionSummary
			}
			items[i] = Item{Block: b, Decision: budget.Decision{Kind: kind}}
		}

	default:
		items = fullItems(filtered)
	}

	return rendererFor(cfg.Mode).Render(items)
}

// Renderer is a pure function from decided blocks to output text.
type Renderer interface {
	Render(items []Item) (string, error)
}

func rendererFor(mode Mode) Renderer {
	switch mode {
	case ModeMarkdown:
		return MarkdownRenderer{}
	case ModeMinimal:
		return MinimalRenderer{}
	default:
		return XmlRenderer{}
	}
}

// filterBlocks drops annotations, the END sentinel, and (by default)
// unknown block types, then applies the caller's allowlist. Returns the
// kept blocks and their original indices for priority resolution.
func filterBlocks(blocks []block.Block, includeTypes []format.BlockType) ([]*block.Block, []int) {
	var filtered []*block.Block
	var indices []int

	for i := range blocks {
		b := &blocks[i]
		if b.Type == format.BlockAnnotation || b.Type == format.BlockEnd {
			continue
		}

		if includeTypes != nil {
			if !slices.Contains(includeTypes, b.Type) {
				continue
			}
		} else if !b.Type.Known() {
			// Unknown blocks are invisible unless explicitly included.
			continue
		}

		filtered = append(filtered, b)
		indices = append(indices, i)
	}

	return filtered, indices
}
