package budget

import (
	"sort"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/format"
)

// PlaceholderTokenCost is the fixed token cost charged for rendering a
// placeholder marker.
const PlaceholderTokenCost = 10

// DecisionKind is the action the renderer takes for one block.
type DecisionKind uint8

const (
	// DecisionFull renders the block's complete content.
	DecisionFull DecisionKind = iota + 1

	// DecisionSummary substitutes the block's summary for its body.
	DecisionSummary

	// DecisionPlaceholder emits a short omission marker.
	DecisionPlaceholder

	// DecisionOmit produces no output at all.
	DecisionOmit
)

// Decision is one block's render decision. Placeholder decisions carry
// the context the renderer needs to describe what was dropped.
type Decision struct {
	Kind DecisionKind

	// BlockType, Description, and OmittedTokens are set for
	// DecisionPlaceholder only.
	BlockType     format.BlockType
	Description   string
	OmittedTokens uint32
}

// blockInfo is the pass-1 scan result for one filtered block.
type blockInfo struct {
	priority      format.Priority
	fullTokens    uint32
	summaryTokens uint32
	hasSummary    bool
}

// ResolvePriorities builds the target-index → priority map from the
// full block list's priority annotations. Later annotations win on
// duplicate targets; Tag and Summary kinds are ignored.
func ResolvePriorities(blocks []block.Block) map[uint32]format.Priority {
	priorities := make(map[uint32]format.Priority)
	for i := range blocks {
		annotation, ok := blocks[i].Body.(*block.AnnotationBody)
		if !ok {
			continue
		}
		if priority, ok := annotation.Priority(); ok {
			priorities[annotation.TargetBlock] = priority
		}
	}

	return priorities
}

// Compute runs the two-pass allocation and returns one decision per
// filtered block, in filtered order.
//
// Inputs: the full block list (for priority resolution against original
// indices), the filtered list the renderer will walk, the mapping from
// filtered index back to original index, the token budget, and an
// estimator.
//
// Pass 1 scans each filtered block's token cost (content, and summary
// if present) and resolves its priority, defaulting to Normal. Pass 2
// walks the blocks in ascending priority order (stable: ties keep
// filtered order), greedily consuming the remaining budget:
//
//   - Critical always renders Full, even past the budget.
//   - High renders Full if it fits, else its summary if that fits,
//     else Full anyway (overrun).
//   - Normal renders Full if it fits, else its summary, else a
//     placeholder.
//   - Low renders its summary if it fits, else a placeholder.
//   - Background renders a placeholder if the fixed placeholder cost
//     fits, else nothing.
//
// Estimates are advisory; the estimator is never called during the
// allocation walk. For fixed inputs the result is deterministic.
func Compute(all []block.Block, filtered []*block.Block, originalIndices []int, tokenBudget uint32, estimator TokenEstimator) []Decision {
	priorities := ResolvePriorities(all)
	infos := scanBlocks(filtered, priorities, estimator, originalIndices)

	return allocate(infos, tokenBudget, filtered)
}

func scanBlocks(filtered []*block.Block, priorities map[uint32]format.Priority, estimator TokenEstimator, originalIndices []int) []blockInfo {
	infos := make([]blockInfo, len(filtered))
	for i, b := range filtered {
		priority, ok := priorities[uint32(originalIndices[i])]
		if !ok {
			priority = format.PriorityNormal
		}

		info := blockInfo{
			priority:   priority,
			fullTokens: estimator.Estimate(b.PlainText()),
		}
		if b.HasSummary() {
			info.hasSummary = true
			info.summaryTokens = estimator.Estimate(b.Summary)
		}
		infos[i] = info
	}

	return infos
}

func allocate(infos []blockInfo, tokenBudget uint32, filtered []*block.Block) []Decision {
	decisions := make([]Decision, len(infos))
	for i := range decisions {
		decisions[i] = Decision{Kind: DecisionOmit}
	}

	remaining := tokenBudget

	order := make([]int, len(infos))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return infos[order[a]].priority < infos[order[b]].priority
	})

	for _, idx := range order {
		info := &infos[idx]
		b := filtered[idx]

		switch info.priority {
		case format.PriorityCritical:
			decisions[idx] = Decision{Kind: DecisionFull}
			remaining = saturatingSub(remaining, info.fullTokens)

		case format.PriorityHigh:
			switch {
			case info.fullTokens <= remaining:
				decisions[idx] = Decision{Kind: DecisionFull}
				remaining -= info.fullTokens
			case info.hasSummary && info.summaryTokens <= remaining:
				decisions[idx] = Decision{Kind: DecisionSummary}
				remaining -= info.summaryTokens
			default:
				decisions[idx] = Decision{Kind: DecisionFull}
				remaining = 0
			}

		case format.PriorityNormal:
			switch {
			case info.fullTokens <= remaining:
				decisions[idx] = Decision{Kind: DecisionFull}
				remaining -= info.fullTokens
			case info.hasSummary && info.summaryTokens <= remaining:
				decisions[idx] = Decision{Kind: DecisionSummary}
				remaining -= info.summaryTokens
			default:
				decisions[idx] = placeholderFor(b, info.fullTokens)
			}

		case format.PriorityLow:
			if info.hasSummary && info.summaryTokens <= remaining {
				decisions[idx] = Decision{Kind: DecisionSummary}
				remaining -= info.summaryTokens
			} else {
				decisions[idx] = placeholderFor(b, info.fullTokens)
			}

		case format.PriorityBackground:
			if PlaceholderTokenCost <= remaining {
				decisions[idx] = placeholderFor(b, info.fullTokens)
				remaining = saturatingSub(remaining, PlaceholderTokenCost)
			} else {
				decisions[idx] = Decision{Kind: DecisionOmit}
			}
		}
	}

	return decisions
}

func placeholderFor(b *block.Block, omittedTokens uint32) Decision {
	return Decision{
		Kind:          DecisionPlaceholder,
		BlockType:     b.Type,
		Description:   b.Description(),
		OmittedTokens: omittedTokens,
	}
}

func saturatingSub(a, b uint32) uint32 {
	if b > a {
		return 0
	}

	return a - b
}
