package render

import (
	"github.com/nicholasgalante1997/bcp/budget"
	"github.com/nicholasgalante1997/bcp/format"
)

// Mode selects the output syntax.
type Mode uint8

const (
	ModeXml Mode = iota + 1
	ModeMarkdown
	ModeMinimal
)

// ModelFamily hints at the consuming model. Purely advisory: no
// renderer changes its output based on it today, but callers can carry
// it through configuration without a side channel.
type ModelFamily uint8

const (
	ModelGeneric ModelFamily = iota
	ModelClaude
	ModelGpt
	ModelGemini
)

// Verbosity controls rendering when no token budget forces decisions.
type Verbosity uint8

const (
	// VerbosityFull renders every block's complete content.
	VerbosityFull Verbosity = iota

	// VerbositySummary substitutes summaries wherever blocks carry them.
	VerbositySummary

	// VerbosityAdaptive defers to the budget engine when a budget is
	// configured and behaves like VerbosityFull otherwise.
	VerbosityAdaptive
)

// Config drives the Driver.
type Config struct {
	// Mode selects the renderer. Required.
	Mode Mode

	// TargetModel is advisory.
	TargetModel ModelFamily

	// TokenBudget, when set, routes the filtered blocks through the
	// budget engine and renders its per-block decisions.
	TokenBudget *uint32

	// Verbosity applies when no budget is set.
	Verbosity Verbosity

	// IncludeTypes, when non-nil, is an allowlist of block types to
	// render. Annotation and END blocks are always excluded; unknown
	// block types render only if listed here.
	IncludeTypes []format.BlockType

	// Estimator overrides the token estimator used by the budget
	// engine. Defaults to the heuristic estimator.
	Estimator budget.TokenEstimator
}
