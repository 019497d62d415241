// Package render turns decoded block lists into model-ready text.
//
// Three renderers implement the same contract over a filtered block
// list: XML (semantic elements under a <context> root), Markdown
// (headers and fences), and Minimal (single-line delimiters, the
// token-cheapest mode). Output is a pure function of the input: a
// rendered payload parses identically every time.
//
// The Driver is the entry point: it filters annotations and the END
// sentinel, applies the caller's type allowlist, consults the budget
// engine when a token budget is configured, and dispatches to the
// selected mode's renderer.
package render
