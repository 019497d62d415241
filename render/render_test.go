package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

func codeBlock(lang format.Lang, path string, content []byte) block.Block {
	return block.Block{
		Type: format.BlockCode,
		Body: &block.CodeBody{Lang: lang, Path: path, Content: content},
	}
}

func conversationBlock(role format.Role, content []byte) block.Block {
	return block.Block{
		Type: format.BlockConversation,
		Body: &block.ConversationBody{Role: role, Content: content},
	}
}

func annotationBlock(target uint32, priority format.Priority) block.Block {
	return block.Block{
		Type: format.BlockAnnotation,
		Body: &block.AnnotationBody{
			TargetBlock: target,
			Kind:        format.AnnotationPriority,
			Value:       []byte{uint8(priority)},
		},
	}
}

func TestRender_XmlShapes(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangRust, "src/main.rs", []byte("fn main() {}")),
		conversationBlock(format.RoleUser, []byte("Fix the bug.")),
		{Type: format.BlockToolResult, Body: &block.ToolResultBody{
			ToolName: "cargo", Status: format.StatusOk, Content: []byte("ok"),
		}},
		{Type: format.BlockFileTree, Body: &block.FileTreeBody{
			RootPath: "src",
			Entries:  []block.FileEntry{{Name: "main.rs", Kind: block.FileEntryFile, Size: 12}},
		}},
	}

	out, err := Render(blocks, Config{Mode: ModeXml})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "<context>"))
	require.True(t, strings.HasSuffix(out, "</context>"))
	require.Contains(t, out, "<code lang=\"rust\" path=\"src/main.rs\">\nfn main() {}\n</code>")
	require.Contains(t, out, "<turn role=\"user\">Fix the bug.</turn>")
	require.Contains(t, out, "<tool name=\"cargo\" status=\"ok\">\nok\n</tool>")
	require.Contains(t, out, "<tree root=\"src\">\nmain.rs (12 bytes)\n</tree>")
}

func TestRender_XmlEscapesAttributes(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangRust, `path/with"quotes&<angles>.rs`, []byte("code")),
	}

	out, err := Render(blocks, Config{Mode: ModeXml})
	require.NoError(t, err)
	require.Contains(t, out, `path="path/with&quot;quotes&amp;&lt;angles&gt;.rs"`)
}

func TestRender_MarkdownShapes(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangRust, "main.rs", []byte("fn main() {}")),
		conversationBlock(format.RoleAssistant, []byte("Done.")),
		{Type: format.BlockDiff, Body: &block.DiffBody{
			Path:  "lib.rs",
			Hunks: []block.DiffHunk{{OldStart: 1, NewStart: 1, Lines: []byte("-a\n+b\n")}},
		}},
		{Type: format.BlockDocument, Body: &block.DocumentBody{
			Title: "Notes", Content: []byte("text"), FormatHint: format.FormatPlain,
		}},
	}

	out, err := Render(blocks, Config{Mode: ModeMarkdown})
	require.NoError(t, err)

	require.NotContains(t, out, "<context>")
	require.Contains(t, out, "## main.rs\n\n```rust\nfn main() {}\n```")
	require.Contains(t, out, "**Assistant**: Done.")
	require.Contains(t, out, "### Diff: lib.rs\n\n```diff\n-a\n+b\n```")
	require.Contains(t, out, "### Document: Notes [plain]\n\ntext")
}

func TestRender_MinimalShapes(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangRust, "main.rs", []byte("fn main() {}")),
		conversationBlock(format.RoleUser, []byte("Fix the bug.")),
		{Type: format.BlockToolResult, Body: &block.ToolResultBody{
			ToolName: "cargo_test", Status: format.StatusError, Content: []byte("1 failed"),
		}},
	}

	out, err := Render(blocks, Config{Mode: ModeMinimal})
	require.NoError(t, err)

	require.Contains(t, out, "--- main.rs [rust] ---\nfn main() {}")
	require.Contains(t, out, "[user] Fix the bug.")
	require.Contains(t, out, "--- cargo_test [error] ---\n1 failed")
}

func TestRender_EmptyInput(t *testing.T) {
	_, err := Render(nil, Config{Mode: ModeXml})
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	// Annotations alone do not count as renderable input.
	_, err = Render([]block.Block{annotationBlock(0, format.PriorityHigh)}, Config{Mode: ModeXml})
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestRender_AnnotationsFiltered(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangGo, "a.go", []byte("package a")),
		annotationBlock(0, format.PriorityHigh),
	}

	out, err := Render(blocks, Config{Mode: ModeMinimal})
	require.NoError(t, err)
	require.Equal(t, "--- a.go [go] ---\npackage a", out, "the annotation leaves no trace in the output")
}

func TestRender_IncludeTypesAllowlist(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangRust, "main.rs", []byte("fn main() {}")),
		conversationBlock(format.RoleUser, []byte("Hello")),
	}

	out, err := Render(blocks, Config{
		Mode:         ModeMinimal,
		IncludeTypes: []format.BlockType{format.BlockCode},
	})
	require.NoError(t, err)
	require.Contains(t, out, "main.rs")
	require.NotContains(t, out, "Hello")

	_, err = Render(blocks, Config{
		Mode:         ModeXml,
		IncludeTypes: []format.BlockType{format.BlockDiff},
	})
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestRender_UnknownHiddenUnlessIncluded(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangRust, "main.rs", []byte("fn main() {}")),
		{Type: format.BlockType(0x42), Body: block.UnknownBody{
			TypeID: format.BlockType(0x42), Raw: []byte("mystery"),
		}},
	}

	out, err := Render(blocks, Config{Mode: ModeMinimal})
	require.NoError(t, err)
	require.NotContains(t, out, "mystery")

	out, err = Render(blocks, Config{
		Mode:         ModeMinimal,
		IncludeTypes: []format.BlockType{format.BlockCode, format.BlockType(0x42)},
	})
	require.NoError(t, err)
	require.Contains(t, out, "--- unknown 0x42 ---\nmystery")
}

func TestRender_InvalidContentFails(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangRust, "bin.rs", []byte{0xFF, 0xFE, 0x00, 0x01}),
	}

	for _, mode := range []Mode{ModeXml, ModeMarkdown, ModeMinimal} {
		_, err := Render(blocks, Config{Mode: mode})
		require.ErrorIs(t, err, errs.ErrInvalidContent)
		require.ErrorContains(t, err, "block 0")
	}
}

func TestRender_SummaryVerbosity(t *testing.T) {
	blocks := []block.Block{
		{
			Type:    format.BlockCode,
			Flags:   wire.FlagHasSummary,
			Summary: "Entry point.",
			Body: &block.CodeBody{
				Lang: format.LangRust, Path: "main.rs", Content: []byte("fn main() { /* long */ }"),
			},
		},
		codeBlock(format.LangRust, "plain.rs", []byte("fn p() {}")),
	}

	out, err := Render(blocks, Config{Mode: ModeMinimal, Verbosity: VerbositySummary})
	require.NoError(t, err)
	require.Contains(t, out, "--- main.rs [rust] (summary) ---\nEntry point.")
	require.NotContains(t, out, "/* long */")
	require.Contains(t, out, "fn p() {}", "blocks without summaries render in full")

	// Default verbosity renders full content even when summaries exist.
	out, err = Render(blocks, Config{Mode: ModeMinimal})
	require.NoError(t, err)
	require.Contains(t, out, "/* long */")
}

func TestRender_SummaryDecisionInXmlSetsAttribute(t *testing.T) {
	blocks := []block.Block{
		{
			Type:    format.BlockCode,
			Flags:   wire.FlagHasSummary,
			Summary: "Short form.",
			Body: &block.CodeBody{
				Lang: format.LangGo, Path: "big.go", Content: []byte(strings.Repeat("x", 4000)),
			},
		},
	}

	tokenBudget := uint32(20)
	out, err := Render(blocks, Config{Mode: ModeXml, TokenBudget: &tokenBudget})
	require.NoError(t, err)
	require.Contains(t, out, `summary="true"`)
	require.Contains(t, out, "Short form.")
}

func TestRender_PlaceholderShapes(t *testing.T) {
	big := []byte(strings.Repeat("x", 4000)) // ~1000 tokens
	blocks := []block.Block{codeBlock(format.LangRust, "huge.rs", big)}
	tokenBudget := uint32(5)

	out, err := Render(blocks, Config{Mode: ModeXml, TokenBudget: &tokenBudget})
	require.NoError(t, err)
	require.Contains(t, out, `<omitted type="code" desc="huge.rs" tokens="1000" />`)

	out, err = Render(blocks, Config{Mode: ModeMarkdown, TokenBudget: &tokenBudget})
	require.NoError(t, err)
	require.Contains(t, out, "_[Omitted: code huge.rs, ~1000 tokens]_")

	out, err = Render(blocks, Config{Mode: ModeMinimal, TokenBudget: &tokenBudget})
	require.NoError(t, err)
	require.Contains(t, out, "[omitted: code huge.rs ~1000tok]")
}

func TestRender_BudgetedMinimal(t *testing.T) {
	// Critical / Normal / Background code blocks of ~100 tokens each,
	// rendered in Minimal mode under a 10-token budget.
	criticalContent := []byte(strings.Repeat("critical_fn();\n", 27))
	normalContent := []byte(strings.Repeat("normal_fn();\n", 31))
	backgroundContent := []byte(strings.Repeat("background_fn();\n", 24))

	blocks := []block.Block{
		codeBlock(format.LangRust, "critical.rs", criticalContent),
		annotationBlock(0, format.PriorityCritical),
		codeBlock(format.LangRust, "normal.rs", normalContent),
		codeBlock(format.LangRust, "background.rs", backgroundContent),
		annotationBlock(3, format.PriorityBackground),
	}

	tokenBudget := uint32(10)
	out, err := Render(blocks, Config{Mode: ModeMinimal, TokenBudget: &tokenBudget})
	require.NoError(t, err)

	require.Contains(t, out, "critical.rs", "critical path must appear")
	require.Contains(t, out, string(criticalContent), "critical content appears verbatim")
	require.NotContains(t, out, string(backgroundContent), "background content must not appear verbatim")
}

func TestRender_OmitProducesNoOutput(t *testing.T) {
	blocks := []block.Block{
		codeBlock(format.LangRust, "keep.rs", []byte("fn k() {}")),
		codeBlock(format.LangRust, "drop.rs", []byte(strings.Repeat("x", 4000))),
		annotationBlock(1, format.PriorityBackground),
	}

	// Budget covers the small block only; the background block cannot
	// even afford a placeholder once the budget is drained.
	tokenBudget := uint32(2)
	out, err := Render(blocks, Config{Mode: ModeMinimal, TokenBudget: &tokenBudget})
	require.NoError(t, err)
	require.NotContains(t, out, "drop.rs")
}
