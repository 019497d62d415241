package render

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/budget"
)

// MarkdownRenderer renders blocks as markdown: `##` headers with fenced
// code for Code blocks, bold role prefixes for conversation turns,
// `###` sections for tool results and documents, fenced diff blocks.
// No outer wrapper.
type MarkdownRenderer struct{}

// Render renders the items joined by blank lines.
func (MarkdownRenderer) Render(items []Item) (string, error) {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		switch item.Decision.Kind {
		case budget.DecisionOmit:
			continue
		case budget.DecisionPlaceholder:
			parts = append(parts, renderPlaceholder(ModeMarkdown, item.Decision))
		default:
			rendered, err := markdownBlock(item, i)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		}
	}

	return joinRendered(parts)
}

func markdownBlock(item Item, index int) (string, error) {
	b := item.Block

	switch body := b.Body.(type) {
	case *block.CodeBody:
		content, usedSummary, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}
		if usedSummary {
			return fmt.Sprintf("## %s (summary)\n\n%s", body.Path, content), nil
		}

		return fmt.Sprintf("## %s\n\n```%s\n%s\n```", body.Path, body.Lang.DisplayName(), content), nil

	case *block.ConversationBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("**%s**: %s", capitalizeFirst(body.Role.DisplayName()), content), nil

	case *block.FileTreeBody:
		return fmt.Sprintf("### File Tree: %s\n\n```\n%s```", body.RootPath, body.TreeText()), nil

	case *block.ToolResultBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("### Tool: %s (%s)\n\n%s", body.ToolName, body.Status.DisplayName(), content), nil

	case *block.DocumentBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("### Document: %s [%s]\n\n%s", body.Title, body.FormatHint.DisplayName(), content), nil

	case *block.StructuredDataBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("```%s\n%s\n```", body.Format.DisplayName(), content), nil

	case *block.DiffBody:
		return fmt.Sprintf("### Diff: %s\n\n```diff\n%s```", body.Path, hunkLines(body)), nil

	case *block.EmbeddingRefBody:
		return fmt.Sprintf("*[Embedding ref: model=%s]*", body.Model), nil

	case *block.ImageBody:
		content, _, err := bodyText(item, body.Data, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("### Image (%s): %s\n\n%s", body.MediaType.DisplayName(), body.AltText, content), nil

	case *block.ExtensionBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("### Extension: %s/%s\n\n%s", body.Namespace, body.TypeName, content), nil

	case block.UnknownBody:
		return fmt.Sprintf("<!-- unknown block type 0x%02X -->\n%s", uint8(body.TypeID), lossyText(body.Raw)), nil

	default:
		return "", nil
	}
}
