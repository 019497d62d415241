package render

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/budget"
)

// MinimalRenderer renders blocks with single-line delimiters only:
// `--- path [lang] ---` for code, `[role] text` for turns,
// `--- name [status] ---` for tool results. This is the mode the token
// savings claim is measured against; every byte of structural chrome
// earns its place.
type MinimalRenderer struct{}

// Render renders the items joined by blank lines.
func (MinimalRenderer) Render(items []Item) (string, error) {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		switch item.Decision.Kind {
		case budget.DecisionOmit:
			continue
		case budget.DecisionPlaceholder:
			parts = append(parts, renderPlaceholder(ModeMinimal, item.Decision))
		default:
			rendered, err := minimalBlock(item, i)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		}
	}

	return joinRendered(parts)
}

func minimalBlock(item Item, index int) (string, error) {
	b := item.Block

	switch body := b.Body.(type) {
	case *block.CodeBody:
		content, usedSummary, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}
		if usedSummary {
			return fmt.Sprintf("--- %s [%s] (summary) ---\n%s", body.Path, body.Lang.DisplayName(), content), nil
		}

		return fmt.Sprintf("--- %s [%s] ---\n%s", body.Path, body.Lang.DisplayName(), content), nil

	case *block.ConversationBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("[%s] %s", body.Role.DisplayName(), content), nil

	case *block.FileTreeBody:
		return fmt.Sprintf("--- tree: %s ---\n%s", body.RootPath, body.TreeText()), nil

	case *block.ToolResultBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("--- %s [%s] ---\n%s", body.ToolName, body.Status.DisplayName(), content), nil

	case *block.DocumentBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("--- %s ---\n%s", body.Title, content), nil

	case *block.StructuredDataBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("--- data [%s] ---\n%s", body.Format.DisplayName(), content), nil

	case *block.DiffBody:
		return fmt.Sprintf("--- diff: %s ---\n%s", body.Path, hunkLines(body)), nil

	case *block.EmbeddingRefBody:
		return fmt.Sprintf("[embed-ref: %s]", body.Model), nil

	case *block.ImageBody:
		content, _, err := bodyText(item, body.Data, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("--- image [%s]: %s ---\n%s", body.MediaType.DisplayName(), body.AltText, content), nil

	case *block.ExtensionBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("--- ext: %s/%s ---\n%s", body.Namespace, body.TypeName, content), nil

	case block.UnknownBody:
		return fmt.Sprintf("--- unknown 0x%02X ---\n%s", uint8(body.TypeID), lossyText(body.Raw)), nil

	default:
		return "", nil
	}
}
