package render

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/budget"
)

// XmlRenderer renders blocks as semantic XML elements wrapped in a
// single <context> root. Attributes carry metadata with & < > "
// escaped; each block stands as its own element separated by a blank
// line.
type XmlRenderer struct{}

// Render renders the items into the <context> root.
func (XmlRenderer) Render(items []Item) (string, error) {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		switch item.Decision.Kind {
		case budget.DecisionOmit:
			continue
		case budget.DecisionPlaceholder:
			parts = append(parts, renderPlaceholder(ModeXml, item.Decision))
		default:
			rendered, err := xmlBlock(item, i)
			if err != nil {
				return "", err
			}
			parts = append(parts, rendered)
		}
	}

	inner, err := joinRendered(parts)
	if err != nil {
		return "", err
	}

	return "<context>\n" + inner + "\n</context>", nil
}

func xmlBlock(item Item, index int) (string, error) {
	b := item.Block

	switch body := b.Body.(type) {
	case *block.CodeBody:
		content, usedSummary, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}
		if usedSummary {
			return fmt.Sprintf("<code lang=\"%s\" path=\"%s\" summary=\"true\">\n%s\n</code>",
				body.Lang.DisplayName(), xmlEscape(body.Path), content), nil
		}

		return fmt.Sprintf("<code lang=\"%s\" path=\"%s\">\n%s\n</code>",
			body.Lang.DisplayName(), xmlEscape(body.Path), content), nil

	case *block.ConversationBody:
		content, usedSummary, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}
		if usedSummary {
			return fmt.Sprintf("<turn role=\"%s\" summary=\"true\">%s</turn>", body.Role.DisplayName(), content), nil
		}

		return fmt.Sprintf("<turn role=\"%s\">%s</turn>", body.Role.DisplayName(), content), nil

	case *block.FileTreeBody:
		return fmt.Sprintf("<tree root=\"%s\">\n%s</tree>", xmlEscape(body.RootPath), body.TreeText()), nil

	case *block.ToolResultBody:
		content, usedSummary, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}
		if usedSummary {
			return fmt.Sprintf("<tool name=\"%s\" status=\"%s\" summary=\"true\">\n%s\n</tool>",
				xmlEscape(body.ToolName), body.Status.DisplayName(), content), nil
		}

		return fmt.Sprintf("<tool name=\"%s\" status=\"%s\">\n%s\n</tool>",
			xmlEscape(body.ToolName), body.Status.DisplayName(), content), nil

	case *block.DocumentBody:
		content, usedSummary, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}
		if usedSummary {
			return fmt.Sprintf("<doc title=\"%s\" format=\"%s\" summary=\"true\">\n%s\n</doc>",
				xmlEscape(body.Title), body.FormatHint.DisplayName(), content), nil
		}

		return fmt.Sprintf("<doc title=\"%s\" format=\"%s\">\n%s\n</doc>",
			xmlEscape(body.Title), body.FormatHint.DisplayName(), content), nil

	case *block.StructuredDataBody:
		content, usedSummary, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}
		if usedSummary {
			return fmt.Sprintf("<data format=\"%s\" summary=\"true\">\n%s\n</data>", body.Format.DisplayName(), content), nil
		}

		return fmt.Sprintf("<data format=\"%s\">\n%s\n</data>", body.Format.DisplayName(), content), nil

	case *block.DiffBody:
		return fmt.Sprintf("<diff path=\"%s\">\n%s</diff>", xmlEscape(body.Path), hunkLines(body)), nil

	case *block.EmbeddingRefBody:
		return fmt.Sprintf("<embed-ref model=\"%s\" />", xmlEscape(body.Model)), nil

	case *block.ImageBody:
		content, _, err := bodyText(item, body.Data, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("<image type=\"%s\" alt=\"%s\">\n%s\n</image>",
			body.MediaType.DisplayName(), xmlEscape(body.AltText), content), nil

	case *block.ExtensionBody:
		content, _, err := bodyText(item, body.Content, index)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("<ext ns=\"%s\" type=\"%s\">\n%s\n</ext>",
			xmlEscape(body.Namespace), xmlEscape(body.TypeName), content), nil

	case block.UnknownBody:
		return fmt.Sprintf("<!-- unknown block type 0x%02X -->\n%s", uint8(body.TypeID), lossyText(body.Raw)), nil

	default:
		// Annotation and END bodies never reach a renderer; the driver
		// filters them.
		return "", nil
	}
}
