package render

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/budget"
)

// renderPlaceholder emits the mode-appropriate omission marker for a
// placeholder decision.
func renderPlaceholder(mode Mode, d budget.Decision) string {
	label := d.BlockType.Label()
	switch mode {
	case ModeXml:
		return fmt.Sprintf("<omitted type=\"%s\" desc=\"%s\" tokens=\"%d\" />", label, xmlEscape(d.Description), d.OmittedTokens)
	case ModeMarkdown:
		return fmt.Sprintf("_[Omitted: %s %s, ~%d tokens]_", label, d.Description, d.OmittedTokens)
	default:
		return fmt.Sprintf("[omitted: %s %s ~%dtok]", label, d.Description, d.OmittedTokens)
	}
}
