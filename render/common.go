package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nicholasgalante1997/bcp/block"
	"github.com/nicholasgalante1997/bcp/budget"
	"github.com/nicholasgalante1997/bcp/errs"
)

// Item pairs a block with its render decision. The driver builds these;
// callers rendering without a budget get all-Full items.
type Item struct {
	Block    *block.Block
	Decision budget.Decision
}

// fullItems wraps blocks with Full decisions.
func fullItems(blocks []*block.Block) []Item {
	items := make([]Item, len(blocks))
	for i, b := range blocks {
		items[i] = Item{Block: b, Decision: budget.Decision{Kind: budget.DecisionFull}}
	}

	return items
}

// contentToString decodes block content strictly. Unlike summary and
// metadata text, content bytes embedded into rendered output must be
// valid UTF-8; anything else is a hard error carrying the block index.
func contentToString(content []byte, blockIndex int) (string, error) {
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: block %d", errs.ErrInvalidContent, blockIndex)
	}

	return string(content), nil
}

// bodyText resolves the text a content-bearing block renders: the
// summary when the decision asks for it and one is present, the strict
// UTF-8 content otherwise. The second return reports whether the
// summary was used.
func bodyText(item Item, content []byte, blockIndex int) (string, bool, error) {
	if item.Decision.Kind == budget.DecisionSummary && item.Block.HasSummary() {
		return item.Block.Summary, true, nil
	}

	text, err := contentToString(content, blockIndex)

	return text, false, err
}

// hunkLines concatenates a diff's hunk lines, masking invalid UTF-8
// per hunk rather than failing.
func hunkLines(d *block.DiffBody) string {
	var sb strings.Builder
	for i := range d.Hunks {
		lines := d.Hunks[i].Lines
		if utf8.Valid(lines) {
			sb.Write(lines)
		} else {
			sb.WriteString(strings.ToValidUTF8(string(lines), "�"))
		}
	}

	return sb.String()
}

// lossyText decodes bytes with invalid UTF-8 replaced. Unknown block
// bodies render lossily: they are opaque by definition, so a strict
// decode error would punish the forward-compatibility path.
func lossyText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	return strings.ToValidUTF8(string(data), "�")
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)

	return replacer.Replace(s)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// joinRendered assembles non-empty parts with blank-line separation,
// failing when every block was omitted.
func joinRendered(parts []string) (string, error) {
	if len(parts) == 0 {
		return "", errs.ErrEmptyInput
	}

	return strings.Join(parts, "\n\n"), nil
}
