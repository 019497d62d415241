package block

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// Body is the typed content of a block. Each of the semantic block
// types implements it, as do the END sentinel and the Unknown
// catch-all.
type Body interface {
	// BlockType returns the wire tag this body encodes under.
	BlockType() format.BlockType

	// EncodeBody serializes the body's fields to TLV bytes.
	EncodeBody() []byte
}

// Block is a fully parsed BCP block: the wire tag, per-block flags, the
// optional summary sub-block, and the typed body.
//
// Block sits between the wire layer (wire.Frame) and the application
// layer. The encoder turns a Block into a frame by encoding the body
// and prepending the summary when present; the decoder reverses this,
// stripping the summary before dispatching on the type tag.
type Block struct {
	Type    format.BlockType
	Flags   wire.BlockFlags
	Summary string
	Body    Body
}

// HasSummary reports whether a summary sub-block accompanies the body.
// Presence is tracked by the wire flag, so an empty summary string
// still round-trips.
func (b *Block) HasSummary() bool {
	return b.Flags.HasSummary()
}

// DecodeBody decodes a raw block body into its typed form, dispatching
// on the wire tag. Unknown tags yield an UnknownBody preserving the raw
// bytes; callers must strip any summary prefix before calling.
func DecodeBody(t format.BlockType, body []byte) (Body, error) {
	switch t {
	case format.BlockCode:
		return DecodeCode(body)
	case format.BlockConversation:
		return DecodeConversation(body)
	case format.BlockFileTree:
		return DecodeFileTree(body)
	case format.BlockToolResult:
		return DecodeToolResult(body)
	case format.BlockDocument:
		return DecodeDocument(body)
	case format.BlockStructuredData:
		return DecodeStructuredData(body)
	case format.BlockDiff:
		return DecodeDiff(body)
	case format.BlockAnnotation:
		return DecodeAnnotation(body)
	case format.BlockEmbeddingRef:
		return DecodeEmbeddingRef(body)
	case format.BlockImage:
		return DecodeImage(body)
	case format.BlockExtension:
		return DecodeExtension(body)
	case format.BlockEnd:
		return EndBody{}, nil
	default:
		raw := make([]byte, len(body))
		copy(raw, body)

		return UnknownBody{TypeID: t, Raw: raw}, nil
	}
}

// PlainText returns the block's content as text for token estimation.
//
// Content that is not valid UTF-8 is masked with a same-length run of
// 'x' so estimators still see a proportional cost. Annotations and the
// END sentinel estimate as empty.
func (b *Block) PlainText() string {
	switch body := b.Body.(type) {
	case *CodeBody:
		return textOrMask(body.Content)
	case *ConversationBody:
		return textOrMask(body.Content)
	case *ToolResultBody:
		return textOrMask(body.Content)
	case *DocumentBody:
		return textOrMask(body.Content)
	case *StructuredDataBody:
		return textOrMask(body.Content)
	case *DiffBody:
		var sb strings.Builder
		for _, hunk := range body.Hunks {
			sb.WriteString(textOrMask(hunk.Lines))
		}

		return sb.String()
	case *ImageBody:
		return textOrMask(body.Data)
	case *ExtensionBody:
		return textOrMask(body.Content)
	case *FileTreeBody:
		return body.TreeText()
	case *EmbeddingRefBody:
		return "embedding: " + body.Model
	case UnknownBody:
		return strings.Repeat("x", len(body.Raw))
	default:
		return ""
	}
}

// Description returns a short human label for placeholders: the path of
// a code or diff block, the tool name, the document title, and so on.
func (b *Block) Description() string {
	switch body := b.Body.(type) {
	case *CodeBody:
		return body.Path
	case *ConversationBody:
		return body.Role.DisplayName() + " turn"
	case *FileTreeBody:
		return "tree: " + body.RootPath
	case *ToolResultBody:
		return body.ToolName
	case *DocumentBody:
		return body.Title
	case *StructuredDataBody:
		return body.Format.DisplayName() + " data"
	case *DiffBody:
		return body.Path
	case *EmbeddingRefBody:
		return "embedding: " + body.Model
	case *ImageBody:
		return body.AltText
	case *ExtensionBody:
		return body.Namespace + "/" + body.TypeName
	case UnknownBody:
		return fmt.Sprintf("unknown 0x%02X", uint8(body.TypeID))
	default:
		return ""
	}
}

// textOrMask decodes bytes as UTF-8 text, substituting an 'x' run of
// equal length when the bytes are not valid text.
func textOrMask(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	return strings.Repeat("x", len(data))
}

// lossyString decodes field bytes as UTF-8, replacing invalid sequences
// with the replacement character. Metadata strings (paths, titles,
// names) are lossy by design; block content stays raw bytes until
// render time, where invalid UTF-8 is a hard error instead.
func lossyString(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	return strings.ToValidUTF8(string(data), "�")
}
