package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// CodeBody is a source code file or fragment, the most common block
// type in practice.
//
// Field layout within the body:
//
//	┌──────────┬───────────┬────────────┬───────────────────────┐
//	│ Field ID │ Wire Type │ Name       │ Description           │
//	├──────────┼───────────┼────────────┼───────────────────────┤
//	│ 1        │ Varint    │ lang       │ Language enum byte    │
//	│ 2        │ Bytes     │ path       │ UTF-8 file path       │
//	│ 3        │ Bytes     │ content    │ Raw source bytes      │
//	│ 4        │ Varint    │ line_start │ Start line (optional) │
//	│ 5        │ Varint    │ line_end   │ End line (optional)   │
//	└──────────┴───────────┴────────────┴───────────────────────┘
//
// Fields 4 and 5 are emitted only when LineRange is set, so a body can
// represent either a whole file or a specific range within it.
type CodeBody struct {
	Lang    format.Lang
	Path    string
	Content []byte

	// LineRange optionally narrows the content to a 1-indexed,
	// inclusive line range of the source file.
	LineRange *LineRange
}

// LineRange is an inclusive 1-indexed line span.
type LineRange struct {
	Start uint32
	End   uint32
}

var _ Body = (*CodeBody)(nil)

// BlockType returns format.BlockCode.
func (b *CodeBody) BlockType() format.BlockType {
	return format.BlockCode
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *CodeBody) EncodeBody() []byte {
	buf := wire.AppendVarintField(nil, 1, uint64(b.Lang))
	buf = wire.AppendBytesField(buf, 2, []byte(b.Path))
	buf = wire.AppendBytesField(buf, 3, b.Content)
	if b.LineRange != nil {
		buf = wire.AppendVarintField(buf, 4, uint64(b.LineRange.Start))
		buf = wire.AppendVarintField(buf, 5, uint64(b.LineRange.End))
	}

	return buf
}

// DecodeCode deserializes a Code body from TLV bytes. Unknown field IDs
// are skipped for forward compatibility.
func DecodeCode(buf []byte) (*CodeBody, error) {
	var (
		lang               *format.Lang
		path               *string
		content            []byte
		haveContent        bool
		lineStart, lineEnd *uint32
	)

	for len(buf) > 0 {
		header, n, err := wire.ParseFieldHeader(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]

		switch header.ID {
		case 1:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			l := format.Lang(v)
			lang = &l
		case 2:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			p := lossyString(data)
			path = &p
		case 3:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			content = append([]byte(nil), data...)
			haveContent = true
		case 4:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			s := uint32(v)
			lineStart = &s
		case 5:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			e := uint32(v)
			lineEnd = &e
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if lang == nil {
		return nil, fmt.Errorf("%w: Code.lang", errs.ErrMissingRequiredField)
	}
	if path == nil {
		return nil, fmt.Errorf("%w: Code.path", errs.ErrMissingRequiredField)
	}
	if !haveContent {
		return nil, fmt.Errorf("%w: Code.content", errs.ErrMissingRequiredField)
	}

	body := &CodeBody{Lang: *lang, Path: *path, Content: content}
	if lineStart != nil && lineEnd != nil {
		body.LineRange = &LineRange{Start: *lineStart, End: *lineEnd}
	}

	return body, nil
}
