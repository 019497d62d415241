package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// DocumentBody is prose content with a format hint.
//
// Fields: 1=title (bytes), 2=content (bytes), 3=format_hint (varint).
type DocumentBody struct {
	Title      string
	Content    []byte
	FormatHint format.FormatHint
}

var _ Body = (*DocumentBody)(nil)

// BlockType returns format.BlockDocument.
func (b *DocumentBody) BlockType() format.BlockType {
	return format.BlockDocument
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *DocumentBody) EncodeBody() []byte {
	buf := wire.AppendBytesField(nil, 1, []byte(b.Title))
	buf = wire.AppendBytesField(buf, 2, b.Content)

	return wire.AppendVarintField(buf, 3, uint64(b.FormatHint))
}

// DecodeDocument deserializes a Document body from TLV bytes.
func DecodeDocument(buf []byte) (*DocumentBody, error) {
	var (
		title       *string
		content     []byte
		haveContent bool
		formatHint  *format.FormatHint
	)

	for len(buf) > 0 {
		header, n, err := wire.ParseFieldHeader(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]

		switch header.ID {
		case 1:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			t := lossyString(data)
			title = &t
		case 2:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			content = append([]byte(nil), data...)
			haveContent = true
		case 3:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			f, err := format.ParseFormatHint(uint8(v))
			if err != nil {
				return nil, err
			}
			formatHint = &f
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if title == nil {
		return nil, fmt.Errorf("%w: Document.title", errs.ErrMissingRequiredField)
	}
	if !haveContent {
		return nil, fmt.Errorf("%w: Document.content", errs.ErrMissingRequiredField)
	}
	if formatHint == nil {
		return nil, fmt.Errorf("%w: Document.format_hint", errs.ErrMissingRequiredField)
	}

	return &DocumentBody{Title: *title, Content: content, FormatHint: *formatHint}, nil
}
