package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// StructuredDataBody is serialized data in a known format.
//
// Fields: 1=format (varint), 2=schema (bytes, optional),
// 3=content (bytes). The schema descriptor is free-form (a JSON Schema
// URL, a type name); an empty string is treated as absent.
type StructuredDataBody struct {
	Format  format.DataFormat
	Schema  string
	Content []byte
}

var _ Body = (*StructuredDataBody)(nil)

// BlockType returns format.BlockStructuredData.
func (b *StructuredDataBody) BlockType() format.BlockType {
	return format.BlockStructuredData
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *StructuredDataBody) EncodeBody() []byte {
	buf := wire.AppendVarintField(nil, 1, uint64(b.Format))
	if b.Schema != "" {
		buf = wire.AppendBytesField(buf, 2, []byte(b.Schema))
	}

	return wire.AppendBytesField(buf, 3, b.Content)
}

// DecodeStructuredData deserializes a StructuredData body from TLV bytes.
func DecodeStructuredData(buf []byte) (*StructuredDataBody, error) {
	var (
		dataFormat  *format.DataFormat
		schema      string
		content     []byte
		haveContent bool
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
			f, err := format.ParseDataFormat(uint8(v))
			if err != nil {
				return nil, err
			}
			dataFormat = &f
		case 2:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			schema = lossyString(data)
		case 3:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			content = append([]byte(nil), data...)
			haveContent = true
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if dataFormat == nil {
		return nil, fmt.Errorf("%w: StructuredData.format", errs.ErrMissingRequiredField)
	}
	if !haveContent {
		return nil, fmt.Errorf("%w: StructuredData.content", errs.ErrMissingRequiredField)
	}

	return &StructuredDataBody{Format: *dataFormat, Schema: schema, Content: content}, nil
}
