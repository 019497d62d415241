package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// ToolResultBody is the output of a tool invocation.
//
// Fields: 1=tool_name (bytes), 2=status (varint), 3=content (bytes),
// 4=schema_hint (bytes, optional). An empty schema hint is treated as
// absent.
type ToolResultBody struct {
	ToolName   string
	Status     format.Status
	Content    []byte
	SchemaHint string
}

var _ Body = (*ToolResultBody)(nil)

// BlockType returns format.BlockToolResult.
func (b *ToolResultBody) BlockType() format.BlockType {
	return format.BlockToolResult
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *ToolResultBody) EncodeBody() []byte {
	buf := wire.AppendBytesField(nil, 1, []byte(b.ToolName))
	buf = wire.AppendVarintField(buf, 2, uint64(b.Status))
	buf = wire.AppendBytesField(buf, 3, b.Content)
	if b.SchemaHint != "" {
		buf = wire.AppendBytesField(buf, 4, []byte(b.SchemaHint))
	}

	return buf
}

// DecodeToolResult deserializes a ToolResult body from TLV bytes.
func DecodeToolResult(buf []byte) (*ToolResultBody, error) {
	var (
		toolName    *string
		status      *format.Status
		content     []byte
		haveContent bool
		schemaHint  string
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
			name := lossyString(data)
			toolName = &name
		case 2:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			s, err := format.ParseStatus(uint8(v))
			if err != nil {
				return nil, err
			}
			status = &s
		case 3:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			content = append([]byte(nil), data...)
			haveContent = true
		case 4:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			schemaHint = lossyString(data)
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if toolName == nil {
		return nil, fmt.Errorf("%w: ToolResult.tool_name", errs.ErrMissingRequiredField)
	}
	if status == nil {
		return nil, fmt.Errorf("%w: ToolResult.status", errs.ErrMissingRequiredField)
	}
	if !haveContent {
		return nil, fmt.Errorf("%w: ToolResult.content", errs.ErrMissingRequiredField)
	}

	return &ToolResultBody{
		ToolName:   *toolName,
		Status:     *status,
		Content:    content,
		SchemaHint: schemaHint,
	}, nil
}
