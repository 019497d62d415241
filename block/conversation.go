package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// ConversationBody is a single chat turn.
//
// Fields: 1=role (varint), 2=content (bytes), 3=tool_call_id (bytes,
// optional). The tool-call id links a Tool-role turn back to the
// assistant call that produced it; an empty id is treated as absent.
type ConversationBody struct {
	Role       format.Role
	Content    []byte
	ToolCallID string
}

var _ Body = (*ConversationBody)(nil)

// BlockType returns format.BlockConversation.
func (b *ConversationBody) BlockType() format.BlockType {
	return format.BlockConversation
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *ConversationBody) EncodeBody() []byte {
	buf := wire.AppendVarintField(nil, 1, uint64(b.Role))
	buf = wire.AppendBytesField(buf, 2, b.Content)
	if b.ToolCallID != "" {
		buf = wire.AppendBytesField(buf, 3, []byte(b.ToolCallID))
	}

	return buf
}

// DecodeConversation deserializes a Conversation body from TLV bytes.
func DecodeConversation(buf []byte) (*ConversationBody, error) {
	var (
		role        *format.Role
		content     []byte
		haveContent bool
		toolCallID  string
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
			r, err := format.ParseRole(uint8(v))
			if err != nil {
				return nil, err
			}
			role = &r
		case 2:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			content = append([]byte(nil), data...)
			haveContent = true
		case 3:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			toolCallID = lossyString(data)
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if role == nil {
		return nil, fmt.Errorf("%w: Conversation.role", errs.ErrMissingRequiredField)
	}
	if !haveContent {
		return nil, fmt.Errorf("%w: Conversation.content", errs.ErrMissingRequiredField)
	}

	return &ConversationBody{Role: *role, Content: content, ToolCallID: toolCallID}, nil
}
