package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// ExtensionBody is a namespaced user-defined block. The namespace and
// type name identify the extension; the content is opaque to the core.
//
// Fields: 1=namespace (bytes), 2=type_name (bytes), 3=content (bytes).
type ExtensionBody struct {
	Namespace string
	TypeName  string
	Content   []byte
}

var _ Body = (*ExtensionBody)(nil)

// BlockType returns format.BlockExtension.
func (b *ExtensionBody) BlockType() format.BlockType {
	return format.BlockExtension
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *ExtensionBody) EncodeBody() []byte {
	buf := wire.AppendBytesField(nil, 1, []byte(b.Namespace))
	buf = wire.AppendBytesField(buf, 2, []byte(b.TypeName))

	return wire.AppendBytesField(buf, 3, b.Content)
}

// DecodeExtension deserializes an Extension body from TLV bytes.
func DecodeExtension(buf []byte) (*ExtensionBody, error) {
	var (
		namespace   *string
		typeName    *string
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
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			ns := lossyString(data)
			namespace = &ns
		case 2:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			tn := lossyString(data)
			typeName = &tn
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

	if namespace == nil {
		return nil, fmt.Errorf("%w: Extension.namespace", errs.ErrMissingRequiredField)
	}
	if typeName == nil {
		return nil, fmt.Errorf("%w: Extension.type_name", errs.ErrMissingRequiredField)
	}
	if !haveContent {
		return nil, fmt.Errorf("%w: Extension.content", errs.ErrMissingRequiredField)
	}

	return &ExtensionBody{Namespace: *namespace, TypeName: *typeName, Content: content}, nil
}
