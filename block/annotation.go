package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// AnnotationBody is a metadata overlay targeting an earlier block by
// its zero-based index in the block sequence. Annotations and the END
// sentinel are included in that count, so targets stay stable under
// decode and re-encode.
//
// Fields: 1=target (varint), 2=kind (varint), 3=value (bytes).
// Value interpretation depends on the kind: a single priority byte,
// UTF-8 summary text, or a UTF-8 tag.
type AnnotationBody struct {
	TargetBlock uint32
	Kind        format.AnnotationKind
	Value       []byte
}

var _ Body = (*AnnotationBody)(nil)

// BlockType returns format.BlockAnnotation.
func (b *AnnotationBody) BlockType() format.BlockType {
	return format.BlockAnnotation
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *AnnotationBody) EncodeBody() []byte {
	buf := wire.AppendVarintField(nil, 1, uint64(b.TargetBlock))
	buf = wire.AppendVarintField(buf, 2, uint64(b.Kind))

	return wire.AppendBytesField(buf, 3, b.Value)
}

// Priority returns the priority carried by a priority annotation, or
// ok=false when the annotation is not a valid priority kind.
func (b *AnnotationBody) Priority() (format.Priority, bool) {
	if b.Kind != format.AnnotationPriority || len(b.Value) == 0 {
		return 0, false
	}

	p, err := format.ParsePriority(b.Value[0])
	if err != nil {
		return 0, false
	}

	return p, true
}

// DecodeAnnotation deserializes an Annotation body from TLV bytes.
func DecodeAnnotation(buf []byte) (*AnnotationBody, error) {
	var (
		target    *uint32
		kind      *format.AnnotationKind
		value     []byte
		haveValue bool
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
			t := uint32(v)
			target = &t
		case 2:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			k, err := format.ParseAnnotationKind(uint8(v))
			if err != nil {
				return nil, err
			}
			kind = &k
		case 3:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			value = append([]byte(nil), data...)
			haveValue = true
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if target == nil {
		return nil, fmt.Errorf("%w: Annotation.target", errs.ErrMissingRequiredField)
	}
	if kind == nil {
		return nil, fmt.Errorf("%w: Annotation.kind", errs.ErrMissingRequiredField)
	}
	if !haveValue {
		return nil, fmt.Errorf("%w: Annotation.value", errs.ErrMissingRequiredField)
	}

	return &AnnotationBody{TargetBlock: *target, Kind: *kind, Value: value}, nil
}
