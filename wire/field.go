package wire

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
)

// Every field in a block body is a tag-length-value triple:
//
//	field_id (varint) │ wire_type (varint) │ payload
//
// The wire type determines the payload layout:
//
//	┌──────┬──────────┬───────────────────────────────┐
//	│ Wire │ Type     │ Payload format                │
//	├──────┼──────────┼───────────────────────────────┤
//	│ 0    │ Varint   │ single varint value           │
//	│ 1    │ Bytes    │ varint length + raw bytes     │
//	│ 2    │ Nested   │ varint length + nested TLV    │
//	└──────┴──────────┴───────────────────────────────┘
//
// The layout is deliberately protobuf-like: a reader can skip any
// unknown field id by inspecting only the wire type, which is what
// gives block bodies their forward compatibility.

// FieldHeader is a decoded field id plus wire type. The caller matches
// on ID to pick a struct field and uses Type to read the payload.
type FieldHeader struct {
	ID   uint64
	Type format.FieldWireType
}

// AppendVarintField appends a varint field (wire type 0) to dst.
func AppendVarintField(dst []byte, fieldID, value uint64) []byte {
	dst = AppendUvarint(dst, fieldID)
	dst = AppendUvarint(dst, uint64(format.WireVarint))

	return AppendUvarint(dst, value)
}

// AppendBytesField appends a bytes field (wire type 1) to dst.
func AppendBytesField(dst []byte, fieldID uint64, data []byte) []byte {
	dst = AppendUvarint(dst, fieldID)
	dst = AppendUvarint(dst, uint64(format.WireBytes))
	dst = AppendUvarint(dst, uint64(len(data)))

	return append(dst, data...)
}

// AppendNestedField appends a nested field (wire type 2) to dst. The
// nested payload is itself a pre-encoded TLV field sequence; this is
// how recursive structures like FileEntry children are carried.
func AppendNestedField(dst []byte, fieldID uint64, nested []byte) []byte {
	dst = AppendUvarint(dst, fieldID)
	dst = AppendUvarint(dst, uint64(format.WireNested))
	dst = AppendUvarint(dst, uint64(len(nested)))

	return append(dst, nested...)
}

// ParseFieldHeader decodes a field header from the front of buf,
// returning the header and the bytes consumed.
//
// Unrecognized wire type values fail with errs.ErrUnknownFieldWireType;
// unknown field IDs are the caller's concern (they must be skipped, not
// rejected).
func ParseFieldHeader(buf []byte) (FieldHeader, int, error) {
	fieldID, n, err := Uvarint(buf)
	if err != nil {
		return FieldHeader{}, 0, err
	}
	cursor := n

	wireRaw, n, err := Uvarint(buf[cursor:])
	if err != nil {
		return FieldHeader{}, 0, err
	}
	cursor += n

	if wireRaw > uint64(format.WireNested) {
		return FieldHeader{}, 0, fmt.Errorf("%w: %d", errs.ErrUnknownFieldWireType, wireRaw)
	}

	return FieldHeader{ID: fieldID, Type: format.FieldWireType(wireRaw)}, cursor, nil
}

// ParseVarintValue reads a varint payload. Call after ParseFieldHeader
// returns format.WireVarint.
func ParseVarintValue(buf []byte) (uint64, int, error) {
	return Uvarint(buf)
}

// ParseBytesValue reads a length-prefixed payload. Call after
// ParseFieldHeader returns format.WireBytes or format.WireNested.
//
// The returned slice aliases buf; copy it if it must outlive the input.
// The consumed count includes the length prefix.
func ParseBytesValue(buf []byte) ([]byte, int, error) {
	length, n, err := Uvarint(buf)
	if err != nil {
		return nil, 0, err
	}

	end := uint64(n) + length
	if end > uint64(len(buf)) {
		return nil, 0, fmt.Errorf("%w: field payload of %d bytes exceeds remaining input", errs.ErrUnexpectedEof, length)
	}

	return buf[n:end], int(end), nil
}

// SkipField consumes an unrecognized field's payload using only its
// wire type, returning the bytes consumed. This is the forward
// compatibility mechanism: decoders never fail on unknown field IDs.
func SkipField(buf []byte, wireType format.FieldWireType) (int, error) {
	switch wireType {
	case format.WireVarint:
		_, n, err := Uvarint(buf)
		return n, err
	case format.WireBytes, format.WireNested:
		_, n, err := ParseBytesValue(buf)
		return n, err
	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrUnknownFieldWireType, wireType)
	}
}
