package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
)

func TestField_RoundtripVarint(t *testing.T) {
	buf := AppendVarintField(nil, 1, 42)

	header, cursor, err := ParseFieldHeader(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(1), header.ID)
	require.Equal(t, format.WireVarint, header.Type)

	value, n, err := ParseVarintValue(buf[cursor:])
	require.NoError(t, err)
	require.Equal(t, uint64(42), value)
	require.Equal(t, len(buf), cursor+n)
}

func TestField_RoundtripBytes(t *testing.T) {
	buf := AppendBytesField(nil, 2, []byte("hello"))

	header, cursor, err := ParseFieldHeader(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(2), header.ID)
	require.Equal(t, format.WireBytes, header.Type)

	data, n, err := ParseBytesValue(buf[cursor:])
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
	require.Equal(t, len(buf), cursor+n)
}

func TestField_RoundtripNested(t *testing.T) {
	inner := AppendVarintField(nil, 1, 99)
	buf := AppendNestedField(nil, 3, inner)

	header, cursor, err := ParseFieldHeader(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(3), header.ID)
	require.Equal(t, format.WireNested, header.Type)

	nested, n, err := ParseBytesValue(buf[cursor:])
	require.NoError(t, err)
	require.Equal(t, len(buf), cursor+n)

	innerHeader, innerCursor, err := ParseFieldHeader(nested)
	require.NoError(t, err)
	require.Equal(t, uint64(1), innerHeader.ID)

	value, _, err := ParseVarintValue(nested[innerCursor:])
	require.NoError(t, err)
	require.Equal(t, uint64(99), value)
}

func TestField_SkipVarint(t *testing.T) {
	buf := AppendVarintField(nil, 1, 12345)

	header, cursor, err := ParseFieldHeader(buf)
	require.NoError(t, err)

	skipped, err := SkipField(buf[cursor:], header.Type)
	require.NoError(t, err)
	require.Equal(t, len(buf), cursor+skipped)
}

func TestField_SkipBytes(t *testing.T) {
	buf := AppendBytesField(nil, 2, []byte("skip me"))

	header, cursor, err := ParseFieldHeader(buf)
	require.NoError(t, err)

	skipped, err := SkipField(buf[cursor:], header.Type)
	require.NoError(t, err)
	require.Equal(t, len(buf), cursor+skipped)
}

func TestField_SequentialFields(t *testing.T) {
	buf := AppendVarintField(nil, 1, 7)
	buf = AppendBytesField(buf, 2, []byte("world"))
	buf = AppendVarintField(buf, 3, 256)

	cursor := 0

	header, n, err := ParseFieldHeader(buf[cursor:])
	require.NoError(t, err)
	cursor += n
	require.Equal(t, uint64(1), header.ID)
	value, n, err := ParseVarintValue(buf[cursor:])
	require.NoError(t, err)
	cursor += n
	require.Equal(t, uint64(7), value)

	header, n, err = ParseFieldHeader(buf[cursor:])
	require.NoError(t, err)
	cursor += n
	require.Equal(t, uint64(2), header.ID)
	data, n, err := ParseBytesValue(buf[cursor:])
	require.NoError(t, err)
	cursor += n
	require.Equal(t, []byte("world"), data)

	header, n, err = ParseFieldHeader(buf[cursor:])
	require.NoError(t, err)
	cursor += n
	require.Equal(t, uint64(3), header.ID)
	value, n, err = ParseVarintValue(buf[cursor:])
	require.NoError(t, err)
	cursor += n
	require.Equal(t, uint64(256), value)

	require.Equal(t, len(buf), cursor)
}

func TestField_RejectUnknownWireType(t *testing.T) {
	buf := AppendUvarint(nil, 1) // field id
	buf = AppendUvarint(buf, 5) // invalid wire type

	_, _, err := ParseFieldHeader(buf)
	require.ErrorIs(t, err, errs.ErrUnknownFieldWireType)
}

func TestField_TruncatedBytesPayload(t *testing.T) {
	buf := AppendBytesField(nil, 2, []byte("hello"))

	header, cursor, err := ParseFieldHeader(buf)
	require.NoError(t, err)

	_, _, err = ParseBytesValue(buf[cursor : len(buf)-2])
	require.ErrorIs(t, err, errs.ErrUnexpectedEof)
	_ = header
}
