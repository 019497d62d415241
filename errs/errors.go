// Package errs defines the sentinel errors shared across the BCP codec,
// decoders, budget engine, and renderers.
//
// Callers match with errors.Is; call sites wrap these sentinels with
// fmt.Errorf("%w: ...") to attach offsets, field names, and sizes.
package errs

import "errors"

// Framing errors.
var (
	// ErrVarintTooLong indicates a varint exceeded the 10-byte limit.
	ErrVarintTooLong = errors.New("varint too long: exceeded 10-byte limit")

	// ErrUnexpectedEof indicates the input ended before a complete
	// varint, header, field, or body could be read.
	ErrUnexpectedEof = errors.New("unexpected end of input")

	// ErrInvalidMagicNumber indicates the payload does not start with
	// the BCP magic bytes.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrUnsupportedVersion indicates an unrecognized format major version.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrReservedNonZero indicates a reserved header byte or bit was set.
	ErrReservedNonZero = errors.New("reserved field is non-zero")
)

// Typed decode errors.
var (
	// ErrMissingRequiredField indicates a block body lacked a required field.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrUnknownFieldWireType indicates a TLV field carried a wire type
	// outside {Varint, Bytes, Nested}.
	ErrUnknownFieldWireType = errors.New("unknown field wire type")

	// ErrInvalidEnumValue indicates an enum field carried a byte outside
	// its closed set.
	ErrInvalidEnumValue = errors.New("invalid enum value")
)

// Structural errors.
var (
	// ErrMissingEndSentinel indicates the block stream ended without an
	// END frame.
	ErrMissingEndSentinel = errors.New("missing END sentinel")

	// ErrTrailingData indicates bytes remained after the END frame.
	ErrTrailingData = errors.New("trailing data after END sentinel")

	// ErrBlockTooLarge indicates a block body exceeded the 16 MiB limit.
	ErrBlockTooLarge = errors.New("block body too large")

	// ErrEmptyPayload indicates encode was called with no blocks added.
	ErrEmptyPayload = errors.New("empty payload: no blocks added")
)

// Compression errors.
var (
	// ErrDecompressFailed indicates corrupt or non-zstd compressed data.
	ErrDecompressFailed = errors.New("decompression failed")

	// ErrDecompressionBomb indicates decompressed output exceeded the
	// caller-supplied size cap.
	ErrDecompressionBomb = errors.New("decompression bomb")
)

// Content addressing errors.
var (
	// ErrMissingContentStore indicates content addressing or reference
	// resolution was requested without a store.
	ErrMissingContentStore = errors.New("content store required but not set")

	// ErrUnresolvedReference indicates a reference block's hash was not
	// present in the content store.
	ErrUnresolvedReference = errors.New("unresolved content reference")

	// ErrInvalidReference indicates a reference block's on-wire body was
	// not exactly 32 bytes.
	ErrInvalidReference = errors.New("reference body is not a 32-byte hash")
)

// Rendering errors.
var (
	// ErrEmptyInput indicates the driver was given no renderable blocks.
	ErrEmptyInput = errors.New("no renderable blocks")

	// ErrInvalidContent indicates block content bytes were not valid UTF-8.
	ErrInvalidContent = errors.New("block content is not valid UTF-8")
)
