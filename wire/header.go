package wire

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
)

const (
	// HeaderSize is the fixed payload header size in bytes.
	HeaderSize = 8

	// VersionMajor is the current format major version.
	VersionMajor = 1

	// VersionMinor is the current format minor version.
	VersionMinor = 0

	// Header flag bits.
	HeaderFlagCompressed = 0x01 // whole-payload zstd compression
	HeaderFlagHasIndex   = 0x02 // reserved: index trailer after END (parsed, not required)

	headerReservedMask = 0xFC // bits 2-7 must be zero
)

// Magic is the 4-byte payload magic: ASCII "BCP\0". Stored as raw bytes
// rather than a uint32 so byte order never enters the picture.
var Magic = [4]byte{0x42, 0x43, 0x50, 0x00}

// HeaderFlags is the header flags byte.
//
// Bit 0 signals whole-payload zstd compression. Bit 1 is reserved for a
// future index trailer. Bits 2-7 are reserved and must be zero.
type HeaderFlags uint8

// Compressed reports whether whole-payload compression is enabled.
func (f HeaderFlags) Compressed() bool {
	return f&HeaderFlagCompressed != 0
}

// HasIndex reports whether the index trailer bit is set.
func (f HeaderFlags) HasIndex() bool {
	return f&HeaderFlagHasIndex != 0
}

// Header is the fixed 8-byte frame at the start of every payload.
//
//	┌────────┬─────────┬─────────────────────────────┐
//	│ Offset │ Size    │ Description                 │
//	├────────┼─────────┼─────────────────────────────┤
//	│ 0x00   │ 4 bytes │ Magic "BCP\0"               │
//	│ 0x04   │ 1 byte  │ Version major               │
//	│ 0x05   │ 1 byte  │ Version minor               │
//	│ 0x06   │ 1 byte  │ Flags                       │
//	│ 0x07   │ 1 byte  │ Reserved (0x00)             │
//	└────────┴─────────┴─────────────────────────────┘
type Header struct {
	VersionMajor uint8
	VersionMinor uint8
	Flags        HeaderFlags
}

// NewHeader creates a header with the current version and the given flags.
func NewHeader(flags HeaderFlags) Header {
	return Header{
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		Flags:        flags,
	}
}

// WriteTo writes the 8-byte header into buf. The reserved byte is
// always written as zero.
//
// Returns errs.ErrUnexpectedEof if buf is shorter than HeaderSize.
func (h Header) WriteTo(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrUnexpectedEof, HeaderSize, len(buf))
	}

	copy(buf[0:4], Magic[:])
	buf[4] = h.VersionMajor
	buf[5] = h.VersionMinor
	buf[6] = uint8(h.Flags)
	buf[7] = 0x00

	return nil
}

// ParseHeader parses a header from the first 8 bytes of buf.
//
// Validation order: magic first (is this a BCP payload at all?), then
// major version, then the reserved byte, then the reserved flag bits.
// Each failure wraps the matching errs sentinel.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrUnexpectedEof, HeaderSize, len(buf))
	}

	if [4]byte(buf[0:4]) != Magic {
		return Header{}, fmt.Errorf("%w: got % X", errs.ErrInvalidMagicNumber, buf[0:4])
	}

	major, minor := buf[4], buf[5]
	if major != VersionMajor {
		return Header{}, fmt.Errorf("%w: %d.%d", errs.ErrUnsupportedVersion, major, minor)
	}

	if buf[7] != 0x00 {
		return Header{}, fmt.Errorf("%w: reserved byte at offset 7 is 0x%02X", errs.ErrReservedNonZero, buf[7])
	}

	if buf[6]&headerReservedMask != 0 {
		return Header{}, fmt.Errorf("%w: reserved header flag bits set in 0x%02X", errs.ErrReservedNonZero, buf[6])
	}

	return Header{
		VersionMajor: major,
		VersionMinor: minor,
		Flags:        HeaderFlags(buf[6]),
	}, nil
}
