package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// DiffHunk is one hunk of a diff: the old and new start lines plus the
// raw hunk lines (including +/-/space prefixes and newlines).
//
// Hunk fields: 1=old_start (varint), 2=new_start (varint),
// 3=lines (bytes).
type DiffHunk struct {
	OldStart uint32
	NewStart uint32
	Lines    []byte
}

func (h *DiffHunk) encode() []byte {
	buf := wire.AppendVarintField(nil, 1, uint64(h.OldStart))
	buf = wire.AppendVarintField(buf, 2, uint64(h.NewStart))

	return wire.AppendBytesField(buf, 3, h.Lines)
}

func decodeDiffHunk(buf []byte) (DiffHunk, error) {
	var hunk DiffHunk
	var haveOld, haveNew, haveLines bool

	for len(buf) > 0 {
		header, n, err := wire.ParseFieldHeader(buf)
		if err != nil {
			return DiffHunk{}, err
		}
		buf = buf[n:]

		switch header.ID {
		case 1:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return DiffHunk{}, err
			}
			buf = buf[n:]
			hunk.OldStart = uint32(v)
			haveOld = true
		case 2:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return DiffHunk{}, err
			}
			buf = buf[n:]
			hunk.NewStart = uint32(v)
			haveNew = true
		case 3:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return DiffHunk{}, err
			}
			buf = buf[n:]
			hunk.Lines = append([]byte(nil), data...)
			haveLines = true
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return DiffHunk{}, err
			}
			buf = buf[n:]
		}
	}

	if !haveOld {
		return DiffHunk{}, fmt.Errorf("%w: DiffHunk.old_start", errs.ErrMissingRequiredField)
	}
	if !haveNew {
		return DiffHunk{}, fmt.Errorf("%w: DiffHunk.new_start", errs.ErrMissingRequiredField)
	}
	if !haveLines {
		return DiffHunk{}, fmt.Errorf("%w: DiffHunk.lines", errs.ErrMissingRequiredField)
	}

	return hunk, nil
}

// DiffBody is a set of changes to one file.
//
// Fields: 1=path (bytes), 2=hunk (nested, repeated).
type DiffBody struct {
	Path  string
	Hunks []DiffHunk
}

var _ Body = (*DiffBody)(nil)

// BlockType returns format.BlockDiff.
func (b *DiffBody) BlockType() format.BlockType {
	return format.BlockDiff
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *DiffBody) EncodeBody() []byte {
	buf := wire.AppendBytesField(nil, 1, []byte(b.Path))
	for i := range b.Hunks {
		buf = wire.AppendNestedField(buf, 2, b.Hunks[i].encode())
	}

	return buf
}

// DecodeDiff deserializes a Diff body from TLV bytes.
func DecodeDiff(buf []byte) (*DiffBody, error) {
	var (
		path  *string
		hunks []DiffHunk
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
			p := lossyString(data)
			path = &p
		case 2:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			hunk, err := decodeDiffHunk(data)
			if err != nil {
				return nil, err
			}
			hunks = append(hunks, hunk)
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if path == nil {
		return nil, fmt.Errorf("%w: Diff.path", errs.ErrMissingRequiredField)
	}

	return &DiffBody{Path: *path, Hunks: hunks}, nil
}
