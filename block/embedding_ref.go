package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// EmbeddingRefBody points at a vector stored elsewhere: an opaque
// vector id, the hash of the source content it was computed from, and
// the embedding model's name.
//
// Fields: 1=vector_id (bytes), 2=source_hash (bytes), 3=model (bytes).
type EmbeddingRefBody struct {
	VectorID   []byte
	SourceHash []byte
	Model      string
}

var _ Body = (*EmbeddingRefBody)(nil)

// BlockType returns format.BlockEmbeddingRef.
func (b *EmbeddingRefBody) BlockType() format.BlockType {
	return format.BlockEmbeddingRef
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *EmbeddingRefBody) EncodeBody() []byte {
	buf := wire.AppendBytesField(nil, 1, b.VectorID)
	buf = wire.AppendBytesField(buf, 2, b.SourceHash)

	return wire.AppendBytesField(buf, 3, []byte(b.Model))
}

// DecodeEmbeddingRef deserializes an EmbeddingRef body from TLV bytes.
func DecodeEmbeddingRef(buf []byte) (*EmbeddingRefBody, error) {
	var (
		vectorID   []byte
		haveVector bool
		sourceHash []byte
		haveSource bool
		model      *string
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
			vectorID = append([]byte(nil), data...)
			haveVector = true
		case 2:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			sourceHash = append([]byte(nil), data...)
			haveSource = true
		case 3:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			m := lossyString(data)
			model = &m
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if !haveVector {
		return nil, fmt.Errorf("%w: EmbeddingRef.vector_id", errs.ErrMissingRequiredField)
	}
	if !haveSource {
		return nil, fmt.Errorf("%w: EmbeddingRef.source_hash", errs.ErrMissingRequiredField)
	}
	if model == nil {
		return nil, fmt.Errorf("%w: EmbeddingRef.model", errs.ErrMissingRequiredField)
	}

	return &EmbeddingRefBody{VectorID: vectorID, SourceHash: sourceHash, Model: *model}, nil
}
