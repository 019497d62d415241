package block

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// ImageBody is image data with alt text.
//
// Fields: 1=media_type (varint), 2=alt_text (bytes), 3=data (bytes).
type ImageBody struct {
	MediaType format.MediaType
	AltText   string
	Data      []byte
}

var _ Body = (*ImageBody)(nil)

// BlockType returns format.BlockImage.
func (b *ImageBody) BlockType() format.BlockType {
	return format.BlockImage
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *ImageBody) EncodeBody() []byte {
	buf := wire.AppendVarintField(nil, 1, uint64(b.MediaType))
	buf = wire.AppendBytesField(buf, 2, []byte(b.AltText))

	return wire.AppendBytesField(buf, 3, b.Data)
}

// DecodeImage deserializes an Image body from TLV bytes.
func DecodeImage(buf []byte) (*ImageBody, error) {
	var (
		mediaType *format.MediaType
		altText   *string
		data      []byte
		haveData  bool
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
			m, err := format.ParseMediaType(uint8(v))
			if err != nil {
				return nil, err
			}
			mediaType = &m
		case 2:
			payload, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			alt := lossyString(payload)
			altText = &alt
		case 3:
			payload, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			data = append([]byte(nil), payload...)
			haveData = true
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if mediaType == nil {
		return nil, fmt.Errorf("%w: Image.media_type", errs.ErrMissingRequiredField)
	}
	if altText == nil {
		return nil, fmt.Errorf("%w: Image.alt_text", errs.ErrMissingRequiredField)
	}
	if !haveData {
		return nil, fmt.Errorf("%w: Image.data", errs.ErrMissingRequiredField)
	}

	return &ImageBody{MediaType: *mediaType, AltText: *altText, Data: data}, nil
}
