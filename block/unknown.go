package block

import "github.com/nicholasgalante1997/bcp/format"

// UnknownBody preserves a block whose type tag this version does not
// recognize. The raw body bytes are kept untouched so the block
// re-encodes byte-for-byte, letting older decoders pass newer payloads
// through losslessly.
//
// Renderers skip unknown blocks unless a caller opts them in.
type UnknownBody struct {
	TypeID format.BlockType
	Raw    []byte
}

var _ Body = UnknownBody{}

// BlockType returns the preserved wire tag.
func (b UnknownBody) BlockType() format.BlockType {
	return b.TypeID
}

// EncodeBody returns the preserved raw bytes as-is.
func (b UnknownBody) EncodeBody() []byte {
	return b.Raw
}
