package block

import "github.com/nicholasgalante1997/bcp/format"

// EndBody is the END sentinel. It has no fields; its presence on the
// wire is signaled by the 0xFF type tag alone, and its frame carries
// zero flags and a zero length.
type EndBody struct{}

var _ Body = EndBody{}

// BlockType returns format.BlockEnd.
func (EndBody) BlockType() format.BlockType {
	return format.BlockEnd
}

// EncodeBody returns an empty body; the END frame has no content.
func (EndBody) EncodeBody() []byte {
	return nil
}
