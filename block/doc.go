// Package block defines the typed BCP block model: the eleven semantic
// block types, the END sentinel, and the Unknown catch-all that
// preserves unrecognized block types byte-for-byte.
//
// Each type implements the Body interface with a TLV body encoder; the
// package-level DecodeBody dispatches a raw body to the right decoder
// based on the block's wire tag. Unknown field IDs inside a known block
// are skipped via their wire type, so bodies from newer encoders decode
// cleanly.
//
// A Block combines a body with its wire flags and optional summary.
// Blocks are value types: the encoder consumes them during payload
// assembly and the decoder produces an owned slice of them.
package block
