// Package wire implements the low-level BCP wire primitives: unsigned
// LEB128 varints, the fixed 8-byte payload header, the tag-length-value
// field codec used inside block bodies, and the block frame envelope.
//
// Everything in this package operates on byte slices with explicit
// cursors and does no I/O. Higher layers (block, payload) compose these
// primitives into typed blocks and whole payloads.
package wire
