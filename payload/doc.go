// Package payload assembles and parses whole BCP payloads.
//
// Three types cover the producer/consumer boundary:
//
//   - Encoder: a builder that accumulates pending blocks and emits a
//     complete payload (header, frames, END sentinel) with optional
//     per-block compression, whole-payload compression, and BLAKE3
//     content addressing.
//   - Decode / DecodeWithStore: the buffered decoder, parsing a
//     complete byte slice into a header plus an ordered block list.
//   - StreamDecoder: a pull-driven incremental decoder over an
//     io.Reader, producing a header event followed by block events.
//
// The encoder and the two decoders are driven by the same wire
// primitives, so for a fixed builder-call sequence and content-store
// state the encode output is byte-identical across runs, and decoding
// then re-encoding a payload reproduces it exactly.
package payload
