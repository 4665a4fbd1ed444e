// Package cppon implements an in-memory JSON-family document engine.
//
// It parses JSON text into a tagged-union Value tree that, where
// possible, references the input buffer by view rather than by copy
// (zero-copy strings, lazy numbers), supports random navigation and
// mutation through slash-delimited paths, and re-serializes with
// configurable layout. Beyond standard JSON, the model carries three
// first-class extension kinds: binary blobs (raw and Base64-encoded),
// typed paths (symbolic intra-document references), and direct
// pointers (non-owning references to another Value in the same tree).
//
// A Document owns the source text together with the parsed root Value
// and guarantees that every view-bearing node stays valid for as long
// as the Document's buffer is unchanged. Rematerialize re-prints the
// current tree and re-parses it, re-anchoring all views onto the fresh
// buffer.
package cppon
