// Package format defines the binary wire layout of a serialized block and
// the little-endian encoding helpers used to read and write it.
//
// The wire form of a block is:
//
//	Offset  Size  Description
//	0x00    2     Type token length L (0 for an untyped empty block)
//	0x02    L     Type token, UTF-8
//	...     4     State flags
//	...     8     Element count
//	...     ...   Element payload, per-type encoding
//
// All integers are little-endian. Element payloads are defined by the
// element type's descriptor: fixed-width for POD types, length-prefixed
// for text and byte strings, and recursively nested for deep blocks.
package format
