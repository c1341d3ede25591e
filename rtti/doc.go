// Package rtti provides runtime type descriptors for the container core.
//
// A Type is an immutable record of an element type's layout (stride,
// alignment), capability flags, and lifecycle operations. Descriptors are
// the only mechanism by which containers touch elements: construction,
// copying, cloning, moving, destruction, hashing, equality, and the
// binary wire encoding all go through the descriptor's operation table.
//
// Descriptors compare by identity. The process-wide registry hands them
// out by Go type (Of, OfValue) or by human-readable token (ByToken); it
// initializes lazily on first request and is never torn down.
//
// Element storage is typed slot storage: a []T slice held erased, with
// every operation taking slot indices. Operations are monomorphized
// closures built once at registration, so per-element work on dense
// types costs one type assertion and no reflection; sparse slots reach
// their pointees through reflect.
package rtti
