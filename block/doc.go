// Package block implements the container substrate: a fixed-layout
// descriptor over a contiguous, refcounted element region, plus the
// typed and erased vector views built directly on it.
//
// Every container in the module shares the Block header. A typed vector
// TVec[T] and the erased Vec are struct-identical wrappers over one
// Block, so a typed container reinterprets as an erased one (and back,
// after a runtime type check) without copying.
//
// Values cross ownership boundaries under one of six intents: refer,
// move, copy, clone, disown, abandon. Constructors and assigners take an
// Intended source; insertion takes an Intent where the default shallow
// copy is not wanted. All element lifecycle work is delegated to the
// element type's rtti descriptor.
package block
