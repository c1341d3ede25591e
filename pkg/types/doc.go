// Package types defines the public identifiers and the typed error model
// shared by every blockkit package.
//
// Errors carry a stable ErrKind so callers can branch on intent rather
// than text. Sentinels cover the recoverable and unrecoverable failure
// categories of the container core; use errors.Is against the sentinels
// or unwrap to the *Error for the kind.
package types
