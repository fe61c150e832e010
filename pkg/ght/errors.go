package ght

import (
	"fmt"

	"github.com/chasqui/libght/internal/geohash"
	"github.com/chasqui/libght/internal/wire"
)

// Kind classifies a failure into the closed error taxonomy every
// fallible operation in this package draws from.
type Kind int

const (
	// KindInvalidCoordinate means an X/Y pair fell outside Earth
	// bounds.
	KindInvalidCoordinate Kind = iota
	// KindInvalidHash means a hash contained a character outside the
	// base-32 alphabet, or exceeded the maximum length.
	KindInvalidHash
	// KindDuplicate means a duplicate leaf was rejected by the
	// tree's duplicates policy.
	KindDuplicate
	// KindNotFound means a dimension name or index was missing from
	// a schema.
	KindNotFound
	// KindSchema means a schema conflict: duplicate dimension name,
	// unknown type, or invalid scale/offset for the type.
	KindSchema
	// KindFormat means a binary or XML document failed to parse.
	KindFormat
	// KindIO means the underlying read or write failed.
	KindIO
	// KindInvalidHex means hex decoding failed: odd length or a
	// non-hex character.
	KindInvalidHex
	// KindInvariant means an internal invariant was violated; this
	// indicates a bug in this package, not bad input.
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCoordinate:
		return "InvalidCoordinate"
	case KindInvalidHash:
		return "InvalidHash"
	case KindDuplicate:
		return "Duplicate"
	case KindNotFound:
		return "NotFound"
	case KindSchema:
		return "Schema"
	case KindFormat:
		return "Format"
	case KindIO:
		return "IO"
	case KindInvalidHex:
		return "InvalidHex"
	case KindInvariant:
		return "Invariant"
	default:
		return "Unknown"
	}
}

// kinded is implemented by every error type this package returns,
// letting callers classify an error without string-matching its
// message.
type kinded interface {
	Kind() Kind
}

// ClassifyError returns the Kind of err, matching both this package's
// own error types and the lower-level geohash/wire errors it wraps.
// It returns KindInvariant for any error not recognized, since an
// unrecognized failure mode reaching the public API is itself a bug.
func ClassifyError(err error) Kind {
	if err == nil {
		return -1
	}
	if k, ok := err.(kinded); ok {
		return k.Kind()
	}
	switch err.(type) {
	case *geohash.InvalidCoordinateError:
		return KindInvalidCoordinate
	case *geohash.InvalidHashError:
		return KindInvalidHash
	case *wire.FormatError:
		return KindFormat
	case *wire.IOError:
		return KindIO
	default:
		return KindInvariant
	}
}

// DuplicateError reports a leaf rejected because its hash already
// exists in the tree and the duplicates policy is Reject.
type DuplicateError struct {
	Hash string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("ght: duplicate leaf at hash %q", e.Hash)
}
func (e *DuplicateError) Kind() Kind { return KindDuplicate }

// NotFoundError reports a dimension name or index missing from a
// schema.
type NotFoundError struct {
	Name  string
	Index int
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("ght: dimension %q not found in schema", e.Name)
	}
	return fmt.Sprintf("ght: dimension index %d not found in schema", e.Index)
}
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// SchemaError reports a schema conflict: a duplicate dimension name,
// an unknown type, or an invalid scale/offset pairing for the
// dimension's type. Multiple problems found while validating the same
// schema are aggregated (see NewSchema).
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("ght: schema error: %s", e.Reason)
}
func (e *SchemaError) Kind() Kind { return KindSchema }

// InvalidHexError reports a hex string of odd length or containing a
// non-hex character.
type InvalidHexError struct {
	Input string
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("ght: invalid hex string %q", e.Input)
}
func (e *InvalidHexError) Kind() Kind { return KindInvalidHex }

// InvariantError reports an internal invariant violation: a code path
// the design holds to be unreachable was reached. Seeing this means a
// bug in this package, not bad caller input.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("ght: internal invariant violated: %s", e.Detail)
}
func (e *InvariantError) Kind() Kind { return KindInvariant }

// FormatError reports a binary or XML document that failed to parse:
// bad magic, unsupported version, an over-length hash, an
// out-of-range dimension reference, or truncated input.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("ght: format error: %s", e.Reason)
}
func (e *FormatError) Kind() Kind { return KindFormat }
