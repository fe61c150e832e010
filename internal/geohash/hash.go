// Package geohash implements the variable-length base-32 geohash codec
// used to key the hash-prefix tree: encoding a (longitude, latitude) pair
// into a hash string, decoding a hash back to the cell it names, and
// classifying how two hashes relate to each other (same cell, parent/
// child, diverging siblings, or unrelated).
package geohash

import (
	"fmt"
	"strings"
)

// base32Alphabet is the standard geohash base-32 alphabet. Index into it
// gives the 5-bit value encoded by each character.
const base32Alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// MaxLength is the longest hash this package will encode or accept on
// decode. Real-world trees bottom out well short of this; it exists to
// bound stack/allocation cost on read of untrusted input.
const MaxLength = 20

var base32Index [256]int8

func init() {
	for i := range base32Index {
		base32Index[i] = -1
	}
	for i := 0; i < len(base32Alphabet); i++ {
		base32Index[base32Alphabet[i]] = int8(i)
	}
}

// Hash is a geohash string: a sequence of characters drawn from
// base32Alphabet. The empty Hash is the reserved "global" root prefix
// that covers the whole coordinate domain.
type Hash string

// Coordinate is a (longitude, latitude) pair in degrees.
type Coordinate struct {
	X float64 // longitude, [-180, 180]
	Y float64 // latitude, [-90, 90]
}

// Area is an axis-aligned rectangle in coordinate space.
type Area struct {
	MinX, MinY, MaxX, MaxY float64
}

// Center returns the midpoint of the area.
func (a Area) Center() Coordinate {
	return Coordinate{X: (a.MinX + a.MaxX) / 2, Y: (a.MinY + a.MaxY) / 2}
}

// Union returns the smallest area containing both a and b.
func (a Area) Union(b Area) Area {
	return Area{
		MinX: minF(a.MinX, b.MinX),
		MinY: minF(a.MinY, b.MinY),
		MaxX: maxF(a.MaxX, b.MaxX),
		MaxY: maxF(a.MaxY, b.MaxY),
	}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// InvalidCoordinateError reports a coordinate outside the valid Earth
// bounds of [-180,180] x [-90,90].
type InvalidCoordinateError struct {
	X, Y float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("geohash: invalid coordinate x=%g y=%g (x must be within ±180, y within ±90)", e.X, e.Y)
}

// InvalidHashError reports a hash string that is too long or contains a
// character outside the base-32 alphabet.
type InvalidHashError struct {
	Hash   string
	Reason string
}

func (e *InvalidHashError) Error() string {
	return fmt.Sprintf("geohash: invalid hash %q: %s", e.Hash, e.Reason)
}

// Encode computes the geohash of coord at the given resolution
// (character length). It fails with *InvalidCoordinateError if the
// coordinate lies outside [-180,180] x [-90,90].
func Encode(coord Coordinate, resolution int) (Hash, error) {
	if coord.X < -180 || coord.X > 180 || coord.Y < -90 || coord.Y > 90 {
		return "", &InvalidCoordinateError{X: coord.X, Y: coord.Y}
	}
	if resolution <= 0 {
		return "", nil
	}
	if resolution > MaxLength {
		resolution = MaxLength
	}

	lonLo, lonHi := -180.0, 180.0
	latLo, latHi := -90.0, 90.0

	var out strings.Builder
	isEven := true
	bit := 0
	ch := 0

	for out.Len() < resolution {
		if isEven {
			mid := (lonLo + lonHi) / 2
			if coord.X >= mid {
				ch |= 1 << uint(4-bit)
				lonLo = mid
			} else {
				lonHi = mid
			}
		} else {
			mid := (latLo + latHi) / 2
			if coord.Y >= mid {
				ch |= 1 << uint(4-bit)
				latLo = mid
			} else {
				latHi = mid
			}
		}
		isEven = !isEven

		if bit < 4 {
			bit++
		} else {
			out.WriteByte(base32Alphabet[ch])
			bit = 0
			ch = 0
		}
	}

	return Hash(out.String()), nil
}

// DecodeArea returns the bounding cell represented by hash.
func DecodeArea(hash Hash) (Area, error) {
	if area, ok := decodeCacheGet(hash); ok {
		return area, nil
	}
	if err := validate(hash); err != nil {
		return Area{}, err
	}

	lonLo, lonHi := -180.0, 180.0
	latLo, latHi := -90.0, 90.0
	isEven := true

	for i := 0; i < len(hash); i++ {
		idx := base32Index[hash[i]]
		for b := 4; b >= 0; b-- {
			bitSet := (idx>>uint(b))&1 == 1
			if isEven {
				mid := (lonLo + lonHi) / 2
				if bitSet {
					lonLo = mid
				} else {
					lonHi = mid
				}
			} else {
				mid := (latLo + latHi) / 2
				if bitSet {
					latLo = mid
				} else {
					latHi = mid
				}
			}
			isEven = !isEven
		}
	}

	area := Area{MinX: lonLo, MinY: latLo, MaxX: lonHi, MaxY: latHi}
	decodeCachePut(hash, area)
	return area, nil
}

// DecodeCenter returns the midpoint of the cell represented by hash.
func DecodeCenter(hash Hash) (Coordinate, error) {
	area, err := DecodeArea(hash)
	if err != nil {
		return Coordinate{}, err
	}
	return area.Center(), nil
}

// validate rejects hashes that are too long or contain characters
// outside the base-32 alphabet. The empty hash is valid (it names the
// global root cell).
func validate(hash Hash) error {
	if len(hash) > MaxLength {
		return &InvalidHashError{Hash: string(hash), Reason: "exceeds maximum length"}
	}
	for i := 0; i < len(hash); i++ {
		if base32Index[hash[i]] < 0 {
			return &InvalidHashError{Hash: string(hash), Reason: fmt.Sprintf("character %q is not in the base-32 geohash alphabet", hash[i])}
		}
	}
	return nil
}

// Validate exposes validate for callers that need to check a hash
// without decoding it.
func Validate(hash Hash) error {
	return validate(hash)
}

// MatchClass classifies how two hash fragments relate to each other
// during insertion.
type MatchClass int

const (
	// MatchNone means the hashes diverge immediately: neither is a
	// prefix of the other and they don't share a first character.
	MatchNone MatchClass = iota
	// MatchGlobal means one of the two hashes is the empty "global"
	// root prefix.
	MatchGlobal
	// MatchSame means the hashes are identical.
	MatchSame
	// MatchChild means one hash is a proper prefix of the other.
	MatchChild
	// MatchSplit means the hashes share a non-empty proper prefix but
	// neither contains the other.
	MatchSplit
)

func (c MatchClass) String() string {
	switch c {
	case MatchNone:
		return "None"
	case MatchGlobal:
		return "Global"
	case MatchSame:
		return "Same"
	case MatchChild:
		return "Child"
	case MatchSplit:
		return "Split"
	default:
		return "Unknown"
	}
}

// CommonLength returns the length of the shared prefix of a and b,
// capped at maxLen. It returns -1 if the first characters of a and b
// differ and neither is empty, and 0 if either a or b is empty.
func CommonLength(a, b Hash, maxLen int) int {
	if a == "" || b == "" {
		return 0
	}
	if a[0] != b[0] {
		return -1
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if maxLen < n {
		n = maxLen
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Match classifies the relationship between hashes a and b and returns
// the suffix ("tail") of each beyond their common prefix.
//
//	a == "" or b == ""                  -> Global,  aTail=a,        bTail=b
//	a == b                               -> Same,    aTail="",       bTail=""
//	a is a proper prefix of b             -> Child,   aTail="",       bTail=b[len(a):]
//	b is a proper prefix of a             -> Child,   aTail=a[len(b):], bTail=""
//	a[0]==b[0], neither a prefix of other -> Split,   aTail=a[k:],    bTail=b[k:]
//	a[0]!=b[0]                            -> None,    aTail=a,        bTail=b
func Match(a, b Hash, maxLen int) (class MatchClass, aTail, bTail Hash) {
	if a == "" || b == "" {
		return MatchGlobal, a, b
	}
	if a == b {
		return MatchSame, "", ""
	}
	if strings.HasPrefix(string(b), string(a)) {
		return MatchChild, "", b[len(a):]
	}
	if strings.HasPrefix(string(a), string(b)) {
		return MatchChild, a[len(b):], ""
	}
	if a[0] != b[0] {
		return MatchNone, a, b
	}
	k := CommonLength(a, b, maxLen)
	if k < 0 {
		k = 0
	}
	return MatchSplit, a[k:], b[k:]
}
