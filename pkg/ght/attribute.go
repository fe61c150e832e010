package ght

// Attribute is a single dimension's packed value: the dimension it
// belongs to (by schema position) and its raw little-endian bit
// pattern, unscaled. Scale/offset are applied only on read (Value).
//
// The distilled spec describes a node's attributes as a singly linked
// chain. This implementation represents that chain as a []Attribute
// slice instead: the ordering and "at most one per dimension" invariant
// are identical, a slice is the idiomatic Go collection for an ordered,
// appendable sequence, and it sidesteps the original's hand-rolled
// next-pointer bookkeeping entirely. See DESIGN.md.
type Attribute struct {
	DimPosition uint8
	raw         uint64
}

// NewAttributeFromDouble packs a scaled value for dim into an
// Attribute, clamping integer overflow and reporting it through
// logger (see SPEC_FULL.md §4.2).
func NewAttributeFromDouble(dim Dimension, value float64, logger Logger) Attribute {
	return Attribute{DimPosition: dim.Position, raw: rawBitsFromDouble(dim, value, logger)}
}

// NewAttributeFromBytes builds an Attribute from width(dim.Type)
// little-endian bytes, as read off the wire.
func NewAttributeFromBytes(dim Dimension, b []byte) Attribute {
	var raw uint64
	for i, by := range b {
		raw |= uint64(by) << (8 * uint(i))
	}
	return Attribute{DimPosition: dim.Position, raw: raw}
}

// Bytes packs the attribute's raw value into width(dim.Type)
// little-endian bytes.
func (a Attribute) Bytes(dim Dimension) []byte {
	width := dim.Type.Width()
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = byte(a.raw >> (8 * uint(i)))
	}
	return out
}

// Value returns the scaled double value of the attribute given its
// dimension.
func (a Attribute) Value(dim Dimension) float64 {
	return scaledFromRawBits(dim, a.raw)
}

// SameValue reports whether a and b carry identical packed bytes for
// the same dimension — bit equality, not post-scale/offset equality,
// since the latter would be approximate (SPEC_FULL.md §4.4).
func (a Attribute) SameValue(b Attribute) bool {
	return a.DimPosition == b.DimPosition && a.raw == b.raw
}

// findAttribute returns the attribute for dimension position pos in
// attrs, if present.
func findAttribute(attrs []Attribute, pos uint8) (Attribute, bool) {
	for _, a := range attrs {
		if a.DimPosition == pos {
			return a, true
		}
	}
	return Attribute{}, false
}

// withAttribute returns a copy of attrs with attr set, replacing any
// existing entry for the same dimension (enforcing "at most one
// attribute per dimension per node").
func withAttribute(attrs []Attribute, attr Attribute) []Attribute {
	out := make([]Attribute, 0, len(attrs)+1)
	replaced := false
	for _, a := range attrs {
		if a.DimPosition == attr.DimPosition {
			out = append(out, attr)
			replaced = true
		} else {
			out = append(out, a)
		}
	}
	if !replaced {
		out = append(out, attr)
	}
	return out
}

// withoutAttribute returns a copy of attrs with the entry for
// dimension position pos removed, if present.
func withoutAttribute(attrs []Attribute, pos uint8) []Attribute {
	out := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.DimPosition != pos {
			out = append(out, a)
		}
	}
	return out
}

// AttributeUnion merges two attribute chains: every entry of a is
// kept, and entries of b are appended only for dimensions not already
// present in a. AttributeUnion(a, nil) == a. Applied repeatedly across
// an ordered sequence of chains it is associative up to dimension-set
// equality: the surviving value for each dimension is always the one
// from the earliest chain in the sequence that carries it.
func AttributeUnion(a, b []Attribute) []Attribute {
	out := make([]Attribute, len(a), len(a)+len(b))
	copy(out, a)
	for _, attr := range b {
		if _, ok := findAttribute(a, attr.DimPosition); !ok {
			out = append(out, attr)
		}
	}
	return out
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out
}
