package ght

import (
	"io"

	"github.com/chasqui/libght/internal/geohash"
	"github.com/chasqui/libght/internal/wire"
)

// endianLE is the value written to Header.endian: this format is
// always little-endian regardless of host byte order, but the field
// is kept for forward compatibility with SPEC_FULL.md §4.7.
const endianLE = 0

// Write serializes the tree to w in the wire format of SPEC_FULL.md
// §4.7: Header, Schema, then the Root node depth-first.
func (t *Tree) Write(w io.Writer) error {
	if err := writeHeader(w); err != nil {
		return err
	}
	if err := writeSchema(w, t.Schema); err != nil {
		return err
	}
	return writeNode(w, t.Root, t.Schema)
}

func writeHeader(w io.Writer) error {
	if err := wire.WriteBytes(w, wire.Magic[:]); err != nil {
		return err
	}
	if err := wire.WriteU8(w, wire.Version); err != nil {
		return err
	}
	if err := wire.WriteU8(w, endianLE); err != nil {
		return err
	}
	if err := wire.WriteU8(w, 0); err != nil { // flags, always zero (SPEC_FULL.md §9)
		return err
	}
	return wire.WriteU8(w, 0) // reserved
}

func writeSchema(w io.Writer, schema Schema) error {
	dims := schema.Dimensions()
	if err := wire.WriteU16(w, uint16(len(dims))); err != nil {
		return err
	}
	for _, d := range dims {
		if err := writeDimension(w, d); err != nil {
			return err
		}
	}
	return nil
}

func writeDimension(w io.Writer, d Dimension) error {
	if err := wire.WriteU8(w, uint8(d.Type)); err != nil {
		return err
	}
	if err := wire.WriteF64(w, d.Scale); err != nil {
		return err
	}
	if err := wire.WriteF64(w, d.Offset); err != nil {
		return err
	}
	if err := wire.WriteLPString(w, d.Name); err != nil {
		return err
	}
	return wire.WriteLPString(w, d.Description)
}

func writeNode(w io.Writer, n *Node, schema Schema) error {
	if len(n.Fragment) > geohash.MaxLength {
		return &FormatError{Reason: "node hash fragment exceeds maximum hash length"}
	}
	if err := wire.WriteU8(w, uint8(len(n.Fragment))); err != nil {
		return err
	}
	if err := wire.WriteBytes(w, []byte(n.Fragment)); err != nil {
		return err
	}

	if len(n.Attrs) > 255 {
		return &FormatError{Reason: "node carries more attributes than the wire format's u8 count permits"}
	}
	if err := wire.WriteU8(w, uint8(len(n.Attrs))); err != nil {
		return err
	}
	for _, a := range n.Attrs {
		if err := wire.WriteU8(w, a.DimPosition); err != nil {
			return err
		}
		dim, err := schema.DimensionByIndex(int(a.DimPosition))
		if err != nil {
			return &FormatError{Reason: "attribute references a dimension position outside the schema"}
		}
		if err := wire.WriteBytes(w, a.Bytes(dim)); err != nil {
			return err
		}
	}

	if len(n.Children) > 255 {
		return &FormatError{Reason: "node has more children than the wire format's u8 count permits"}
	}
	if err := wire.WriteU8(w, uint8(len(n.Children))); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := writeNode(w, child, schema); err != nil {
			return err
		}
	}
	return nil
}

// ReadTree deserializes a tree from r in the wire format of
// SPEC_FULL.md §4.7, rejecting a mismatched magic, unsupported
// version, over-length hash, out-of-range dimension reference, or
// truncated input.
func ReadTree(r io.Reader, cfg Config) (*Tree, error) {
	if err := readHeader(r); err != nil {
		return nil, err
	}
	schema, err := readSchema(r)
	if err != nil {
		return nil, err
	}
	root, count, err := readNode(r, schema)
	if err != nil {
		return nil, err
	}
	return &Tree{Schema: schema, Root: root, NumPoints: count, Config: cfg}, nil
}

func readHeader(r io.Reader) error {
	magic, err := wire.ReadBytes(r, len(wire.Magic))
	if err != nil {
		return err
	}
	for i, b := range wire.Magic {
		if magic[i] != b {
			return &FormatError{Reason: "bad magic bytes"}
		}
	}
	version, err := wire.ReadU8(r)
	if err != nil {
		return err
	}
	if version != wire.Version {
		return &FormatError{Reason: "unsupported wire format version"}
	}
	if _, err := wire.ReadU8(r); err != nil { // endian
		return err
	}
	if _, err := wire.ReadU8(r); err != nil { // flags
		return err
	}
	if _, err := wire.ReadU8(r); err != nil { // reserved
		return err
	}
	return nil
}

func readSchema(r io.Reader) (Schema, error) {
	numDims, err := wire.ReadU16(r)
	if err != nil {
		return Schema{}, err
	}
	dims := make([]Dimension, numDims)
	for i := range dims {
		d, err := readDimension(r, uint8(i))
		if err != nil {
			return Schema{}, err
		}
		dims[i] = d
	}
	schema, err := NewSchema(dims)
	if err != nil {
		return Schema{}, err
	}
	return schema, nil
}

func readDimension(r io.Reader, position uint8) (Dimension, error) {
	typeByte, err := wire.ReadU8(r)
	if err != nil {
		return Dimension{}, err
	}
	scale, err := wire.ReadF64(r)
	if err != nil {
		return Dimension{}, err
	}
	offset, err := wire.ReadF64(r)
	if err != nil {
		return Dimension{}, err
	}
	name, err := wire.ReadLPString(r)
	if err != nil {
		return Dimension{}, err
	}
	desc, err := wire.ReadLPString(r)
	if err != nil {
		return Dimension{}, err
	}
	return Dimension{
		Position:    position,
		Name:        name,
		Description: desc,
		Type:        Type(typeByte),
		Scale:       scale,
		Offset:      offset,
	}, nil
}

func readNode(r io.Reader, schema Schema) (*Node, int, error) {
	hashLen, err := wire.ReadU8(r)
	if err != nil {
		return nil, 0, err
	}
	if int(hashLen) > geohash.MaxLength {
		return nil, 0, &FormatError{Reason: "node hash fragment exceeds maximum hash length"}
	}
	hashBytes, err := wire.ReadBytes(r, int(hashLen))
	if err != nil {
		return nil, 0, err
	}

	attrCount, err := wire.ReadU8(r)
	if err != nil {
		return nil, 0, err
	}
	attrs := make([]Attribute, attrCount)
	for i := range attrs {
		pos, err := wire.ReadU8(r)
		if err != nil {
			return nil, 0, err
		}
		if int(pos) >= schema.NumDimensions() {
			return nil, 0, &FormatError{Reason: "attribute references a dimension position outside the schema"}
		}
		dim, _ := schema.DimensionByIndex(int(pos))
		raw, err := wire.ReadBytes(r, dim.Type.Width())
		if err != nil {
			return nil, 0, err
		}
		attrs[i] = NewAttributeFromBytes(dim, raw)
	}

	childCount, err := wire.ReadU8(r)
	if err != nil {
		return nil, 0, err
	}
	n := &Node{Fragment: geohash.Hash(hashBytes), Attrs: attrs}
	if childCount == 0 {
		return n, 1, nil
	}
	n.Children = make([]*Node, childCount)
	total := 0
	for i := range n.Children {
		child, count, err := readNode(r, schema)
		if err != nil {
			return nil, 0, err
		}
		n.Children[i] = child
		total += count
	}
	return n, total, nil
}

// WriteFile serializes the tree to a plain file at path, truncating
// any existing contents.
func (t *Tree) WriteFile(path string) error {
	f, err := wire.OpenFileWriter(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Write(f)
}

// ReadTreeFile deserializes a tree from a plain file previously
// written by WriteFile.
func ReadTreeFile(path string, cfg Config) (*Tree, error) {
	f, err := wire.OpenFileReader(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTree(f, cfg)
}

// WriteArchive serializes the tree to a snappy-compressed ".ghtz"
// archive at path (SPEC_FULL.md §4.7 EXPANSION). The encoded bytes are
// identical to WriteFile's; only the on-disk representation differs.
func (t *Tree) WriteArchive(path string) error {
	f, err := wire.OpenCompressedFileWriter(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Write(f)
}

// ReadTreeArchive deserializes a tree from a ".ghtz" archive previously
// written by WriteArchive.
func ReadTreeArchive(path string, cfg Config) (*Tree, error) {
	f, err := wire.OpenCompressedFileReader(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTree(f, cfg)
}
