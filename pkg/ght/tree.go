package ght

import "github.com/chasqui/libght/internal/geohash"

// Tree is a hash-prefix tree over points sharing a Schema: the root
// node, a running point count, and the Config it was built with.
type Tree struct {
	Schema    Schema
	Root      *Node
	NumPoints int
	Config    Config
}

// NewTree builds an empty tree over schema with the given
// configuration. A zero Config is equivalent to DefaultConfig.
func NewTree(schema Schema, cfg Config) *Tree {
	return &Tree{
		Schema: schema,
		Root:   &Node{},
		Config: cfg,
	}
}

// Insert adds one point to the tree: coord is hashed at resolution
// (1..geohash.MaxLength), and values holds one scaled double per
// non-hash dimension, in schema order starting at index 2.
//
// Duplicate policy is governed by t.Config.Duplicates. On a rejected
// duplicate, the tree is left unchanged.
func (t *Tree) Insert(coord geohash.Coordinate, resolution int, values []float64) error {
	hash, err := geohash.Encode(coord, resolution)
	if err != nil {
		return err
	}

	dims := t.Schema.Dimensions()
	payload := dims[2:]
	if len(values) != len(payload) {
		return &InvariantError{Detail: "insert: value count does not match schema's non-hash dimension count"}
	}

	attrs := make([]Attribute, len(payload))
	for i, dim := range payload {
		attrs[i] = NewAttributeFromDouble(dim, values[i], t.Config.logger())
	}

	leaf := NewLeaf(hash, attrs)
	if err := insert(t.Root, leaf, t.Config.Duplicates, t.Config.logger()); err != nil {
		return err
	}
	t.NumPoints++
	return nil
}

// CompactAttributes lifts every non-hash dimension's value as high up
// the tree as it will uniformly go, per SPEC_FULL.md §4.4. Idempotent:
// calling it again on an already-compacted tree changes nothing.
func (t *Tree) CompactAttributes() {
	for _, dim := range t.Schema.Dimensions()[2:] {
		compactDim(t.Root, dim.Position)
	}
}

// Extent returns the bounding area of every point in the tree. It
// returns an error only if the tree is empty or a stored hash fails to
// decode, which should not happen for a tree built solely through
// Insert.
func (t *Tree) Extent() (geohash.Area, error) {
	if t.NumPoints == 0 {
		return geohash.Area{}, &InvariantError{Detail: "extent: tree has no points"}
	}
	return extent(t.Root, "")
}

// Filter returns a new tree containing only the points that satisfy f,
// sharing t's schema and config. The returned tree is independent of
// t: nothing is shared between their node graphs.
func (t *Tree) Filter(f Filter) *Tree {
	filtered := &Tree{Schema: t.Schema, Config: t.Config}
	root, ok := filterNode(t.Root, f, nil)
	if !ok {
		filtered.Root = &Node{}
		return filtered
	}
	// A tree's root may legitimately carry a non-empty fragment (the
	// prefix common to every point it holds), so whatever filterNode
	// returns for the true root becomes the filtered tree's root as is.
	filtered.Root = root
	filtered.NumPoints = countLeaves(root)
	return filtered
}

// FilterGreaterThan, FilterLessThan, FilterBetween and FilterEqual are
// convenience wrappers around Filter for the four predicate modes.
func (t *Tree) FilterGreaterThan(dim Dimension, v float64) *Tree {
	return t.Filter(NewFilter(dim, PredGreaterThan, v, 0))
}

func (t *Tree) FilterLessThan(dim Dimension, v float64) *Tree {
	return t.Filter(NewFilter(dim, PredLessThan, v, 0))
}

func (t *Tree) FilterBetween(dim Dimension, lo, hi float64) *Tree {
	return t.Filter(NewFilter(dim, PredBetween, lo, hi))
}

func (t *Tree) FilterEqual(dim Dimension, v float64) *Tree {
	return t.Filter(NewFilter(dim, PredEqual, v, 0))
}

// ToNodeList flattens the tree into its depth-first leaf sequence.
func (t *Tree) ToNodeList() NodeList {
	var records []LeafRecord
	toNodeList(t.Root, "", nil, &records)
	return NodeList{Schema: t.Schema, Records: records}
}

// TreeFromNodeList rebuilds a tree from a flattened node list. When
// len(nl.Records) is at least cfg.BulkLoadThreshold, records are
// reordered with an R-tree for insertion locality before being
// inserted one at a time under cfg.Duplicates (SPEC_FULL.md §4.8.1).
// The rebuilt tree holds the same points under the same hash prefixes,
// but sibling order follows insertion order, so its ToNodeList order can
// differ from the source list's.
func TreeFromNodeList(nl NodeList, cfg Config) (*Tree, error) {
	t := NewTree(nl.Schema, cfg)
	ordered := bulkOrder(nl.Records, cfg.BulkLoadThreshold)
	for _, rec := range ordered {
		leaf := &Node{Fragment: rec.Hash, Attrs: cloneAttributes(rec.Attrs)}
		if err := insert(t.Root, leaf, cfg.Duplicates, cfg.logger()); err != nil {
			return nil, err
		}
		t.NumPoints++
	}
	return t, nil
}

// AttributeStats summarizes the min/max scaled value observed for one
// dimension across every point currently in the tree. It is a
// supplemental read made cheap by the same depth-first traversal
// ToNodeList uses; it does not require the tree to be compacted first.
type AttributeStats struct {
	Dimension Dimension
	Min, Max  float64
	Count     int
}

// Stats computes AttributeStats for the named dimension.
func (t *Tree) Stats(dimName string) (AttributeStats, error) {
	dim, err := t.Schema.DimensionByName(dimName)
	if err != nil {
		return AttributeStats{}, err
	}

	var records []LeafRecord
	toNodeList(t.Root, "", nil, &records)

	stats := AttributeStats{Dimension: dim}
	first := true
	for _, rec := range records {
		a, ok := findAttribute(rec.Attrs, dim.Position)
		if !ok {
			continue
		}
		v := a.Value(dim)
		if first {
			stats.Min, stats.Max = v, v
			first = false
		} else {
			if v < stats.Min {
				stats.Min = v
			}
			if v > stats.Max {
				stats.Max = v
			}
		}
		stats.Count++
	}
	return stats, nil
}
