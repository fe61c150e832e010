package ght

import (
	"github.com/chasqui/libght/internal/geohash"
)

// Node is a single node of the hash-prefix tree: a hash fragment, an
// ordered list of children (empty for a leaf), and the attribute chain
// attached at this node.
//
// Go's garbage collector owns node-graph teardown; there is no manual
// free path (contrast the original's ght_node_free). Every traversal
// below is plain recursion rather than the explicit-stack iterative
// walk SPEC_FULL.md's Design Notes flag as preferable for deep manual
// teardown: recursion depth here is bounded by geohash.MaxLength (20),
// which is nowhere near Go's default goroutine stack limit, so the
// safety concern that note raises does not apply to a GC'd language.
type Node struct {
	Fragment geohash.Hash
	Children []*Node
	Attrs    []Attribute
}

// NewLeaf builds a single-node (leaf) tree for one point's full-
// resolution hash and attribute values.
func NewLeaf(hash geohash.Hash, attrs []Attribute) *Node {
	return &Node{Fragment: hash, Attrs: cloneAttributes(attrs)}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// insert merges newNode into the subtree rooted at n, per
// SPEC_FULL.md §4.3. n is mutated in place to become the (possibly
// restructured) root of the merged subtree; on error, n is left
// exactly as it was, and newNode is not reachable from it.
//
// A node with an empty fragment and no children is the sentinel
// "virgin" state a tree starts in before its first insert: there is no
// hash-relation to compute yet, so the first point is absorbed
// directly into n rather than routed through Match.
//
// When n's fragment and newNode's share no first character
// (geohash.MatchNone, reachable only at the top node), n is split as at
// a common prefix of length zero: its fragment becomes empty, making it
// a global root whose children geohash.MatchGlobal dispatches on by
// first character.
//
// geohash.MatchChild is symmetric: either fragment can be the proper
// prefix of the other. That arises whenever a tree mixes insertion
// resolutions, since Tree.Insert takes resolution per call. Both
// directions are handled below; the reverse direction inserts
// newNode's data one tree level higher than n's current position,
// pushing n's old subtree down a level rather than rejecting the
// insert.
func insert(n *Node, newNode *Node, dup Duplicates, logger Logger) error {
	if n.Fragment == "" && len(n.Children) == 0 {
		if newNode.Fragment == "" {
			return &InvariantError{Detail: "insert: cannot insert a node with an empty hash fragment"}
		}
		n.Fragment = newNode.Fragment
		n.Children = newNode.Children
		n.Attrs = newNode.Attrs
		return nil
	}

	class, aTail, bTail := geohash.Match(n.Fragment, newNode.Fragment, geohash.MaxLength)

	switch class {
	case geohash.MatchSame:
		if dup == DuplicatesReject {
			return &DuplicateError{Hash: string(n.Fragment)}
		}
		n.Attrs = AttributeUnion(n.Attrs, newNode.Attrs)
		return nil

	case geohash.MatchGlobal:
		if newNode.Fragment == "" {
			return &InvariantError{Detail: "insert: cannot insert a node with an empty hash fragment"}
		}
		for _, child := range n.Children {
			if child.Fragment[0] == newNode.Fragment[0] {
				return insert(child, newNode, dup, logger)
			}
		}
		n.Children = append(n.Children, newNode)
		return nil

	case geohash.MatchChild:
		if aTail == "" {
			// n's fragment is a proper prefix of newNode's: descend
			// further, dispatching on the next character.
			shrunk := &Node{Fragment: bTail, Children: newNode.Children, Attrs: newNode.Attrs}
			for _, child := range n.Children {
				if child.Fragment[0] == shrunk.Fragment[0] {
					return insert(child, shrunk, dup, logger)
				}
			}
			n.Children = append(n.Children, shrunk)
			return nil
		}
		// Symmetric direction: newNode's fragment is a proper prefix of
		// n's, which arises whenever a tree mixes insertion
		// resolutions. n's old identity (fragment, children, attrs)
		// continues one level deeper under the remaining aTail, and
		// newNode's own data takes over n's former position.
		continuation := &Node{Fragment: aTail, Children: n.Children, Attrs: n.Attrs}
		n.Fragment = n.Fragment[:len(n.Fragment)-len(aTail)]
		n.Children = []*Node{continuation}
		n.Attrs = newNode.Attrs
		for _, nc := range newNode.Children {
			if nc.Fragment[0] == continuation.Fragment[0] {
				if err := insert(continuation, nc, dup, logger); err != nil {
					return err
				}
				continue
			}
			n.Children = append(n.Children, nc)
		}
		return nil

	case geohash.MatchSplit, geohash.MatchNone:
		intermediate := &Node{Fragment: aTail, Children: n.Children, Attrs: n.Attrs}
		shrunkNew := &Node{Fragment: bTail, Children: newNode.Children, Attrs: newNode.Attrs}
		n.Fragment = n.Fragment[:len(n.Fragment)-len(aTail)]
		n.Children = []*Node{intermediate, shrunkNew}
		n.Attrs = nil
		return nil

	default:
		return &InvariantError{Detail: "insert: unknown hash match class"}
	}
}

// compactDim lifts the value of dimension pos to n iff every
// descendant leaf of n carries that dimension with an identical packed
// value, per SPEC_FULL.md §4.4. It returns the lifted value and true
// if n now carries (or already carried) a uniform value for pos.
func compactDim(n *Node, pos uint8) (Attribute, bool) {
	if n.IsLeaf() {
		return findAttribute(n.Attrs, pos)
	}

	// If n already carries pos, the insert/split invariant guarantees
	// no descendant also carries it: nothing left to do.
	if a, ok := findAttribute(n.Attrs, pos); ok {
		return a, true
	}

	var common Attribute
	first := true
	allSame := true
	anyChild := false
	for _, child := range n.Children {
		v, ok := compactDim(child, pos)
		if !ok {
			allSame = false
			continue
		}
		anyChild = true
		if first {
			common = v
			first = false
		} else if !v.SameValue(common) {
			allSame = false
		}
	}

	if !anyChild || !allSame {
		return Attribute{}, false
	}

	for _, child := range n.Children {
		clearAttributeRecursive(child, pos)
	}
	n.Attrs = withAttribute(n.Attrs, common)
	return common, true
}

// clearAttributeRecursive removes the attribute for dimension pos from
// n and, if n did not itself carry it, from its descendants. By the
// same invariant compactDim relies on, an internal node carrying pos
// means no descendant does, so recursion stops as soon as pos is
// found.
func clearAttributeRecursive(n *Node, pos uint8) {
	if _, ok := findAttribute(n.Attrs, pos); ok {
		n.Attrs = withoutAttribute(n.Attrs, pos)
		return
	}
	for _, child := range n.Children {
		clearAttributeRecursive(child, pos)
	}
}

// extent recursively computes the bounding area of every leaf under n,
// given the hash accumulated from the root down to (but not including)
// n's own fragment.
func extent(n *Node, inheritedHash geohash.Hash) (geohash.Area, error) {
	full := inheritedHash + n.Fragment
	if n.IsLeaf() {
		return geohash.DecodeArea(full)
	}
	var result geohash.Area
	first := true
	for _, child := range n.Children {
		a, err := extent(child, full)
		if err != nil {
			return geohash.Area{}, err
		}
		if first {
			result = a
			first = false
		} else {
			result = result.Union(a)
		}
	}
	return result, nil
}

// LeafRecord is one entry of a tree flattened by ToNodeList: a leaf's
// full-resolution hash paired with every attribute that applies to it
// (its own, plus everything compacted onto its ancestors).
type LeafRecord struct {
	Hash  geohash.Hash
	Attrs []Attribute
}

// toNodeList performs the depth-first, left-to-right traversal
// described in SPEC_FULL.md §4.6, appending one LeafRecord per leaf to
// out.
func toNodeList(n *Node, inheritedHash geohash.Hash, inheritedAttrs []Attribute, out *[]LeafRecord) {
	full := inheritedHash + n.Fragment
	allAttrs := AttributeUnion(n.Attrs, inheritedAttrs)
	if n.IsLeaf() {
		*out = append(*out, LeafRecord{Hash: full, Attrs: cloneAttributes(allAttrs)})
		return
	}
	for _, child := range n.Children {
		toNodeList(child, full, allAttrs, out)
	}
}

// countLeaves returns the number of leaves under n (n included if n is
// a leaf).
func countLeaves(n *Node) int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, child := range n.Children {
		total += countLeaves(child)
	}
	return total
}

// filterNode implements the predicate filter of SPEC_FULL.md §4.5. It
// returns the filtered subtree and whether anything survived.
func filterNode(n *Node, f Filter, parentAttrs []Attribute) (*Node, bool) {
	inherited := AttributeUnion(n.Attrs, parentAttrs)

	if n.IsLeaf() {
		a, ok := findAttribute(inherited, f.DimPosition)
		if !ok {
			return nil, false
		}
		if !f.accepts(a.Value(f.dim)) {
			return nil, false
		}
		// The clone carries the leaf's own original attribute chain,
		// not the inherited one: any value compacted onto a pruned
		// ancestor is intentionally not reconstructed here. See
		// SPEC_FULL.md §4.5 and DESIGN.md.
		return &Node{Fragment: n.Fragment, Attrs: cloneAttributes(n.Attrs)}, true
	}

	survivors := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if fc, ok := filterNode(child, f, inherited); ok {
			survivors = append(survivors, fc)
		}
	}

	switch len(survivors) {
	case 0:
		return nil, false
	case 1:
		merged := survivors[0]
		merged.Fragment = n.Fragment + merged.Fragment
		merged.Attrs = AttributeUnion(merged.Attrs, cloneAttributes(n.Attrs))
		return merged, true
	default:
		return &Node{Fragment: n.Fragment, Children: survivors, Attrs: cloneAttributes(n.Attrs)}, true
	}
}
