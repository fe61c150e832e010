// Package ght organizes large point clouds into a compact,
// disk-serializable hash-prefix tree keyed by geohash-style spatial
// hashing. Points are inserted one at a time or in bulk from a flat
// node list; per-dimension attribute values that turn out to be
// uniform across a whole subtree can be lifted ("compacted") onto the
// subtree's root, and filter queries produce new, independent
// sub-trees restricted to a predicate over one dimension.
package ght
