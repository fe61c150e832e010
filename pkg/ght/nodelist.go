package ght

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/chasqui/libght/internal/geohash"
)

// NodeList is a flat, ordered sequence of leaf records: the
// serialization and bulk-rebuild form of a tree, produced by
// Tree.ToNodeList and consumed by TreeFromNodeList.
type NodeList struct {
	Schema  Schema
	Records []LeafRecord
}

// rtreeEntry adapts a LeafRecord's decoded hash cell (its Area) to
// rtreego.Spatial so it can be indexed, mirroring how the teacher
// wraps ChartEntry bounds for rtreego.Rtree.Insert.
type rtreeEntry struct {
	record LeafRecord
	area   geohash.Area
}

func (e rtreeEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.area.MinX, e.area.MinY}
	lengths := []float64{
		maxf(e.area.MaxX-e.area.MinX, 1e-9),
		maxf(e.area.MaxY-e.area.MinY, 1e-9),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// bulkOrder reorders records for insertion locality using an R-tree,
// per SPEC_FULL.md §4.8.1: nearby points end up adjacent in the
// sequence insert() walks, which keeps the prefix tree's working set
// of in-progress splits small during a bulk load. Below
// threshold, or if any record's hash fails to decode, records are
// returned unchanged.
func bulkOrder(records []LeafRecord, threshold int) []LeafRecord {
	if threshold <= 0 || len(records) < threshold {
		return records
	}

	entries := make([]rtreeEntry, len(records))
	for i, rec := range records {
		area, err := geohash.DecodeArea(rec.Hash)
		if err != nil {
			return records
		}
		entries[i] = rtreeEntry{record: rec, area: area}
	}

	tree := rtreego.NewTree(2, 25, 50)
	full := entries[0].area
	for i, e := range entries {
		tree.Insert(e)
		if i > 0 {
			full = full.Union(e.area)
		}
	}

	point := rtreego.Point{full.MinX, full.MinY}
	lengths := []float64{maxf(full.MaxX-full.MinX, 1e-9), maxf(full.MaxY-full.MinY, 1e-9)}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		return records
	}

	spatials := tree.SearchIntersect(rect)
	ordered := make([]LeafRecord, 0, len(spatials))
	for _, s := range spatials {
		ordered = append(ordered, s.(rtreeEntry).record)
	}
	return ordered
}

// SortByHash reorders the list's records lexicographically by hash.
// Depth-first nodelist order follows sibling (insertion) order instead,
// so sorting gives an order that does not depend on how a tree was
// built; primarily useful to compare a rebuilt tree against its source.
func (nl *NodeList) SortByHash() {
	sort.Slice(nl.Records, func(i, j int) bool {
		return nl.Records[i].Hash < nl.Records[j].Hash
	})
}
