package geohash

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// decodeCacheSize bounds the memoized Hash -> Area decodes. A single
// full-depth traversal of a tree re-decodes every ancestor prefix of
// every leaf; this is sized generously enough that a typical tree's
// traversal stays resident without eviction churn.
const decodeCacheSize = 4096

// decodeCache memoizes DecodeArea. It is safe for concurrent use:
// golang-lru/v2's Cache guards its own state with an internal mutex, so
// building multiple trees concurrently (see SPEC_FULL.md §5) shares one
// cache without extra synchronization here.
var decodeCache, _ = lru.New[Hash, Area](decodeCacheSize)

func decodeCacheGet(hash Hash) (Area, bool) {
	return decodeCache.Get(hash)
}

func decodeCachePut(hash Hash, area Area) {
	decodeCache.Add(hash, area)
}
