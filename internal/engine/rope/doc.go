// Package rope implements an immutable, balanced B+ tree rope used as the
// storage for the rope buffer backend.
//
// Text lives in leaf chunks of at most MaxChunkSize bytes, always split on
// UTF-8 boundaries. Every node caches a Summary (bytes, line feeds and
// UTF-16 code units) of its subtree, so offset, line and UTF-16 queries
// descend the tree in O(log n). All leaves sit at the same depth.
//
// Ropes are values. Insert, Delete, Replace, Split and Concat return new
// ropes that share unchanged subtrees with the original, which makes
// snapshots free.
package rope
