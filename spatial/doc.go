// Package spatial provides an SQLite R-tree index over detected
// elements for range queries and proximity lookups.
//
// The index stores each element's review metadata in a plain table and
// its bounding box in an R-tree virtual table sharing the same rowid.
// It is a post-detection lookup structure; the detection pipelines
// themselves never depend on it.
package spatial
