// Package domain holds the shared data contracts of the indexing and
// retrieval pipeline: fragments, the restricted chunk metadata shape,
// reconstructed query results and the transport-agnostic API shapes.
package domain
