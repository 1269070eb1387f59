// Package hierarchy turns a raw dataset document into a weighted tree.
//
// # Arena Layout
//
// A [Tree] stores its nodes in a flat slice addressed by index. Each [Node]
// records the index of its parent (-1 for the root) and the indices of its
// children, so walking to an ancestor is an indexed loop and there are no
// pointer cycles. Index 0 is always the root.
//
// # Aggregation
//
// [Build] computes each node's Value bottom-up: a leaf's own value, or the sum
// of its children's values for an internal node. Children are then ordered by
// descending Value with ties kept in input order (a stable sort). This order
// drives layout placement and tile numbering; it never changes node identity.
//
// [Build] returns a MALFORMED_TREE error when a node is neither a valid leaf
// (category and value, no children) nor a valid internal node (children, no
// value), or when a leaf value is negative.
//
// A Tree is immutable after construction.
package hierarchy
