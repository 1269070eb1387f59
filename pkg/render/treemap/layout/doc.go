// Package layout computes treemap rectangles for a [hierarchy.Tree].
//
// # Overview
//
// [Compute] assigns every node of the tree a [Rect] inside a fixed
// width × height plotting area. The root covers the whole area; each internal
// node's rectangle is partitioned among its children, in their sorted order,
// with areas proportional to their aggregate values. Children partition the
// parent exactly: no gaps and no overlaps beyond floating point error.
//
// Only leaf rectangles become tiles, but ancestor rectangles are kept in the
// result because placement is recursive.
//
// # Tiling Strategies
//
//   - [Squarify] (default): rows of children chosen to keep aspect ratios
//     near the golden ratio, laid along the shorter side of the remaining area.
//   - [SliceDice]: alternates by depth; even depths split horizontally
//     (dice), odd depths split vertically (slice).
//   - [Slice]: always split vertically.
//   - [Dice]: always split horizontally.
//
// # Errors
//
// A tree whose total value is zero yields EMPTY_DATASET since area cannot be
// proportioned. Negative dimensions are INVALID_INPUT. Zero dimensions are
// allowed and produce zero-area rectangles.
//
// [hierarchy.Tree]: github.com/matzehuels/treemap/pkg/hierarchy.Tree
package layout
