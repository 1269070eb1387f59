package layout

import "math"

// Tiling names accepted by [ParseTiling].
const (
	Squarify  = "squarify"
	SliceDice = "slice-dice"
	Slice     = "slice"
	Dice      = "dice"
)

// Tilings lists the supported tiling names.
var Tilings = []string{Squarify, SliceDice, Slice, Dice}

// Tiler partitions r among children with the given values. The returned
// slice has one rectangle per value, in the same order. depth is the depth
// of the parent node.
type Tiler interface {
	Tile(depth int, values []float64, r Rect) []Rect
}

// TilerFunc adapts a function to the [Tiler] interface.
type TilerFunc func(depth int, values []float64, r Rect) []Rect

// Tile calls f.
func (f TilerFunc) Tile(depth int, values []float64, r Rect) []Rect { return f(depth, values, r) }

// phi is the target aspect ratio used by squarify.
var phi = (1 + math.Sqrt(5)) / 2

var tilers = map[string]Tiler{
	Squarify: TilerFunc(func(_ int, values []float64, r Rect) []Rect {
		return squarify(phi, values, r)
	}),
	SliceDice: TilerFunc(func(depth int, values []float64, r Rect) []Rect {
		if depth&1 == 1 {
			return slice(values, sum(values), r)
		}
		return dice(values, sum(values), r)
	}),
	Slice: TilerFunc(func(_ int, values []float64, r Rect) []Rect {
		return slice(values, sum(values), r)
	}),
	Dice: TilerFunc(func(_ int, values []float64, r Rect) []Rect {
		return dice(values, sum(values), r)
	}),
}

// ParseTiling returns the Tiler registered under name.
func ParseTiling(name string) (Tiler, bool) {
	t, ok := tilers[name]
	return t, ok
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// dice splits r horizontally: each child spans the full height.
func dice(values []float64, total float64, r Rect) []Rect {
	out := make([]Rect, len(values))
	var k float64
	if total > 0 {
		k = r.Width() / total
	}
	x := r.X0
	for i, v := range values {
		next := min(max(x+v*k, x), r.X1)
		if i == len(values)-1 && k > 0 {
			next = r.X1
		}
		out[i] = Rect{X0: x, Y0: r.Y0, X1: next, Y1: r.Y1}
		x = next
	}
	return out
}

// slice splits r vertically: each child spans the full width.
func slice(values []float64, total float64, r Rect) []Rect {
	out := make([]Rect, len(values))
	var k float64
	if total > 0 {
		k = r.Height() / total
	}
	y := r.Y0
	for i, v := range values {
		next := min(max(y+v*k, y), r.Y1)
		if i == len(values)-1 && k > 0 {
			next = r.Y1
		}
		out[i] = Rect{X0: r.X0, Y0: y, X1: r.X1, Y1: next}
		y = next
	}
	return out
}

// squarify lays values out in rows, adding children to the current row while
// the worst aspect ratio in it does not get worse than the target ratio.
// Rows run along the shorter side of the remaining area.
func squarify(ratio float64, values []float64, r Rect) []Rect {
	total := sum(values)
	if total <= 0 || r.Width() <= 0 || r.Height() <= 0 {
		return dice(values, total, r)
	}

	out := make([]Rect, len(values))
	n := len(values)
	x0, y0, x1, y1 := r.X0, r.Y0, r.X1, r.Y1
	remaining := total

	for i0, i1 := 0, 0; i0 < n; i0 = i1 {
		dx, dy := x1-x0, y1-y0

		// Start the row at the next non-empty child.
		var rowSum float64
		for {
			rowSum = values[i1]
			i1++
			if rowSum != 0 || i1 >= n {
				break
			}
		}

		minV, maxV := rowSum, rowSum
		alpha := math.Max(dy/dx, dx/dy) / (remaining * ratio)
		beta := rowSum * rowSum * alpha
		minRatio := math.Max(maxV/beta, beta/minV)

		for ; i1 < n; i1++ {
			v := values[i1]
			rowSum += v
			minV, maxV = min(minV, v), max(maxV, v)
			beta = rowSum * rowSum * alpha
			newRatio := math.Max(maxV/beta, beta/minV)
			if newRatio > minRatio {
				break
			}
			minRatio = newRatio
		}

		// Re-sum rather than subtract: siblings may differ by many orders of
		// magnitude.
		rowSum = sum(values[i0:i1])
		last := i1 >= n
		row, dst := values[i0:i1], out[i0:i1]
		if dx < dy {
			ny := y1
			if !last && remaining > 0 {
				ny = min(y0+dy*rowSum/remaining, y1)
			}
			copy(dst, dice(row, rowSum, Rect{X0: x0, Y0: y0, X1: x1, Y1: ny}))
			y0 = ny
		} else {
			nx := x1
			if !last && remaining > 0 {
				nx = min(x0+dx*rowSum/remaining, x1)
			}
			copy(dst, slice(row, rowSum, Rect{X0: x0, Y0: y0, X1: nx, Y1: y1}))
			x0 = nx
		}
		remaining = sum(values[i1:])
	}
	return out
}
