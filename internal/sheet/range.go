package sheet

import "iter"

// EnumerateRange yields every Index in the inclusive rectangle spanned by
// from and to, row-major (y outer, x inner), regardless of which corner
// from/to name — matching the teacher's range normalization in
// RangeAddress/IterateValues.
func EnumerateRange(from, to Index) iter.Seq[Index] {
	minX, maxX := from.X, to.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := from.Y, to.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	return func(yield func(Index) bool) {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if !yield(Index{X: x, Y: y}) {
					return
				}
			}
		}
	}
}
