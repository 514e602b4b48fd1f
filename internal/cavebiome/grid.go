package cavebiome

import "math"

// l1Threshold is 3*cellSize/4: the sum-of-axis-distances beyond which a
// query point falls in the layer-1 region of its layer-0 cell.
const l1Threshold = 3 * cellSize / 4

// maxVerticalSearch bounds the binary search in getGridPointAndHeight: the
// diameter of any sub-lattice cell projected onto the world z-axis.
var maxVerticalSearch = int32(math.Ceil(cellSize * math.Sqrt(5) / 2))

// cellMask floors to a multiple of cellSize, correct for negative values
// unlike Go's truncating integer division.
const cellMask = int32(^(cellSize - 1))

// nearestLayer0Center returns the layer-0 candidate center for rotated
// point r.
func nearestLayer0Center(r vec3) vec3 {
	return vec3{
		X: (r.X + cellSize/2) & cellMask,
		Y: (r.Y + cellSize/2) & cellMask,
		Z: (r.Z + cellSize/2) & cellMask,
	}
}

// nearestLayer1Center returns the layer-1 candidate center for rotated
// point r.
func nearestLayer1Center(r vec3) vec3 {
	return vec3{
		X: r.X & cellMask,
		Y: r.Y & cellMask,
		Z: r.Z & cellMask,
	}
}

// gridSelect picks the layer-0 candidate center, shifting to the layer-1
// cell in the direction of the query point when its sum of per-axis
// distances exceeds l1Threshold. The threshold and tie-break are
// load-bearing: changing either shifts cell boundaries for every
// already-generated fragment.
func gridSelect(r vec3) (g vec3, layer int32) {
	c0 := nearestLayer0Center(r)
	d := r.sub(c0)
	tot := abs32(d.X) + abs32(d.Y) + abs32(d.Z)
	if tot > l1Threshold {
		return vec3{
			X: c0.X + sign32(d.X)*(cellSize/2),
			Y: c0.Y + sign32(d.Y)*(cellSize/2),
			Z: c0.Z + sign32(d.Z)*(cellSize/2),
		}, 1
	}
	return c0, 0
}

// getGridPointAndHeight returns the grid point and layer containing w,
// plus the largest h <= returnHeight (a multiple of voxelSize) such that
// every point w+(0,0,k*voxelSize) for 0 <= k*voxelSize <= h maps to that
// same (g, layer). Each trial height recomputes rotate(w + (0,0,dz))
// directly rather than incrementally shifting a cached pre-rotation.
func getGridPointAndHeight(w vec3, voxelSize, returnHeight int32) (g vec3, layer int32, height int32) {
	baseR := rotate(w)
	g, layer = gridSelect(baseR)

	upperBound := returnHeight
	if maxVerticalSearch < upperBound {
		upperBound = maxVerticalSearch
	}
	if upperBound < 0 {
		upperBound = 0
	}
	if voxelSize <= 0 {
		voxelSize = 1
	}

	steps := upperBound / voxelSize
	matches := func(step int32) bool {
		dz := step * voxelSize
		g2, layer2 := gridSelect(rotate(w.add(vec3{0, 0, dz})))
		return g2 == g && layer2 == layer
	}

	if steps <= 0 {
		return g, layer, 0
	}
	if matches(steps) {
		return g, layer, steps * voxelSize
	}

	lo, hi := int32(0), steps
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if matches(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return g, layer, lo * voxelSize
}
