package cavebiome

// biomeLookup resolves the biome stored at a rotated-space grid point and
// layer. The View supplies this from the fragments it holds references to.
type biomeLookup func(g vec3, layer int32) *Biome

// InterpolationMode selects what bulkInterpolate does with each computed
// value. Only AddToMap exists today.
type InterpolationMode int

const (
	// AddToMap adds scale*value into the corresponding output cell.
	AddToMap InterpolationMode = iota
)

// component returns the axis-th component of v (0=X, 1=Y, 2=Z).
func component(v vec3, axis int) int32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// withAxis returns v with its axis-th component shifted by delta.
func withAxis(v vec3, axis int, delta int32) vec3 {
	switch axis {
	case 0:
		v.X += delta
	case 1:
		v.Y += delta
	default:
		v.Z += delta
	}
	return v
}

// argMaxAbsAxis returns the axis (0,1,2) of the largest-magnitude
// component of d. preferLater breaks ties toward the later axis; the
// asymmetry between the layer-0 (strict) and layer-1 (non-strict) callers
// keeps their anchor axes from collapsing at a tie.
func argMaxAbsAxis(d vec3, preferLater bool) int {
	best := abs32(d.X)
	axis := 0
	consider := func(v int32, i int) {
		av := abs32(v)
		if preferLater {
			if av >= best {
				best, axis = av, i
			}
		} else if av > best {
			best, axis = av, i
		}
	}
	consider(d.Y, 1)
	consider(d.Z, 2)
	return axis
}

// cross64 computes the integer cross product of two lattice vectors in
// 64-bit arithmetic, exact with no intermediate rounding.
func cross64(a, b vec3) [3]int64 {
	ax, ay, az := int64(a.X), int64(a.Y), int64(a.Z)
	bx, by, bz := int64(b.X), int64(b.Y), int64(b.Z)
	return [3]int64{
		ay*bz - az*by,
		az*bx - ax*bz,
		ax*by - ay*bx,
	}
}

// dot64i dots an integer vector against a lattice vector, in int64.
func dot64i(c [3]int64, v vec3) int64 {
	return c[0]*int64(v.X) + c[1]*int64(v.Y) + c[2]*int64(v.Z)
}

// tetrahedronAnchors computes the four lattice anchor points for
// interpolateValue; r1 and r2 are looked up on layer 1, r3 and r4 on layer 0.
func tetrahedronAnchors(r vec3) (r1, r2, r3, r4 vec3) {
	c0 := nearestLayer0Center(r)
	d0 := r.sub(c0)
	axis3 := argMaxAbsAxis(d0, false)
	r4 = c0
	r3 = withAxis(c0, axis3, sign32(component(d0, axis3))*cellSize)

	c1 := nearestLayer1Center(r)
	d1 := r.sub(c1)
	axis1 := argMaxAbsAxis(d1, true)
	r2 = c1
	r1 = withAxis(c1, axis1, sign32(component(d1, axis1))*cellSize)
	return
}

// interpolateValue resolves the tetrahedron of four lattice anchors around
// world point w and returns the barycentric-weighted sum of the named
// scalar field across them.
func interpolateValue(w vec3, lookup biomeLookup, field string) float32 {
	r := rotate(w)
	r1, r2, r3, r4 := tetrahedronAnchors(r)

	a0 := r1.sub(r4) // column for lambda1
	a1 := r2.sub(r4) // column for lambda2
	a2 := r3.sub(r4) // column for lambda3
	d := r.sub(r4)

	a1xa2 := cross64(a1, a2)
	det := dot64i(a1xa2, a0)
	if det == 0 {
		// degenerate tetrahedron: fall back to the nearest layer-0 anchor
		b4 := lookup(r4, 0)
		return b4.Field(field)
	}
	invDet := 1.0 / float32(det)

	dxa2 := cross64(d, a2)
	a1xd := cross64(a1, d)

	lam1 := float32(dot64i(a1xa2, d)) * invDet
	lam2 := float32(dot64i(dxa2, a0)) * invDet
	lam3 := float32(dot64i(a1xd, a0)) * invDet
	lam4 := 1 - lam1 - lam2 - lam3

	b1 := lookup(r1, 1)
	b2 := lookup(r2, 1)
	b3 := lookup(r3, 0)
	b4 := lookup(r4, 0)

	return lam1*b1.Field(field) + lam2*b2.Field(field) + lam3*b3.Field(field) + lam4*b4.Field(field)
}

// bulkInterpolate evaluates interpolateValue on a regular 3D grid of
// voxelSize spacing starting at origin, adding scale*value into each
// corresponding outGrid cell, indexed [x][y][z].
func bulkInterpolate(lookup biomeLookup, field string, origin vec3, voxelSize int32, outGrid [][][]float32, mode InterpolationMode, scale float32) {
	if mode != AddToMap {
		panic("cavebiome: unsupported interpolation mode")
	}
	nx := len(outGrid)
	for x := 0; x < nx; x++ {
		ny := len(outGrid[x])
		for y := 0; y < ny; y++ {
			nz := len(outGrid[x][y])
			for z := 0; z < nz; z++ {
				w := vec3{
					X: origin.X + int32(x)*voxelSize,
					Y: origin.Y + int32(y)*voxelSize,
					Z: origin.Z + int32(z)*voxelSize,
				}
				v := interpolateValue(w, lookup, field)
				outGrid[x][y][z] += scale * v
			}
		}
	}
}
