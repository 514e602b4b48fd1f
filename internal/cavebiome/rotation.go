package cavebiome

// shift is the fixed-point fractional bit width for the rotation matrix.
const shift = 30

// f = floor(2^shift / 25), chosen so the rows of R/2^shift are orthonormal.
const f = (1 << shift) / 25

// rotationMatrix is R, row-major, entries already scaled by f.
var rotationMatrix = [3][3]int64{
	{20 * f, 0 * f, 15 * f},
	{9 * f, 20 * f, -12 * f},
	{-12 * f, 15 * f, 16 * f},
}

// rotationMatrixT is R's transpose, R's exact inverse.
var rotationMatrixT = [3][3]int64{
	{20 * f, 9 * f, -12 * f},
	{0 * f, 20 * f, 15 * f},
	{15 * f, -12 * f, 16 * f},
}

// vec3 is an integer world- or lattice-space coordinate triple.
type vec3 struct {
	X, Y, Z int32
}

// rotate maps a world-space coordinate into rotated lattice space.
// Precondition: the rotated image of v fits in an int32.
func rotate(v vec3) vec3 {
	return applyMatrix(rotationMatrix, v)
}

// rotateInverse is the exact inverse of rotate for every v whose rotated
// image fits in int32.
func rotateInverse(v vec3) vec3 {
	return applyMatrix(rotationMatrixT, v)
}

func applyMatrix(m [3][3]int64, v vec3) vec3 {
	vx, vy, vz := int64(v.X), int64(v.Y), int64(v.Z)
	rx := (m[0][0]*vx + m[0][1]*vy + m[0][2]*vz) >> shift
	ry := (m[1][0]*vx + m[1][1]*vy + m[1][2]*vz) >> shift
	rz := (m[2][0]*vx + m[2][1]*vy + m[2][2]*vz) >> shift
	return vec3{int32(rx), int32(ry), int32(rz)}
}

func (v vec3) add(o vec3) vec3 { return vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v vec3) sub(o vec3) vec3 { return vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v vec3) scale(s int32) vec3 { return vec3{v.X * s, v.Y * s, v.Z * s} }

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

func sign32(x int32) int32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
