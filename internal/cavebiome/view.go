package cavebiome

import "math"

// ChunkPos is the world-space origin of a chunk query, at a given voxel
// size.
type ChunkPos struct {
	X, Y, Z   int32
	VoxelSize int32
}

// View is the query façade bound to a chunk-sized region. It owns one
// reference on every Fragment and SurfaceFragment it needs to answer
// queries inside its footprint, and an optional z-perturbation Noise
// source. Every coordinate a View's methods accept is relative to its
// ChunkPos, not an absolute world coordinate.
type View struct {
	svc   *CaveBiomeService
	pos   ChunkPos
	width int32

	fragOrigin FragmentPosition
	fragCount  int32
	fragments  [][][]*Fragment

	surface *surfaceBand

	noise        Noise
	noiseEnabled bool
}

// kRotationFactor is the max-magnitude component of rotate((1024,1024,1024)):
// how much the rotation can stretch a world-space extent onto any single
// rotated axis.
var kRotationFactor = func() int32 {
	r := rotate(vec3{X: 1024, Y: 1024, Z: 1024})
	m := abs32(r.X)
	if v := abs32(r.Y); v > m {
		m = v
	}
	if v := abs32(r.Z); v > m {
		m = v
	}
	return m
}()

// viewFragmentSpan computes the per-axis fragment count needed to cover a
// view of the given width and margin.
func viewFragmentSpan(width, margin int32) int32 {
	num := int64(width+margin+fragSize) * int64(kRotationFactor)
	den := int64(1024) * int64(fragSize)
	q := num / den
	if num%den != 0 {
		q++
	}
	return int32(1 + q)
}

// NewView constructs a View covering every world point in
// [pos, pos+width) plus margin, acquiring one reference on every fragment
// and surface tile it needs.
func (s *CaveBiomeService) NewView(pos ChunkPos, width, margin int32) *View {
	n := viewFragmentSpan(width, margin)

	half := pos.VoxelSize
	if half <= 0 {
		half = 1
	}
	centerW := vec3{
		X: pos.X + (width/2)*half,
		Y: pos.Y + (width/2)*half,
		Z: pos.Z + (width/2)*half,
	}
	centerOrigin := fragmentOrigin(rotate(centerW))

	offset := (n / 2) * fragSize
	baseOrigin := FragmentPosition{
		X: centerOrigin.X - offset, Y: centerOrigin.Y - offset, Z: centerOrigin.Z - offset,
		VoxelSize: pos.VoxelSize,
	}

	fragments := make([][][]*Fragment, n)
	for i := int32(0); i < n; i++ {
		fragments[i] = make([][]*Fragment, n)
		for j := int32(0); j < n; j++ {
			fragments[i][j] = make([]*Fragment, n)
			for k := int32(0); k < n; k++ {
				p := FragmentPosition{
					X: baseOrigin.X + i*fragSize,
					Y: baseOrigin.Y + j*fragSize,
					Z: baseOrigin.Z + k*fragSize,
					VoxelSize: pos.VoxelSize,
				}
				fragments[i][j][k] = s.acquireFragment(p)
			}
		}
	}

	var surf *surfaceBand
	if s.surface != nil {
		surf = newSurfaceBand(s.surface, pos.X+(width/2)*half, pos.Y+(width/2)*half, pos.VoxelSize)
	}

	noiseEnabled := s.noise != nil && !s.cfg.DisableZPerturbation && pos.VoxelSize < zPerturbationVoxelThreshold
	var noiseSrc Noise
	if noiseEnabled {
		noiseSeed := s.cfg.WorldSeed ^ uint64(zPerturbationSeedXOR)
		noiseSrc = s.noise(pos.X, pos.Y, pos.VoxelSize, width, noiseSeed, zPerturbationPeriod)
	}

	return &View{
		svc: s, pos: pos, width: width,
		fragOrigin: baseOrigin, fragCount: n, fragments: fragments,
		surface: surf, noise: noiseSrc, noiseEnabled: noiseEnabled,
	}
}

// Close releases every reference this View acquired. Call it exactly
// once: the first call clears every fragment slot to nil, so a second call
// panics on a nil fragment.
func (v *View) Close() {
	for i := range v.fragments {
		for j := range v.fragments[i] {
			for k := range v.fragments[i][j] {
				v.fragments[i][j][k].release()
				v.fragments[i][j][k] = nil
			}
		}
	}
	v.surface.release()
	if v.noise != nil {
		v.noise.Destroy()
	}
}

// assertInRange enforces the out-of-bounds contract: relative coordinates
// must lie in [-32, width+32) on every axis.
func (v *View) assertInRange(rx, ry, rz int32) {
	lo, hi := int32(-32), v.width+32
	if rx < lo || rx >= hi || ry < lo || ry >= hi || rz < lo || rz >= hi {
		panic("cavebiome: query out of view range")
	}
}

// worldPoint converts view-relative coordinates to an absolute world point.
func (v *View) worldPoint(rx, ry, rz int32) vec3 {
	v.assertInRange(rx, ry, rz)
	return vec3{X: v.pos.X + rx, Y: v.pos.Y + ry, Z: v.pos.Z + rz}
}

// fragmentAt returns the Fragment covering rotated-space point r, or
// panics if r falls outside this View's acquired fragment range.
func (v *View) fragmentAt(r vec3) *Fragment {
	origin := fragmentOrigin(r)
	i := (origin.X - v.fragOrigin.X) / fragSize
	j := (origin.Y - v.fragOrigin.Y) / fragSize
	k := (origin.Z - v.fragOrigin.Z) / fragSize
	if i < 0 || j < 0 || k < 0 || i >= v.fragCount || j >= v.fragCount || k >= v.fragCount {
		panic("cavebiome: grid point outside view's fragment range")
	}
	return v.fragments[i][j][k]
}

// lookupBiome resolves the biome stored at rotated grid point g, layer.
func (v *View) lookupBiome(g vec3, layer int32) *Biome {
	fr := v.fragmentAt(g)
	origin := fragmentOrigin(g)
	lx, ly, lz := localCoords(g, origin)
	return fr.biomeAt(lx, ly, lz, layer)
}

// perturbZ applies the optional noise-based z-perturbation to a world
// point, if active for this view.
func (v *View) perturbZ(w vec3) vec3 {
	if !v.noiseEnabled {
		return w
	}
	offset := v.noise.GetValue(w.X, w.Y)
	return vec3{X: w.X, Y: w.Y, Z: w.Z + int32(math.Round(float64(offset)))}
}

// GetSurfaceHeight returns the external surface height at relative column
// (rx, ry), or 0 if no surface collaborator is configured.
func (v *View) GetSurfaceHeight(rx, ry int32) int32 {
	if v.surface == nil {
		return 0
	}
	w := v.worldPoint(rx, ry, 0)
	tile := v.surface.tileFor(w.X, w.Y)
	if tile == nil {
		return 0
	}
	return tile.Height(w.X, w.Y)
}

// GetBiome resolves the rough biome at a relative column and depth without
// requesting a seed: surface override first, else the coarse
// grid-selection biome.
func (v *View) GetBiome(rx, ry, rz int32) *Biome {
	b, _ := v.getRoughBiome(rx, ry, rz, false)
	return b
}

// GetBiomeAndSeed additionally returns the position+layer seed hash. When
// a surface override applies, the seed still derives from the grid point
// that would have answered the query, keeping it a function of world
// position regardless of which biome answered.
func (v *View) GetBiomeAndSeed(rx, ry, rz int32) (*Biome, uint64) {
	return v.getRoughBiome(rx, ry, rz, true)
}

func (v *View) getRoughBiome(rx, ry, rz int32, wantSeed bool) (*Biome, uint64) {
	w := v.worldPoint(rx, ry, rz)

	if v.surface != nil {
		if b, ok := v.surface.surfaceOverride(w.X, w.Y, w.Z, v.pos.VoxelSize); ok {
			var seed uint64
			if wantSeed {
				g, layer := gridSelect(rotate(v.perturbZ(w)))
				seed = seedHash(g, layer, v.svc.cfg.WorldSeed)
			}
			return b, seed
		}
	}

	pw := v.perturbZ(w)
	g, layer := gridSelect(rotate(pw))
	b := v.lookupBiome(g, layer)
	var seed uint64
	if wantSeed {
		seed = seedHash(g, layer, v.svc.cfg.WorldSeed)
	}
	return b, seed
}

// GetBiomeColumnAndSeed returns the biome at (rx,ry,rz), its seed, and the
// largest height <= returnHeight over which that same biome holds for
// every intermediate voxel-aligned point in the column.
func (v *View) GetBiomeColumnAndSeed(rx, ry, rz, returnHeight int32) (*Biome, uint64, int32) {
	w := v.worldPoint(rx, ry, rz)
	voxelSize := v.pos.VoxelSize
	if voxelSize <= 0 {
		voxelSize = 1
	}

	if v.surface != nil {
		if b, ok, h := v.surface.surfaceOverrideHeight(w.X, w.Y, w.Z, voxelSize, returnHeight); ok {
			g, layer := gridSelect(rotate(v.perturbZ(w)))
			return b, seedHash(g, layer, v.svc.cfg.WorldSeed), h
		}
	}

	pw := v.perturbZ(w)
	g, layer, h := getGridPointAndHeight(pw, voxelSize, returnHeight)
	b := v.lookupBiome(g, layer)
	seed := seedHash(g, layer, v.svc.cfg.WorldSeed)
	return b, seed, h
}

// InterpolateValue computes a tetrahedrally-interpolated scalar field
// value at a relative point, against this View's fragments.
func (v *View) InterpolateValue(rx, ry, rz int32, field string) float32 {
	w := v.worldPoint(rx, ry, rz)
	return interpolateValue(v.perturbZ(w), v.lookupBiome, field)
}

// BulkInterpolateValue adds scale times the interpolated scalar field value
// into each outGrid cell over a regular grid, against this View's fragments. origin is relative
// to the View's ChunkPos.
func (v *View) BulkInterpolateValue(field string, origin ChunkPos, voxelSize int32, outGrid [][][]float32, mode InterpolationMode, scale float32) {
	w := v.worldPoint(origin.X, origin.Y, origin.Z)
	bulkInterpolate(v.lookupBiome, field, w, voxelSize, outGrid, mode, scale)
}
