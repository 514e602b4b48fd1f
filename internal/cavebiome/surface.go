package cavebiome

// SurfaceFragment is one tile of the external surface/heightmap
// subsystem.
type SurfaceFragment interface {
	// Height returns the terrain surface height at world column (wx, wy).
	Height(wx, wy int32) int32
	// Biome returns the surface biome at world column (wx, wy).
	Biome(wx, wy int32) *Biome
	// Release drops the reference this View's construction acquired.
	Release()
}

// SurfaceCollaborator adapts the external surface/heightmap subsystem. The
// core only asks it for the tiles covering a view's footprint.
type SurfaceCollaborator interface {
	// GetOrGenerateFragment returns the surface tile covering world column
	// (wx, wy), with its reference count already incremented for the caller.
	GetOrGenerateFragment(wx, wy, voxelSize int32) SurfaceFragment
	MapSize() int32
}

// surfaceBand holds the four 2x2 surface tiles covering a view's
// footprint, plus the origin used to select among them.
type surfaceBand struct {
	tiles   [4]SurfaceFragment
	originX int32
	originY int32
	mapSize int32
}

// newSurfaceBand fetches the 2x2 tiles around world column (centerX,
// centerY) from collaborator sc, incrementing each tile's refcount.
func newSurfaceBand(sc SurfaceCollaborator, centerX, centerY, voxelSize int32) *surfaceBand {
	if sc == nil {
		return nil
	}
	mapSize := sc.MapSize()
	originX := floorDiv(centerX-mapSize/2, mapSize) * mapSize
	originY := floorDiv(centerY-mapSize/2, mapSize) * mapSize

	b := &surfaceBand{originX: originX, originY: originY, mapSize: mapSize}
	b.tiles[0] = sc.GetOrGenerateFragment(originX, originY, voxelSize)
	b.tiles[1] = sc.GetOrGenerateFragment(originX+mapSize, originY, voxelSize)
	b.tiles[2] = sc.GetOrGenerateFragment(originX, originY+mapSize, voxelSize)
	b.tiles[3] = sc.GetOrGenerateFragment(originX+mapSize, originY+mapSize, voxelSize)
	return b
}

// release drops all four tile references exactly once.
func (b *surfaceBand) release() {
	if b == nil {
		return
	}
	for _, t := range b.tiles {
		if t != nil {
			t.Release()
		}
	}
}

// tileFor picks which of the four tiles contains world column (wx, wy),
// comparing against the index-0 tile's origin.
func (b *surfaceBand) tileFor(wx, wy int32) SurfaceFragment {
	idx := 0
	if wx >= b.originX+b.mapSize {
		idx |= 1
	}
	if wy >= b.originY+b.mapSize {
		idx |= 2
	}
	return b.tiles[idx]
}

// surfaceOverride returns the surface biome for world column (wx, wy) if wz
// falls within [height-32*voxelSize, height+128+voxelSize] of that column's
// surface height, and ok=false otherwise.
func (b *surfaceBand) surfaceOverride(wx, wy, wz, voxelSize int32) (biome *Biome, ok bool) {
	if b == nil {
		return nil, false
	}
	tile := b.tileFor(wx, wy)
	if tile == nil {
		return nil, false
	}
	surfaceHeight := tile.Height(wx, wy)
	lo := surfaceHeight - 32*voxelSize
	hi := surfaceHeight + 128 + voxelSize
	if wz < lo || wz > hi {
		return nil, false
	}
	return tile.Biome(wx, wy), true
}

// surfaceOverrideHeight is the height-returning variant of surfaceOverride:
// inside the override band it also clamps returnHeight to the vertical
// distance to the band's upper exit; below the band it clamps returnHeight
// so the column ends before the band's lower edge.
func (b *surfaceBand) surfaceOverrideHeight(wx, wy, wz, voxelSize, returnHeight int32) (biome *Biome, ok bool, height int32) {
	biome, ok = b.surfaceOverride(wx, wy, wz, voxelSize)
	if !ok {
		if b != nil {
			if tile := b.tileFor(wx, wy); tile != nil {
				lo := tile.Height(wx, wy) - 32*voxelSize
				if wz < lo && lo-wz-1 < returnHeight {
					returnHeight = lo - wz - 1
				}
			}
		}
		return biome, ok, returnHeight
	}
	tile := b.tileFor(wx, wy)
	surfaceHeight := tile.Height(wx, wy)
	hi := surfaceHeight + 128 + voxelSize
	distToExit := hi - wz
	if distToExit < 0 {
		distToExit = 0
	}
	if distToExit < returnHeight {
		returnHeight = distToExit
	}
	return biome, ok, returnHeight
}
