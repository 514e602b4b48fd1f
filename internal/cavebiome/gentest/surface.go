package gentest

import "github.com/OCharnyshevich/cavebiome/internal/cavebiome"

// FlatSurface is a test double for cavebiome.SurfaceCollaborator: every
// tile reports the same constant height and a fixed surface biome,
// regardless of world column.
type FlatSurface struct {
	Height int32
	Biome  *cavebiome.Biome
	Size   int32
}

// NewFlatSurface builds a FlatSurface with the given constant height,
// surface biome, and tile span.
func NewFlatSurface(height int32, biome *cavebiome.Biome, size int32) *FlatSurface {
	return &FlatSurface{Height: height, Biome: biome, Size: size}
}

// MapSize implements cavebiome.SurfaceCollaborator.
func (s *FlatSurface) MapSize() int32 { return s.Size }

// GetOrGenerateFragment implements cavebiome.SurfaceCollaborator.
func (s *FlatSurface) GetOrGenerateFragment(wx, wy, voxelSize int32) cavebiome.SurfaceFragment {
	return flatTile{s}
}

type flatTile struct{ s *FlatSurface }

func (t flatTile) Height(wx, wy int32) int32       { return t.s.Height }
func (t flatTile) Biome(wx, wy int32) *cavebiome.Biome { return t.s.Biome }
func (t flatTile) Release()                        {}
