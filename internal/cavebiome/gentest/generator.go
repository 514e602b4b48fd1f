package gentest

import "github.com/OCharnyshevich/cavebiome/internal/cavebiome"

// StripedPalette builds a small fixed palette of n biomes named
// "biome-a0", "biome-b0", ... (a letter cycling a-z, then the digit
// (i/26) mod 10; IDs repeat beyond n = 260, which NewPalette rejects with a
// panic), each carrying a distinct "roughness" field value so interpolation
// tests can tell anchors apart.
func StripedPalette(n int) *cavebiome.Palette {
	biomes := make([]*cavebiome.Biome, n)
	for i := range biomes {
		biomes[i] = &cavebiome.Biome{
			ID:     biomeName(i),
			Fields: map[string]float32{"roughness": float32(i)},
		}
	}
	return cavebiome.NewPalette(biomes)
}

func biomeName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	return "biome-" + string(letters[i%len(letters)]) + string(rune('0'+(i/len(letters))%10))
}

// CellHashGenerator is the synthetic generator used throughout the test
// suite and the bench CLI: it assigns each lattice cell the palette biome
// at index (cellX + 3*cellY + 7*cellZ) mod paletteLen, independent of
// layer and seed. The formula is fixed and simple enough that tests can
// predict exact answers instead of only checking invariants.
type CellHashGenerator struct {
	id       string
	priority int
	seed     uint64
	palette  *cavebiome.Palette
}

// NewCellHashGenerator constructs a CellHashGenerator bound to palette.
func NewCellHashGenerator(id string, priority int, seed uint64, palette *cavebiome.Palette) *CellHashGenerator {
	return &CellHashGenerator{id: id, priority: priority, seed: seed, palette: palette}
}

func (g *CellHashGenerator) ID() string            { return g.id }
func (g *CellHashGenerator) Priority() int         { return g.priority }
func (g *CellHashGenerator) GeneratorSeed() uint64 { return g.seed }
func (g *CellHashGenerator) Init(cavebiome.GeneratorConfig) {}
func (g *CellHashGenerator) Deinit()                         {}

// Generate implements cavebiome.Generator by hashing each cell's lattice
// coordinates (in cell units, not rotated-space units) into a palette
// index: i = (cellX + 3*cellY + 7*cellZ) mod P, independent of layer and
// of the generator's seed.
func (g *CellHashGenerator) Generate(fr *cavebiome.Fragment, seed uint64) {
	cavebiome.FillDeterministic(fr, func(cellX, cellY, cellZ, layer int32) *cavebiome.Biome {
		idx := int64(cellX) + 3*int64(cellY) + 7*int64(cellZ)
		return g.palette.At(int(idx))
	})
}
