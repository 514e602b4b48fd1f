package cavebiome

import (
	"sort"

	"github.com/google/uuid"
)

// GeneratorConfig is the configuration subtree handed to a single
// generator's Init.
type GeneratorConfig map[string]any

// Generator is a pluggable contributor to fragment population. Concrete
// generators are external collaborators supplied by the caller.
type Generator interface {
	ID() string
	// Priority orders generators ascending; lower runs first.
	Priority() int
	// GeneratorSeed is XORed with the world seed before each Generate call.
	GeneratorSeed() uint64

	Init(cfg GeneratorConfig)
	Deinit()
	// Generate populates fr's cells. seed is profile.seed XOR
	// GeneratorSeed(). Must be deterministic in seed and fr.pos.
	Generate(fr *Fragment, seed uint64)
}

// GenerationProfile binds a world seed to an ordered set of generators.
type GenerationProfile struct {
	Seed       uint64
	Generators []Generator
}

// GeneratorRegistry tracks generators registered at service start and
// builds the ordered, initialized list a GenerationProfile consumes.
type GeneratorRegistry struct {
	byID []Generator
	seen map[string]bool

	// registrationID tags each Register call for diagnostic log correlation.
	registrationID map[string]uuid.UUID
}

// NewGeneratorRegistry returns an empty registry.
func NewGeneratorRegistry() *GeneratorRegistry {
	return &GeneratorRegistry{
		seen:           make(map[string]bool),
		registrationID: make(map[string]uuid.UUID),
	}
}

// Register adds a generator by ID. Panics on a duplicate ID.
func (reg *GeneratorRegistry) Register(g Generator) {
	if reg.seen[g.ID()] {
		panic("cavebiome: duplicate generator id " + g.ID())
	}
	reg.seen[g.ID()] = true
	reg.registrationID[g.ID()] = uuid.New()
	reg.byID = append(reg.byID, g)
}

// RegistrationID returns the diagnostic uuid assigned when id was
// registered, or the zero UUID if id was never registered.
func (reg *GeneratorRegistry) RegistrationID(id string) uuid.UUID {
	return reg.registrationID[id]
}

// BuildProfileList initializes every registered generator with its config
// subtree, then returns them sorted by ascending priority with a stable
// tie-break on registration order.
func (reg *GeneratorRegistry) BuildProfileList(settings map[string]GeneratorConfig) []Generator {
	ordered := make([]Generator, len(reg.byID))
	copy(ordered, reg.byID)

	for _, g := range ordered {
		cfg := settings[g.ID()]
		if cfg == nil {
			cfg = GeneratorConfig{}
		}
		g.Init(cfg)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})
	return ordered
}

// FillDeterministic calls assign for every (cell, layer) of fr with cell
// coordinates in cell units, so external Generator implementations can
// populate a Fragment without access to its private cell indexing.
func FillDeterministic(fr *Fragment, assign func(cellX, cellY, cellZ, layer int32) *Biome) {
	baseX := fr.pos.X / cellSize
	baseY := fr.pos.Y / cellSize
	baseZ := fr.pos.Z / cellSize
	for gx := int32(0); gx < gridDim; gx++ {
		for gy := int32(0); gy < gridDim; gy++ {
			for gz := int32(0); gz < gridDim; gz++ {
				for layer := int32(0); layer < numLayers; layer++ {
					b := assign(baseX+gx, baseY+gy, baseZ+gz, layer)
					fr.setBiome(gx*cellSize, gy*cellSize, gz*cellSize, layer, b)
				}
			}
		}
	}
}

// runGenerators executes every generator in profile order against fr,
// each fed profile.Seed XOR its own GeneratorSeed.
func runGenerators(fr *Fragment, profile *GenerationProfile) {
	for _, g := range profile.Generators {
		g.Generate(fr, profile.Seed^g.GeneratorSeed())
	}
}
