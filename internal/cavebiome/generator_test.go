package cavebiome

import (
	"testing"

	"github.com/google/uuid"
)

type fakeGenerator struct {
	id       string
	priority int
	seed     uint64
	initCfg  GeneratorConfig
	deinited bool
	ran      []uint64
}

func (g *fakeGenerator) ID() string            { return g.id }
func (g *fakeGenerator) Priority() int         { return g.priority }
func (g *fakeGenerator) GeneratorSeed() uint64 { return g.seed }
func (g *fakeGenerator) Init(cfg GeneratorConfig) { g.initCfg = cfg }
func (g *fakeGenerator) Deinit()                  { g.deinited = true }
func (g *fakeGenerator) Generate(fr *Fragment, seed uint64) {
	g.ran = append(g.ran, seed)
}

func TestGeneratorRegistryOrdersByPriority(t *testing.T) {
	reg := NewGeneratorRegistry()
	low := &fakeGenerator{id: "low", priority: 10}
	mid := &fakeGenerator{id: "mid", priority: 5}
	high := &fakeGenerator{id: "high", priority: 1}
	reg.Register(low)
	reg.Register(mid)
	reg.Register(high)

	ordered := reg.BuildProfileList(nil)
	if len(ordered) != 3 {
		t.Fatalf("len(ordered) = %d, want 3", len(ordered))
	}
	if ordered[0].ID() != "high" || ordered[1].ID() != "mid" || ordered[2].ID() != "low" {
		t.Fatalf("unexpected order: %s, %s, %s", ordered[0].ID(), ordered[1].ID(), ordered[2].ID())
	}
}

func TestGeneratorRegistryStableTieBreak(t *testing.T) {
	reg := NewGeneratorRegistry()
	a := &fakeGenerator{id: "a", priority: 5}
	b := &fakeGenerator{id: "b", priority: 5}
	c := &fakeGenerator{id: "c", priority: 5}
	reg.Register(a)
	reg.Register(b)
	reg.Register(c)

	ordered := reg.BuildProfileList(nil)
	if ordered[0].ID() != "a" || ordered[1].ID() != "b" || ordered[2].ID() != "c" {
		t.Fatalf("equal-priority generators were not kept in registration order")
	}
}

func TestGeneratorRegistryAssignsDistinctRegistrationIDs(t *testing.T) {
	reg := NewGeneratorRegistry()
	reg.Register(&fakeGenerator{id: "a"})
	reg.Register(&fakeGenerator{id: "b"})

	idA := reg.RegistrationID("a")
	idB := reg.RegistrationID("b")
	if idA == uuid.Nil || idB == uuid.Nil {
		t.Fatal("RegistrationID returned the nil uuid for a registered generator")
	}
	if idA == idB {
		t.Fatal("two distinct generators got the same registration id")
	}
	if got := reg.RegistrationID("unknown"); got != uuid.Nil {
		t.Fatalf("RegistrationID(unknown) = %v, want the nil uuid", got)
	}
}

func TestGeneratorRegistryDuplicateIDPanics(t *testing.T) {
	reg := NewGeneratorRegistry()
	reg.Register(&fakeGenerator{id: "dup"})
	defer func() {
		if recover() == nil {
			t.Fatal("registering a duplicate id did not panic")
		}
	}()
	reg.Register(&fakeGenerator{id: "dup"})
}

func TestGeneratorRegistryInitReceivesOwnSubtree(t *testing.T) {
	reg := NewGeneratorRegistry()
	g := &fakeGenerator{id: "caves"}
	reg.Register(g)

	settings := map[string]GeneratorConfig{
		"caves": {"roughness": 0.5},
		"ores":  {"density": 1.0},
	}
	reg.BuildProfileList(settings)
	if g.initCfg["roughness"] != 0.5 {
		t.Fatalf("Init received %v, want the caves subtree", g.initCfg)
	}
}

func TestGeneratorRegistryMissingConfigGetsEmptySubtree(t *testing.T) {
	reg := NewGeneratorRegistry()
	g := &fakeGenerator{id: "no-config"}
	reg.Register(g)

	reg.BuildProfileList(map[string]GeneratorConfig{})
	if g.initCfg == nil || len(g.initCfg) != 0 {
		t.Fatalf("Init received %v, want an empty non-nil subtree", g.initCfg)
	}
}

func TestRunGeneratorsXORsSeedWithGeneratorSeed(t *testing.T) {
	g1 := &fakeGenerator{id: "g1", seed: 0xAA}
	g2 := &fakeGenerator{id: "g2", seed: 0xBB}
	profile := &GenerationProfile{Seed: 0xF0, Generators: []Generator{g1, g2}}

	fr := newFragment(FragmentPosition{})
	runGenerators(fr, profile)

	if len(g1.ran) != 1 || g1.ran[0] != 0xF0^0xAA {
		t.Fatalf("g1 ran with %v, want [%#x]", g1.ran, 0xF0^0xAA)
	}
	if len(g2.ran) != 1 || g2.ran[0] != 0xF0^0xBB {
		t.Fatalf("g2 ran with %v, want [%#x]", g2.ran, 0xF0^0xBB)
	}
}

func TestFillDeterministicCoversEveryCellAndLayer(t *testing.T) {
	fr := newFragment(FragmentPosition{X: fragSize, Y: 0, Z: -fragSize})
	seen := make(map[[4]int32]bool)
	FillDeterministic(fr, func(cellX, cellY, cellZ, layer int32) *Biome {
		seen[[4]int32{cellX, cellY, cellZ, layer}] = true
		return &Biome{ID: "x"}
	})
	if want := cellsPerFragment * numLayers; len(seen) != want {
		t.Fatalf("FillDeterministic visited %d (cell,layer) pairs, want %d", len(seen), want)
	}
	for gx := int32(0); gx < gridDim; gx++ {
		if fr.biomeAt(gx*cellSize, 0, 0, 0) == nil {
			t.Fatalf("cell (%d,0,0) layer 0 left unpopulated", gx)
		}
	}
}
