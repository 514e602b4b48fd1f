package cavebiome

import (
	"log/slog"

	"github.com/google/uuid"
)

// CaveBiomeService owns the generator registry, the fragment cache, and
// the active GenerationProfile. Constructed once at world start and torn
// down at world stop; every public entry point is a method on it.
type CaveBiomeService struct {
	// instanceID distinguishes this service instance in diagnostic logs.
	// Never participates in any seed-deterministic computation.
	instanceID uuid.UUID

	log     *slog.Logger
	cfg     Config
	surface SurfaceCollaborator
	noise   NoiseFactory

	registry *GeneratorRegistry
	cache    *FragmentCache
	profile  *GenerationProfile
}

// NewCaveBiomeService creates a service in its pre-Init state. surface and
// noise may be nil, permanently disabling surface override and
// z-perturbation for every View this service constructs.
func NewCaveBiomeService(cfg Config, surface SurfaceCollaborator, noise NoiseFactory, log *slog.Logger) *CaveBiomeService {
	if log == nil {
		log = slog.Default()
	}
	return &CaveBiomeService{
		instanceID: uuid.New(),
		log:        log,
		cfg:        cfg,
		surface:    surface,
		noise:      noise,
		registry:   NewGeneratorRegistry(),
	}
}

// RegisterGenerator adds a generator plugin to the registry, one call per
// known plugin. Must be called on the service before Init.
func (s *CaveBiomeService) RegisterGenerator(g Generator) {
	s.registry.Register(g)
}

// Init builds the ordered, initialized generator list from every
// registered generator and the service's configured per-generator
// settings, binds it to the world seed as a GenerationProfile, and starts
// the fragment cache empty.
func (s *CaveBiomeService) Init() {
	generators := s.registry.BuildProfileList(s.cfg.GeneratorSettings)
	s.profile = &GenerationProfile{Seed: s.cfg.WorldSeed, Generators: generators}
	s.cache = NewFragmentCache()
	s.log.Info("cavebiome service initialized",
		"instance_id", s.instanceID,
		"generators", len(generators),
		"world_seed", s.cfg.WorldSeed,
	)
}

// Deinit clears the cache, releasing every slot's own reference, then
// tears down every generator.
func (s *CaveBiomeService) Deinit() {
	if s.cache != nil {
		s.cache.Clear()
	}
	if s.profile != nil {
		for _, g := range s.profile.Generators {
			g.Deinit()
		}
	}
	s.log.Info("cavebiome service deinitialized", "instance_id", s.instanceID)
	s.profile = nil
	s.cache = nil
}

// produceFragment allocates a fresh Fragment at pos, runs every generator
// in the active profile against it, and returns it with refCount already
// at 1 (the cache's own reference).
func (s *CaveBiomeService) produceFragment(pos FragmentPosition) *Fragment {
	fr := newFragment(pos)
	runGenerators(fr, s.profile)
	fr.refCount.Store(1)
	return fr
}

// acquireFragment looks up or creates the fragment at pos, returning it
// with one additional reference held on behalf of the caller.
func (s *CaveBiomeService) acquireFragment(pos FragmentPosition) *Fragment {
	return s.cache.FindOrCreate(pos, s.produceFragment, func(fr *Fragment) {
		fr.acquire()
	})
}
