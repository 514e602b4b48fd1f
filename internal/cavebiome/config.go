package cavebiome

// Config holds the settings a CaveBiomeService needs beyond what comes
// from its collaborators, merged from file and/or flags by the caller
// before being passed in.
type Config struct {
	// WorldSeed is XORed with each generator's own seed contribution.
	WorldSeed uint64 `json:"world_seed"`

	// GeneratorSettings maps a generator's ID to the config subtree its
	// Init receives.
	GeneratorSettings map[string]GeneratorConfig `json:"generator_settings"`

	// DisableZPerturbation forces off the noise-based z-perturbation even
	// when voxel size and a noise factory would otherwise allow it.
	DisableZPerturbation bool `json:"disable_z_perturbation"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GeneratorSettings: make(map[string]GeneratorConfig),
	}
}

// Merge applies file-loaded config values into cfg for fields not
// explicitly set via CLI flags, per explicitFlags. GeneratorSettings has no
// flag: a file subtree is copied in only for generator IDs not already
// present in cfg.GeneratorSettings.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["world-seed"] {
		cfg.WorldSeed = fromFile.WorldSeed
	}
	if !explicitFlags["disable-z-perturbation"] {
		cfg.DisableZPerturbation = fromFile.DisableZPerturbation
	}
	for id, subtree := range fromFile.GeneratorSettings {
		if _, explicit := cfg.GeneratorSettings[id]; !explicit {
			cfg.GeneratorSettings[id] = subtree
		}
	}
}
