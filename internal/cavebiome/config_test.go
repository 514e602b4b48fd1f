package cavebiome

import "testing"

func TestMergeSkipsExplicitlySetFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldSeed = 99

	fromFile := DefaultConfig()
	fromFile.WorldSeed = 1
	fromFile.DisableZPerturbation = true

	Merge(&cfg, &fromFile, map[string]bool{"world-seed": true})

	if cfg.WorldSeed != 99 {
		t.Fatalf("WorldSeed = %d, want 99 (explicit flag must win)", cfg.WorldSeed)
	}
	if !cfg.DisableZPerturbation {
		t.Fatal("DisableZPerturbation not merged from file for an unset flag")
	}
}

func TestMergeFillsGeneratorSettingsNotAlreadyPresent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GeneratorSettings["caves"] = GeneratorConfig{"roughness": 0.9}

	fromFile := DefaultConfig()
	fromFile.GeneratorSettings["caves"] = GeneratorConfig{"roughness": 0.1}
	fromFile.GeneratorSettings["ores"] = GeneratorConfig{"density": 1.0}

	Merge(&cfg, &fromFile, nil)

	if cfg.GeneratorSettings["caves"]["roughness"] != 0.9 {
		t.Fatal("Merge overwrote a generator subtree already present in cfg")
	}
	if cfg.GeneratorSettings["ores"]["density"] != 1.0 {
		t.Fatal("Merge did not pull in a generator subtree missing from cfg")
	}
}
