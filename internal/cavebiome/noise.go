package cavebiome

// Noise is the external fractal-noise collaborator for the optional
// z-perturbation. The core treats it as an opaque 2D scalar field.
type Noise interface {
	GetValue(wx, wy int32) float32
	Destroy()
}

// NoiseFactory constructs a Noise source scoped to a query region.
type NoiseFactory func(startX, startY, voxelSize, width int32, seed uint64, period int32) Noise

const (
	zPerturbationSeedXOR        = 0x764923684396
	zPerturbationPeriod         = 64
	zPerturbationVoxelThreshold = 8
)
