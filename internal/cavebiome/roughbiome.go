package cavebiome

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// seedHash derives a 64-bit position+layer seed mixed with the world seed,
// for callers of GetBiomeAndSeed/GetBiomeColumnAndSeed that need a
// deterministic per-column seed.
func seedHash(g vec3, layer int32, worldSeed uint64) uint64 {
	var buf [16]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(g.X))
	binary.BigEndian.PutUint32(buf[4:8], uint32(g.Y))
	binary.BigEndian.PutUint32(buf[8:12], uint32(g.Z))
	binary.BigEndian.PutUint32(buf[12:16], uint32(layer))
	return xxhash.Sum64(buf[:]) ^ worldSeed
}
