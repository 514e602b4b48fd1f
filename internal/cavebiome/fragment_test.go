package cavebiome

import "testing"

func TestFragmentAcquireReleaseRoundTrip(t *testing.T) {
	fr := newFragment(FragmentPosition{})
	fr.refCount.Store(1)

	fr.acquire()
	if fr.refCount.Load() != 2 {
		t.Fatalf("refCount = %d, want 2", fr.refCount.Load())
	}
	fr.release()
	if fr.refCount.Load() != 1 {
		t.Fatalf("refCount = %d, want 1", fr.refCount.Load())
	}
	fr.release()
	if fr.refCount.Load() != 0 {
		t.Fatalf("refCount = %d, want 0", fr.refCount.Load())
	}
}

func TestFragmentReleaseUnderflowPanics(t *testing.T) {
	fr := newFragment(FragmentPosition{})
	fr.refCount.Store(0)
	defer func() {
		if recover() == nil {
			t.Fatal("release on a zero refcount did not panic")
		}
	}()
	fr.release()
}

func TestFragmentAcquireOnDeadPanics(t *testing.T) {
	fr := newFragment(FragmentPosition{})
	fr.refCount.Store(0)
	defer func() {
		if recover() == nil {
			t.Fatal("acquire on a dead fragment did not panic")
		}
	}()
	fr.acquire()
}

func TestFragmentSetAndGetBiomeRoundTrip(t *testing.T) {
	fr := newFragment(FragmentPosition{X: 2048, Y: -2048, Z: 0})
	b := &Biome{ID: "x"}
	fr.setBiome(128, 256, 1920, 1, b)
	if got := fr.biomeAt(128, 256, 1920, 1); got != b {
		t.Fatalf("biomeAt returned %v, want %v", got, b)
	}
	if got := fr.biomeAt(0, 0, 0, 0); got != nil {
		t.Fatalf("biomeAt on an unset cell returned %v, want nil", got)
	}
}

func TestFragmentOriginAndLocalCoords(t *testing.T) {
	r := vec3{X: -5000, Y: 4097, Z: 2048}
	origin := fragmentOrigin(r)
	if origin.X%fragSize != 0 || origin.Y%fragSize != 0 || origin.Z%fragSize != 0 {
		t.Fatalf("fragmentOrigin(%v) = %v, not fragSize-aligned", r, origin)
	}
	lx, ly, lz := localCoords(r, origin)
	if lx < 0 || lx >= fragSize || ly < 0 || ly >= fragSize || lz < 0 || lz >= fragSize {
		t.Fatalf("localCoords(%v, %v) = (%d,%d,%d), out of [0,fragSize)", r, origin, lx, ly, lz)
	}
}

func TestFloorDivNegative(t *testing.T) {
	cases := []struct{ a, b, want int32 }{
		{-1, 2048, -1},
		{-2048, 2048, -1},
		{-2049, 2048, -2},
		{2048, 2048, 1},
		{0, 2048, 0},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Fatalf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
