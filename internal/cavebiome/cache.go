package cavebiome

import "sync"

// Set-associative cache geometry.
const (
	numSets = 256
	ways    = 8
)

// cacheSet is one set of up to `ways` fragments, ordered most-recently-used
// first, protected by its own mutex so lookups against different positions
// never contend with each other.
type cacheSet struct {
	mu      sync.Mutex
	entries []*Fragment // index 0 = most recently used
}

// FragmentCache is a set-associative, power-of-two-indexed cache of
// Fragments with LRU-within-set eviction, integrated with the Fragment
// refcount protocol.
type FragmentCache struct {
	sets [numSets]*cacheSet
}

// NewFragmentCache returns an empty cache.
func NewFragmentCache() *FragmentCache {
	fc := &FragmentCache{}
	for i := range fc.sets {
		fc.sets[i] = &cacheSet{}
	}
	return fc
}

// setFor picks the set a position belongs to, masking the low bits of a
// multiplicative hash since numSets is a power of two.
func (fc *FragmentCache) setFor(pos FragmentPosition) *cacheSet {
	h := uint64(uint32(pos.X))*0x9E3779B1 ^
		uint64(uint32(pos.Y))*0x85EBCA6B ^
		uint64(uint32(pos.Z))*0xC2B2AE35 ^
		uint64(uint32(pos.VoxelSize))*0x27D4EB2F
	h ^= h >> 29
	return fc.sets[h&(numSets-1)]
}

func (s *cacheSet) find(pos FragmentPosition) (*Fragment, int) {
	for i, fr := range s.entries {
		if fr.pos == pos {
			return fr, i
		}
	}
	return nil, -1
}

// promoteLocked moves the entry at index i to the MRU (front) position.
// Caller must hold s.mu.
func (s *cacheSet) promoteLocked(i int) {
	if i == 0 {
		return
	}
	fr := s.entries[i]
	copy(s.entries[1:i+1], s.entries[0:i])
	s.entries[0] = fr
}

// FindOrCreate looks up pos. On a hit it promotes the entry to MRU and
// calls onHit (which must add the caller's own reference) before returning
// it. On a miss it calls producer(pos) outside any lock; producer returns a
// fresh Fragment with refCount already at 1 (the cache's reference).
// FindOrCreate then rechecks for a concurrent winning insert, discarding
// the loser or inserting the winner at MRU and evicting the LRU slot if the
// set was full, then calls onHit on whichever fragment won.
func (fc *FragmentCache) FindOrCreate(pos FragmentPosition, producer func(FragmentPosition) *Fragment, onHit func(*Fragment)) *Fragment {
	set := fc.setFor(pos)

	set.mu.Lock()
	if fr, i := set.find(pos); fr != nil {
		set.promoteLocked(i)
		onHit(fr)
		set.mu.Unlock()
		return fr
	}
	set.mu.Unlock()

	fresh := producer(pos)

	set.mu.Lock()
	if fr, i := set.find(pos); fr != nil {
		// lost the race: discard ours
		set.promoteLocked(i)
		onHit(fr)
		set.mu.Unlock()
		fresh.release()
		return fr
	}

	set.entries = append(set.entries, nil)
	copy(set.entries[1:], set.entries[:len(set.entries)-1])
	set.entries[0] = fresh

	if len(set.entries) > ways {
		evicted := set.entries[len(set.entries)-1]
		set.entries = set.entries[:ways]
		evicted.release()
	}

	onHit(fresh)
	set.mu.Unlock()
	return fresh
}

// Clear releases the cache's own reference on every cached fragment and
// empties every set. Fragments still referenced by live Views survive
// until those Views are torn down.
func (fc *FragmentCache) Clear() {
	for _, set := range fc.sets {
		set.mu.Lock()
		entries := set.entries
		set.entries = nil
		set.mu.Unlock()

		for _, fr := range entries {
			fr.release()
		}
	}
}
