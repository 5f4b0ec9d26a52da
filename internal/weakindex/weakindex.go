// Package weakindex tracks the client's view of which chunks already live on
// which node, keyed by the cheap 64-bit weak fingerprint. It never stores
// chunk bytes — only enough to drive the Announce/Verify/Ingest round and to
// reconstruct a file's manifest afterward.
package weakindex

import (
	"sync"
)

// StrongFP is the SHA-1 digest used to break weak_fp ties.
type StrongFP [20]byte

// Location names the node holding (or candidate to hold) a chunk.
type Location struct {
	NodeID   int32
	StrongFP StrongFP
}

// Index maps a weak_fp to every node that has confirmed holding a chunk with
// that weak_fp, keyed further by strong_fp since two distinct chunks can
// legally share a weak_fp.
type Index struct {
	mu    sync.RWMutex
	byFP  map[uint64][]Location
}

// New returns an empty Index.
func New() *Index {
	return &Index{byFP: make(map[uint64][]Location)}
}

// Candidates returns every known location for weak_fp, without regard to
// strong_fp. Callers must verify strong_fp equality before trusting a hit.
func (ix *Index) Candidates(weakFP uint64) []Location {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	existing := ix.byFP[weakFP]
	out := make([]Location, len(existing))
	copy(out, existing)
	return out
}

// Confirm records that nodeID holds a chunk with the given weak_fp and
// strong_fp, e.g. after a successful Verify phase. It is idempotent.
func (ix *Index) Confirm(weakFP uint64, loc Location) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, existing := range ix.byFP[weakFP] {
		if existing.NodeID == loc.NodeID && existing.StrongFP == loc.StrongFP {
			return
		}
	}
	ix.byFP[weakFP] = append(ix.byFP[weakFP], loc)
}

// Match looks for a location already confirmed under weakFP whose StrongFP
// matches. ok is false if no node is known to hold this exact chunk.
func (ix *Index) Match(weakFP uint64, strongFP StrongFP) (Location, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	for _, loc := range ix.byFP[weakFP] {
		if loc.StrongFP == strongFP {
			return loc, true
		}
	}
	return Location{}, false
}

// Size reports the number of distinct weak_fp buckets tracked.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.byFP)
}

// ManifestEntry is one reconstruction step: read Length bytes of chunk
// StrongFP/WeakFP from node NodeID to reproduce the bytes at Offset in the
// original file.
type ManifestEntry struct {
	Offset   int
	Length   int
	WeakFP   uint64
	StrongFP StrongFP
	NodeID   int32
}

// Manifest is the ordered recipe for rebuilding one file from chunks spread
// across the cluster. Entries must be contiguous and gapless: Entries[i].Offset
// + Entries[i].Length == Entries[i+1].Offset.
type Manifest struct {
	Entries []ManifestEntry
}

// Append adds the next entry to the manifest. It does not validate
// contiguity; callers build manifests in chunk order by construction.
func (m *Manifest) Append(e ManifestEntry) {
	m.Entries = append(m.Entries, e)
}

// TotalSize returns the reconstructed file length implied by the manifest.
func (m *Manifest) TotalSize() int64 {
	var total int64
	for _, e := range m.Entries {
		total += int64(e.Length)
	}
	return total
}

// NodeCounts tallies how many chunks are assigned to each node, used for
// reporting dedup/upload statistics after a round completes.
func (m *Manifest) NodeCounts() map[int32]int {
	counts := make(map[int32]int)
	for _, e := range m.Entries {
		counts[e.NodeID]++
	}
	return counts
}
