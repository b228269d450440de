package engine

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

func (f TTFlag) String() string {
	switch f {
	case TTExact:
		return "exact"
	case TTLower:
		return "lower"
	default:
		return "upper"
	}
}

type TTEntry struct {
	key        positionKey
	Depth      int
	Score      float64
	Flag       TTFlag
	BestMove   Move
	GenWritten uint32
	Valid      bool
}

// TranspositionTable is a bucketed cache of search results. Slots written
// before the last Clear are ignored by Probe and reused by Store. A nil
// table is valid and never hits.
//
// The table is not safe for concurrent use.
type TranspositionTable struct {
	mask    uint64
	buckets int
	entries []TTEntry
	gen     uint32
}

// NewTranspositionTable allocates size buckets (rounded up to a power of
// two) of the given width. A size of zero returns nil, which disables
// caching.
func NewTranspositionTable(size uint64, buckets int) *TranspositionTable {
	if size == 0 {
		return nil
	}
	if buckets <= 0 {
		buckets = 2
	}
	if (size & (size - 1)) != 0 {
		size = nextPowerOfTwo(size)
	}
	return &TranspositionTable{
		mask:    size - 1,
		buckets: buckets,
		entries: make([]TTEntry, int(size)*buckets),
		gen:     1,
	}
}

// Clear invalidates every entry in O(1) by starting a new generation. The
// slots are wiped only when the counter wraps.
func (tt *TranspositionTable) Clear() {
	if tt == nil {
		return
	}
	tt.gen++
	if tt.gen == 0 {
		for i := range tt.entries {
			tt.entries[i] = TTEntry{}
		}
		tt.gen = 1
	}
}

func (tt *TranspositionTable) Generation() uint32 {
	if tt == nil {
		return 0
	}
	return tt.gen
}

func (tt *TranspositionTable) bucketIndex(key positionKey) int {
	return int(key.hash()&tt.mask) * tt.buckets
}

func (tt *TranspositionTable) live(entry TTEntry) bool {
	return entry.Valid && entry.GenWritten == tt.gen
}

func (tt *TranspositionTable) Probe(b Board, mover PlayerColor) (TTEntry, bool) {
	if tt == nil {
		return TTEntry{}, false
	}
	key := keyFor(b, mover)
	start := tt.bucketIndex(key)
	for i := 0; i < tt.buckets; i++ {
		entry := tt.entries[start+i]
		if tt.live(entry) && entry.key == key {
			return entry, true
		}
	}
	return TTEntry{}, false
}

// Store records a search result. An existing entry for the same position is
// only overwritten by a search at least as deep. Otherwise an empty or stale
// slot is used, falling back to the shallowest entry in the bucket.
func (tt *TranspositionTable) Store(b Board, mover PlayerColor, depth int, score float64, flag TTFlag, best Move) bool {
	if tt == nil {
		return false
	}
	key := keyFor(b, mover)
	start := tt.bucketIndex(key)
	fresh := TTEntry{
		key:        key,
		Depth:      depth,
		Score:      score,
		Flag:       flag,
		BestMove:   best,
		GenWritten: tt.gen,
		Valid:      true,
	}

	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		entry := tt.entries[idx]
		if !tt.live(entry) || entry.key != key {
			continue
		}
		if entry.Depth > depth {
			return false
		}
		tt.entries[idx] = fresh
		return true
	}

	victim := -1
	for i := 0; i < tt.buckets; i++ {
		idx := start + i
		if !tt.live(tt.entries[idx]) {
			tt.entries[idx] = fresh
			return true
		}
		if victim == -1 || tt.entries[idx].Depth < tt.entries[victim].Depth {
			victim = idx
		}
	}
	tt.entries[victim] = fresh
	return true
}

// Count reports the entries written in the current generation.
func (tt *TranspositionTable) Count() int {
	if tt == nil {
		return 0
	}
	count := 0
	for i := range tt.entries {
		if tt.live(tt.entries[i]) {
			count++
		}
	}
	return count
}

func (tt *TranspositionTable) Capacity() int {
	if tt == nil {
		return 0
	}
	return len(tt.entries)
}

// ttFlagFor classifies a result against the window it was searched with.
func ttFlagFor(best, alphaOrig, betaOrig float64) TTFlag {
	switch {
	case best <= alphaOrig:
		return TTUpper
	case best >= betaOrig:
		return TTLower
	default:
		return TTExact
	}
}
