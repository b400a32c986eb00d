package ephemeris

import (
	"sort"
	"sync"
	"time"
)

// Store owns the currently loaded time series. A single Store instance is
// shared by all query handlers: reads run concurrently under the read lock,
// while Load, Reset, and ConvertUnits take the write lock so no reader ever
// observes a partially mutated series.
type Store struct {
	mu       sync.RWMutex
	header   map[string]string
	metadata map[string]string
	comments []string
	vectors  []StateVector
	units    UnitSystem
}

// NewStore returns an empty store in SI units.
func NewStore() *Store {
	return &Store{units: SI}
}

// Load replaces the store contents wholesale with a parsed series and resets
// the unit system to SI, the feed's native system. Vectors are sorted
// ascending by epoch to establish the ordering invariant the lookups rely on.
func (s *Store) Load(series *TimeSeries) {
	vectors := make([]StateVector, len(series.Vectors))
	copy(vectors, series.Vectors)
	sort.Slice(vectors, func(i, j int) bool {
		return vectors[i].Epoch.Before(vectors[j].Epoch)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.header = copyMap(series.Header)
	s.metadata = copyMap(series.Metadata)
	s.comments = append([]string(nil), series.Comments...)
	s.vectors = vectors
	s.units = SI
}

// Reset empties the header, metadata, comments, and vectors, returning the
// store to its initial state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header = nil
	s.metadata = nil
	s.comments = nil
	s.vectors = nil
	s.units = SI
}

// Slice returns a copy of the contiguous sub-sequence starting at offset with
// at most limit elements. An offset at or past the end yields an empty slice,
// not an error. Negative limit or offset yields ErrInvalidRange.
func (s *Store) Slice(limit, offset int) ([]StateVector, error) {
	if limit < 0 || offset < 0 {
		return nil, ErrInvalidRange
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset >= len(s.vectors) {
		return []StateVector{}, nil
	}
	end := offset + limit
	if end > len(s.vectors) || end < offset {
		// end < offset guards against overflow of offset+limit
		end = len(s.vectors)
	}
	out := make([]StateVector, end-offset)
	copy(out, s.vectors[offset:end])
	return out, nil
}

// NearestTo returns the state vector whose epoch minimizes the absolute time
// difference to t, preferring the earlier epoch on a tie. Timestamps before
// the first or after the last epoch clamp to the boundary vector. Returns
// ErrEmptySeries when nothing is loaded.
//
// Epochs are recorded at irregular intervals, so this is a binary search over
// the sorted epochs followed by a predecessor/successor comparison rather
// than any fixed-spacing arithmetic.
func (s *Store) NearestTo(t time.Time) (StateVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 {
		return StateVector{}, ErrEmptySeries
	}

	// First index whose epoch is >= t.
	idx := sort.Search(len(s.vectors), func(i int) bool {
		return !s.vectors[i].Epoch.Before(t)
	})

	switch idx {
	case 0:
		return s.vectors[0], nil
	case len(s.vectors):
		return s.vectors[len(s.vectors)-1], nil
	}

	before := s.vectors[idx-1]
	after := s.vectors[idx]
	if t.Sub(before.Epoch) <= after.Epoch.Sub(t) {
		return before, nil
	}
	return after, nil
}

// ByEpoch returns the state vector recorded exactly at epoch, or
// ErrEpochNotFound if no vector carries that epoch.
func (s *Store) ByEpoch(epoch time.Time) (StateVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := sort.Search(len(s.vectors), func(i int) bool {
		return !s.vectors[i].Epoch.Before(epoch)
	})
	if idx < len(s.vectors) && s.vectors[idx].Epoch.Equal(epoch) {
		return s.vectors[idx], nil
	}
	return StateVector{}, ErrEpochNotFound
}

// Len returns the number of loaded state vectors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// Units returns the unit system the series is currently expressed in.
func (s *Store) Units() UnitSystem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.units
}

// Header returns a copy of the feed header mapping.
func (s *Store) Header() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.header)
}

// Metadata returns a copy of the feed metadata mapping.
func (s *Store) Metadata() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.metadata)
}

// Comments returns a copy of the ordered feed comment lines.
func (s *Store) Comments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.comments...)
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
