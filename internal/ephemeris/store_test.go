package ephemeris

import (
	"errors"
	"testing"
	"time"
)

// fiveVectorSeries builds a series with five vectors spaced four minutes
// apart starting at base, with recognizable component values.
func fiveVectorSeries(base time.Time) *TimeSeries {
	series := &TimeSeries{
		Header:   map[string]string{"ORIGINATOR": "NASA/JSC"},
		Metadata: map[string]string{"OBJECT_NAME": "ISS"},
		Comments: []string{"test data"},
	}
	for i := 0; i < 5; i++ {
		series.Vectors = append(series.Vectors, StateVector{
			Epoch: base.Add(time.Duration(i) * 4 * time.Minute),
			X:     float64(i),
			XDot:  float64(i) / 10,
		})
	}
	return series
}

func TestSliceBounds(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load(fiveVectorSeries(base))

	tests := []struct {
		name    string
		limit   int
		offset  int
		wantLen int
		wantErr error
	}{
		{name: "first three", limit: 3, offset: 0, wantLen: 3},
		{name: "middle", limit: 2, offset: 2, wantLen: 2},
		{name: "limit past end", limit: 10, offset: 3, wantLen: 2},
		{name: "offset past end", limit: 10, offset: 10, wantLen: 0},
		{name: "offset at end", limit: 1, offset: 5, wantLen: 0},
		{name: "zero limit", limit: 0, offset: 0, wantLen: 0},
		{name: "negative limit", limit: -1, offset: 0, wantErr: ErrInvalidRange},
		{name: "negative offset", limit: 1, offset: -2, wantErr: ErrInvalidRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.Slice(tc.limit, tc.offset)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Slice error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}
			if len(got) != tc.wantLen {
				t.Fatalf("Slice returned %d vectors, want %d", len(got), tc.wantLen)
			}
			for i, sv := range got {
				if want := float64(tc.offset + i); sv.X != want {
					t.Errorf("vector %d has X = %v, want %v (order must be preserved)", i, sv.X, want)
				}
			}
		})
	}
}

func TestNearestToMatchesLinearScan(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	series := fiveVectorSeries(base)
	store.Load(series)

	probes := []time.Time{
		base.Add(-time.Hour),             // before the first epoch
		base,                             // exactly on an epoch
		base.Add(90 * time.Second),       // closer to the first
		base.Add(3 * time.Minute),        // closer to the second
		base.Add(5 * time.Minute),        // irregular in-between
		base.Add(11 * time.Minute),       // closer to the fourth
		base.Add(16*time.Minute + 1),     // just past the last
		base.Add(24 * time.Hour),         // far past the last
		base.Add(7*time.Minute + 59*time.Second),
	}

	for _, probe := range probes {
		want := series.Vectors[0]
		best := absDuration(want.Epoch.Sub(probe))
		for _, sv := range series.Vectors[1:] {
			if d := absDuration(sv.Epoch.Sub(probe)); d < best {
				best = d
				want = sv
			}
		}

		got, err := store.NearestTo(probe)
		if err != nil {
			t.Fatalf("NearestTo(%v) returned error: %v", probe, err)
		}
		if !got.Epoch.Equal(want.Epoch) {
			t.Errorf("NearestTo(%v) = %v, linear scan found %v", probe, got.Epoch, want.Epoch)
		}
	}
}

func TestNearestToTieBreaksEarlier(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load(fiveVectorSeries(base))

	// Exactly halfway between the first two epochs.
	got, err := store.NearestTo(base.Add(2 * time.Minute))
	if err != nil {
		t.Fatalf("NearestTo returned error: %v", err)
	}
	if !got.Epoch.Equal(base) {
		t.Errorf("tie resolved to %v, want the earlier epoch %v", got.Epoch, base)
	}
}

func TestNearestToEmptySeries(t *testing.T) {
	store := NewStore()
	if _, err := store.NearestTo(time.Now()); !errors.Is(err, ErrEmptySeries) {
		t.Errorf("NearestTo on empty store = %v, want ErrEmptySeries", err)
	}
}

func TestByEpoch(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	series := fiveVectorSeries(base)
	store.Load(series)

	for _, sv := range series.Vectors {
		got, err := store.ByEpoch(sv.Epoch)
		if err != nil {
			t.Fatalf("ByEpoch(%v) returned error: %v", sv.Epoch, err)
		}
		if !got.Epoch.Equal(sv.Epoch) || got.X != sv.X {
			t.Errorf("ByEpoch(%v) = %+v, want %+v", sv.Epoch, got, sv)
		}
	}

	if _, err := store.ByEpoch(base.Add(time.Second)); !errors.Is(err, ErrEpochNotFound) {
		t.Errorf("ByEpoch for absent epoch = %v, want ErrEpochNotFound", err)
	}
}

func TestLoadSortsVectors(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	series := &TimeSeries{
		Vectors: []StateVector{
			{Epoch: base.Add(8 * time.Minute)},
			{Epoch: base},
			{Epoch: base.Add(4 * time.Minute)},
		},
	}
	store := NewStore()
	store.Load(series)

	got, err := store.Slice(3, 0)
	if err != nil {
		t.Fatalf("Slice returned error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Epoch.Before(got[i].Epoch) {
			t.Fatalf("vectors not sorted ascending: %v before %v", got[i-1].Epoch, got[i].Epoch)
		}
	}
}

func TestResetEmptiesEverything(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load(fiveVectorSeries(base))

	store.Reset()

	if store.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", store.Len())
	}
	if len(store.Header()) != 0 {
		t.Errorf("Header after Reset = %v, want empty", store.Header())
	}
	if len(store.Metadata()) != 0 {
		t.Errorf("Metadata after Reset = %v, want empty", store.Metadata())
	}
	if len(store.Comments()) != 0 {
		t.Errorf("Comments after Reset = %v, want empty", store.Comments())
	}
	if store.Units() != SI {
		t.Errorf("Units after Reset = %v, want SI", store.Units())
	}
}

func TestLoadReplacesWholesale(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load(fiveVectorSeries(base))

	if err := store.ConvertUnits(USCS); err != nil {
		t.Fatalf("ConvertUnits returned error: %v", err)
	}

	replacement := &TimeSeries{
		Header:  map[string]string{"ORIGINATOR": "ELSEWHERE"},
		Vectors: []StateVector{{Epoch: base.Add(time.Hour), X: 42}},
	}
	store.Load(replacement)

	if store.Len() != 1 {
		t.Errorf("Len after reload = %d, want 1", store.Len())
	}
	if store.Units() != SI {
		t.Errorf("Units after reload = %v, want SI (load must reset units)", store.Units())
	}
	if got := store.Header()["ORIGINATOR"]; got != "ELSEWHERE" {
		t.Errorf("header not replaced: ORIGINATOR = %q", got)
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
