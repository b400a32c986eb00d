package ephemeris

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestConvertRoundTrip(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	series := &TimeSeries{
		Vectors: []StateVector{
			{Epoch: base, X: -4945.2, Y: 3625.1, Z: -2944.4, XDot: -3.5, YDot: -5.8, ZDot: -1.2},
			{Epoch: base.Add(4 * time.Minute), X: -5598.1, Y: 2166.8, Z: -3238.4, XDot: -1.9, YDot: -6.3, ZDot: -1.1},
		},
	}
	store := NewStore()
	store.Load(series)

	originals, err := store.Slice(store.Len(), 0)
	if err != nil {
		t.Fatalf("Slice returned error: %v", err)
	}

	if err := store.ConvertUnits(USCS); err != nil {
		t.Fatalf("ConvertUnits(USCS) returned error: %v", err)
	}
	if store.Units() != USCS {
		t.Fatalf("Units = %v, want USCS", store.Units())
	}
	if err := store.ConvertUnits(SI); err != nil {
		t.Fatalf("ConvertUnits(SI) returned error: %v", err)
	}
	if store.Units() != SI {
		t.Fatalf("Units = %v, want SI", store.Units())
	}

	roundTripped, err := store.Slice(store.Len(), 0)
	if err != nil {
		t.Fatalf("Slice returned error: %v", err)
	}

	const relTol = 1e-6
	for i := range originals {
		pairs := [][2]float64{
			{originals[i].X, roundTripped[i].X},
			{originals[i].Y, roundTripped[i].Y},
			{originals[i].Z, roundTripped[i].Z},
			{originals[i].XDot, roundTripped[i].XDot},
			{originals[i].YDot, roundTripped[i].YDot},
			{originals[i].ZDot, roundTripped[i].ZDot},
		}
		for _, p := range pairs {
			if rel := math.Abs(p[1]-p[0]) / math.Abs(p[0]); rel > relTol {
				t.Errorf("round trip drifted: %v -> %v (relative error %g)", p[0], p[1], rel)
			}
		}
	}
}

func TestConvertAppliesFactor(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load(&TimeSeries{Vectors: []StateVector{
		{Epoch: base, X: 100, Y: 200, Z: 300, XDot: 1, YDot: 2, ZDot: 3},
	}})

	if err := store.ConvertUnits(USCS); err != nil {
		t.Fatalf("ConvertUnits returned error: %v", err)
	}

	got, err := store.ByEpoch(base)
	if err != nil {
		t.Fatalf("ByEpoch returned error: %v", err)
	}
	if math.Abs(got.X-62.13711922) > 1e-9 {
		t.Errorf("X = %v, want 62.13711922", got.X)
	}
	if math.Abs(got.ZDot-3*0.6213711922) > 1e-9 {
		t.Errorf("ZDot = %v, want %v", got.ZDot, 3*0.6213711922)
	}
}

func TestConvertSameSystemIsNoOp(t *testing.T) {
	base := time.Date(2024, time.February, 21, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load(&TimeSeries{Vectors: []StateVector{{Epoch: base, X: 123.456}}})

	if err := store.ConvertUnits(SI); err != nil {
		t.Fatalf("ConvertUnits returned error: %v", err)
	}
	got, err := store.ByEpoch(base)
	if err != nil {
		t.Fatalf("ByEpoch returned error: %v", err)
	}
	if got.X != 123.456 {
		t.Errorf("X = %v, want 123.456 exactly (no-op conversion must not touch values)", got.X)
	}
}

func TestConvertUnknownSystem(t *testing.T) {
	store := NewStore()
	store.Load(&TimeSeries{Vectors: []StateVector{{X: 1}}})

	err := store.ConvertUnits(UnitSystem("METRIC"))
	if !errors.Is(err, ErrUnknownUnitSystem) {
		t.Fatalf("ConvertUnits error = %v, want ErrUnknownUnitSystem", err)
	}
	if store.Units() != SI {
		t.Errorf("Units changed to %v after failed conversion, want SI", store.Units())
	}
}

func TestUnitLabels(t *testing.T) {
	if SI.LengthUnits() != "km" || SI.VelocityUnits() != "km/s" {
		t.Errorf("SI labels = %q/%q", SI.LengthUnits(), SI.VelocityUnits())
	}
	if USCS.LengthUnits() != "mi" || USCS.VelocityUnits() != "mi/s" {
		t.Errorf("USCS labels = %q/%q", USCS.LengthUnits(), USCS.VelocityUnits())
	}
}
