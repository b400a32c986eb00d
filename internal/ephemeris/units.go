package ephemeris

import "fmt"

// conversionFactor returns the multiplier applied to every position and
// velocity component when moving from one unit system to the other.
func conversionFactor(from, to UnitSystem) float64 {
	if from == SI && to == USCS {
		return kmToMi
	}
	return 1.0 / kmToMi
}

// ConvertUnits converts the whole series to the target unit system in place.
// Converting to the system already in effect is a no-op. The target is
// validated before any vector is touched, so an unknown system never leaves
// the series half-converted. Conversion is reversible to within
// floating-point rounding.
func (s *Store) ConvertUnits(target UnitSystem) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %q (use %q or %q)", ErrUnknownUnitSystem, string(target), SI, USCS)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.units == target {
		return nil
	}

	factor := conversionFactor(s.units, target)
	for i := range s.vectors {
		v := &s.vectors[i]
		v.X *= factor
		v.Y *= factor
		v.Z *= factor
		v.XDot *= factor
		v.YDot *= factor
		v.ZDot *= factor
	}
	s.units = target
	return nil
}
