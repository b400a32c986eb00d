// Package ephemeris implements parsing, storage, and derivation for
// spacecraft trajectory (OEM) data: an ordered time series of state
// vectors plus the header, metadata, and comment blocks that accompany it.
package ephemeris

import "time"

// EpochLayout is the feed's timestamp format: day-of-year form with
// millisecond precision, e.g. "2024-052T12:00:00.000". All epochs are UTC.
const EpochLayout = "2006-002T15:04:05.000"

// UnitSystem identifies which unit convention a time series is expressed in.
type UnitSystem string

const (
	// SI is the feed's native system: kilometers and kilometers/second.
	SI UnitSystem = "SI"
	// USCS is the imperial-derived system: miles and miles/second.
	USCS UnitSystem = "USCS"
)

// kmToMi converts kilometers to miles. The same factor applies to km/s -> mi/s.
const kmToMi = 0.6213711922

// Mean Earth radius per unit system, used for altitude derivation.
const (
	meanEarthRadiusKm = 6371.0
	meanEarthRadiusMi = 3958.8
)

// LengthUnits returns the length unit label for the system ("km" or "mi").
func (u UnitSystem) LengthUnits() string {
	if u == USCS {
		return "mi"
	}
	return "km"
}

// VelocityUnits returns the velocity unit label for the system ("km/s" or "mi/s").
func (u UnitSystem) VelocityUnits() string {
	if u == USCS {
		return "mi/s"
	}
	return "km/s"
}

// Valid reports whether u is a recognized unit system.
func (u UnitSystem) Valid() bool {
	return u == SI || u == USCS
}

// StateVector is one sampled trajectory point: position and velocity at an
// epoch. Components are in the owning series' unit system. Immutable once
// parsed; no two vectors in a series share an epoch.
type StateVector struct {
	Epoch time.Time
	X     float64
	Y     float64
	Z     float64
	XDot  float64
	YDot  float64
	ZDot  float64
}

// FormatEpoch renders t in the feed's day-of-year layout.
func FormatEpoch(t time.Time) string {
	return t.UTC().Format(EpochLayout)
}

// TimeSeries is a parsed trajectory dataset: state vectors sorted strictly
// ascending by epoch, plus the accompanying header, metadata, and comments.
type TimeSeries struct {
	Header   map[string]string
	Metadata map[string]string
	Comments []string
	Vectors  []StateVector
}

// GeodeticPoint is a derived sub-satellite point. Latitude is in degrees
// [-90, 90], longitude in degrees [-180, 180). Altitude is in the length unit
// of the series the source vector came from.
type GeodeticPoint struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
}
