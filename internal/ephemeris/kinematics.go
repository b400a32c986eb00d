package ephemeris

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// The feed expresses positions in an Earth-centered inertial frame, so the
// sub-satellite longitude has to back out the rotation the Earth has
// accumulated since the frame's zero-rotation instant. One sidereal day is
// 23h56m04.0905s.
const (
	siderealDaySeconds     = 86164.0905
	earthRotationDegPerSec = 360.0 / siderealDaySeconds

	// Greenwich mean sidereal angle at the J2000 epoch, degrees.
	gmstAtJ2000Deg = 280.46061837
)

var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// DefaultReferenceEpoch is the instant the prime meridian was aligned with
// the inertial frame's X axis, derived from the Greenwich sidereal angle at
// J2000. Passing it as the reference to GeodeticPosition yields the standard
// linear sidereal-angle approximation.
var gmstOffsetSeconds float64 = gmstAtJ2000Deg / earthRotationDegPerSec

var DefaultReferenceEpoch = j2000.Add(-time.Duration(gmstOffsetSeconds * float64(time.Second)))

// Speed returns the Euclidean norm of the velocity components, in the
// velocity unit of the series the vector came from.
func Speed(sv StateVector) float64 {
	return floats.Norm([]float64{sv.XDot, sv.YDot, sv.ZDot}, 2)
}

// GeodeticPosition derives the sub-satellite latitude, longitude, and
// altitude from a state vector whose position is expressed in an
// Earth-centered inertial frame with zero rotation at reference.
//
// Latitude is asin(Z/r) in degrees. Longitude is atan2(Y, X) in degrees minus
// the Earth rotation accumulated between reference and the vector's epoch,
// normalized to [-180, 180). Altitude is r minus the mean Earth radius for
// units; the angular math is unit-independent. Returns ErrDegenerateVector
// for a zero-magnitude position.
func GeodeticPosition(sv StateVector, reference time.Time, units UnitSystem) (GeodeticPoint, error) {
	r := floats.Norm([]float64{sv.X, sv.Y, sv.Z}, 2)
	if r == 0 {
		return GeodeticPoint{}, ErrDegenerateVector
	}

	latitude := radToDeg(math.Asin(sv.Z / r))

	rotation := earthRotationDegPerSec * sv.Epoch.Sub(reference).Seconds()
	longitude := normalizeLongitude(radToDeg(math.Atan2(sv.Y, sv.X)) - rotation)

	radius := meanEarthRadiusKm
	if units == USCS {
		radius = meanEarthRadiusMi
	}

	return GeodeticPoint{
		Latitude:  latitude,
		Longitude: longitude,
		Altitude:  r - radius,
	}, nil
}

// normalizeLongitude wraps degrees into the canonical [-180, 180) range.
func normalizeLongitude(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < -180 {
		deg += 360
	} else if deg >= 180 {
		deg -= 360
	}
	return deg
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
