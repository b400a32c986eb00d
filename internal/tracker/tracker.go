// Package tracker composes the ephemeris store, kinematics, and external
// collaborators (clock, reverse geocoder) into the query façade the REST
// layer calls.
package tracker

import (
	"context"
	"time"

	"github.com/chrissnell/isstracker/internal/ephemeris"
	"github.com/chrissnell/isstracker/internal/metrics"
	"go.uber.org/zap"
)

// Clock supplies the current time. Injected so "now" queries are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// WallClock is the production Clock backed by the system clock.
type WallClock struct{}

// Now returns the current wall-clock time.
func (WallClock) Now() time.Time { return time.Now() }

// Geocoder resolves a latitude/longitude pair to a place name. An empty name
// with a nil error is a miss: the point is over water or an unpopulated area.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// Messages passed through in location results when no place name is
// available.
const (
	geolocationMissMessage        = "over an ocean or unpopulated area; no geolocation available"
	geolocationUnavailableMessage = "reverse geocoding is currently unavailable"
)

// ValueUnits is a measured quantity with its unit label.
type ValueUnits struct {
	Value float64 `json:"value" msgpack:"value"`
	Units string  `json:"units" msgpack:"units"`
}

// LocationResult is the derived sub-satellite location for one epoch.
type LocationResult struct {
	Latitude    float64    `json:"latitude" msgpack:"latitude"`
	Longitude   float64    `json:"longitude" msgpack:"longitude"`
	Altitude    ValueUnits `json:"altitude" msgpack:"altitude"`
	Geolocation string     `json:"geolocation" msgpack:"geolocation"`
}

// NowResult describes the state vector closest to the current time.
type NowResult struct {
	ClosestEpoch string         `json:"closest_epoch" msgpack:"closest_epoch"`
	Delay        ValueUnits     `json:"delay" msgpack:"delay"`
	Location     LocationResult `json:"location" msgpack:"location"`
	Speed        ValueUnits     `json:"speed" msgpack:"speed"`
}

// Service is the query façade over a single shared ephemeris store.
type Service struct {
	store    *ephemeris.Store
	clock    Clock
	geocoder Geocoder
	logger   *zap.SugaredLogger
}

// NewService creates the façade. geocoder may be nil when geocoding is
// disabled; every location result then carries the miss message.
func NewService(store *ephemeris.Store, clock Clock, geocoder Geocoder, logger *zap.SugaredLogger) *Service {
	return &Service{
		store:    store,
		clock:    clock,
		geocoder: geocoder,
		logger:   logger,
	}
}

// Load parses raw feed text and atomically replaces the store contents.
// On a parse failure the store keeps its prior contents.
func (s *Service) Load(raw string) error {
	series, err := ephemeris.Parse(raw)
	if err != nil {
		return err
	}
	s.store.Load(series)
	metrics.RecordLoad(s.store.Len())
	s.logger.Infow("trajectory data loaded", "vectors", s.store.Len())
	return nil
}

// Clear empties the store.
func (s *Service) Clear() {
	s.store.Reset()
	metrics.RecordLoad(0)
	s.logger.Info("trajectory data cleared")
}

// ConvertUnits converts the whole loaded series to the target unit system.
func (s *Service) ConvertUnits(target ephemeris.UnitSystem) error {
	return s.store.ConvertUnits(target)
}

// Units reports the unit system the series is currently expressed in.
func (s *Service) Units() ephemeris.UnitSystem {
	return s.store.Units()
}

// FullSeries returns a window of the loaded state vectors.
func (s *Service) FullSeries(limit, offset int) ([]ephemeris.StateVector, error) {
	return s.store.Slice(limit, offset)
}

// EpochList returns the epoch tokens for a window of the loaded series, in
// the feed's day-of-year form.
func (s *Service) EpochList(limit, offset int) ([]string, error) {
	vectors, err := s.store.Slice(limit, offset)
	if err != nil {
		return nil, err
	}
	epochs := make([]string, len(vectors))
	for i, sv := range vectors {
		epochs[i] = ephemeris.FormatEpoch(sv.Epoch)
	}
	return epochs, nil
}

// Record returns the state vector recorded exactly at the given epoch token.
func (s *Service) Record(epochToken string) (ephemeris.StateVector, error) {
	epoch, err := ephemeris.ParseEpoch(epochToken)
	if err != nil {
		return ephemeris.StateVector{}, err
	}
	return s.store.ByEpoch(epoch)
}

// SpeedAt returns the instantaneous speed at the given epoch token.
func (s *Service) SpeedAt(epochToken string) (ValueUnits, error) {
	sv, err := s.Record(epochToken)
	if err != nil {
		return ValueUnits{}, err
	}
	return ValueUnits{
		Value: ephemeris.Speed(sv),
		Units: s.store.Units().VelocityUnits(),
	}, nil
}

// Location returns the derived sub-satellite location at the given epoch
// token, including the reverse-geocoded place name.
func (s *Service) Location(ctx context.Context, epochToken string) (LocationResult, error) {
	sv, err := s.Record(epochToken)
	if err != nil {
		return LocationResult{}, err
	}
	return s.locationFor(ctx, sv)
}

// Header returns the feed header mapping.
func (s *Service) Header() map[string]string { return s.store.Header() }

// Metadata returns the feed metadata mapping.
func (s *Service) Metadata() map[string]string { return s.store.Metadata() }

// Comments returns the ordered feed comment lines.
func (s *Service) Comments() []string { return s.store.Comments() }

// Now returns the state vector nearest the current time along with the
// seconds of delay between that epoch and now, the derived speed, and the
// derived location. Delay is positive when the matched epoch is in the past.
func (s *Service) Now(ctx context.Context) (NowResult, error) {
	now := s.clock.Now()
	sv, err := s.store.NearestTo(now)
	if err != nil {
		return NowResult{}, err
	}

	location, err := s.locationFor(ctx, sv)
	if err != nil {
		return NowResult{}, err
	}

	return NowResult{
		ClosestEpoch: ephemeris.FormatEpoch(sv.Epoch),
		Delay: ValueUnits{
			Value: now.Sub(sv.Epoch).Seconds(),
			Units: "seconds",
		},
		Location: location,
		Speed: ValueUnits{
			Value: ephemeris.Speed(sv),
			Units: s.store.Units().VelocityUnits(),
		},
	}, nil
}

// locationFor derives the geodetic position for one vector and then resolves
// the place name. The store lock is never held here: the vector and unit
// system were copied out by the store accessors, so the geocoder's network
// round trip cannot block readers or writers.
func (s *Service) locationFor(ctx context.Context, sv ephemeris.StateVector) (LocationResult, error) {
	units := s.store.Units()
	pos, err := ephemeris.GeodeticPosition(sv, ephemeris.DefaultReferenceEpoch, units)
	if err != nil {
		return LocationResult{}, err
	}

	geolocation := geolocationMissMessage
	if s.geocoder != nil {
		name, err := s.geocoder.Reverse(ctx, pos.Latitude, pos.Longitude)
		switch {
		case err != nil:
			s.logger.Warnw("reverse geocoding failed", "error", err)
			geolocation = geolocationUnavailableMessage
		case name != "":
			geolocation = name
		}
	}

	return LocationResult{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		Altitude: ValueUnits{
			Value: pos.Altitude,
			Units: units.LengthUnits(),
		},
		Geolocation: geolocation,
	}, nil
}
