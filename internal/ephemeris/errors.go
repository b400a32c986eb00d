package ephemeris

import "errors"

// Parse-time errors. A failed parse aborts the load; the store keeps its
// prior contents.
var (
	// ErrMalformedRecord indicates a state vector line with too few tokens
	// or a numeric token that does not parse.
	ErrMalformedRecord = errors.New("malformed state vector record")

	// ErrTimestampParse indicates an epoch token that does not match the
	// feed's day-of-year timestamp layout.
	ErrTimestampParse = errors.New("unparseable epoch timestamp")

	// ErrEmptyFeed indicates feed text containing no state vectors at all.
	ErrEmptyFeed = errors.New("feed contains no state vectors")
)

// Query-time errors.
var (
	// ErrInvalidRange indicates a negative limit or offset.
	ErrInvalidRange = errors.New("limit and offset must not be negative")

	// ErrEpochNotFound indicates an exact-match lookup for an epoch that is
	// not present in the series.
	ErrEpochNotFound = errors.New("no state vector recorded at epoch")

	// ErrEmptySeries indicates a lookup against a series with no vectors.
	ErrEmptySeries = errors.New("time series is empty")
)

// ErrUnknownUnitSystem indicates a conversion target outside {SI, USCS}.
var ErrUnknownUnitSystem = errors.New("unknown unit system")

// ErrDegenerateVector indicates a zero-magnitude position vector, for which
// latitude and longitude are undefined.
var ErrDegenerateVector = errors.New("degenerate position vector")
