package ephemeris

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Markers delimiting the metadata block in the feed text.
const (
	metaStartMarker = "META_START"
	metaStopMarker  = "META_STOP"
	commentPrefix   = "COMMENT"
)

type parseSection int

const (
	sectionHeader parseSection = iota
	sectionMetadata
	sectionBody
)

// Parse converts raw trajectory feed text into a TimeSeries.
//
// The feed is line-oriented: a header block of KEY = VALUE lines up to
// META_START, a metadata block of KEY = VALUE lines up to META_STOP, then a
// body of COMMENT lines and state vector lines. A state vector line is an
// epoch token followed by six numeric tokens (position X/Y/Z then velocity
// X_Dot/Y_Dot/Z_Dot). The body ends at a repeated META_STOP marker or at end
// of input. Lines are trimmed and blank lines skipped throughout.
//
// Numeric values are returned in the feed's native SI units (km, km/s).
func Parse(raw string) (*TimeSeries, error) {
	series := &TimeSeries{
		Header:   make(map[string]string),
		Metadata: make(map[string]string),
	}

	section := sectionHeader
	lineNum := 0

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

scan:
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch section {
		case sectionHeader:
			if line == metaStartMarker {
				section = sectionMetadata
				continue
			}
			parseKeyValue(line, series.Header)
		case sectionMetadata:
			if line == metaStopMarker {
				section = sectionBody
				continue
			}
			parseKeyValue(line, series.Metadata)
		case sectionBody:
			if line == metaStopMarker {
				// End-of-data marker: a second segment's metadata would
				// follow here, which this feed does not carry.
				break scan
			}
			if strings.HasPrefix(line, commentPrefix) {
				comment := strings.TrimSpace(strings.TrimPrefix(line, commentPrefix))
				series.Comments = append(series.Comments, comment)
				continue
			}
			sv, err := parseStateVector(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			series.Vectors = append(series.Vectors, sv)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading feed text: %w", err)
	}

	if len(series.Vectors) == 0 {
		return nil, ErrEmptyFeed
	}

	return series, nil
}

// parseKeyValue splits a "KEY = VALUE" line into the given map. Lines without
// a separator carry no data and are skipped.
func parseKeyValue(line string, into map[string]string) {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return
	}
	into[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
}

// parseStateVector parses one body line: epoch followed by six floats.
func parseStateVector(line string) (StateVector, error) {
	fields := strings.Fields(line)
	if len(fields) < 7 {
		return StateVector{}, fmt.Errorf("%w: got %d of 7 expected fields", ErrMalformedRecord, len(fields))
	}

	epoch, err := ParseEpoch(fields[0])
	if err != nil {
		return StateVector{}, err
	}

	var components [6]float64
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return StateVector{}, fmt.Errorf("%w: field %q is not numeric", ErrMalformedRecord, fields[i+1])
		}
		components[i] = v
	}

	return StateVector{
		Epoch: epoch,
		X:     components[0],
		Y:     components[1],
		Z:     components[2],
		XDot:  components[3],
		YDot:  components[4],
		ZDot:  components[5],
	}, nil
}

// ParseEpoch parses an epoch token in the feed's day-of-year layout into a
// UTC timestamp.
func ParseEpoch(token string) (time.Time, error) {
	t, err := time.ParseInLocation(EpochLayout, token, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match layout %s", ErrTimestampParse, token, EpochLayout)
	}
	return t, nil
}
