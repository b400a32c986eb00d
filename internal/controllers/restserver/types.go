package restserver

import "github.com/chrissnell/isstracker/internal/ephemeris"

// stateVectorResponse is the wire shape of a state vector. The epoch goes out
// in the feed's day-of-year form so it round-trips through the
// /epochs/{epoch} routes unchanged.
type stateVectorResponse struct {
	Epoch string  `json:"epoch" msgpack:"epoch"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Z     float64 `json:"z" msgpack:"z"`
	XDot  float64 `json:"x_dot" msgpack:"x_dot"`
	YDot  float64 `json:"y_dot" msgpack:"y_dot"`
	ZDot  float64 `json:"z_dot" msgpack:"z_dot"`
}

func toStateVectorResponse(sv ephemeris.StateVector) stateVectorResponse {
	return stateVectorResponse{
		Epoch: ephemeris.FormatEpoch(sv.Epoch),
		X:     sv.X,
		Y:     sv.Y,
		Z:     sv.Z,
		XDot:  sv.XDot,
		YDot:  sv.YDot,
		ZDot:  sv.ZDot,
	}
}

func toStateVectorResponses(vectors []ephemeris.StateVector) []stateVectorResponse {
	out := make([]stateVectorResponse, len(vectors))
	for i, sv := range vectors {
		out[i] = toStateVectorResponse(sv)
	}
	return out
}
