package restserver

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/chrissnell/isstracker/internal/ephemeris"
	"github.com/chrissnell/isstracker/internal/tracker"
	"github.com/chrissnell/isstracker/pkg/responseformat"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	service    *tracker.Service
	feedSource FeedSource
	formatter  *responseformat.Formatter
	logger     *zap.SugaredLogger
}

// NewHandlers creates a new handlers instance
func NewHandlers(service *tracker.Service, feedSource FeedSource, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{
		service:    service,
		feedSource: feedSource,
		formatter:  responseformat.NewFormatter(),
		logger:     logger,
	}
}

type errorResponse struct {
	Error string `json:"error" msgpack:"error"`
}

type successResponse struct {
	Success bool   `json:"success" msgpack:"success"`
	Message string `json:"message" msgpack:"message"`
}

// statusForError maps façade errors to HTTP status codes so the boundary can
// distinguish "not found" from "bad request".
func statusForError(err error) int {
	switch {
	case errors.Is(err, ephemeris.ErrEpochNotFound),
		errors.Is(err, ephemeris.ErrEmptySeries):
		return http.StatusNotFound
	case errors.Is(err, ephemeris.ErrInvalidRange),
		errors.Is(err, ephemeris.ErrTimestampParse),
		errors.Is(err, ephemeris.ErrUnknownUnitSystem):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, err error) {
	h.formatter.WriteResponse(w, req, statusForError(err), errorResponse{Error: err.Error()})
}

func (h *Handlers) writeOK(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, http.StatusOK, data); err != nil {
		h.logger.Errorf("error writing response: %v", err)
	}
}

// parseWindow extracts the optional limit/offset query parameters. Absent
// parameters mean "everything from the start". Non-integer values are a bad
// request; negative values are rejected downstream by the store.
func parseWindow(req *http.Request) (limit, offset int, err error) {
	limit = math.MaxInt32
	offset = 0

	if raw := req.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: limit must be an integer", ephemeris.ErrInvalidRange)
		}
	}
	if raw := req.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: offset must be an integer", ephemeris.ErrInvalidRange)
		}
	}
	return limit, offset, nil
}

// GetFullSeries handles GET / and returns a window of the loaded state vectors.
func (h *Handlers) GetFullSeries(w http.ResponseWriter, req *http.Request) {
	limit, offset, err := parseWindow(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	vectors, err := h.service.FullSeries(limit, offset)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeOK(w, req, toStateVectorResponses(vectors))
}

// GetEpochs handles GET /epochs and returns a window of epoch tokens.
func (h *Handlers) GetEpochs(w http.ResponseWriter, req *http.Request) {
	limit, offset, err := parseWindow(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	epochs, err := h.service.EpochList(limit, offset)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeOK(w, req, epochs)
}

// GetStateVector handles GET /epochs/{epoch}.
func (h *Handlers) GetStateVector(w http.ResponseWriter, req *http.Request) {
	sv, err := h.service.Record(mux.Vars(req)["epoch"])
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeOK(w, req, toStateVectorResponse(sv))
}

// GetSpeed handles GET /epochs/{epoch}/speed.
func (h *Handlers) GetSpeed(w http.ResponseWriter, req *http.Request) {
	speed, err := h.service.SpeedAt(mux.Vars(req)["epoch"])
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeOK(w, req, speed)
}

// GetLocation handles GET /epochs/{epoch}/location.
func (h *Handlers) GetLocation(w http.ResponseWriter, req *http.Request) {
	location, err := h.service.Location(req.Context(), mux.Vars(req)["epoch"])
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeOK(w, req, location)
}

// GetNow handles GET /now.
func (h *Handlers) GetNow(w http.ResponseWriter, req *http.Request) {
	now, err := h.service.Now(req.Context())
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeOK(w, req, now)
}

// GetHeader handles GET /header.
func (h *Handlers) GetHeader(w http.ResponseWriter, req *http.Request) {
	h.writeOK(w, req, h.service.Header())
}

// GetMetadata handles GET /metadata.
func (h *Handlers) GetMetadata(w http.ResponseWriter, req *http.Request) {
	h.writeOK(w, req, h.service.Metadata())
}

// GetComments handles GET /comment.
func (h *Handlers) GetComments(w http.ResponseWriter, req *http.Request) {
	h.writeOK(w, req, h.service.Comments())
}

// ConvertUnits handles PUT /convert?units=SI|USCS.
func (h *Handlers) ConvertUnits(w http.ResponseWriter, req *http.Request) {
	target := req.URL.Query().Get("units")
	if target == "" {
		h.writeError(w, req, fmt.Errorf("%w: the units query parameter is required", ephemeris.ErrUnknownUnitSystem))
		return
	}

	if err := h.service.ConvertUnits(ephemeris.UnitSystem(target)); err != nil {
		h.writeError(w, req, err)
		return
	}
	h.writeOK(w, req, successResponse{
		Success: true,
		Message: fmt.Sprintf("data is now in %s units", target),
	})
}

// ReloadData handles POST /post-data: refetch the feed and replace the store.
func (h *Handlers) ReloadData(w http.ResponseWriter, req *http.Request) {
	raw, err := h.feedSource.Fetch(req.Context())
	if err != nil {
		h.logger.Errorf("feed fetch failed: %v", err)
		h.formatter.WriteResponse(w, req, http.StatusBadGateway, errorResponse{Error: "unable to retrieve trajectory feed"})
		return
	}

	if err := h.service.Load(raw); err != nil {
		h.logger.Errorf("feed parse failed: %v", err)
		h.formatter.WriteResponse(w, req, http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("unable to parse trajectory feed: %v", err)})
		return
	}

	h.writeOK(w, req, successResponse{Success: true, Message: "data restored"})
}

// DeleteData handles DELETE /delete-data.
func (h *Handlers) DeleteData(w http.ResponseWriter, req *http.Request) {
	h.service.Clear()
	h.writeOK(w, req, successResponse{Success: true, Message: "data deleted"})
}

const helpText = `ISS TRACKER API

ROUTE                          METHOD   DESCRIPTION
====================================================================================
/                              GET      Full list of state vectors (?limit=&offset=)
/epochs                        GET      List of epochs (?limit=&offset=)
/epochs/{epoch}                GET      State vector at an exact epoch
/epochs/{epoch}/speed          GET      Instantaneous speed at an epoch
/epochs/{epoch}/location       GET      Sub-satellite latitude, longitude, altitude, geolocation
/now                           GET      State vector nearest the current time, with speed and location
/header                        GET      Feed header key/value pairs
/metadata                      GET      Feed metadata key/value pairs
/comment                       GET      Feed comment lines
/convert?units=SI|USCS         PUT      Convert the loaded data between unit systems
/post-data                     POST     Refetch the feed and reload the data
/delete-data                   DELETE   Delete all loaded data
/metrics                       GET      Prometheus metrics
/help                          GET      This text

Epochs use the feed's day-of-year form, e.g. 2024-052T12:04:00.000.
Append ?format=msgpack to any JSON route for MessagePack output.
`

// GetHelp handles GET /help with a plain-text route listing.
func (h *Handlers) GetHelp(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(helpText))
}
