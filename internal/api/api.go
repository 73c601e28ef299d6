package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/henvic/geostore"
)

// maxBodySize for requests.
const maxBodySize = 1 << 20

// APIError response.
type APIError struct {
	HTTPCode int    `json:"http_code"`
	Message  string `json:"message"`
}

func (e APIError) Error() string {
	return e.Message
}

// Message response.
type Message struct {
	Message string `json:"message"`
}

// createRequest is the body of POST /geolocation.
type createRequest struct {
	IPOrURL string `json:"ip_or_url" validate:"required"`
}

// createHandler fetches the geolocation of an IP address or domain name and stores it.
func (s *Server) createHandler(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	err := dec.Decode(&req)
	if err == nil {
		// Only a single JSON value is accepted.
		if _, err = dec.Token(); err == io.EOF {
			err = nil
		} else if err == nil {
			err = errors.New("unexpected data after JSON body")
		}
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		s.metrics.lookup("bad_request")
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusRequestEntityTooLarge,
			Message:  "request body too large",
		})
		return
	case err != nil:
		s.metrics.lookup("bad_request")
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusBadRequest,
			Message:  "invalid JSON body",
		})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.metrics.lookup("bad_request")
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusBadRequest,
			Message:  "missing mandatory ip_or_url field",
		})
		return
	}

	loc, err := s.service.CreateGeolocation(r.Context(), req.IPOrURL)
	s.metrics.lookup(lookupOutcome(err))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.write(w, http.StatusOK, loc)
}

// getHandler returns a geolocation record by id or identifier, or all of them.
func (s *Server) getHandler(w http.ResponseWriter, r *http.Request) {
	var (
		query      = r.URL.Query()
		id         = query.Get("id")
		identifier = query.Get("ip_or_url")
	)

	switch {
	case id != "" && identifier != "":
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusBadRequest,
			Message:  "provide either id or ip_or_url, not both",
		})
	case id != "":
		n, ok := s.parseID(w, r, id)
		if !ok {
			return
		}
		loc, err := s.service.Geolocation(r.Context(), n)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.write(w, http.StatusOK, loc)
	case identifier != "":
		loc, err := s.service.GeolocationByIdentifier(r.Context(), identifier)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.write(w, http.StatusOK, loc)
	default:
		locs, err := s.service.Geolocations(r.Context())
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		s.write(w, http.StatusOK, locs)
	}
}

// deleteHandler removes a geolocation record.
func (s *Server) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseID(w, r, r.PathValue("id"))
	if !ok {
		return
	}
	if err := s.service.DeleteGeolocation(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	s.write(w, http.StatusOK, Message{Message: "Successfully deleted"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, Message{Message: "ok"})
}

// readyHandler checks if the database is reachable.
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusServiceUnavailable,
			Message:  "database unavailable",
		})
		return
	}
	s.write(w, http.StatusOK, Message{Message: "ready"})
}

func (s *Server) parseID(w http.ResponseWriter, r *http.Request, v string) (int64, bool) {
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusBadRequest,
			Message:  "id must be an integer",
		})
		return 0, false
	}
	return id, true
}

// handleError maps service errors to API errors.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return
	case errors.Is(err, geostore.ErrInvalidIdentifier):
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusBadRequest,
			Message:  "invalid IP address or URL",
		})
	case errors.Is(err, geostore.ErrNotFound):
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusNotFound,
			Message:  "data not found",
		})
	case errors.Is(err, geostore.ErrConflict):
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusConflict,
			Message:  "geolocation record already exists",
		})
	case errors.Is(err, geostore.ErrUpstream):
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusBadGateway,
			Message:  "geolocation API error or invalid response",
		})
	case errors.Is(err, geostore.ErrStorageIntegrity):
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusBadRequest,
			Message:  "database integrity error",
		})
	case errors.Is(err, geostore.ErrStorageUnavailable):
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusServiceUnavailable,
			Message:  "database connection error",
		})
	default:
		s.writeError(w, r, APIError{
			HTTPCode: http.StatusInternalServerError,
			Message:  http.StatusText(http.StatusInternalServerError),
		})
		s.log.LogAttrs(r.Context(), slog.LevelError, "internal server error", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, e APIError) {
	s.log.LogAttrs(r.Context(), slog.LevelDebug, "request failed",
		slog.Int("http_code", e.HTTPCode),
		slog.String("message", e.Message),
	)
	s.write(w, e.HTTPCode, e)
}

func (s *Server) write(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(v); err != nil {
		s.log.Debug("cannot write response", slog.Any("error", err))
	}
}

// lookupOutcome of a create request, for metrics.
func lookupOutcome(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, geostore.ErrInvalidIdentifier):
		return "invalid"
	case errors.Is(err, geostore.ErrConflict):
		return "conflict"
	case errors.Is(err, geostore.ErrUpstream):
		return "upstream_error"
	default:
		return "error"
	}
}
