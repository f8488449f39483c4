package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bunfight/internal/common"
)

const maxBodyBytes = 1 << 20

type termResponse struct {
	Term string `json:"term"`
}

type entryPayload struct {
	Locality string `json:"locality"`
	Term     string `json:"term"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnknown):
		return http.StatusNotFound
	case errors.Is(err, common.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		s.logger.Error(r.Context(), err.Error())
		msg = common.ErrStoreUnavailable.Error()
	case http.StatusInternalServerError:
		s.logger.Error(r.Context(), err.Error())
		msg = common.ErrorInternal.Error()
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *HTTPServer) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "OK"})
}

// Lookup answers GET /bread?locality=<s>.
func (s *HTTPServer) Lookup(w http.ResponseWriter, r *http.Request) {
	term, err := s.bread.Lookup(r.Context(), r.URL.Query().Get("locality"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, termResponse{Term: term})
}

// Submit answers POST /bread with body {"locality","term"}.
func (s *HTTPServer) Submit(w http.ResponseWriter, r *http.Request) {
	var req entryPayload

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed JSON body"})
		return
	}

	e, err := s.bread.Submit(r.Context(), req.Locality, req.Term)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entryPayload{Locality: e.Locality, Term: e.Term})
}

// ListAll answers GET /bread/entries.
func (s *HTTPServer) ListAll(w http.ResponseWriter, r *http.Request) {
	all, err := s.bread.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]entryPayload, 0, len(all))
	for _, e := range all {
		out = append(out, entryPayload{Locality: e.Locality, Term: e.Term})
	}
	writeJSON(w, http.StatusOK, out)
}
