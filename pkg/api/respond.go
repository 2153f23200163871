package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/cliptower/pkg/errors"
)

// maxBody bounds request bodies.
const maxBody = 8 << 20

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTimeline,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeItemNotFound,
		errors.ErrCodeTrackNotFound, errors.ErrCodeDocumentNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		if code == "" {
			code = errors.ErrCodeInternal
			msg = "internal error"
		}
	}
	s.writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}
