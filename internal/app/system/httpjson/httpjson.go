// Package httpjson renders JSON responses and maps apperr kinds to HTTP
// status codes. All handler output funnels through here so the error
// contract stays uniform across features.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/voluntree/voluntree/internal/app/system/apperr"
	"go.uber.org/zap"
)

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error classifies err and writes the matching status and envelope.
// Unclassified errors become 500s and are logged at error level; classified
// infrastructure errors are logged too since they indicate store trouble.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	status, name := statusFor(kind)

	switch kind {
	case apperr.KindInfrastructure:
		log.Error("store unavailable", zap.Error(err))
	case apperr.KindUnknown:
		log.Error("unclassified handler error", zap.Error(err))
	}

	Respond(w, status, errorBody{Error: apperr.Message(err), Kind: name})
}

func statusFor(kind apperr.Kind) (int, string) {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest, "validation"
	case apperr.KindNotFound:
		return http.StatusNotFound, "not_found"
	case apperr.KindPermission:
		return http.StatusForbidden, "permission_denied"
	case apperr.KindConstraint:
		return http.StatusConflict, "constraint_violation"
	case apperr.KindInfrastructure:
		return http.StatusServiceUnavailable, "infrastructure"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// Decode reads a JSON request body into dst, returning a validation error
// on malformed input.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("malformed JSON body")
	}
	return nil
}
