package offload

import (
	"errors"
	"net/http"
)

var (
	ErrOffloadDisabled   = errors.New("offloading is disabled")
	ErrInvalidMarker     = errors.New("invalid offload marker")
	ErrInvalidArgs       = errors.New("invalid engine arguments")
	ErrEngineNotFound    = errors.New("offload engine not found")
	ErrEngineUnavailable = errors.New("offload engine unavailable")
	ErrStreamsExhausted  = errors.New("no free stream slots")
)

var wellKnownErrors = map[error]int{
	ErrOffloadDisabled:   http.StatusServiceUnavailable,
	ErrInvalidMarker:     http.StatusBadRequest,
	ErrInvalidArgs:       http.StatusBadRequest,
	ErrEngineNotFound:    http.StatusInternalServerError,
	ErrEngineUnavailable: http.StatusBadGateway,
	ErrStreamsExhausted:  http.StatusServiceUnavailable,
}

// StatusCode returns the http status code reported for the given error.
func StatusCode(err error) int {
	for known, status := range wellKnownErrors {
		if errors.Is(err, known) {
			return status
		}
	}

	return http.StatusInternalServerError
}

// writeError writes a plain text error response for err.
func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusCode(err))
}
