package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// statusByCode maps domain error codes to HTTP statuses.
var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:          http.StatusBadRequest,
	model.ErrCodeInvalidRequest:       http.StatusBadRequest,
	model.ErrCodeEmptyCart:            http.StatusBadRequest,
	model.ErrCodeSessionIDRequired:    http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:      http.StatusBadRequest,
	model.ErrCodeProductNotFound:      http.StatusBadRequest,
	model.ErrCodeCartTooLarge:         http.StatusBadRequest,
	model.ErrCodeUnauthorised:         http.StatusUnauthorized,
	model.ErrCodePaymentNotCompleted:  http.StatusPaymentRequired,
	model.ErrCodeContentNotFound:      http.StatusNotFound,
	model.ErrCodeCartNotFound:         http.StatusNotFound,
	model.ErrCodeOrderNotFound:        http.StatusNotFound,
	model.ErrCodePriceChanged:         http.StatusConflict,
	model.ErrCodeInvalidOrderMetadata: http.StatusUnprocessableEntity,
	model.ErrCodePaymentUnavailable:   http.StatusServiceUnavailable,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Int("status", status).Msg(message)
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// writeServiceError writes a domain error with its mapped status. Any other
// error becomes a 500 carrying fallback, never the error text.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	if de, ok := model.AsDomainError(err); ok {
		status, known := statusByCode[de.Code]
		if !known {
			status = http.StatusBadRequest
		}
		writeError(w, status, de.Code, de.Message, logger)
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
}

// decodeJSON decodes a size-limited request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// pagination reads limit and offset query parameters. Zero means "use the default".
func pagination(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (limit, offset int, ok bool) {
	query := r.URL.Query()

	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid limit parameter", logger)
			return 0, 0, false
		}
		limit = v
	}

	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid offset parameter", logger)
			return 0, 0, false
		}
		offset = v
	}

	return limit, offset, true
}
