package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/counterbook/counterbook/internal/adapter/http/dto"
	"github.com/counterbook/counterbook/internal/adapter/http/middleware"
	"github.com/counterbook/counterbook/internal/domain"
)

// dateLayout is the wire format for date query parameters.
const dateLayout = "2006-01-02"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrVoucherNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateVoucher),
		errors.Is(err, domain.ErrVoucherCancelled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// applyAuthenticatedUser stamps the authenticated user's identity onto
// a posting context. The body-supplied identity only survives when the
// request carries no authenticated user.
func applyAuthenticatedUser(r *http.Request, pctx *domain.PostingContext) {
	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		pctx.UserID = user.ID
		pctx.Role = user.Role
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseBoolQuery parses a boolean query parameter, false when absent or
// malformed.
func parseBoolQuery(r *http.Request, key string) bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && b
}

// parseDateQuery parses a YYYY-MM-DD query parameter. The boolean
// reports whether the parameter was present and well-formed.
func parseDateQuery(r *http.Request, key string) (time.Time, bool) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, val)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
