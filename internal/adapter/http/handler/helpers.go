package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

// maxBodyBytes bounds JSON request bodies. Imports have their own limit.
const maxBodyBytes = 1 << 20

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

// writeDomainError writes err with the status mapDomainError picks for it.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrLoanNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrBudgetNotFound),
		errors.Is(err, domain.ErrRuleNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrCategoryInUse),
		errors.Is(err, domain.ErrInitialBalanceLocked),
		errors.Is(err, domain.ErrMaterializationInProgress):
		return http.StatusConflict

	case errors.Is(err, domain.ErrSystemCategory):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrNegativeFee),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrTargetOnNonTransfer),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidFeeConfig),
		errors.Is(err, domain.ErrInvalidLoanType),
		errors.Is(err, domain.ErrInvalidCategoryName),
		errors.Is(err, domain.ErrInvalidFrequency),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidPeriod):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// pathParam returns an unescaped route parameter. Category names may contain
// spaces and arrive percent-encoded. chi routes on RawPath when it is set, so
// only then is the parameter still encoded; otherwise it was decoded once
// already and a literal '%' in the name must survive.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// parsePeriodQuery reads start and end. Both absent selects the current month.
func parsePeriodQuery(r *http.Request) (ledger.Period, error) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if (start == "") != (end == "") {
		return ledger.Period{}, fmt.Errorf("%w: start and end must be given together", domain.ErrInvalidPeriod)
	}
	return usecase.ParsePeriod(start, end)
}

// parseBoolQuery parses an optional boolean query parameter.
func parseBoolQuery(r *http.Request, key string) (*bool, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &b, nil
}

// parseDateQuery parses an optional ISO date query parameter.
func parseDateQuery(r *http.Request, key string) (*domain.Date, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(val)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidDate, key, err)
	}
	return &d, nil
}
