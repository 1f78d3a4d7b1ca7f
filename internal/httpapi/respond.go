package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/suhail1malik/EcommerceStore/internal/auth"
	"github.com/suhail1malik/EcommerceStore/internal/catalog"
	"github.com/suhail1malik/EcommerceStore/internal/order"
	"github.com/suhail1malik/EcommerceStore/internal/payment"
	"github.com/suhail1malik/EcommerceStore/internal/repository"
	"github.com/suhail1malik/EcommerceStore/internal/review"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// handleServiceError maps domain sentinel errors onto HTTP statuses. Unknown
// errors become opaque 500s; the detail stays in the server log.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, order.ErrValidation),
		errors.Is(err, order.ErrTotalsMismatch),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, catalog.ErrInvalidPriceRange):
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, order.ErrInvalidSignature):
		respondError(w, http.StatusBadRequest, "invalid_signature", err.Error())
	case errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, review.ErrAlreadyReviewed),
		errors.Is(err, order.ErrNotPaid),
		errors.Is(err, order.ErrAlreadyDelivered),
		errors.Is(err, repository.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, order.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, payment.ErrGatewayUnavailable):
		respondError(w, http.StatusServiceUnavailable, "payments_unavailable", "payments are currently unavailable")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
