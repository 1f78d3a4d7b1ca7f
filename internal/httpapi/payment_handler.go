package httpapi

import (
	"net/http"

	"github.com/suhail1malik/EcommerceStore/internal/payment"
)

type PaymentHandler struct {
	gateway  payment.Gateway
	currency string
}

func NewPaymentHandler(gateway payment.Gateway, currency string) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, currency: currency}
}

// Config exposes what the hosted checkout widget needs. When the gateway is
// not configured the storefront shows payments as unavailable instead of the
// process having refused to start.
func (h *PaymentHandler) Config(w http.ResponseWriter, r *http.Request) {
	if !h.gateway.Available() {
		respondError(w, http.StatusServiceUnavailable, "payments_unavailable", "payments are currently unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"key_id":   h.gateway.KeyID(),
		"currency": h.currency,
	})
}
