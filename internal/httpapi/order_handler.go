package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suhail1malik/EcommerceStore/internal/cart"
	"github.com/suhail1malik/EcommerceStore/internal/domain"
	"github.com/suhail1malik/EcommerceStore/internal/order"
)

type OrderHandler struct {
	orders *order.Service
	carts  *cart.Service
}

func NewOrderHandler(orders *order.Service, carts *cart.Service) *OrderHandler {
	return &OrderHandler{orders: orders, carts: carts}
}

type PlaceOrderRequestDTO struct {
	Items          []AddItemRequestDTO `json:"items"`
	ShippingAddr   ShippingAddressDTO  `json:"shipping_address"`
	PaymentMethod  string              `json:"payment_method"`
	Totals         *domain.Totals      `json:"totals,omitempty"`
	IdempotencyKey string              `json:"idempotency_key,omitempty"`
}

type ConfirmPaymentRequestDTO struct {
	GatewayOrderID string `json:"gateway_order_id"`
	PaymentID      string `json:"payment_id"`
	Signature      string `json:"signature"`
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
			Image:     it.Image,
		})
	}

	o, err := h.orders.PlaceOrder(r.Context(), id.UserID, order.CheckoutRequest{
		Items: items,
		ShippingAddr: domain.ShippingAddress{
			Address:    req.ShippingAddr.Address,
			City:       req.ShippingAddr.City,
			PostalCode: req.ShippingAddr.PostalCode,
			Country:    req.ShippingAddr.Country,
		},
		PaymentMethod:  req.PaymentMethod,
		Totals:         req.Totals,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// The cart served its purpose; clear the snapshot. The order exists
	// either way, so a failure here is logged, never surfaced.
	if _, err := h.carts.Clear(r.Context(), id.UserID); err != nil {
		log.Printf("failed to clear cart after checkout, user=%s order=%s: %v", id.UserID, o.ID, err)
	}

	respondJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "order_id"), id.UserID, id.IsAdmin)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())

	orders, err := h.orders.ListMine(r.Context(), id.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// CreateGatewayOrder registers the charge with the payment gateway and
// returns what the checkout widget needs.
func (h *OrderHandler) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	gwOrder, err := h.orders.CreateGatewayOrder(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, gwOrder)
}

func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.GatewayOrderID == "" || req.PaymentID == "" || req.Signature == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "payment verification data is incomplete")
		return
	}

	o, err := h.orders.ConfirmPayment(r.Context(), chi.URLParam(r, "order_id"), order.Confirmation{
		GatewayOrderID: req.GatewayOrderID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.MarkDelivered(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
