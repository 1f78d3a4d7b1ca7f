// Package payment talks to the hosted payment gateway and verifies its
// callback signatures.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

var (
	// ErrGatewayUnavailable is returned when the gateway is not configured or
	// the circuit breaker is open. Payments degrade, the process keeps serving.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	ErrGatewayRejected = errors.New("payment gateway rejected the request")
)

// GatewayOrder is the charge the gateway accepted, amount in minor units.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// Gateway creates charges with the payment provider. The order service
// defines what it needs; the razorpay-style client below implements it.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
	Available() bool
}

type Config struct {
	BaseURL  string
	KeyID    string
	Secret   string
	Currency string
	Timeout  time.Duration
}

type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*GatewayOrder]
}

// NewClient builds the gateway client. Missing credentials do not crash the
// process; the client reports unavailable and every call fails with
// ErrGatewayUnavailable.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com/v1"
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	if cfg.KeyID == "" || cfg.Secret == "" {
		log.Printf("WARNING: payment gateway keys not configured, payments will be unavailable")
	}

	breaker := gobreaker.NewCircuitBreaker[*GatewayOrder](gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
	})

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
	}
}

func (c *Client) Available() bool {
	return c.cfg.KeyID != "" && c.cfg.Secret != ""
}

func (c *Client) KeyID() string {
	return c.cfg.KeyID
}

func (c *Client) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	if !c.Available() {
		return false
	}
	return VerifySignature(gatewayOrderID, paymentID, signature, c.cfg.Secret)
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder registers the charge with the gateway. amountMinor is in the
// gateway's smallest denomination and derived server-side from the order's
// recomputed total, never taken from client input.
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error) {
	if !c.Available() {
		return nil, ErrGatewayUnavailable
	}
	if currency == "" {
		currency = c.cfg.Currency
	}
	if receipt == "" {
		receipt = fmt.Sprintf("rcpt_%d", time.Now().UnixMilli()%1e8)
	}

	order, err := c.breaker.Execute(func() (*GatewayOrder, error) {
		return c.createOrder(ctx, createOrderRequest{
			Amount:         amountMinor,
			Currency:       currency,
			Receipt:        receipt,
			PaymentCapture: 1,
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrGatewayUnavailable
		}
		return nil, err
	}
	return order, nil
}

func (c *Client) createOrder(ctx context.Context, body createOrderRequest) (*GatewayOrder, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal gateway request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build gateway request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.Secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrGatewayRejected, resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode gateway response failed: %w", err)
	}
	return &order, nil
}
