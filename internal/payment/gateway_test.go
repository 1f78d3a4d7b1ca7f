package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	sig := signed("order_abc", "pay_xyz", "secret")

	assert.True(t, VerifySignature("order_abc", "pay_xyz", sig, "secret"))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", sig, "other-secret"))
	assert.False(t, VerifySignature("order_abc", "pay_other", sig, "secret"))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "tampered", "secret"))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "", "secret"))
}

func TestClientCreateOrder(t *testing.T) {
	var gotAuthUser, gotAuthPass string
	var gotBody createOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthUser, gotAuthPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_gw1",
			Amount:   gotBody.Amount,
			Currency: gotBody.Currency,
			Receipt:  gotBody.Receipt,
		})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, KeyID: "key_id", Secret: "secret"})

	order, err := c.CreateOrder(context.Background(), 12650, "", "rcpt_1")
	require.NoError(t, err)

	assert.Equal(t, "order_gw1", order.ID)
	assert.Equal(t, int64(12650), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "key_id", gotAuthUser)
	assert.Equal(t, "secret", gotAuthPass)
	assert.Equal(t, int64(12650), gotBody.Amount)
	assert.Equal(t, 1, gotBody.PaymentCapture)
}

func TestClientCreateOrderGeneratesReceipt(t *testing.T) {
	var gotBody createOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(GatewayOrder{ID: "order_gw1"})
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, KeyID: "key_id", Secret: "secret"})

	_, err := c.CreateOrder(context.Background(), 100, "", "")
	require.NoError(t, err)
	assert.Regexp(t, `^rcpt_\d+$`, gotBody.Receipt)
}

func TestClientUnconfiguredIsUnavailable(t *testing.T) {
	c := NewClient(Config{})

	assert.False(t, c.Available())
	assert.False(t, c.VerifySignature("o", "p", "sig"))

	_, err := c.CreateOrder(context.Background(), 100, "INR", "rcpt_1")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestClientGatewayRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, KeyID: "key_id", Secret: "bad"})

	_, err := c.CreateOrder(context.Background(), 100, "INR", "rcpt_1")
	assert.ErrorIs(t, err, ErrGatewayRejected)
}
