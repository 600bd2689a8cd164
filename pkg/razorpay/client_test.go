package razorpay

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

func TestVerifyPaymentSignature(t *testing.T) {
	client := NewClient("rzp_test_key", "secret")

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_abc|pay_123"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifyPaymentSignature("order_abc", "pay_123", valid))
	assert.False(t, client.VerifyPaymentSignature("order_abc", "pay_123", "deadbeef"))
	assert.False(t, client.VerifyPaymentSignature("order_abc", "pay_456", valid), "signature is bound to the payment id")
	assert.False(t, client.VerifyPaymentSignature("order_xyz", "pay_123", valid), "signature is bound to the order id")
	assert.False(t, client.VerifyPaymentSignature("order_abc", "pay_123", ""))
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_id", username)
		assert.Equal(t, "key_secret", password)

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(25000), req.Amount)
		assert.Equal(t, "INR", req.Currency)

		json.NewEncoder(w).Encode(Order{
			ID:       "order_abc",
			Entity:   "order",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	client := NewClient("key_id", "key_secret")
	client.BaseURL = server.URL

	order, err := client.CreateOrder(context.Background(), 25000, "INR", "ORD-1", map[string]string{"user_id": "u1"})
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(25000), order.Amount)
	assert.Equal(t, "created", order.Status)
}

func TestCreateOrder_GatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Order amount exceeds maximum amount allowed."}}`))
	}))
	defer server.Close()

	client := NewClient("key_id", "key_secret")
	client.BaseURL = server.URL

	_, err := client.CreateOrder(context.Background(), 99999999999, "INR", "ORD-1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Order amount exceeds maximum amount allowed.")
}

func TestCreateOrder_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient("key_id", "key_secret")
	client.BaseURL = server.URL

	_, err := client.CreateOrder(context.Background(), 25000, "INR", "ORD-1", nil)
	require.Error(t, err)
}
