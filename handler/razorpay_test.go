package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akshad110/campus-eats-sub000/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway(baseURL string) *Razorpay {
	return &Razorpay{
		Config: model.RazorpayConfig{
			KeyID:      "rzp_test_key",
			KeySecret:  "checkout_secret",
			WebhookKey: "webhook_secret",
			BaseURL:    baseURL,
		},
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func hmacHex(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifyCheckoutSignature(t *testing.T) {
	r := testGateway("")

	sig := hmacHex("order_ABC123|pay_XYZ789", "checkout_secret")
	assert.True(t, r.VerifyCheckoutSignature("order_ABC123", "pay_XYZ789", sig))

	assert.False(t, r.VerifyCheckoutSignature("order_ABC123", "pay_other", sig))
	assert.False(t, r.VerifyCheckoutSignature("order_ABC123", "pay_XYZ789", sig+"00"))
	assert.False(t, r.VerifyCheckoutSignature("order_ABC123", "pay_XYZ789", ""))
}

func TestVerifyWebhookSignature(t *testing.T) {
	r := testGateway("")
	body := []byte(`{"event":"payment.captured","payload":{}}`)

	sig := hmacHex(string(body), "webhook_secret")
	assert.True(t, r.VerifyWebhookSignature(body, sig))

	// signed with the checkout secret instead of the webhook secret
	wrong := hmacHex(string(body), "checkout_secret")
	assert.False(t, r.VerifyWebhookSignature(body, wrong))

	tampered := append([]byte{}, body...)
	tampered[0] = ' '
	assert.False(t, r.VerifyWebhookSignature(tampered, sig))
}

func TestRazorpayCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/orders", req.URL.Path)

		user, pass, ok := req.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "checkout_secret", pass)

		var in model.RazorpayOrderRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		assert.Equal(t, int64(14950), in.Amount) // rupees converted to paise
		assert.Equal(t, "INR", in.Currency)
		assert.Equal(t, "ORD-1A2B3C4D", in.Receipt)

		json.NewEncoder(w).Encode(model.RazorpayOrderResponse{
			ID:       "order_TEST1",
			Amount:   in.Amount,
			Currency: in.Currency,
			Receipt:  in.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	r := testGateway(srv.URL)
	out, err := r.CreateOrder(149.50, "ORD-1A2B3C4D")
	require.NoError(t, err)
	assert.Equal(t, "order_TEST1", out.ID)
	assert.Equal(t, int64(14950), out.Amount)
}

func TestRazorpayCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	r := testGateway(srv.URL)
	_, err := r.CreateOrder(50, "ORD-DEADBEEF")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
