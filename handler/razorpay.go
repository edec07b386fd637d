package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/akshad110/campus-eats-sub000/model"
)

// Razorpay gateway service. Order creation is a server-side REST call with
// basic auth; checkout and webhook callbacks are verified with HMAC-SHA256
// over the documented payloads.
type Razorpay struct {
	Config model.RazorpayConfig
	client *http.Client
}

func NewRazorpay() *Razorpay {
	baseURL := os.Getenv("RAZORPAY_URL")
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	return &Razorpay{
		Config: model.RazorpayConfig{
			KeyID:      os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
			WebhookKey: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
			BaseURL:    baseURL,
		},
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateOrder registers a gateway order for the given amount in rupees.
func (r *Razorpay) CreateOrder(amountRupees float64, receipt string) (*model.RazorpayOrderResponse, error) {
	reqBody := model.RazorpayOrderRequest{
		Amount:   int64(amountRupees * 100), // paise
		Currency: "INR",
		Receipt:  receipt,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, r.Config.BaseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(r.Config.KeyID, r.Config.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay order create: status %d", resp.StatusCode)
	}

	var out model.RazorpayOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyCheckoutSignature checks the signature the checkout widget returns:
// HMAC-SHA256(order_id + "|" + payment_id, key_secret).
func (r *Razorpay) VerifyCheckoutSignature(orderId, paymentId, signature string) bool {
	expected := r.sign(orderId+"|"+paymentId, r.Config.KeySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhookSignature checks X-Razorpay-Signature over the raw body.
func (r *Razorpay) VerifyWebhookSignature(body []byte, signature string) bool {
	expected := r.sign(string(body), r.Config.WebhookKey)
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (r *Razorpay) sign(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
