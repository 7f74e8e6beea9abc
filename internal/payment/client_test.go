package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_CreatePaymentIntent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
			assert.Equal(t, "booking-42", r.Header.Get("Idempotency-Key"))

			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "34178", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			assert.Equal(t, "42", r.PostForm.Get("metadata[booking_id]"))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":            "pi_123",
				"amount":        34178,
				"currency":      "usd",
				"status":        "requires_payment_method",
				"client_secret": "pi_123_secret",
			})
		}))
		defer server.Close()

		client := NewClientWithBaseURL("sk_test_123", server.URL)
		intent, err := client.CreatePaymentIntent(context.Background(), &IntentRequest{
			AmountCents:    34178,
			Currency:       "usd",
			Metadata:       map[string]string{"booking_id": "42"},
			IdempotencyKey: "booking-42",
		})
		assert.NoError(t, err)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, int64(34178), intent.AmountCents)
		assert.Equal(t, IntentStatusRequiresPayment, intent.Status)
	})

	t.Run("Provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"type":    "card_error",
					"code":    "card_declined",
					"message": "Your card was declined.",
				},
			})
		}))
		defer server.Close()

		client := NewClientWithBaseURL("sk_test_123", server.URL)
		_, err := client.CreatePaymentIntent(context.Background(), &IntentRequest{
			AmountCents: 100,
			Currency:    "usd",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "card_declined")
	})

	t.Run("Non-positive amount rejected without a request", func(t *testing.T) {
		client := NewClientWithBaseURL("sk_test_123", "http://127.0.0.1:0")
		_, err := client.CreatePaymentIntent(context.Background(), &IntentRequest{
			AmountCents: 0,
			Currency:    "usd",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}

func TestClient_CancelPaymentIntent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payment_intents/pi_123/cancel", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":     "pi_123",
				"status": "canceled",
			})
		}))
		defer server.Close()

		client := NewClientWithBaseURL("sk_test_123", server.URL)
		err := client.CancelPaymentIntent(context.Background(), "pi_123")
		assert.NoError(t, err)
	})
}
