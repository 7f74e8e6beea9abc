package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fleetrent-backend/internal/logger"
)

const (
	defaultBaseURL = "https://api.stripe.com"
	requestTimeout = 30 * time.Second
)

// Client is a minimal Stripe payment-intents client. Requests are
// form-encoded per the provider's API; responses are JSON.
type Client struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewClient(secretKey string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		client: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
	}
}

// NewClientWithBaseURL targets a non-default API host (test servers).
func NewClientWithBaseURL(secretKey, baseURL string) *Client {
	c := NewClient(secretKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

func (c *Client) CreatePaymentIntent(ctx context.Context, req *IntentRequest) (*Intent, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("payment intent amount must be positive, got %d", req.AmountCents)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", req.Currency)
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	for k, v := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	logger.GatewayCall("create_payment_intent", "amount_cents", req.AmountCents, "currency", req.Currency)

	var resp intentResponse
	err := c.post(ctx, "/v1/payment_intents", form, req.IdempotencyKey, &resp)
	logger.GatewayResult("create_payment_intent", err)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("payment intent creation rejected: %s (%s)", resp.Error.Message, resp.Error.Code)
	}
	return &resp.Intent, nil
}

func (c *Client) GetPaymentIntent(ctx context.Context, intentID string) (*Intent, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/payment_intents/"+url.PathEscape(intentID), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)

	var resp intentResponse
	err = c.do(httpReq, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("payment intent lookup failed: %s (%s)", resp.Error.Message, resp.Error.Code)
	}
	return &resp.Intent, nil
}

func (c *Client) CancelPaymentIntent(ctx context.Context, intentID string) error {
	logger.GatewayCall("cancel_payment_intent", "intent_id", intentID)

	var resp intentResponse
	err := c.post(ctx, "/v1/payment_intents/"+url.PathEscape(intentID)+"/cancel", url.Values{}, "", &resp)
	logger.GatewayResult("cancel_payment_intent", err, "intent_id", intentID)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("payment intent cancellation failed: %s (%s)", resp.Error.Message, resp.Error.Code)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, idempotencyKey string, out *intentResponse) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	return c.do(httpReq, out)
}

func (c *Client) do(httpReq *http.Request, out *intentResponse) error {
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error decoding response: %w, response body: %s", err, string(respBody))
	}
	return nil
}
