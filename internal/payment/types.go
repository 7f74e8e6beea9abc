package payment

import "context"

// Gateway is the payment charge collaborator. It receives the final booking
// total in integer minor currency units plus descriptive metadata and returns
// an intent handle; it never recomputes or adjusts the amount.
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, req *IntentRequest) (*Intent, error)
	GetPaymentIntent(ctx context.Context, intentID string) (*Intent, error)
	CancelPaymentIntent(ctx context.Context, intentID string) error
}

// IntentRequest describes a charge to be authorized.
type IntentRequest struct {
	AmountCents int64
	Currency    string
	Description string
	// Metadata carries the fee breakdown and booking identifiers for the
	// provider dashboard; it has no effect on the charged amount.
	Metadata map[string]string
	// IdempotencyKey dedupes retried requests on the provider side.
	IdempotencyKey string
}

// IntentStatus mirrors the provider's payment intent lifecycle states we act on.
type IntentStatus string

const (
	IntentStatusRequiresPayment IntentStatus = "requires_payment_method"
	IntentStatusProcessing      IntentStatus = "processing"
	IntentStatusSucceeded       IntentStatus = "succeeded"
	IntentStatusCanceled        IntentStatus = "canceled"
)

// Intent is the provider-side handle for a pending or settled charge.
type Intent struct {
	ID           string       `json:"id"`
	AmountCents  int64        `json:"amount"`
	Currency     string       `json:"currency"`
	Status       IntentStatus `json:"status"`
	ClientSecret string       `json:"client_secret"`
}

type apiError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type intentResponse struct {
	Intent
	Error *apiError `json:"error"`
}
