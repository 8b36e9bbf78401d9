package entity

const (
	EventCheckoutCompleted      = "checkout.session.completed"
	EventCheckoutExpired        = "checkout.session.expired"
	EventCheckoutAsyncSucceeded = "checkout.session.async_payment_succeeded"
	EventCheckoutAsyncFailed    = "checkout.session.async_payment_failed"
)

const (
	PaymentStatusPaid              = "paid"
	PaymentStatusUnpaid            = "unpaid"
	PaymentStatusNoPaymentRequired = "no_payment_required"
)

// LineItem is either a configured Stripe price or an inline amount.
type LineItem struct {
	PriceID     string
	Name        string
	AmountCents int64
	Quantity    int64
}

type CheckoutSessionInput struct {
	CustomerEmail string
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
	Currency      string
	OrderID       string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookEvent is the verified subset of a Stripe event the booking flow reads.
type WebhookEvent struct {
	ID              string
	Type            string
	SessionID       string
	OrderID         string
	PaymentIntentID string
	PaymentStatus   string
}

// Settled reports whether the session's funds are captured.
// A completed session with a delayed payment method stays unpaid until async_payment_succeeded.
func (e *WebhookEvent) Settled() bool {
	return e.PaymentStatus == PaymentStatusPaid || e.PaymentStatus == PaymentStatusNoPaymentRequired
}
