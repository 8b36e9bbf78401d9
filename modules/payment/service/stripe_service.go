package service

import (
	"context"
	"encoding/json"
	"strings"

	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/payment/entity"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/refund"
	"github.com/stripe/stripe-go/v76/webhook"
)

const orderIDMetadataKey = "order_id"

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, in entity.CheckoutSessionInput) (*entity.CheckoutSession, error)
	// ParseWebhookEvent verifies the Stripe-Signature header and decodes the event.
	ParseWebhookEvent(payload []byte, signatureHeader string) (*entity.WebhookEvent, error)
	Refund(ctx context.Context, paymentIntentID, orderID string) (string, error)
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type StripeService struct {
	webhookSecret string
	newSession    func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	newRefund     func(*stripe.RefundParams) (*stripe.Refund, error)
}

func NewStripeService(cfg StripeConfig) *StripeService {
	stripe.Key = cfg.SecretKey
	return &StripeService{
		webhookSecret: cfg.WebhookSecret,
		newSession:    session.New,
		newRefund:     refund.New,
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, in entity.CheckoutSessionInput) (*entity.CheckoutSession, error) {
	currency := strings.ToLower(in.Currency)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		qty := li.Quantity
		if qty <= 0 {
			qty = 1
		}
		item := &stripe.CheckoutSessionLineItemParams{Quantity: stripe.Int64(qty)}
		if li.PriceID != "" {
			item.Price = stripe.String(li.PriceID)
		} else {
			item.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(li.AmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(li.Name),
				},
			}
		}
		lineItems = append(lineItems, item)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:     stripe.String(in.CustomerEmail),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(in.SuccessURL),
		CancelURL:         stripe.String(in.CancelURL),
		ClientReferenceID: stripe.String(in.OrderID),
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{orderIDMetadataKey: in.OrderID},
		},
	}
	params.Context = ctx
	params.AddMetadata(orderIDMetadataKey, in.OrderID)

	sess, err := s.newSession(params)
	if err != nil {
		logger.Error("StripeService:CreateCheckoutSession:Error", "order_id", in.OrderID, "error", err)
		return nil, errors.NewAppError(errors.ErrUpstreamUnavailable, "failed to create payment session", err)
	}

	logger.Info("StripeService:CreateCheckoutSession:Success", "order_id", in.OrderID, "session_id", sess.ID)
	return &entity.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (s *StripeService) ParseWebhookEvent(payload []byte, signatureHeader string) (*entity.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		logger.Warn("StripeService:ParseWebhookEvent:InvalidSignature", "error", err)
		return nil, errors.NewAppError(errors.ErrInvalidSignature, "invalid webhook signature", err)
	}

	out := &entity.WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if !strings.HasPrefix(out.Type, "checkout.session.") || event.Data == nil {
		return out, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		logger.Error("StripeService:ParseWebhookEvent:DecodeSession", "event_id", event.ID, "error", err)
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "malformed checkout session payload", err)
	}
	out.SessionID = sess.ID
	out.OrderID = sess.Metadata[orderIDMetadataKey]
	if out.OrderID == "" {
		out.OrderID = sess.ClientReferenceID
	}
	out.PaymentStatus = string(sess.PaymentStatus)
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	return out, nil
}

func (s *StripeService) Refund(ctx context.Context, paymentIntentID, orderID string) (string, error) {
	if paymentIntentID == "" {
		return "", errors.NewAppError(errors.ErrInvalidInput, "no payment to refund", nil)
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.AddMetadata(orderIDMetadataKey, orderID)
	params.SetIdempotencyKey("refund-" + orderID)

	r, err := s.newRefund(params)
	if err != nil {
		logger.Error("StripeService:Refund:Error", "order_id", orderID, "payment_intent", paymentIntentID, "error", err)
		return "", errors.NewAppError(errors.ErrUpstreamUnavailable, "failed to refund payment", err)
	}

	logger.Info("StripeService:Refund:Success", "order_id", orderID, "refund_id", r.ID)
	return r.ID, nil
}
