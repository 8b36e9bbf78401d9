package service

import (
	"context"

	"sparkle-booking/core/constants"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/core/utils"
	availabilityService "sparkle-booking/modules/availability/service"
	"sparkle-booking/modules/booking/dto"
	"sparkle-booking/modules/booking/entity"
	"sparkle-booking/modules/booking/repository"
	catalogService "sparkle-booking/modules/catalog/service"
	paymentEntity "sparkle-booking/modules/payment/entity"
	paymentService "sparkle-booking/modules/payment/service"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AppointmentResolver turns a requested date and window start into absolute bounds.
type AppointmentResolver interface {
	ResolveAppointment(date, timeOfDay string) (*availabilityService.Appointment, *errors.AppError)
	AppointmentBounds(date, timeOfDay string) (*availabilityService.Appointment, *errors.AppError)
}

type CheckoutConfig struct {
	DepositPriceID string
	DepositCents   int64
	Currency       string
	SuccessURL     string
	CancelURL      string
}

type BookingServiceInterface interface {
	Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError)
}

type BookingService struct {
	repo         repository.OrderRepositoryInterface
	catalog      catalogService.CatalogServiceInterface
	availability AppointmentResolver
	payments     paymentService.PaymentGateway
	cfg          CheckoutConfig
}

func NewBookingService(
	repo repository.OrderRepositoryInterface,
	catalog catalogService.CatalogServiceInterface,
	availability AppointmentResolver,
	payments paymentService.PaymentGateway,
	cfg CheckoutConfig,
) *BookingService {
	return &BookingService{
		repo:         repo,
		catalog:      catalog,
		availability: availability,
		payments:     payments,
		cfg:          cfg,
	}
}

// Checkout records a pending order and opens a Stripe checkout session for it.
// The order is only confirmed later by the payment webhook.
func (s *BookingService) Checkout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	appt, appErr := s.availability.ResolveAppointment(req.AppointmentDate, req.AppointmentTime)
	if appErr != nil {
		return nil, appErr
	}

	baseID, err := uuid.Parse(req.BaseServiceID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid base_service_id", err)
	}
	addonIDs := make([]uuid.UUID, 0, len(req.AddonIDs))
	for _, raw := range req.AddonIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid addon id", err)
		}
		addonIDs = append(addonIDs, id)
	}

	selection, appErr := s.catalog.PriceSelection(ctx, baseID, addonIDs)
	if appErr != nil {
		return nil, appErr
	}

	lineItems, deposit := s.lineItems(selection)

	order := &entity.Order{
		Reference:       utils.GenerateReference(),
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Street:          req.Street,
		City:            req.City,
		State:           req.State,
		Zip:             req.Zip,
		BaseServiceID:   selection.Base.ID,
		AddonIDs:        addonIDStrings(selection),
		AppointmentDate: appt.Date,
		AppointmentTime: appt.Window.StartClock(),
		VehicleDetails:  req.VehicleDetails,
		Notes:           req.Notes,
		TotalCents:      selection.TotalCents,
		DepositCents:    deposit,
		Status:          entity.StatusPendingPayment,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		logger.Error("BookingService:Checkout:Create:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create order", err)
	}
	logger.Info("BookingService:Checkout:OrderCreated", "order_id", order.ID, "reference", order.Reference,
		"date", order.AppointmentDate, "time", order.AppointmentTime)

	checkout, err := s.payments.CreateCheckoutSession(ctx, paymentEntity.CheckoutSessionInput{
		CustomerEmail: order.Email,
		LineItems:     lineItems,
		SuccessURL:    s.cfg.SuccessURL,
		CancelURL:     s.cfg.CancelURL,
		Currency:      s.cfg.Currency,
		OrderID:       order.ID.String(),
	})
	if err != nil {
		logger.Error("BookingService:Checkout:CreateCheckoutSession:Error", "order_id", order.ID, "error", err)
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrUpstreamUnavailable, "failed to create checkout session", err)
	}

	if err := s.repo.SetStripeSession(ctx, order.ID, checkout.ID); err != nil {
		logger.Error("BookingService:Checkout:SetStripeSession:Error", "order_id", order.ID, "session_id", checkout.ID, "error", err)
	}

	return &dto.CheckoutResponse{
		OrderID:   order.ID.String(),
		Reference: order.Reference,
		URL:       checkout.URL,
	}, nil
}

// lineItems picks what the customer is charged now and returns it with its amount.
// An unknown Stripe price amount is recorded as the configured deposit.
func (s *BookingService) lineItems(selection *catalogService.Selection) ([]paymentEntity.LineItem, int64) {
	if s.cfg.DepositPriceID != "" {
		return []paymentEntity.LineItem{{PriceID: s.cfg.DepositPriceID, Quantity: 1}}, s.cfg.DepositCents
	}
	if s.cfg.DepositCents > 0 {
		return []paymentEntity.LineItem{{
			Name:        "Appointment deposit",
			AmountCents: s.cfg.DepositCents,
			Quantity:    1,
		}}, s.cfg.DepositCents
	}

	items := []paymentEntity.LineItem{{
		Name:        selection.Base.Name,
		AmountCents: selection.Base.PriceCents,
		Quantity:    1,
	}}
	for _, addon := range selection.Addons {
		items = append(items, paymentEntity.LineItem{
			Name:        addon.Name,
			AmountCents: addon.PriceCents,
			Quantity:    1,
		})
	}
	return items, selection.TotalCents
}

func addonIDStrings(selection *catalogService.Selection) pq.StringArray {
	ids := make(pq.StringArray, 0, len(selection.Addons))
	for _, addon := range selection.Addons {
		ids = append(ids, addon.ID.String())
	}
	return ids
}
