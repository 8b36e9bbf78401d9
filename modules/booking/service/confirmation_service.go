package service

import (
	"context"

	"sparkle-booking/core/cache"
	"sparkle-booking/core/constants"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/core/queue"
	"sparkle-booking/modules/booking/entity"
	"sparkle-booking/modules/booking/repository"
	paymentEntity "sparkle-booking/modules/payment/entity"
	paymentService "sparkle-booking/modules/payment/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type ConfirmationServiceInterface interface {
	HandleStripeWebhook(ctx context.Context, payload []byte, signature string) *errors.AppError
}

type ConfirmationService struct {
	repo     repository.OrderRepositoryInterface
	payments paymentService.PaymentGateway
	cache    cache.Cache
	tasks    queue.Enqueuer
}

func NewConfirmationService(
	repo repository.OrderRepositoryInterface,
	payments paymentService.PaymentGateway,
	c cache.Cache,
	tasks queue.Enqueuer,
) *ConfirmationService {
	return &ConfirmationService{
		repo:     repo,
		payments: payments,
		cache:    c,
		tasks:    tasks,
	}
}

// HandleStripeWebhook verifies and applies one Stripe delivery.
// Each event id is applied at most once; a failed attempt releases the id so Stripe's retry is processed.
func (s *ConfirmationService) HandleStripeWebhook(ctx context.Context, payload []byte, signature string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	event, err := s.payments.ParseWebhookEvent(payload, signature)
	if err != nil {
		logger.Warn("ConfirmationService:HandleStripeWebhook:ParseWebhookEvent:Error", "error", err)
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return errors.NewAppError(errors.ErrInvalidSignature, "invalid webhook signature", err)
	}

	key := constants.RedisKeyStripeEvent + event.ID
	first, err := s.cache.SetNX(ctx, key, event.Type, constants.StripeEventDedupeTTL)
	if err != nil {
		// ConfirmPayment is conditional, so processing continues without the dedupe key.
		logger.Error("ConfirmationService:HandleStripeWebhook:SetNX:Error", "event_id", event.ID, "error", err)
		first = true
	}
	if !first {
		logger.Info("ConfirmationService:HandleStripeWebhook:Duplicate", "event_id", event.ID, "type", event.Type)
		return nil
	}

	var appErr *errors.AppError
	switch event.Type {
	case paymentEntity.EventCheckoutCompleted, paymentEntity.EventCheckoutAsyncSucceeded:
		appErr = s.handleCompleted(ctx, event)
	case paymentEntity.EventCheckoutExpired, paymentEntity.EventCheckoutAsyncFailed:
		appErr = s.handleExpired(ctx, event)
	default:
		logger.Debug("ConfirmationService:HandleStripeWebhook:Ignored", "event_id", event.ID, "type", event.Type)
	}

	if appErr != nil {
		if err := s.cache.Del(ctx, key); err != nil {
			logger.Error("ConfirmationService:HandleStripeWebhook:Del:Error", "event_id", event.ID, "error", err)
		}
	}
	return appErr
}

func (s *ConfirmationService) handleCompleted(ctx context.Context, event *paymentEntity.WebhookEvent) *errors.AppError {
	order, appErr := s.loadOrder(ctx, event)
	if appErr != nil {
		return appErr
	}
	if !event.Settled() {
		logger.Info("ConfirmationService:handleCompleted:AwaitingPayment",
			"order_id", order.ID, "type", event.Type, "payment_status", event.PaymentStatus)
		return nil
	}

	confirmed, err := s.repo.ConfirmPayment(ctx, order.ID, event.SessionID, event.PaymentIntentID)
	if err != nil {
		logger.Error("ConfirmationService:handleCompleted:ConfirmPayment:Error", "order_id", order.ID, "error", err)
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to confirm order", err)
	}
	if !confirmed {
		logger.Info("ConfirmationService:handleCompleted:AlreadyProcessed", "order_id", order.ID, "status", order.Status)
		return nil
	}
	logger.Info("ConfirmationService:handleCompleted:Confirmed", "order_id", order.ID, "reference", order.Reference)

	s.enqueue(ctx, order.ID)
	return nil
}

func (s *ConfirmationService) handleExpired(ctx context.Context, event *paymentEntity.WebhookEvent) *errors.AppError {
	order, appErr := s.loadOrder(ctx, event)
	if appErr != nil {
		return appErr
	}

	expired, err := s.repo.MarkExpired(ctx, order.ID)
	if err != nil {
		logger.Error("ConfirmationService:handleExpired:MarkExpired:Error", "order_id", order.ID, "error", err)
		return errors.NewAppError(errors.ErrUpdateFailed, "failed to expire order", err)
	}
	logger.Info("ConfirmationService:handleExpired", "order_id", order.ID, "expired", expired)
	return nil
}

func (s *ConfirmationService) loadOrder(ctx context.Context, event *paymentEntity.WebhookEvent) (*entity.Order, *errors.AppError) {
	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		logger.Warn("ConfirmationService:loadOrder:MissingOrderID", "event_id", event.ID, "session_id", event.SessionID)
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "webhook event has no order_id", err)
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("ConfirmationService:loadOrder:GetByID:Error", "order_id", orderID, "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load order", err)
	}
	if order == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "order not found", nil)
	}
	return order, nil
}

// enqueue schedules the calendar sync. The sync handler schedules the notification once the
// order has survived the conflict check. Failures are logged only.
func (s *ConfirmationService) enqueue(ctx context.Context, orderID uuid.UUID) {
	syncTask, err := NewCalendarSyncTask(orderID)
	if err == nil {
		err = s.tasks.Enqueue(ctx, syncTask, asynq.Queue(constants.TaskQueueCalendar))
	}
	if err != nil {
		logger.Error("ConfirmationService:enqueue:CalendarSync:Error", "order_id", orderID, "error", err)
	}
}
