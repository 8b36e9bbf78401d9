package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sparkle-booking/core/broker"
	"sparkle-booking/core/constants"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/core/queue"
	"sparkle-booking/modules/booking/dto"
	"sparkle-booking/modules/booking/entity"
	"sparkle-booking/modules/booking/mapper"
	"sparkle-booking/modules/booking/repository"
	calendarEntity "sparkle-booking/modules/calendar/entity"
	calendarService "sparkle-booking/modules/calendar/service"
	catalogService "sparkle-booking/modules/catalog/service"
	notificationDto "sparkle-booking/modules/notification/dto"
	paymentService "sparkle-booking/modules/payment/service"

	"github.com/hibiken/asynq"
)

// Notifier sends the booking emails and records their delivery.
type Notifier interface {
	SendBookingNotification(ctx context.Context, details notificationDto.BookingDetails) error
	SendSlotUnavailable(ctx context.Context, details notificationDto.BookingDetails) error
}

type TaskConfig struct {
	EventSummary string
	TimeZone     string
}

// TaskService runs the side effects of a confirmed payment.
type TaskService struct {
	repo         repository.OrderRepositoryInterface
	catalog      catalogService.CatalogServiceInterface
	availability AppointmentResolver
	calendar     calendarService.Gateway
	payments     paymentService.PaymentGateway
	notifier     Notifier
	publisher    broker.Publisher
	tasks        queue.Enqueuer
	cfg          TaskConfig
	now          func() time.Time
}

func NewTaskService(
	repo repository.OrderRepositoryInterface,
	catalog catalogService.CatalogServiceInterface,
	availability AppointmentResolver,
	calendar calendarService.Gateway,
	payments paymentService.PaymentGateway,
	notifier Notifier,
	publisher broker.Publisher,
	tasks queue.Enqueuer,
	cfg TaskConfig,
) *TaskService {
	return &TaskService{
		repo:         repo,
		catalog:      catalog,
		availability: availability,
		calendar:     calendar,
		payments:     payments,
		notifier:     notifier,
		publisher:    publisher,
		tasks:        tasks,
		cfg:          cfg,
		now:          time.Now,
	}
}

// HandleCalendarSync re-checks the paid window and books it on the business calendar.
// A window taken in the meantime rejects and refunds the order. A run that reaches the calendar
// and does not reject schedules the owner notification.
func (s *TaskService) HandleCalendarSync(ctx context.Context, task *asynq.Task) error {
	orderID, err := parseOrderTask(task)
	if err != nil {
		logger.Error("TaskService:HandleCalendarSync:Payload:Error", "error", err)
		return err
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("TaskService:HandleCalendarSync:GetByID:Error", "order_id", orderID, "error", err)
		return err
	}
	if order == nil {
		return fmt.Errorf("order %s not found: %w", orderID, asynq.SkipRetry)
	}
	if order.Status != entity.StatusConfirmed {
		logger.Info("TaskService:HandleCalendarSync:Skip", "order_id", order.ID, "status", order.Status)
		return nil
	}
	if order.CalendarEventID != nil && *order.CalendarEventID != "" {
		logger.Info("TaskService:HandleCalendarSync:AlreadySynced", "order_id", order.ID, "event_id", *order.CalendarEventID)
		return nil
	}

	rejected, err := s.syncCalendar(ctx, order)
	if !rejected {
		s.enqueueNotify(ctx, order)
	}
	return err
}

// syncCalendar reports whether the order was rejected for a taken window.
func (s *TaskService) syncCalendar(ctx context.Context, order *entity.Order) (bool, error) {
	details, start, end, appErr := s.bookingDetails(ctx, order)
	if appErr != nil {
		s.recordSyncError(ctx, order, appErr)
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	// A previous run may have created the event before failing to store its id.
	existing, err := s.calendar.FindEventByOrder(ctx, order.ID.String())
	if err != nil {
		s.recordSyncError(ctx, order, err)
		return false, nil
	}
	if existing != "" {
		return false, s.storeEvent(ctx, order, existing, start, end)
	}

	if err := s.calendar.EnsureSlotFree(ctx, start, end); err != nil {
		if errors.HasCode(err, errors.ErrSlotConflict) {
			return true, s.reject(ctx, order, details)
		}
		s.recordSyncError(ctx, order, err)
		return false, nil
	}

	eventID, err := s.calendar.CreateEvent(ctx, calendarEntity.EventInput{
		Summary:     fmt.Sprintf("%s - %s", details.BaseService, order.FullName),
		Description: s.eventDescription(order, details),
		Start:       start,
		End:         end,
		TimeZone:    s.cfg.TimeZone,
		OrderID:     order.ID.String(),
	})
	if err != nil {
		s.recordSyncError(ctx, order, err)
		return false, nil
	}
	logger.Info("TaskService:HandleCalendarSync:EventCreated", "order_id", order.ID, "event_id", eventID)

	return false, s.storeEvent(ctx, order, eventID, start, end)
}

func (s *TaskService) enqueueNotify(ctx context.Context, order *entity.Order) {
	task, err := NewNotifyTask(order.ID)
	if err == nil {
		err = s.tasks.Enqueue(ctx, task, asynq.Queue(constants.TaskQueueDefault))
	}
	if err != nil {
		logger.Error("TaskService:enqueueNotify:Error", "order_id", order.ID, "error", err)
	}
}

// HandleNotify emails the owner about a paid booking. Returning an error lets asynq retry it.
func (s *TaskService) HandleNotify(ctx context.Context, task *asynq.Task) error {
	orderID, err := parseOrderTask(task)
	if err != nil {
		logger.Error("TaskService:HandleNotify:Payload:Error", "error", err)
		return err
	}

	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("TaskService:HandleNotify:GetByID:Error", "order_id", orderID, "error", err)
		return err
	}
	if order == nil {
		return fmt.Errorf("order %s not found: %w", orderID, asynq.SkipRetry)
	}
	if order.Status != entity.StatusConfirmed {
		logger.Info("TaskService:HandleNotify:Skip", "order_id", order.ID, "status", order.Status)
		return nil
	}

	details, _, _, appErr := s.bookingDetails(ctx, order)
	if appErr != nil {
		logger.Error("TaskService:HandleNotify:bookingDetails:Error", "order_id", order.ID, "error", appErr)
		return appErr
	}

	if err := s.notifier.SendBookingNotification(ctx, details); err != nil {
		logger.Error("TaskService:HandleNotify:Send:Error", "order_id", order.ID, "error", err)
		return err
	}
	return nil
}

func (s *TaskService) bookingDetails(ctx context.Context, order *entity.Order) (notificationDto.BookingDetails, time.Time, time.Time, *errors.AppError) {
	details := mapper.ToBookingDetails(order)

	appt, appErr := s.availability.AppointmentBounds(order.AppointmentDate, order.AppointmentTime)
	if appErr != nil {
		return details, time.Time{}, time.Time{}, appErr
	}
	details.AppointmentWindow = appt.Window.Label()
	details.WindowHours = (appt.Window.EndMinute - appt.Window.StartMinute) / 60

	selection, appErr := s.catalog.DescribeSelection(ctx, order.BaseServiceID, order.AddonUUIDs())
	if appErr != nil {
		return details, time.Time{}, time.Time{}, appErr
	}
	details.BaseService = selection.Base.Name
	details.Addons = selection.AddonNames()

	return details, appt.Start, appt.End, nil
}

func (s *TaskService) eventDescription(order *entity.Order, details notificationDto.BookingDetails) string {
	var b strings.Builder
	b.WriteString(s.cfg.EventSummary)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", order.FullName)
	fmt.Fprintf(&b, "Email: %s\n", order.Email)
	fmt.Fprintf(&b, "Phone: %s\n", order.Phone)
	fmt.Fprintf(&b, "Address: %s, %s, %s %s\n", order.Street, order.City, order.State, order.Zip)
	fmt.Fprintf(&b, "Service: %s\n", details.BaseService)
	if len(details.Addons) > 0 {
		fmt.Fprintf(&b, "Add-ons: %s\n", strings.Join(details.Addons, ", "))
	}
	if order.VehicleDetails != "" {
		fmt.Fprintf(&b, "Vehicle: %s\n", order.VehicleDetails)
	}
	if order.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", order.Notes)
	}
	fmt.Fprintf(&b, "Order: %s", order.Reference)
	return b.String()
}

func (s *TaskService) storeEvent(ctx context.Context, order *entity.Order, eventID string, start, end time.Time) error {
	if err := s.repo.SetCalendarEvent(ctx, order.ID, eventID); err != nil {
		logger.Error("TaskService:storeEvent:SetCalendarEvent:Error", "order_id", order.ID, "event_id", eventID, "error", err)
		return err
	}

	event := dto.BookingConfirmedEvent{
		OrderID:         order.ID.String(),
		Reference:       order.Reference,
		Email:           order.Email,
		AppointmentDate: order.AppointmentDate,
		AppointmentTime: order.AppointmentTime,
		Start:           start,
		End:             end,
		CalendarEventID: eventID,
		OccurredAt:      s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, constants.QueueBookingConfirmed, event); err != nil {
		logger.Error("TaskService:storeEvent:Publish:Error", "order_id", order.ID, "error", err)
	}
	return nil
}

// reject refunds a paid order whose window was taken and tells both sides.
func (s *TaskService) reject(ctx context.Context, order *entity.Order, details notificationDto.BookingDetails) error {
	logger.Warn("TaskService:reject:SlotTaken", "order_id", order.ID, "date", order.AppointmentDate, "time", order.AppointmentTime)

	reason := "slot no longer available"
	var refundID *string
	switch {
	case order.StripePaymentIntentID == nil || *order.StripePaymentIntentID == "":
		logger.Error("TaskService:reject:NoPaymentIntent", "order_id", order.ID)
		reason += "; no payment intent to refund"
	default:
		id, err := s.payments.Refund(ctx, *order.StripePaymentIntentID, order.ID.String())
		if err != nil {
			logger.Error("TaskService:reject:Refund:Error", "order_id", order.ID, "error", err)
			reason += "; refund failed: " + err.Error()
		} else {
			refundID = &id
			details.RefundID = id
			logger.Info("TaskService:reject:Refunded", "order_id", order.ID, "refund_id", id)
		}
	}

	markErr := s.repo.MarkRejected(ctx, order.ID, refundID, reason)
	if markErr != nil {
		logger.Error("TaskService:reject:MarkRejected:Error", "order_id", order.ID, "error", markErr)
	}

	if err := s.notifier.SendSlotUnavailable(ctx, details); err != nil {
		logger.Error("TaskService:reject:SendSlotUnavailable:Error", "order_id", order.ID, "error", err)
	}
	return markErr
}

func (s *TaskService) recordSyncError(ctx context.Context, order *entity.Order, cause error) {
	logger.Error("TaskService:HandleCalendarSync:Error", "order_id", order.ID, "error", cause)
	if err := s.repo.SetCalendarSyncError(ctx, order.ID, cause.Error()); err != nil {
		logger.Error("TaskService:recordSyncError:Error", "order_id", order.ID, "error", err)
	}
}
