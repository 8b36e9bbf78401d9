package service

import (
	"context"
	"fmt"
	"html/template"

	"sparkle-booking/core/constants"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/notification/dto"
	"sparkle-booking/modules/notification/entity"
	"sparkle-booking/modules/notification/repository"

	"github.com/google/uuid"
)

type NotifierConfig struct {
	From      string
	OwnerTo   string
	ZoneLabel string
}

type NotificationServiceInterface interface {
	SendBookingNotification(ctx context.Context, details dto.BookingDetails) error
	SendSlotUnavailable(ctx context.Context, details dto.BookingDetails) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]dto.NotificationResponse, *errors.AppError)
}

type NotificationService struct {
	repo   repository.NotificationRepositoryInterface
	sender EmailSender
	cfg    NotifierConfig
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, sender EmailSender, cfg NotifierConfig) *NotificationService {
	return &NotificationService{repo: repo, sender: sender, cfg: cfg}
}

// SendBookingNotification emails the owner about a confirmed booking.
func (s *NotificationService) SendBookingNotification(ctx context.Context, details dto.BookingDetails) error {
	subject := fmt.Sprintf("New Booking: %s - %s", details.FullName, details.BaseService)
	return s.deliver(ctx, details, entity.KindOwnerBooking, s.cfg.OwnerTo, subject, ownerBookingTmpl)
}

// SendSlotUnavailable tells the customer and the owner that a paid booking could not be placed.
func (s *NotificationService) SendSlotUnavailable(ctx context.Context, details dto.BookingDetails) error {
	customerErr := s.deliver(ctx, details, entity.KindCustomerSlotUnavailable, details.Email,
		"Your Sparkle appointment time is no longer available", customerSlotUnavailableTmpl)
	ownerErr := s.deliver(ctx, details, entity.KindOwnerSlotUnavailable, s.cfg.OwnerTo,
		fmt.Sprintf("Booking rejected: %s - %s", details.FullName, details.AppointmentDate), ownerSlotUnavailableTmpl)
	if customerErr != nil {
		return customerErr
	}
	return ownerErr
}

func (s *NotificationService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]dto.NotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	items, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load notifications", err)
	}
	out := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		resp := dto.NotificationResponse{
			ID:        n.ID,
			Kind:      n.Kind,
			Channel:   n.Channel,
			Recipient: n.Recipient,
			Subject:   n.Subject,
			Status:    n.Status,
			CreatedAt: n.CreatedAt,
		}
		if n.Error != nil {
			resp.Error = *n.Error
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *NotificationService) deliver(ctx context.Context, details dto.BookingDetails, kind, to, subject string, tmpl *template.Template) error {
	record := &entity.Notification{
		OrderID:   details.OrderID,
		Kind:      kind,
		Channel:   entity.ChannelEmail,
		Recipient: to,
		Subject:   subject,
		Status:    entity.StatusSent,
	}

	sendErr := s.send(ctx, details, to, subject, tmpl)
	if sendErr != nil {
		msg := sendErr.Error()
		record.Status = entity.StatusFailed
		record.Error = &msg
		logger.Error("NotificationService:Deliver:Error", "order_id", details.OrderID, "kind", kind, "error", sendErr)
	} else {
		logger.Info("NotificationService:Deliver:Success", "order_id", details.OrderID, "kind", kind)
	}

	if err := s.repo.Create(ctx, record); err != nil {
		logger.Error("NotificationService:Deliver:Record:Error", "order_id", details.OrderID, "kind", kind, "error", err)
	}
	return sendErr
}

func (s *NotificationService) send(ctx context.Context, details dto.BookingDetails, to, subject string, tmpl *template.Template) error {
	if to == "" {
		return fmt.Errorf("no recipient configured")
	}
	html, err := render(tmpl, emailView{
		BookingDetails: details,
		Deposit:        formatCents(details.DepositCents),
		ZoneLabel:      s.cfg.ZoneLabel,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()
	_, err = s.sender.Send(ctx, Email{
		From:    s.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	return err
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
