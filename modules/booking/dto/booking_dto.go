package dto

import (
	"time"

	"sparkle-booking/core/dto"
)

type CheckoutRequest struct {
	FullName        string   `json:"full_name" validate:"required,min=2"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"required,phone"`
	Street          string   `json:"street" validate:"required,min=5"`
	City            string   `json:"city" validate:"required,min=2"`
	State           string   `json:"state" validate:"required,min=2"`
	Zip             string   `json:"zip" validate:"required,min=5"`
	BaseServiceID   string   `json:"base_service_id" validate:"required,uuid"`
	AddonIDs        []string `json:"addon_ids" validate:"omitempty,dive,uuid"`
	AppointmentDate string   `json:"appointment_date" validate:"required"`
	AppointmentTime string   `json:"appointment_time" validate:"required"`
	VehicleDetails  string   `json:"vehicle_details"`
	Notes           string   `json:"notes"`
}

type CheckoutResponse struct {
	OrderID   string `json:"order_id"`
	Reference string `json:"reference"`
	URL       string `json:"url"`
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

type OrderResponse struct {
	ID                    string    `json:"id"`
	Reference             string    `json:"reference"`
	FullName              string    `json:"full_name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	Street                string    `json:"street"`
	City                  string    `json:"city"`
	State                 string    `json:"state"`
	Zip                   string    `json:"zip"`
	BaseServiceID         string    `json:"base_service_id"`
	AddonIDs              []string  `json:"addon_ids"`
	AppointmentDate       string    `json:"appointment_date"`
	AppointmentTime       string    `json:"appointment_time"`
	VehicleDetails        string    `json:"vehicle_details,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	TotalCents            int64     `json:"total_cents"`
	DepositCents          int64     `json:"deposit_cents"`
	Status                string    `json:"status"`
	StripeSessionID       *string   `json:"stripe_session_id,omitempty"`
	StripePaymentIntentID *string   `json:"stripe_payment_intent_id,omitempty"`
	CalendarEventID       *string   `json:"calendar_event_id,omitempty"`
	CalendarSyncError     *string   `json:"calendar_sync_error,omitempty"`
	RefundID              *string   `json:"refund_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type PaginatedOrderResponse = dto.Pagination[OrderResponse]

// BookingConfirmedEvent is published once a paid booking is on the calendar.
type BookingConfirmedEvent struct {
	OrderID         string    `json:"order_id"`
	Reference       string    `json:"reference"`
	Email           string    `json:"email"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	CalendarEventID string    `json:"calendar_event_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}
