package dto

import (
	"time"

	"github.com/google/uuid"
)

// BookingDetails is everything the booking emails render.
type BookingDetails struct {
	OrderID         uuid.UUID
	Reference       string
	FullName        string
	Email           string
	Phone           string
	Street          string
	City            string
	State           string
	Zip             string
	BaseService     string
	Addons          []string
	AppointmentDate string
	// AppointmentWindow is the window label, e.g. "7:00 AM - 10:00 AM".
	AppointmentWindow string
	WindowHours       int
	VehicleDetails    string
	Notes             string
	StripeSessionID   string
	DepositCents      int64
	RefundID          string
}

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
