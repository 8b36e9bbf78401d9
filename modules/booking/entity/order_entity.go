package entity

import (
	"sparkle-booking/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusExpired        = "expired"
	StatusRejected       = "rejected"
)

var Statuses = []string{StatusPendingPayment, StatusConfirmed, StatusExpired, StatusRejected}

// Order is the durable record of one booking attempt.
type Order struct {
	Reference string `db:"reference"`

	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	Street   string `db:"street"`
	City     string `db:"city"`
	State    string `db:"state"`
	Zip      string `db:"zip"`

	BaseServiceID   uuid.UUID      `db:"base_service_id"`
	AddonIDs        pq.StringArray `db:"addon_ids"`
	AppointmentDate string         `db:"appointment_date"`
	AppointmentTime string         `db:"appointment_time"`
	VehicleDetails  string         `db:"vehicle_details"`
	Notes           string         `db:"notes"`

	TotalCents   int64  `db:"total_cents"`
	DepositCents int64  `db:"deposit_cents"`
	Status       string `db:"status"`

	StripeSessionID       *string `db:"stripe_session_id"`
	StripePaymentIntentID *string `db:"stripe_payment_intent_id"`
	CalendarEventID       *string `db:"calendar_event_id"`
	CalendarSyncError     *string `db:"calendar_sync_error"`
	RefundID              *string `db:"refund_id"`

	entity.BaseEntity
}

// AddonUUIDs parses the stored add-on ids, skipping anything malformed.
func (o *Order) AddonUUIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(o.AddonIDs))
	for _, raw := range o.AddonIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

type PaginatedOrderEntity = entity.Pagination[Order]
