package entity

import (
	"sparkle-booking/core/entity"

	"github.com/google/uuid"
)

const (
	ChannelEmail = "email"

	StatusSent   = "sent"
	StatusFailed = "failed"

	KindOwnerBooking            = "owner_booking"
	KindCustomerSlotUnavailable = "customer_slot_unavailable"
	KindOwnerSlotUnavailable    = "owner_slot_unavailable"
)

// Notification is one delivery attempt, kept so the owner can follow up on failures.
type Notification struct {
	OrderID   uuid.UUID `db:"order_id" json:"order_id"`
	Kind      string    `db:"kind" json:"kind"`
	Channel   string    `db:"channel" json:"channel"`
	Recipient string    `db:"recipient" json:"recipient"`
	Subject   string    `db:"subject" json:"subject"`
	Status    string    `db:"status" json:"status"`
	Error     *string   `db:"error" json:"error,omitempty"`
	entity.BaseEntity
}
