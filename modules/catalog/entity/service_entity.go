package entity

import (
	"sparkle-booking/core/entity"
)

const (
	KindBase  = "base"
	KindAddon = "addon"
)

// Service is one bookable catalog item.
type Service struct {
	Slug        string `db:"slug"`
	Name        string `db:"name"`
	Description string `db:"description"`
	PriceCents  int64  `db:"price_cents"`
	Kind        string `db:"kind"`
	Active      bool   `db:"active"`
	SortOrder   int    `db:"sort_order"`

	entity.BaseEntity
}
