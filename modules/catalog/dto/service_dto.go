package dto

import "github.com/google/uuid"

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Kind        string    `json:"kind"`
}

type CatalogResponse struct {
	Base   []ServiceResponse `json:"base"`
	Addons []ServiceResponse `json:"addons"`
}
