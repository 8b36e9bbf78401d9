package service

import (
	"context"
	"fmt"

	"sparkle-booking/core/logger"
	"sparkle-booking/modules/catalog/entity"
	"sparkle-booking/modules/catalog/repository"

	"github.com/gosimple/slug"
)

type seedService struct {
	name        string
	description string
	priceCents  int64
	kind        string
}

var defaultServices = []seedService{
	{name: "Standard Full Detail - Coupe/Sedan", description: "Full interior refresh, exterior hand wash, clay bar and hand-applied wax.", priceCents: 29500, kind: entity.KindBase},
	{name: "Standard Full Detail - SUV/Truck", description: "Full interior refresh, exterior hand wash, clay bar and hand-applied wax.", priceCents: 29900, kind: entity.KindBase},
	{name: "Deep Full Detail - Coupe/Sedan", description: "Deep interior cleaning with interior ceramic coating and paint sealant.", priceCents: 59900, kind: entity.KindBase},
	{name: "Deep Full Detail - SUV/Truck", description: "Deep interior cleaning with interior ceramic coating and paint sealant.", priceCents: 60500, kind: entity.KindBase},
	{name: "Ceramic Coating - Coupe/Sedan", description: "Paint decontamination, polish and ceramic coating.", priceCents: 68900, kind: entity.KindBase},
	{name: "Ceramic Coating - SUV/Truck", description: "Paint decontamination, polish and ceramic coating.", priceCents: 79900, kind: entity.KindBase},
	{name: "Pet Hair Removal", priceCents: 5000, kind: entity.KindAddon},
	{name: "Engine Bay Cleaning", priceCents: 4000, kind: entity.KindAddon},
	{name: "Headlight Restoration", priceCents: 7500, kind: entity.KindAddon},
}

// Seed inserts the default catalog when the services table is empty.
func Seed(ctx context.Context, repo repository.ServiceRepositoryInterface) error {
	total, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if total > 0 {
		logger.Debug("Catalog:Seed:Skip", "existing", total)
		return nil
	}

	for i, s := range defaultServices {
		svc := &entity.Service{
			Slug:        slug.Make(s.name),
			Name:        s.name,
			Description: s.description,
			PriceCents:  s.priceCents,
			Kind:        s.kind,
			Active:      true,
			SortOrder:   i,
		}
		if err := repo.Create(ctx, svc); err != nil {
			return fmt.Errorf("seed %s: %w", svc.Slug, err)
		}
	}

	logger.Info("Catalog:Seed:Success", "count", len(defaultServices))
	return nil
}
