package service

import (
	"context"
	"fmt"
	"testing"

	coreEntity "sparkle-booking/core/entity"
	"sparkle-booking/core/errors"
	"sparkle-booking/modules/catalog/entity"

	"github.com/google/uuid"
)

type fakeServiceRepo struct {
	services map[uuid.UUID]entity.Service
	created  []*entity.Service
	countFn  func() (int, error)
	failGet  bool
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	if f.failGet {
		return nil, fmt.Errorf("connection reset")
	}
	svc, ok := f.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Service, error) {
	out := []entity.Service{}
	for _, id := range ids {
		if svc, ok := f.services[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) ListActive(context.Context) ([]entity.Service, error) {
	out := []entity.Service{}
	for _, svc := range f.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeServiceRepo) Count(context.Context) (int, error) {
	if f.countFn != nil {
		return f.countFn()
	}
	return len(f.services), nil
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *entity.Service) error {
	f.created = append(f.created, svc)
	return nil
}

func svcFixture(name, kind string, cents int64, active bool) entity.Service {
	return entity.Service{
		Name:       name,
		Kind:       kind,
		PriceCents: cents,
		Active:     active,
		BaseEntity: coreEntity.BaseEntity{ID: uuid.New()},
	}
}

func TestPriceSelection(t *testing.T) {
	base := svcFixture("Deep Full Detail", entity.KindBase, 59900, true)
	inactiveBase := svcFixture("Old Package", entity.KindBase, 10000, false)
	addon := svcFixture("Pet Hair Removal", entity.KindAddon, 5000, true)
	addon2 := svcFixture("Engine Bay Cleaning", entity.KindAddon, 4000, true)
	retired := svcFixture("Retired Add-on", entity.KindAddon, 1000, false)

	repo := &fakeServiceRepo{services: map[uuid.UUID]entity.Service{}}
	for _, s := range []entity.Service{base, inactiveBase, addon, addon2, retired} {
		repo.services[s.ID] = s
	}
	svc := NewCatalogService(repo)
	ctx := context.Background()

	sel, appErr := svc.PriceSelection(ctx, base.ID, []uuid.UUID{addon.ID, addon2.ID, addon.ID})
	if appErr != nil {
		t.Fatalf("PriceSelection: %v", appErr)
	}
	if sel.TotalCents != 59900+5000+4000 {
		t.Errorf("total = %d", sel.TotalCents)
	}
	if names := sel.AddonNames(); len(names) != 2 || names[0] != "Pet Hair Removal" {
		t.Errorf("addon names = %v", names)
	}

	tests := []struct {
		name   string
		base   uuid.UUID
		addons []uuid.UUID
	}{
		{name: "unknown base", base: uuid.New()},
		{name: "inactive base", base: inactiveBase.ID},
		{name: "addon used as base", base: addon.ID},
		{name: "base used as addon", base: base.ID, addons: []uuid.UUID{inactiveBase.ID}},
		{name: "inactive addon", base: base.ID, addons: []uuid.UUID{retired.ID}},
		{name: "unknown addon", base: base.ID, addons: []uuid.UUID{uuid.New()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := svc.PriceSelection(ctx, tt.base, tt.addons)
			if appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Errorf("err = %v, want INVALID_INPUT", appErr)
			}
		})
	}

	if _, appErr := svc.DescribeSelection(ctx, inactiveBase.ID, []uuid.UUID{retired.ID}); appErr != nil {
		t.Errorf("DescribeSelection should accept inactive services: %v", appErr)
	}

	repo.failGet = true
	if _, appErr := svc.PriceSelection(ctx, base.ID, nil); appErr == nil || appErr.Code != errors.ErrGetFailed {
		t.Errorf("store failure err = %v, want GET_FAILED", appErr)
	}
}

func TestListActiveGroupsByKind(t *testing.T) {
	repo := &fakeServiceRepo{services: map[uuid.UUID]entity.Service{}}
	for _, s := range []entity.Service{
		svcFixture("Standard", entity.KindBase, 29500, true),
		svcFixture("Pet Hair", entity.KindAddon, 5000, true),
		svcFixture("Hidden", entity.KindAddon, 100, false),
	} {
		repo.services[s.ID] = s
	}

	resp, appErr := NewCatalogService(repo).ListActive(context.Background())
	if appErr != nil {
		t.Fatalf("ListActive: %v", appErr)
	}
	if len(resp.Base) != 1 || len(resp.Addons) != 1 {
		t.Errorf("base = %d addons = %d", len(resp.Base), len(resp.Addons))
	}
}

func TestSeed(t *testing.T) {
	repo := &fakeServiceRepo{services: map[uuid.UUID]entity.Service{}}
	if err := Seed(context.Background(), repo); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(repo.created) != len(defaultServices) {
		t.Fatalf("created = %d", len(repo.created))
	}
	if got := repo.created[0].Slug; got != "standard-full-detail-coupe-sedan" {
		t.Errorf("slug = %q", got)
	}

	repo.created = nil
	repo.countFn = func() (int, error) { return 3, nil }
	if err := Seed(context.Background(), repo); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("seeded a non-empty catalog")
	}
}
