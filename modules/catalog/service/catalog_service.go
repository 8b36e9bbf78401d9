package service

import (
	"context"

	"sparkle-booking/core/constants"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/catalog/dto"
	"sparkle-booking/modules/catalog/entity"
	"sparkle-booking/modules/catalog/mapper"
	"sparkle-booking/modules/catalog/repository"

	"github.com/google/uuid"
)

// Selection is a priced base service plus its add-ons.
type Selection struct {
	Base       entity.Service
	Addons     []entity.Service
	TotalCents int64
}

func (s *Selection) AddonNames() []string {
	names := make([]string, 0, len(s.Addons))
	for _, a := range s.Addons {
		names = append(names, a.Name)
	}
	return names
}

type CatalogServiceInterface interface {
	ListActive(ctx context.Context) (*dto.CatalogResponse, *errors.AppError)
	// PriceSelection validates a customer's choice and totals it from catalog prices.
	PriceSelection(ctx context.Context, baseID uuid.UUID, addonIDs []uuid.UUID) (*Selection, *errors.AppError)
	// DescribeSelection loads the services of an existing order, active or not.
	DescribeSelection(ctx context.Context, baseID uuid.UUID, addonIDs []uuid.UUID) (*Selection, *errors.AppError)
}

type CatalogService struct {
	repo repository.ServiceRepositoryInterface
}

func NewCatalogService(repo repository.ServiceRepositoryInterface) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListActive(ctx context.Context) (*dto.CatalogResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	services, err := s.repo.ListActive(ctx)
	if err != nil {
		logger.Error("CatalogService:ListActive:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load services", err)
	}
	return mapper.ToCatalogResponse(services), nil
}

func (s *CatalogService) PriceSelection(ctx context.Context, baseID uuid.UUID, addonIDs []uuid.UUID) (*Selection, *errors.AppError) {
	sel, appErr := s.load(ctx, baseID, addonIDs)
	if appErr != nil {
		return nil, appErr
	}

	if !sel.Base.Active || sel.Base.Kind != entity.KindBase {
		logger.Warn("CatalogService:PriceSelection:InvalidBase", "id", baseID, "kind", sel.Base.Kind, "active", sel.Base.Active)
		return nil, errors.NewAppError(errors.ErrInvalidInput, "selected service is not available", nil)
	}
	total := sel.Base.PriceCents
	for _, a := range sel.Addons {
		if !a.Active || a.Kind != entity.KindAddon {
			logger.Warn("CatalogService:PriceSelection:InvalidAddon", "id", a.ID, "kind", a.Kind, "active", a.Active)
			return nil, errors.NewAppError(errors.ErrInvalidInput, "selected add-on is not available", nil)
		}
		total += a.PriceCents
	}
	sel.TotalCents = total

	logger.Info("CatalogService:PriceSelection:Success", "base", sel.Base.Slug, "addons", len(sel.Addons), "total_cents", total)
	return sel, nil
}

func (s *CatalogService) DescribeSelection(ctx context.Context, baseID uuid.UUID, addonIDs []uuid.UUID) (*Selection, *errors.AppError) {
	return s.load(ctx, baseID, addonIDs)
}

func (s *CatalogService) load(ctx context.Context, baseID uuid.UUID, addonIDs []uuid.UUID) (*Selection, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	base, err := s.repo.GetByID(ctx, baseID)
	if err != nil {
		logger.Error("CatalogService:GetByID:Error", "id", baseID, "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load service", err)
	}
	if base == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "selected service does not exist", nil)
	}

	ids := dedupe(addonIDs)
	addons, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Error("CatalogService:GetByIDs:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to load add-ons", err)
	}

	byID := make(map[uuid.UUID]entity.Service, len(addons))
	for _, a := range addons {
		byID[a.ID] = a
	}
	ordered := make([]entity.Service, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "selected add-on does not exist", nil)
		}
		ordered = append(ordered, a)
	}

	return &Selection{Base: *base, Addons: ordered}, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
