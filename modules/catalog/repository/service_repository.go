package repository

import (
	"context"
	"database/sql"

	"sparkle-booking/core/database"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/catalog/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ServiceRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error)
	ListActive(ctx context.Context) ([]entity.Service, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, svc *entity.Service) error
}

type ServiceRepository struct {
	DB database.IDatabase
}

func NewServiceRepository(db database.IDatabase) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

const serviceColumns = `
	id,
	slug,
	name,
	description,
	price_cents,
	kind,
	active,
	sort_order,
	created_at,
	updated_at`

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	var svc entity.Service
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	err := r.DB.GetContext(ctx, &svc, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ServiceRepository:GetByID", "id", id, "error", err)
		return nil, err
	}
	return &svc, nil
}

func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error) {
	services := []entity.Service{}
	if len(ids) == 0 {
		return services, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = ANY($1::uuid[])`
	if err := r.DB.SelectContext(ctx, &services, query, pq.Array(raw)); err != nil {
		logger.Error("ServiceRepository:GetByIDs", "count", len(ids), "error", err)
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepository) ListActive(ctx context.Context) ([]entity.Service, error) {
	services := []entity.Service{}
	query := `SELECT ` + serviceColumns + ` FROM services WHERE active = TRUE ORDER BY kind, sort_order, name`
	if err := r.DB.SelectContext(ctx, &services, query); err != nil {
		logger.Error("ServiceRepository:ListActive", "error", err)
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM services`); err != nil {
		logger.Error("ServiceRepository:Count", "error", err)
		return 0, err
	}
	return total, nil
}

func (r *ServiceRepository) Create(ctx context.Context, svc *entity.Service) error {
	query := `
		INSERT INTO services (slug, name, description, price_cents, kind, active, sort_order)
		VALUES (:slug, :name, :description, :price_cents, :kind, :active, :sort_order)
		ON CONFLICT (slug) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, svc)
	if err != nil {
		logger.Error("ServiceRepository:Create", "slug", svc.Slug, "error", err)
		return err
	}
	defer func(rows *sqlx.Rows) { _ = rows.Close() }(rows)
	if rows.Next() {
		if err := rows.Scan(&svc.ID, &svc.CreatedAt, &svc.UpdatedAt); err != nil {
			logger.Error("ServiceRepository:Create:Scan", "slug", svc.Slug, "error", err)
			return err
		}
	}
	return rows.Err()
}
