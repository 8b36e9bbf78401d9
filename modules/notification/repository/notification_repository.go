package repository

import (
	"context"

	"sparkle-booking/core/database"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/notification/entity"

	"github.com/google/uuid"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Notification, error)
}

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (order_id, kind, channel, recipient, subject, status, error)
		VALUES (:order_id, :kind, :channel, :recipient, :subject, :status, :error)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error", "order_id", notification.OrderID, "error", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID, &notification.CreatedAt, &notification.UpdatedAt)
	}
	return rows.Err()
}

func (r *NotificationRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Notification, error) {
	items := []entity.Notification{}
	query := `
		SELECT id, order_id, kind, channel, recipient, subject, status, error, created_at, updated_at
		FROM notifications
		WHERE order_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		logger.Error("NotificationRepository:ListByOrder:Error", "order_id", orderID, "error", err)
		return nil, err
	}
	return items, nil
}
