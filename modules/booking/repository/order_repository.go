package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sparkle-booking/core/database"
	"sparkle-booking/core/logger"
	"sparkle-booking/core/params"
	"sparkle-booking/modules/booking/entity"

	"github.com/google/uuid"
)

type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedOrderEntity, error)
	SetStripeSession(ctx context.Context, id uuid.UUID, sessionID string) error
	// ConfirmPayment moves a pending order to confirmed. It reports false when the order was not pending.
	ConfirmPayment(ctx context.Context, id uuid.UUID, sessionID, paymentIntentID string) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)
	SetCalendarEvent(ctx context.Context, id uuid.UUID, eventID string) error
	SetCalendarSyncError(ctx context.Context, id uuid.UUID, msg string) error
	MarkRejected(ctx context.Context, id uuid.UUID, refundID *string, reason string) error
}

type OrderRepository struct {
	DB database.IDatabase
}

func NewOrderRepository(db database.IDatabase) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = `
	id,
	reference,
	full_name,
	email,
	phone,
	street,
	city,
	state,
	zip,
	base_service_id,
	addon_ids::text[] AS addon_ids,
	appointment_date,
	appointment_time,
	vehicle_details,
	notes,
	total_cents,
	deposit_cents,
	status,
	stripe_session_id,
	stripe_payment_intent_id,
	calendar_event_id,
	calendar_sync_error,
	refund_id,
	created_at,
	updated_at`

func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (
			reference, full_name, email, phone, street, city, state, zip,
			base_service_id, addon_ids, appointment_date, appointment_time,
			vehicle_details, notes, total_cents, deposit_cents, status
		) VALUES (
			:reference, :full_name, :email, :phone, :street, :city, :state, :zip,
			:base_service_id, :addon_ids, :appointment_date, :appointment_time,
			:vehicle_details, :notes, :total_cents, :deposit_cents, :status
		)
		RETURNING id, created_at, updated_at
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, order)
	if err != nil {
		logger.Error("OrderRepository:Create", "reference", order.Reference, "error", err)
		return err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return fmt.Errorf("insert order returned no row")
	}
	return rows.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := r.DB.GetContext(ctx, &order, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("OrderRepository:GetByID", "id", id, "error", err)
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, params params.QueryParams) (*entity.PaginatedOrderEntity, error) {
	conditions := []string{}
	args := []any{}
	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(reference ILIKE $%d OR email ILIKE $%d OR full_name ILIKE $%d)", n, n, n))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) FROM orders"+where, args...); err != nil {
		logger.Error("OrderRepository:List:Count", "error", err)
		return nil, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	orders := []entity.Order{}
	if err := r.DB.SelectContext(ctx, &orders, query, args...); err != nil {
		logger.Error("OrderRepository:List:Select", "error", err)
		return nil, err
	}

	return &entity.PaginatedOrderEntity{
		Items:      orders,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *OrderRepository) SetStripeSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	query := `UPDATE orders SET stripe_session_id = $1, updated_at = now() WHERE id = $2`
	return r.exec(ctx, "SetStripeSession", query, sessionID, id)
}

func (r *OrderRepository) ConfirmPayment(ctx context.Context, id uuid.UUID, sessionID, paymentIntentID string) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1,
			stripe_session_id = COALESCE(NULLIF($2, ''), stripe_session_id),
			stripe_payment_intent_id = NULLIF($3, ''),
			updated_at = now()
		WHERE id = $4 AND status = $5
	`
	return r.transition(ctx, "ConfirmPayment", query, entity.StatusConfirmed, sessionID, paymentIntentID, id, entity.StatusPendingPayment)
}

func (r *OrderRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE orders SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`
	return r.transition(ctx, "MarkExpired", query, entity.StatusExpired, id, entity.StatusPendingPayment)
}

func (r *OrderRepository) SetCalendarEvent(ctx context.Context, id uuid.UUID, eventID string) error {
	query := `UPDATE orders SET calendar_event_id = $1, calendar_sync_error = NULL, updated_at = now() WHERE id = $2`
	return r.exec(ctx, "SetCalendarEvent", query, eventID, id)
}

func (r *OrderRepository) SetCalendarSyncError(ctx context.Context, id uuid.UUID, msg string) error {
	query := `UPDATE orders SET calendar_sync_error = $1, updated_at = now() WHERE id = $2`
	return r.exec(ctx, "SetCalendarSyncError", query, msg, id)
}

func (r *OrderRepository) MarkRejected(ctx context.Context, id uuid.UUID, refundID *string, reason string) error {
	query := `
		UPDATE orders
		SET status = $1, refund_id = $2, calendar_sync_error = $3, updated_at = now()
		WHERE id = $4 AND status = $5
	`
	_, err := r.transition(ctx, "MarkRejected", query, entity.StatusRejected, refundID, reason, id, entity.StatusConfirmed)
	return err
}

func (r *OrderRepository) exec(ctx context.Context, op, query string, args ...any) error {
	if err := r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.Error("OrderRepository:"+op, "error", err)
		return err
	}
	return nil
}

func (r *OrderRepository) transition(ctx context.Context, op, query string, args ...any) (bool, error) {
	result, err := r.DB.SQLx().ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("OrderRepository:"+op, "error", err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		logger.Error("OrderRepository:"+op+":RowsAffected", "error", err)
		return false, err
	}
	return rowsAffected == 1, nil
}
