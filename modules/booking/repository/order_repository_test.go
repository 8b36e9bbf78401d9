package repository

import (
	"context"
	"testing"

	"sparkle-booking/core/database"
	"sparkle-booking/core/params"
	"sparkle-booking/modules/booking/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*OrderRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return NewOrderRepository(database.NewDatabase(sqlx.NewDb(db, "postgres"))), mock
}

func TestConfirmPayment_OnlyFromPending(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"pending order", 1, true},
		{"already confirmed or expired", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			id := uuid.New()
			mock.ExpectExec(`UPDATE orders SET status = \$1, .* WHERE id = \$4 AND status = \$5`).
				WithArgs(entity.StatusConfirmed, "cs_test_123", "pi_123", id.String(), entity.StatusPendingPayment).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := repo.ConfirmPayment(context.Background(), id, "cs_test_123", "pi_123")
			if err != nil {
				t.Fatalf("ConfirmPayment: %v", err)
			}
			if got != tt.want {
				t.Errorf("confirmed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarkExpired_OnlyFromPending(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = now\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs(entity.StatusExpired, id.String(), entity.StatusPendingPayment).
		WillReturnResult(sqlmock.NewResult(0, 0))

	expired, err := repo.MarkExpired(context.Background(), id)
	if err != nil {
		t.Fatalf("MarkExpired: %v", err)
	}
	if expired {
		t.Error("expired = true for an order that was not pending")
	}
}

func TestMarkRejected_OnlyFromConfirmed(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	refundID := "re_123"
	mock.ExpectExec(`UPDATE orders SET status = \$1, refund_id = \$2, calendar_sync_error = \$3, .* WHERE id = \$4 AND status = \$5`).
		WithArgs(entity.StatusRejected, refundID, "slot no longer available", id.String(), entity.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkRejected(context.Background(), id, &refundID, "slot no longer available"); err != nil {
		t.Fatalf("MarkRejected: %v", err)
	}
}

func TestTransition_ExecError(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	mock.ExpectExec(`UPDATE orders SET status = \$1`).
		WillReturnError(sqlmock.ErrCancelled)

	if _, err := repo.MarkExpired(context.Background(), id); err == nil {
		t.Fatal("MarkExpired error swallowed")
	}
}

func TestList_FiltersByStatusAndSearch(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	where := `WHERE status = \$1 AND \(reference ILIKE \$2 OR email ILIKE \$2 OR full_name ILIKE \$2\)`

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders ` + where).
		WithArgs(entity.StatusConfirmed, "%jordan%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`SELECT .* FROM orders ` + where + ` ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs(entity.StatusConfirmed, "%jordan%", 5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "status"}).
			AddRow(id.String(), "SPK-7QH2M4", entity.StatusConfirmed))

	page, err := repo.List(context.Background(), params.QueryParams{
		PageNumber: 3,
		PageSize:   5,
		Search:     "jordan",
		Status:     entity.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalItems != 11 || page.PageNumber != 3 || page.PageSize != 5 {
		t.Errorf("page = %+v", page)
	}
	if len(page.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(page.Items))
	}
	if got := page.Items[0]; got.ID != id || got.Reference != "SPK-7QH2M4" || got.Status != entity.StatusConfirmed {
		t.Errorf("item = %+v", got)
	}
}

func TestList_NoFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM orders ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference", "status"}))

	page, err := repo.List(context.Background(), params.QueryParams{PageNumber: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.TotalItems != 0 || len(page.Items) != 0 {
		t.Errorf("page = %+v", page)
	}
}
