package mapper

import (
	"testing"

	coreEntity "sparkle-booking/core/entity"
	"sparkle-booking/modules/booking/entity"

	"github.com/google/uuid"
)

func TestToPaginatedOrderResponse(t *testing.T) {
	page := &entity.PaginatedOrderEntity{
		Items: []entity.Order{
			{Reference: "SPK-AAAAAA", Status: entity.StatusRejected, BaseEntity: coreEntity.BaseEntity{ID: uuid.New()}},
			{Reference: "SPK-BBBBBB", Status: entity.StatusConfirmed, BaseEntity: coreEntity.BaseEntity{ID: uuid.New()}},
		},
		TotalItems: 41,
		PageNumber: 2,
		PageSize:   20,
	}

	resp := ToPaginatedOrderResponse(page)
	if resp.TotalPages != 3 {
		t.Errorf("total pages = %d, want 3", resp.TotalPages)
	}
	if len(resp.Items) != 2 || resp.Items[0].Reference != "SPK-AAAAAA" {
		t.Errorf("items = %+v", resp.Items)
	}
	if resp.Items[0].AddonIDs == nil {
		t.Error("addon ids should render as an empty list")
	}
}

func TestToBookingDetails(t *testing.T) {
	session := "cs_test_123"
	order := &entity.Order{
		Reference:       "SPK-7QH2M4",
		FullName:        "Jordan Avery",
		AppointmentDate: "2099-06-14",
		DepositCents:    2500,
		StripeSessionID: &session,
	}

	details := ToBookingDetails(order)
	if details.StripeSessionID != session || details.RefundID != "" {
		t.Errorf("session %q refund %q", details.StripeSessionID, details.RefundID)
	}
	if details.FullName != "Jordan Avery" || details.DepositCents != 2500 {
		t.Errorf("details = %+v", details)
	}
}
