package mapper

import (
	"sparkle-booking/modules/booking/dto"
	"sparkle-booking/modules/booking/entity"
	notificationDto "sparkle-booking/modules/notification/dto"
)

func ToOrderResponse(order *entity.Order) dto.OrderResponse {
	addonIDs := []string(order.AddonIDs)
	if addonIDs == nil {
		addonIDs = []string{}
	}
	return dto.OrderResponse{
		ID:                    order.ID.String(),
		Reference:             order.Reference,
		FullName:              order.FullName,
		Email:                 order.Email,
		Phone:                 order.Phone,
		Street:                order.Street,
		City:                  order.City,
		State:                 order.State,
		Zip:                   order.Zip,
		BaseServiceID:         order.BaseServiceID.String(),
		AddonIDs:              addonIDs,
		AppointmentDate:       order.AppointmentDate,
		AppointmentTime:       order.AppointmentTime,
		VehicleDetails:        order.VehicleDetails,
		Notes:                 order.Notes,
		TotalCents:            order.TotalCents,
		DepositCents:          order.DepositCents,
		Status:                order.Status,
		StripeSessionID:       order.StripeSessionID,
		StripePaymentIntentID: order.StripePaymentIntentID,
		CalendarEventID:       order.CalendarEventID,
		CalendarSyncError:     order.CalendarSyncError,
		RefundID:              order.RefundID,
		CreatedAt:             order.CreatedAt,
		UpdatedAt:             order.UpdatedAt,
	}
}

func ToPaginatedOrderResponse(page *entity.PaginatedOrderEntity) *dto.PaginatedOrderResponse {
	items := make([]dto.OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToOrderResponse(&page.Items[i]))
	}

	totalPages := 0
	if page.PageSize > 0 {
		totalPages = (page.TotalItems + page.PageSize - 1) / page.PageSize
	}

	return &dto.PaginatedOrderResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: totalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

// ToBookingDetails fills the contact and order fields; services and window are set by the caller.
func ToBookingDetails(order *entity.Order) notificationDto.BookingDetails {
	details := notificationDto.BookingDetails{
		OrderID:         order.ID,
		Reference:       order.Reference,
		FullName:        order.FullName,
		Email:           order.Email,
		Phone:           order.Phone,
		Street:          order.Street,
		City:            order.City,
		State:           order.State,
		Zip:             order.Zip,
		AppointmentDate: order.AppointmentDate,
		VehicleDetails:  order.VehicleDetails,
		Notes:           order.Notes,
		DepositCents:    order.DepositCents,
	}
	if order.StripeSessionID != nil {
		details.StripeSessionID = *order.StripeSessionID
	}
	if order.RefundID != nil {
		details.RefundID = *order.RefundID
	}
	return details
}
