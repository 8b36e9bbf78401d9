package controller

import (
	"io"
	"net/http"

	"sparkle-booking/core/controller"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/params"
	"sparkle-booking/core/utils"
	"sparkle-booking/modules/booking/dto"
	"sparkle-booking/modules/booking/service"
	"sparkle-booking/modules/booking/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const maxWebhookBodyBytes = 64 << 10

type BookingController struct {
	controller.BaseController
	BookingService      service.BookingServiceInterface
	ConfirmationService service.ConfirmationServiceInterface
	OrderService        service.OrderServiceInterface
}

func NewBookingController(
	bookingService service.BookingServiceInterface,
	confirmationService service.ConfirmationServiceInterface,
	orderService service.OrderServiceInterface,
) *BookingController {
	return &BookingController{
		BaseController:      controller.NewBaseController(),
		BookingService:      bookingService,
		ConfirmationService: confirmationService,
		OrderService:        orderService,
	}
}

// Checkout handles POST /public/bookings/checkout
func (c *BookingController) Checkout(ctx echo.Context) error {
	req := new(dto.CheckoutRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateCheckoutRequest(req)
	if validationResult.HasError() {
		return c.ValidationFailed(ctx, "Invalid request data", validationResult.Errors)
	}

	result, appErr := c.BookingService.Checkout(ctx.Request().Context(), req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Checkout session created")
}

// StripeWebhook handles POST /public/webhooks/stripe. The body must stay unparsed for signature checks.
func (c *BookingController) StripeWebhook(ctx echo.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(ctx.Response(), ctx.Request().Body, maxWebhookBodyBytes))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid webhook body")
	}

	appErr := c.ConfirmationService.HandleStripeWebhook(ctx.Request().Context(), body, ctx.Request().Header.Get("Stripe-Signature"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.WebhookResponse{Received: true})
}

func (c *BookingController) PrivateGetOrders(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.OrderService.PrivateGetOrders(ctx.Request().Context(), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Orders retrieved successfully")
}

func (c *BookingController) PrivateGetOrderByID(ctx echo.Context) error {
	id := utils.ToUUID(ctx.Param("id"))
	if id == uuid.Nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid order id")
	}

	result, appErr := c.OrderService.PrivateGetOrderByID(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Order retrieved successfully")
}
