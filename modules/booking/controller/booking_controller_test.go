package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sparkle-booking/core/errors"
	"sparkle-booking/core/params"
	"sparkle-booking/modules/booking/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type fakeBookingService struct {
	checkoutFn func(*dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError)
}

func (f fakeBookingService) Checkout(_ context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError) {
	return f.checkoutFn(req)
}

type fakeConfirmationService struct {
	payload   []byte
	signature string
	appErr    *errors.AppError
}

func (f *fakeConfirmationService) HandleStripeWebhook(_ context.Context, payload []byte, signature string) *errors.AppError {
	f.payload = payload
	f.signature = signature
	return f.appErr
}

type fakeOrderService struct {
	lastParams params.QueryParams
	getErr     *errors.AppError
}

func (f *fakeOrderService) PrivateGetOrders(_ context.Context, p params.QueryParams) (*dto.PaginatedOrderResponse, *errors.AppError) {
	f.lastParams = p
	return &dto.PaginatedOrderResponse{Items: []dto.OrderResponse{}, PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (f *fakeOrderService) PrivateGetOrderByID(_ context.Context, id uuid.UUID) (*dto.OrderResponse, *errors.AppError) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dto.OrderResponse{ID: id.String(), Status: "confirmed"}, nil
}

const validCheckoutBody = `{
	"full_name": "Jordan Avery",
	"email": "jordan@example.com",
	"phone": "303-555-0142",
	"street": "1420 Larimer St",
	"city": "Denver",
	"state": "CO",
	"zip": "80202",
	"base_service_id": "4f5b1c1e-1111-4a4a-9a9a-000000000001",
	"appointment_date": "2099-06-14",
	"appointment_time": "10:00"
}`

func serve(h echo.HandlerFunc, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCheckout_HTTP(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		checkout   func(*dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError)
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "created",
			body:       validCheckoutBody,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "validation failure",
			body:       `{"full_name": "J", "email": "nope"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"full_name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "payment provider down",
			body: validCheckoutBody,
			checkout: func(*dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError) {
				return nil, errors.NewAppError(errors.ErrUpstreamUnavailable, "failed to create checkout session", nil)
			},
			wantStatus: http.StatusBadGateway,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			checkout := tt.checkout
			if checkout == nil {
				checkout = func(*dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError) {
					return &dto.CheckoutResponse{OrderID: uuid.NewString(), Reference: "SPK-7QH2M4", URL: "https://checkout.stripe.test/cs"}, nil
				}
			}
			svc := fakeBookingService{checkoutFn: func(r *dto.CheckoutRequest) (*dto.CheckoutResponse, *errors.AppError) {
				called = true
				return checkout(r)
			}}
			ctrl := NewBookingController(svc, &fakeConfirmationService{}, &fakeOrderService{})

			rec := serve(ctrl.Checkout, http.MethodPost, "/api/v1/public/bookings/checkout", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if called != tt.wantCalled {
				t.Errorf("service called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestStripeWebhook_HTTP(t *testing.T) {
	t.Run("received", func(t *testing.T) {
		confirm := &fakeConfirmationService{}
		ctrl := NewBookingController(fakeBookingService{}, confirm, &fakeOrderService{})

		rec := serve(ctrl.StripeWebhook, http.MethodPost, "/api/v1/public/webhooks/stripe", `{"id":"evt_1"}`,
			map[string]string{"Stripe-Signature": "t=1,v1=abc"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		var body dto.WebhookResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || !body.Received {
			t.Errorf("body = %s", rec.Body.String())
		}
		if string(confirm.payload) != `{"id":"evt_1"}` || confirm.signature != "t=1,v1=abc" {
			t.Errorf("forwarded payload %q signature %q", confirm.payload, confirm.signature)
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		confirm := &fakeConfirmationService{appErr: errors.NewAppError(errors.ErrInvalidSignature, "invalid webhook signature", nil)}
		ctrl := NewBookingController(fakeBookingService{}, confirm, &fakeOrderService{})

		rec := serve(ctrl.StripeWebhook, http.MethodPost, "/api/v1/public/webhooks/stripe", `{}`, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})
}

func TestPrivateOrders_HTTP(t *testing.T) {
	orders := &fakeOrderService{}
	ctrl := NewBookingController(fakeBookingService{}, &fakeConfirmationService{}, orders)

	rec := serve(ctrl.PrivateGetOrders, http.MethodGet, "/api/v1/private/orders?status=rejected&page_size=5", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if orders.lastParams.Status != "rejected" || orders.lastParams.PageSize != 5 {
		t.Errorf("params = %+v", orders.lastParams)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/private/orders/not-a-uuid", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	if err := ctrl.PrivateGetOrderByID(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}

	orders.getErr = errors.NewAppError(errors.ErrNotFound, "order not found", nil)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/private/orders/x", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())
	if err := ctrl.PrivateGetOrderByID(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing order status = %d, want 404", rec.Code)
	}
}
