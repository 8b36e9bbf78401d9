package validator

import (
	"testing"

	"sparkle-booking/modules/booking/dto"
)

func validRequest() *dto.CheckoutRequest {
	return &dto.CheckoutRequest{
		FullName:        "Jordan Avery",
		Email:           "jordan@example.com",
		Phone:           "(303) 555-0142",
		Street:          "1420 Larimer St",
		City:            "Denver",
		State:           "CO",
		Zip:             "80202",
		BaseServiceID:   "4f5b1c1e-1111-4a4a-9a9a-000000000001",
		AddonIDs:        []string{"4f5b1c1e-1111-4a4a-9a9a-000000000002"},
		AppointmentDate: "2099-06-14",
		AppointmentTime: "10:00",
	}
}

func TestValidateCheckoutRequest_Valid(t *testing.T) {
	result := ValidateCheckoutRequest(validRequest())
	if result.HasError() {
		t.Fatalf("errors = %+v, want none", result.Errors)
	}
}

func TestValidateCheckoutRequest_FieldRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CheckoutRequest)
		field  string
	}{
		{"short name", func(r *dto.CheckoutRequest) { r.FullName = "J" }, "full_name"},
		{"blank name", func(r *dto.CheckoutRequest) { r.FullName = "   " }, "full_name"},
		{"bad email", func(r *dto.CheckoutRequest) { r.Email = "jordan@" }, "email"},
		{"short phone", func(r *dto.CheckoutRequest) { r.Phone = "555-0142" }, "phone"},
		{"phone letters only", func(r *dto.CheckoutRequest) { r.Phone = "call me anytime" }, "phone"},
		{"short street", func(r *dto.CheckoutRequest) { r.Street = "Main" }, "street"},
		{"short city", func(r *dto.CheckoutRequest) { r.City = "D" }, "city"},
		{"short state", func(r *dto.CheckoutRequest) { r.State = "C" }, "state"},
		{"short zip", func(r *dto.CheckoutRequest) { r.Zip = "8020" }, "zip"},
		{"missing base service", func(r *dto.CheckoutRequest) { r.BaseServiceID = "" }, "base_service_id"},
		{"base service not a uuid", func(r *dto.CheckoutRequest) { r.BaseServiceID = "deep-full-detail" }, "base_service_id"},
		{"addon not a uuid", func(r *dto.CheckoutRequest) { r.AddonIDs = []string{"pet-hair"} }, "addon_ids"},
		{"missing date", func(r *dto.CheckoutRequest) { r.AppointmentDate = "" }, "appointment_date"},
		{"missing time", func(r *dto.CheckoutRequest) { r.AppointmentTime = "" }, "appointment_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			result := ValidateCheckoutRequest(req)
			if len(result.Errors) != 1 {
				t.Fatalf("errors = %+v, want exactly one", result.Errors)
			}
			if result.Errors[0].Field != tt.field {
				t.Errorf("field = %q, want %q", result.Errors[0].Field, tt.field)
			}
			if result.Errors[0].Message == "" {
				t.Error("empty message")
			}
		})
	}
}

func TestValidateCheckoutRequest_TrimsInput(t *testing.T) {
	req := validRequest()
	req.FullName = "  Jordan Avery  "
	req.AppointmentTime = " 10:00 "

	if result := ValidateCheckoutRequest(req); result.HasError() {
		t.Fatalf("errors = %+v", result.Errors)
	}
	if req.FullName != "Jordan Avery" || req.AppointmentTime != "10:00" {
		t.Errorf("request not trimmed: %q %q", req.FullName, req.AppointmentTime)
	}
}

func TestValidateCheckoutRequest_ReportsEveryField(t *testing.T) {
	result := ValidateCheckoutRequest(&dto.CheckoutRequest{})
	fields := map[string]bool{}
	for _, e := range result.Errors {
		fields[e.Field] = true
	}
	for _, want := range []string{"full_name", "email", "phone", "street", "city", "state", "zip", "base_service_id", "appointment_date", "appointment_time"} {
		if !fields[want] {
			t.Errorf("missing error for %s", want)
		}
	}
}
