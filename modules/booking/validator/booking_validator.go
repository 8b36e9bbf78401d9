package validator

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"sparkle-booking/core/controller"
	"sparkle-booking/modules/booking/dto"

	"github.com/go-playground/validator/v10"
)

type ValidationResult struct {
	Errors []controller.ValidationError `json:"errors"`
}

func (r *ValidationResult) HasError() bool {
	return len(r.Errors) > 0
}

func (r *ValidationResult) add(field, message string) {
	r.Errors = append(r.Errors, controller.ValidationError{Field: field, Message: message})
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("phone", validPhone)
	})
	return validate
}

// validPhone accepts any formatting as long as at least ten digits are present.
func validPhone(fl validator.FieldLevel) bool {
	digits := 0
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= 10
}

var messages = map[string]string{
	"full_name":        "Full name must be at least 2 characters",
	"email":            "Please enter a valid email address",
	"phone":            "Phone number must be at least 10 digits",
	"street":           "Street address must be at least 5 characters",
	"city":             "City must be at least 2 characters",
	"state":            "State must be at least 2 characters",
	"zip":              "ZIP code must be at least 5 characters",
	"base_service_id":  "Please select a service",
	"addon_ids":        "Add-on ids must be valid",
	"appointment_date": "Please select a date",
	"appointment_time": "Please select a time",
}

func ValidateCheckoutRequest(req *dto.CheckoutRequest) *ValidationResult {
	result := &ValidationResult{}
	normalize(req)

	err := instance().Struct(req)
	if err == nil {
		return result
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		result.add("request", "Invalid request data")
		return result
	}

	seen := map[string]bool{}
	for _, fe := range validationErrors {
		field := fe.Field()
		if strings.HasPrefix(fe.Namespace(), "CheckoutRequest.addon_ids") {
			field = "addon_ids"
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		msg, ok := messages[field]
		if !ok {
			msg = field + " is invalid"
		}
		result.add(field, msg)
	}
	return result
}

func normalize(req *dto.CheckoutRequest) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Street = strings.TrimSpace(req.Street)
	req.City = strings.TrimSpace(req.City)
	req.State = strings.TrimSpace(req.State)
	req.Zip = strings.TrimSpace(req.Zip)
	req.AppointmentDate = strings.TrimSpace(req.AppointmentDate)
	req.AppointmentTime = strings.TrimSpace(req.AppointmentTime)
	req.VehicleDetails = strings.TrimSpace(req.VehicleDetails)
	req.Notes = strings.TrimSpace(req.Notes)
}
