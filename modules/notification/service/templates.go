package service

import (
	"bytes"
	"html/template"

	"sparkle-booking/modules/notification/dto"
)

type emailView struct {
	dto.BookingDetails
	Deposit   string
	ZoneLabel string
}

var ownerBookingTmpl = template.Must(template.New("owner_booking").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #6366f1; border-bottom: 2px solid #6366f1; padding-bottom: 10px;">New Booking Received</h1>
  <div style="background: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <h2 style="margin-top: 0;">Order {{.Reference}}</h2>
    <p style="margin: 5px 0;"><strong>Order ID:</strong> {{.OrderID}}</p>
    <p style="margin: 5px 0;"><strong>Stripe Session:</strong> {{.StripeSessionID}}</p>
    <p style="margin: 5px 0;"><strong>Deposit Charged:</strong> {{.Deposit}}</p>
  </div>
  <h3>Customer Information</h3>
  <p><strong>Name:</strong> {{.FullName}}<br><strong>Email:</strong> {{.Email}}{{if .Phone}}<br><strong>Phone:</strong> {{.Phone}}{{end}}</p>
  {{if or .Street .City}}<h3>Service Address</h3>
  <p>{{.Street}}<br>{{.City}}, {{.State}} {{.Zip}}</p>{{end}}
  <h3>Appointment Schedule</h3>
  <div style="background: #dbeafe; padding: 20px; border-radius: 8px; border-left: 4px solid #3b82f6;">
    <p style="font-size: 18px; font-weight: bold;">{{.AppointmentDate}}</p>
    <p>{{.AppointmentWindow}} {{.ZoneLabel}}{{if .WindowHours}} ({{.WindowHours}}-hour appointment){{end}}</p>
  </div>
  <h3>Services Requested</h3>
  <p><strong>Base Service:</strong> {{.BaseService}}</p>
  {{if .Addons}}<p><strong>Add-ons:</strong></p><ul>{{range .Addons}}<li>{{.}}</li>{{end}}</ul>{{end}}
  {{if .VehicleDetails}}<h3>Vehicle Details</h3><p>{{.VehicleDetails}}</p>{{end}}
  {{if .Notes}}<h3>Additional Notes</h3><p>{{.Notes}}</p>{{end}}
  <p style="margin-top: 40px; text-align: center; color: #6b7280;">Sparkle Auto Detailing LLC</p>
</div>`))

var customerSlotUnavailableTmpl = template.Must(template.New("customer_slot_unavailable").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #6366f1;">Your appointment time is no longer available</h1>
  <p>Hi {{.FullName}},</p>
  <p>Thank you for booking with Sparkle Auto Detailing. Unfortunately the {{.AppointmentWindow}} {{.ZoneLabel}} window on {{.AppointmentDate}} was taken before your booking could be confirmed.</p>
  {{if .RefundID}}<p>Your deposit of {{.Deposit}} has been refunded. It may take 5-10 business days to appear on your statement.</p>
  {{else}}<p>We will refund your deposit of {{.Deposit}} shortly.</p>{{end}}
  <p>Please choose another time on our booking page. Reference: {{.Reference}}</p>
  <p style="margin-top: 40px; color: #6b7280;">Sparkle Auto Detailing LLC</p>
</div>`))

var ownerSlotUnavailableTmpl = template.Must(template.New("owner_slot_unavailable").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #b91c1c;">Booking rejected: slot already taken</h1>
  <p>Order {{.Reference}} ({{.OrderID}}) for {{.FullName}} &lt;{{.Email}}&gt; paid for {{.AppointmentDate}} {{.AppointmentWindow}} {{.ZoneLabel}}, but the calendar already had an event in that window.</p>
  {{if .RefundID}}<p>Refund {{.RefundID}} was issued for {{.Deposit}}.</p>
  {{else}}<p><strong>The automatic refund failed. Refund {{.Deposit}} manually in Stripe (session {{.StripeSessionID}}).</strong></p>{{end}}
</div>`))

func render(tmpl *template.Template, view emailView) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
