package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sparkle-booking/core/cache"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/logger"
	"sparkle-booking/modules/calendar/entity"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const orderIDProperty = "order_id"

// GatewayConfig is the service credential and calendar the gateway talks to.
type GatewayConfig struct {
	ServiceIssuer  string
	SigningKey     string
	CalendarID     string
	TokenAudience  string
	Scope          string
	APIEndpoint    string
	RequestTimeout time.Duration
}

func (c GatewayConfig) requestTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return c.RequestTimeout
}

// Gateway is the bridge to the shared business calendar.
type Gateway interface {
	ListBusyIntervals(ctx context.Context, start, end time.Time) ([]entity.BusyInterval, error)
	// EnsureSlotFree re-queries exactly [start, end) and fails with SLOT_CONFLICT if anything is busy.
	EnsureSlotFree(ctx context.Context, start, end time.Time) error
	CreateEvent(ctx context.Context, in entity.EventInput) (string, error)
	// FindEventByOrder returns the id of an event already created for the order, or "".
	FindEventByOrder(ctx context.Context, orderID string) (string, error)
}

type googleGateway struct {
	svc        *calendar.Service
	calendarID string
	timeout    time.Duration
}

func NewGoogleGateway(ctx context.Context, cfg GatewayConfig, c cache.Cache) (Gateway, error) {
	ts, err := NewAssertionTokenSource(cfg, nil, c)
	if err != nil {
		return nil, err
	}
	return newGoogleGateway(ctx, cfg, ts, http.DefaultTransport)
}

func newGoogleGateway(ctx context.Context, cfg GatewayConfig, ts oauth2.TokenSource, base http.RoundTripper) (*googleGateway, error) {
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: ts, Base: base},
		Timeout:   cfg.requestTimeout(),
	}
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.APIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.APIEndpoint))
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar: new service: %w", err)
	}
	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	return &googleGateway{svc: svc, calendarID: calendarID, timeout: cfg.requestTimeout()}, nil
}

func (g *googleGateway) ListBusyIntervals(ctx context.Context, start, end time.Time) ([]entity.BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := &calendar.FreeBusyRequest{
		TimeMin: start.UTC().Format(time.RFC3339),
		TimeMax: end.UTC().Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: g.calendarID}},
	}
	resp, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		logger.Error("CalendarGateway:ListBusyIntervals:Error", "calendar_id", g.calendarID, "error", err)
		return nil, upstreamError("failed to fetch calendar availability", err)
	}

	cal, ok := resp.Calendars[g.calendarID]
	if !ok {
		logger.Error("CalendarGateway:ListBusyIntervals:CalendarMissing", "calendar_id", g.calendarID)
		return nil, errors.NewAppError(errors.ErrUpstreamUnavailable, "calendar missing from availability response", nil)
	}
	if len(cal.Errors) > 0 {
		logger.Error("CalendarGateway:ListBusyIntervals:CalendarError", "calendar_id", g.calendarID, "reason", cal.Errors[0].Reason)
		return nil, errors.NewAppError(errors.ErrUpstreamUnavailable, "calendar availability unavailable", fmt.Errorf("freebusy: %s", cal.Errors[0].Reason))
	}

	busy := make([]entity.BusyInterval, 0, len(cal.Busy))
	for _, p := range cal.Busy {
		if p == nil {
			continue
		}
		bs, errStart := time.Parse(time.RFC3339, p.Start)
		be, errEnd := time.Parse(time.RFC3339, p.End)
		if errStart != nil || errEnd != nil {
			logger.Warn("CalendarGateway:ListBusyIntervals:UnparseableInterval", "start", p.Start, "end", p.End)
			continue
		}
		busy = append(busy, entity.BusyInterval{Start: bs, End: be})
	}

	logger.Info("CalendarGateway:ListBusyIntervals:Success", "calendar_id", g.calendarID, "busy", len(busy))
	return busy, nil
}

func (g *googleGateway) EnsureSlotFree(ctx context.Context, start, end time.Time) error {
	busy, err := g.ListBusyIntervals(ctx, start, end)
	if err != nil {
		return err
	}
	for _, b := range busy {
		if b.Valid() && b.Overlaps(start, end) {
			logger.Warn("CalendarGateway:EnsureSlotFree:Conflict", "start", start, "end", end, "busy_start", b.Start, "busy_end", b.End)
			return errors.NewAppError(errors.ErrSlotConflict, errors.SlotConflictMessage, nil)
		}
	}
	return nil
}

func (g *googleGateway) CreateEvent(ctx context.Context, in entity.EventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	ev := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       eventTime(in.Start, in.TimeZone),
		End:         eventTime(in.End, in.TimeZone),
	}
	if in.OrderID != "" {
		ev.ExtendedProperties = &calendar.EventExtendedProperties{
			Private: map[string]string{orderIDProperty: in.OrderID},
		}
	}

	created, err := g.svc.Events.Insert(g.calendarID, ev).Context(ctx).Do()
	if err != nil {
		logger.Error("CalendarGateway:CreateEvent:Error", "order_id", in.OrderID, "error", err)
		return "", upstreamError("failed to create calendar event", err)
	}
	if created.Id == "" {
		return "", errors.NewAppError(errors.ErrUpstreamUnavailable, "calendar event id missing in response", nil)
	}

	logger.Info("CalendarGateway:CreateEvent:Success", "order_id", in.OrderID, "event_id", created.Id)
	return created.Id, nil
}

func (g *googleGateway) FindEventByOrder(ctx context.Context, orderID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	events, err := g.svc.Events.List(g.calendarID).
		PrivateExtendedProperty(orderIDProperty + "=" + orderID).
		ShowDeleted(false).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		logger.Error("CalendarGateway:FindEventByOrder:Error", "order_id", orderID, "error", err)
		return "", upstreamError("failed to look up calendar event", err)
	}
	for _, ev := range events.Items {
		if ev != nil && ev.Id != "" && ev.Status != "cancelled" {
			return ev.Id, nil
		}
	}
	return "", nil
}

func eventTime(t time.Time, tz string) *calendar.EventDateTime {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			t = t.In(loc)
		}
	}
	return &calendar.EventDateTime{DateTime: t.Format(time.RFC3339), TimeZone: tz}
}

// upstreamError keeps token failures as UPSTREAM_AUTH and maps everything else to UPSTREAM_UNAVAILABLE.
func upstreamError(msg string, err error) error {
	if errors.HasCode(err, errors.ErrUpstreamAuth) {
		return errors.NewAppError(errors.ErrUpstreamAuth, "calendar authentication failed", err)
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusUnauthorized {
		return errors.NewAppError(errors.ErrUpstreamAuth, "calendar rejected credentials", err)
	}
	return errors.NewAppError(errors.ErrUpstreamUnavailable, msg, err)
}
