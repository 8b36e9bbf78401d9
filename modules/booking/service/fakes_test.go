package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"sparkle-booking/core/constants"
	coreEntity "sparkle-booking/core/entity"
	"sparkle-booking/core/errors"
	"sparkle-booking/core/params"
	availabilityEntity "sparkle-booking/modules/availability/entity"
	availabilityService "sparkle-booking/modules/availability/service"
	"sparkle-booking/modules/booking/entity"
	calendarEntity "sparkle-booking/modules/calendar/entity"
	catalogDto "sparkle-booking/modules/catalog/dto"
	catalogEntity "sparkle-booking/modules/catalog/entity"
	catalogService "sparkle-booking/modules/catalog/service"
	notificationDto "sparkle-booking/modules/notification/dto"
	paymentEntity "sparkle-booking/modules/payment/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*entity.Order
	createErr error
	sessions  map[uuid.UUID]string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   map[uuid.UUID]*entity.Order{},
		sessions: map[uuid.UUID]string{},
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = uuid.New()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderRepo) List(_ context.Context, p params.QueryParams) (*entity.PaginatedOrderEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []entity.Order{}
	for _, o := range f.orders {
		if p.Status == "" || o.Status == p.Status {
			items = append(items, *o)
		}
	}
	return &entity.PaginatedOrderEntity{Items: items, TotalItems: len(items), PageNumber: p.PageNumber, PageSize: p.PageSize}, nil
}

func (f *fakeOrderRepo) SetStripeSession(_ context.Context, id uuid.UUID, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[id] = sessionID
	if o, ok := f.orders[id]; ok {
		o.StripeSessionID = &sessionID
	}
	return nil
}

func (f *fakeOrderRepo) ConfirmPayment(_ context.Context, id uuid.UUID, sessionID, paymentIntentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Status != entity.StatusPendingPayment {
		return false, nil
	}
	o.Status = entity.StatusConfirmed
	if sessionID != "" {
		o.StripeSessionID = &sessionID
	}
	if paymentIntentID != "" {
		o.StripePaymentIntentID = &paymentIntentID
	}
	return true, nil
}

func (f *fakeOrderRepo) MarkExpired(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.Status != entity.StatusPendingPayment {
		return false, nil
	}
	o.Status = entity.StatusExpired
	return true, nil
}

func (f *fakeOrderRepo) SetCalendarEvent(_ context.Context, id uuid.UUID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		o.CalendarEventID = &eventID
		o.CalendarSyncError = nil
	}
	return nil
}

func (f *fakeOrderRepo) SetCalendarSyncError(_ context.Context, id uuid.UUID, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		o.CalendarSyncError = &msg
	}
	return nil
}

func (f *fakeOrderRepo) MarkRejected(_ context.Context, id uuid.UUID, refundID *string, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok && o.Status == entity.StatusConfirmed {
		o.Status = entity.StatusRejected
		o.RefundID = refundID
		o.CalendarSyncError = &reason
	}
	return nil
}

func (f *fakeOrderRepo) put(order entity.Order) *entity.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders[order.ID] = &order
	return &order
}

func (f *fakeOrderRepo) get(t *testing.T, id uuid.UUID) *entity.Order {
	t.Helper()
	order, _ := f.GetByID(context.Background(), id)
	if order == nil {
		t.Fatalf("order %s not stored", id)
	}
	return order
}

var (
	deepDetail = catalogEntity.Service{
		Name: "Deep Full Detail (SUV/Truck)", Kind: catalogEntity.KindBase, PriceCents: 60500, Active: true,
		BaseEntity: coreEntity.BaseEntity{ID: uuid.MustParse("4f5b1c1e-1111-4a4a-9a9a-000000000001")},
	}
	petHair = catalogEntity.Service{
		Name: "Pet Hair Removal", Kind: catalogEntity.KindAddon, PriceCents: 5000, Active: true,
		BaseEntity: coreEntity.BaseEntity{ID: uuid.MustParse("4f5b1c1e-1111-4a4a-9a9a-000000000002")},
	}
)

type fakeCatalog struct {
	priceFn func(baseID uuid.UUID, addonIDs []uuid.UUID) (*catalogService.Selection, *errors.AppError)
}

func (f *fakeCatalog) ListActive(context.Context) (*catalogDto.CatalogResponse, *errors.AppError) {
	return &catalogDto.CatalogResponse{}, nil
}

func (f *fakeCatalog) PriceSelection(_ context.Context, baseID uuid.UUID, addonIDs []uuid.UUID) (*catalogService.Selection, *errors.AppError) {
	if f.priceFn != nil {
		return f.priceFn(baseID, addonIDs)
	}
	return defaultSelection(baseID, addonIDs)
}

func (f *fakeCatalog) DescribeSelection(_ context.Context, baseID uuid.UUID, addonIDs []uuid.UUID) (*catalogService.Selection, *errors.AppError) {
	return defaultSelection(baseID, addonIDs)
}

func defaultSelection(baseID uuid.UUID, addonIDs []uuid.UUID) (*catalogService.Selection, *errors.AppError) {
	if baseID != deepDetail.ID {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown base service", nil)
	}
	sel := &catalogService.Selection{Base: deepDetail, TotalCents: deepDetail.PriceCents}
	for _, id := range addonIDs {
		if id != petHair.ID {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "unknown add-on", nil)
		}
		sel.Addons = append(sel.Addons, petHair)
		sel.TotalCents += petHair.PriceCents
	}
	return sel, nil
}

func newResolver(t *testing.T) *availabilityService.AvailabilityService {
	t.Helper()
	loc, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	tmpl, err := availabilityEntity.ParseTemplate(availabilityEntity.DefaultWindows)
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	return availabilityService.NewAvailabilityService(nil, tmpl, loc)
}

type fakePayments struct {
	mu         sync.Mutex
	sessions   []paymentEntity.CheckoutSessionInput
	checkoutFn func(paymentEntity.CheckoutSessionInput) (*paymentEntity.CheckoutSession, error)
	parseFn    func(payload []byte, sig string) (*paymentEntity.WebhookEvent, error)
	refunds    []string
	refundErr  error
}

func (f *fakePayments) CreateCheckoutSession(_ context.Context, in paymentEntity.CheckoutSessionInput) (*paymentEntity.CheckoutSession, error) {
	f.mu.Lock()
	f.sessions = append(f.sessions, in)
	f.mu.Unlock()
	if f.checkoutFn != nil {
		return f.checkoutFn(in)
	}
	return &paymentEntity.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.test/cs_test_123"}, nil
}

func (f *fakePayments) ParseWebhookEvent(payload []byte, sig string) (*paymentEntity.WebhookEvent, error) {
	if f.parseFn != nil {
		return f.parseFn(payload, sig)
	}
	return nil, fmt.Errorf("no parser configured")
}

func (f *fakePayments) Refund(_ context.Context, paymentIntentID, orderID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds = append(f.refunds, paymentIntentID)
	if f.refundErr != nil {
		return "", f.refundErr
	}
	return "re_" + paymentIntentID, nil
}

type fakeEnqueuer struct {
	mu     sync.Mutex
	tasks  []*asynq.Task
	queues []string
	err    error
}

func (f *fakeEnqueuer) Enqueue(_ context.Context, task *asynq.Task, opts ...asynq.Option) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	name := constants.TaskQueueDefault
	for _, opt := range opts {
		if opt.Type() == asynq.QueueOpt {
			name = opt.Value().(string)
		}
	}
	f.tasks = append(f.tasks, task)
	f.queues = append(f.queues, name)
	return nil
}

func (f *fakeEnqueuer) queueOf(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queues[i]
}

func (f *fakeEnqueuer) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.tasks))
	for _, task := range f.tasks {
		out = append(out, task.Type())
	}
	return out
}

type fakeGateway struct {
	mu          sync.Mutex
	calls       []string
	ensureErr   error
	createErr   error
	findEventID string
	created     []calendarEntity.EventInput
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGateway) ListBusyIntervals(context.Context, time.Time, time.Time) ([]calendarEntity.BusyInterval, error) {
	f.record("list")
	return nil, nil
}

func (f *fakeGateway) EnsureSlotFree(context.Context, time.Time, time.Time) error {
	f.record("ensure")
	return f.ensureErr
}

func (f *fakeGateway) CreateEvent(_ context.Context, in calendarEntity.EventInput) (string, error) {
	f.record("create")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.mu.Lock()
	f.created = append(f.created, in)
	f.mu.Unlock()
	return "evt_1", nil
}

func (f *fakeGateway) FindEventByOrder(context.Context, string) (string, error) {
	f.record("find")
	return f.findEventID, nil
}

type fakeNotifier struct {
	mu          sync.Mutex
	bookings    []notificationDto.BookingDetails
	unavailable []notificationDto.BookingDetails
	err         error
}

func (f *fakeNotifier) SendBookingNotification(_ context.Context, details notificationDto.BookingDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, details)
	return f.err
}

func (f *fakeNotifier) SendSlotUnavailable(_ context.Context, details notificationDto.BookingDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unavailable = append(f.unavailable, details)
	return f.err
}

type fakePublisher struct {
	mu        sync.Mutex
	published []any
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, _ string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, payload)
	return f.err
}

func strPtr(s string) *string { return &s }
