package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"

	packageRepo "zela/database/repository/servicepackage"
	"zela/models"
	"zela/services/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memorySessionStore keeps sessions in a map for tests.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.BookingSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string]models.BookingSession)}
}

func (m *memorySessionStore) Save(_ context.Context, s *models.BookingSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = *s
	return nil
}

func (m *memorySessionStore) Get(_ context.Context, id string) (*models.BookingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, NewFlowError("sessionNotFound", "booking session not found or expired")
	}
	return &s, nil
}

func (m *memorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type fakeCatalog struct {
	cfg models.FlowConfig
}

func (f *fakeCatalog) Get(_ context.Context, slug string) (*models.FlowConfig, error) {
	cfg := f.cfg
	cfg.ServiceSlug = slug
	return &cfg, nil
}

type fakeGateway struct {
	charges []models.PaymentRequest
	fail    bool
}

func (f *fakeGateway) Charge(_ context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if f.fail {
		return nil, fmt.Errorf("gateway unavailable")
	}
	f.charges = append(f.charges, req)
	return &models.Invoice{InvoiceID: "inv-1", Status: models.InvoicePaid}, nil
}

type fakeBookingRepo struct {
	created []*models.Booking
	fail    bool
}

func (f *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	if f.fail {
		return fmt.Errorf("write failed")
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	return nil, fmt.Errorf("not found")
}

func (f *fakeBookingRepo) ListByUser(_ context.Context, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _, _ string) error { return nil }

type fakeNotifier struct {
	confirmed []*models.Booking
	fail      bool
}

func (f *fakeNotifier) BookingConfirmed(_ context.Context, b *models.Booking) error {
	if f.fail {
		return fmt.Errorf("queue down")
	}
	f.confirmed = append(f.confirmed, b)
	return nil
}

type orchestratorFixture struct {
	svc      *DefaultBookingSessionService
	sessions *memorySessionStore
	repo     *packageRepo.MemoryPackageRepo
	gateway  *fakeGateway
	bookings *fakeBookingRepo
	notifier *fakeNotifier
}

func newOrchestrator(t *testing.T, cfg models.FlowConfig) *orchestratorFixture {
	t.Helper()
	f := &orchestratorFixture{
		sessions: newMemorySessionStore(),
		repo:     packageRepo.NewMemoryPackageRepo(),
		gateway:  &fakeGateway{},
		bookings: &fakeBookingRepo{},
		notifier: &fakeNotifier{},
	}
	f.svc = &DefaultBookingSessionService{
		Catalog:  &fakeCatalog{cfg: cfg},
		Sessions: f.sessions,
		Ledger:   ledger.NewDefaultCreditLedger(f.repo, zap.NewNop()),
		Gateway:  f.gateway,
		Bookings: f.bookings,
		Notifier: f.notifier,
		Logger:   zap.NewNop(),
	}
	return f
}

func standardConfig() models.FlowConfig {
	return models.FlowConfig{
		FlowType:     models.FlowStandard,
		PricingModel: models.PricingFixed,
		PricingConfig: models.PricingConfig{
			Price:    10000,
			Currency: "AOA",
		},
	}
}

func packageConfig() models.FlowConfig {
	return models.FlowConfig{
		FlowType:     models.FlowPackageBased,
		PricingModel: models.PricingPackage,
		PricingConfig: models.PricingConfig{
			Currency: "AOA",
			Packages: []models.PackageOption{
				{ID: "pack5", Name: "Pacote 5 Sessões", Sessions: 5, Price: 90000},
			},
		},
	}
}

func TestStartFlow(t *testing.T) {
	f := newOrchestrator(t, standardConfig())

	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "moving", session.ServiceSlug)
	assert.Equal(t, []string{"address", "schedule", "worker", "payment", "review"}, session.Flow.Sequence)
	assert.Equal(t, "address", Current(session.Flow))

	stored, err := f.svc.GetSession(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, session.SessionID, stored.SessionID)
}

func TestSubmitScreenAdvances(t *testing.T) {
	f := newOrchestrator(t, standardConfig())
	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)

	session, err = f.svc.SubmitScreen(context.Background(), session.SessionID, "address",
		map[string]interface{}{"province": "Luanda"})
	require.NoError(t, err)
	assert.Equal(t, "schedule", Current(session.Flow))
	assert.Equal(t, map[string]interface{}{"province": "Luanda"}, session.Data["address"])
}

func TestSubmitScreenRejectsWrongScreen(t *testing.T) {
	f := newOrchestrator(t, standardConfig())
	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)

	_, err = f.svc.SubmitScreen(context.Background(), session.SessionID, "payment", nil)
	var flowErr *FlowError
	require.ErrorAs(t, err, &flowErr)
	assert.Equal(t, "wrongScreen", flowErr.Code)
}

func TestSubmitScreenCapturesSelections(t *testing.T) {
	f := newOrchestrator(t, standardConfig())
	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)

	session, err = f.svc.SubmitScreen(context.Background(), session.SessionID, "address",
		map[string]interface{}{"workerId": "w-1", "packageId": "p-1"})
	require.NoError(t, err)
	assert.Equal(t, "w-1", session.SelectedWorker)
	assert.Equal(t, "p-1", session.SelectedPackage)
}

func TestBackReturnsToOrigin(t *testing.T) {
	f := newOrchestrator(t, standardConfig())
	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)

	session, err = f.svc.SubmitScreen(context.Background(), session.SessionID, "address", nil)
	require.NoError(t, err)
	require.Equal(t, "schedule", Current(session.Flow))

	session, err = f.svc.Back(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "address", Current(session.Flow))
}

func TestQuoteUsesSubmittedData(t *testing.T) {
	cfg := models.FlowConfig{
		FlowType:     models.FlowTimeBased,
		PricingModel: models.PricingHourly,
		PricingConfig: models.PricingConfig{
			HourlyRate: 4900,
			Currency:   "AOA",
		},
	}
	f := newOrchestrator(t, cfg)
	session, err := f.svc.StartFlow(context.Background(), "express-cleaning", "user-1")
	require.NoError(t, err)

	_, err = f.svc.SubmitScreen(context.Background(), session.SessionID, "address", nil)
	require.NoError(t, err)
	_, err = f.svc.SubmitScreen(context.Background(), session.SessionID, "duration",
		map[string]interface{}{"hours": float64(3)})
	require.NoError(t, err)

	price, err := f.svc.Quote(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 14700.0, price.TotalAmount)

	t.Run("missing facts surface as invalid", func(t *testing.T) {
		other, err := f.svc.StartFlow(context.Background(), "express-cleaning", "user-2")
		require.NoError(t, err)
		_, err = f.svc.Quote(context.Background(), other.SessionID)
		var facts *InvalidFactsError
		require.ErrorAs(t, err, &facts)
	})
}

func TestConfirmChargesAndPersists(t *testing.T) {
	f := newOrchestrator(t, standardConfig())
	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)

	booking, err := f.svc.Confirm(context.Background(), session.SessionID,
		ConfirmRequest{PaymentMethod: models.PaymentMethodCard, PaymentMethodID: "pm_123"})
	require.NoError(t, err)

	require.Len(t, f.gateway.charges, 1)
	assert.Equal(t, 10000.0, f.gateway.charges[0].Amount)
	assert.Equal(t, "inv-1", booking.InvoiceID)
	require.Len(t, f.bookings.created, 1)
	require.Len(t, f.notifier.confirmed, 1)

	// The session is gone after confirmation.
	_, err = f.svc.GetSession(context.Background(), session.SessionID)
	assert.Error(t, err)
}

func TestConfirmPackageConsumesCredit(t *testing.T) {
	f := newOrchestrator(t, packageConfig())

	pkg := &models.ServicePackage{
		ID:             "pkg-1",
		OwnerID:        "user-1",
		ServiceSlug:    "dog-trainer",
		Type:           "pack5",
		TotalCredits:   5,
		UsedCredits:    0,
		PurchaseAmount: 90000,
		Status:         models.PackageActive,
	}
	require.NoError(t, f.repo.Create(context.Background(), pkg))

	session, err := f.svc.StartFlow(context.Background(), "dog-trainer", "user-1")
	require.NoError(t, err)
	_, err = f.svc.SelectPackage(context.Background(), session.SessionID, "pkg-1")
	require.NoError(t, err)

	booking, err := f.svc.Confirm(context.Background(), session.SessionID,
		ConfirmRequest{PaymentMethod: models.PaymentMethodCash})
	require.NoError(t, err)

	assert.Empty(t, f.gateway.charges, "package bookings never hit the gateway")
	assert.Equal(t, "pkg-1", booking.PackageID)
	assert.Equal(t, 0.0, booking.Pricing.TotalAmount)
	assert.Equal(t, 18000.0, booking.Pricing.CreditValue)

	stored, err := f.repo.GetByID(context.Background(), "pkg-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsedCredits)
}

func TestConfirmRefundsCreditWhenPersistFails(t *testing.T) {
	f := newOrchestrator(t, packageConfig())
	f.bookings.fail = true

	pkg := &models.ServicePackage{
		ID:           "pkg-1",
		OwnerID:      "user-1",
		TotalCredits: 5,
		UsedCredits:  2,
		Status:       models.PackageActive,
	}
	require.NoError(t, f.repo.Create(context.Background(), pkg))

	session, err := f.svc.StartFlow(context.Background(), "dog-trainer", "user-1")
	require.NoError(t, err)
	_, err = f.svc.SelectPackage(context.Background(), session.SessionID, "pkg-1")
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), session.SessionID,
		ConfirmRequest{PaymentMethod: models.PaymentMethodCash})
	require.Error(t, err)

	// The consumed credit was returned.
	stored, err := f.repo.GetByID(context.Background(), "pkg-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.UsedCredits)
}

func TestConfirmPaymentFailureLeavesSession(t *testing.T) {
	f := newOrchestrator(t, standardConfig())
	f.gateway.fail = true

	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)

	_, err = f.svc.Confirm(context.Background(), session.SessionID,
		ConfirmRequest{PaymentMethod: models.PaymentMethodCard})
	require.Error(t, err)
	assert.Empty(t, f.bookings.created)

	// The session survives so the user can retry with another method.
	_, err = f.svc.GetSession(context.Background(), session.SessionID)
	assert.NoError(t, err)
}

func TestConfirmNotificationFailureDoesNotRollBack(t *testing.T) {
	f := newOrchestrator(t, standardConfig())
	f.notifier.fail = true

	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)

	booking, err := f.svc.Confirm(context.Background(), session.SessionID,
		ConfirmRequest{PaymentMethod: models.PaymentMethodCard})
	require.NoError(t, err)
	assert.NotNil(t, booking)
	require.Len(t, f.bookings.created, 1)
}

func TestCancelDropsSession(t *testing.T) {
	f := newOrchestrator(t, standardConfig())
	session, err := f.svc.StartFlow(context.Background(), "moving", "user-1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(context.Background(), session.SessionID))
	_, err = f.svc.GetSession(context.Background(), session.SessionID)
	assert.Error(t, err)

	// No credits, charges, or bookings happened.
	assert.Empty(t, f.gateway.charges)
	assert.Empty(t, f.bookings.created)
}

func TestFlatDataMergesScreens(t *testing.T) {
	s := &models.BookingSession{
		Flow: models.FlowState{Sequence: []string{"a", "b"}},
		Data: map[string]map[string]interface{}{
			"a":        {"x": 1, "shared": "from-a"},
			"b":        {"y": 2, "shared": "from-b"},
			"orphaned": {"z": 3},
		},
	}
	flat := s.FlatData()
	assert.Equal(t, 1, flat["x"])
	assert.Equal(t, 2, flat["y"])
	assert.Equal(t, 3, flat["z"], "data from removed screens still counts")
	assert.Equal(t, "from-b", flat["shared"], "later screens win")
}
