package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) Create(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	if args.Error(0) == nil {
		res.ID = 1
	}
	return args.Error(0)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReservationRepo) Save(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *mockReservationRepo) HasDateConflict(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error) {
	args := m.Called(ctx, propertyID, checkIn, checkOut)
	return args.Bool(0), args.Error(1)
}

func (m *mockReservationRepo) List(ctx context.Context, f repository.ReservationFilters) ([]domain.Reservation, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int64), args.Error(2)
}

func (m *mockReservationRepo) RatingsForProperty(ctx context.Context, propertyID int64) ([]int, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]int), args.Error(1)
}

type mockPropertyLookup struct {
	mock.Mock
}

func (m *mockPropertyLookup) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyLookup) UpdateRating(ctx context.Context, id int64, average float64, count int) error {
	args := m.Called(ctx, id, average, count)
	return args.Error(0)
}

type mockUserLoader struct {
	mock.Mock
}

func (m *mockUserLoader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyReservationRequested(ctx context.Context, hostID, guestID, propertyID, reservationID int64, propertyTitle string) {
	m.Called(ctx, hostID, guestID, propertyID, reservationID, propertyTitle)
}

func (m *mockNotifier) NotifyReservationConfirmed(ctx context.Context, guestID, senderID, propertyID, reservationID int64, propertyTitle string) {
	m.Called(ctx, guestID, senderID, propertyID, reservationID, propertyTitle)
}

func (m *mockNotifier) NotifyReservationCancelled(ctx context.Context, recipientID, senderID, propertyID, reservationID int64, propertyTitle string) {
	m.Called(ctx, recipientID, senderID, propertyID, reservationID, propertyTitle)
}

func (m *mockNotifier) NotifyReservationCompleted(ctx context.Context, guestID, propertyID, reservationID int64, propertyTitle string) {
	m.Called(ctx, guestID, propertyID, reservationID, propertyTitle)
}

func (m *mockNotifier) NotifyNewReview(ctx context.Context, hostID, guestID, propertyID, reservationID int64, rating int, propertyTitle string) {
	m.Called(ctx, hostID, guestID, propertyID, reservationID, rating, propertyTitle)
}

func (m *mockNotifier) NotifyPaymentReceived(ctx context.Context, hostID, guestID, propertyID, reservationID int64, amount float64, currency string) {
	m.Called(ctx, hostID, guestID, propertyID, reservationID, amount, currency)
}

func (m *mockNotifier) NotifyPaymentRefunded(ctx context.Context, guestID, propertyID, reservationID int64, amount float64, currency string) {
	m.Called(ctx, guestID, propertyID, reservationID, amount, currency)
}

type fixture struct {
	reservations *mockReservationRepo
	properties   *mockPropertyLookup
	users        *mockUserLoader
	notifs       *mockNotifier
	svc          *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reservations: new(mockReservationRepo),
		properties:   new(mockPropertyLookup),
		users:        new(mockUserLoader),
		notifs:       new(mockNotifier),
	}
	f.svc = NewService(f.reservations, f.properties, f.users, f.notifs)
	f.svc.now = func() time.Time { return date(2030, 1, 15) }
	return f
}

func testProperty() *domain.Property {
	return &domain.Property{
		ID:          7,
		Title:       "Sea Cabin",
		HostID:      20,
		Price:       domain.Price{PerNight: 100, Currency: "USD"},
		Capacity:    domain.Capacity{Guests: 2},
		IsAvailable: true,
		IsApproved:  true,
	}
}

func TestCreate_FreezesPricingAndNotifiesHost(t *testing.T) {
	f := newFixture(t)

	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)
	f.reservations.On("HasDateConflict", mock.Anything, int64(7), date(2030, 6, 1), date(2030, 6, 4)).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	f.notifs.On("NotifyReservationRequested", mock.Anything, int64(20), int64(10), int64(7), int64(1), "Sea Cabin").Return()

	res, err := f.svc.Create(context.Background(), 10, CreateInput{
		PropertyID: 7,
		CheckIn:    date(2030, 6, 1),
		CheckOut:   date(2030, 6, 4),
		Guests:     2,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPending, res.Status)
	assert.Equal(t, domain.PaymentPending, res.PaymentStatus)
	assert.Equal(t, 3, res.Pricing.Nights)
	assert.Equal(t, 300.0, res.Pricing.Subtotal)
	assert.Equal(t, 30.0, res.Pricing.ServiceFee)
	assert.Equal(t, 24.0, res.Pricing.Taxes)
	assert.Equal(t, 354.0, res.Pricing.Total)
	assert.Equal(t, int64(20), res.HostID)
	f.notifs.AssertExpectations(t)
}

func TestCreate_CapacityBoundary(t *testing.T) {
	f := newFixture(t)

	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)
	f.reservations.On("HasDateConflict", mock.Anything, int64(7), mock.Anything, mock.Anything).Return(false, nil)
	f.reservations.On("Create", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	f.notifs.On("NotifyReservationRequested", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	// exactly at capacity passes
	_, err := f.svc.Create(context.Background(), 10, CreateInput{
		PropertyID: 7, CheckIn: date(2030, 6, 1), CheckOut: date(2030, 6, 2), Guests: 2,
	})
	require.NoError(t, err)

	// one over capacity fails before any conflict check
	_, err = f.svc.Create(context.Background(), 10, CreateInput{
		PropertyID: 7, CheckIn: date(2030, 7, 1), CheckOut: date(2030, 7, 2), Guests: 3,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestCreate_DateConflict(t *testing.T) {
	f := newFixture(t)

	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)
	f.reservations.On("HasDateConflict", mock.Anything, int64(7), mock.Anything, mock.Anything).Return(true, nil)

	_, err := f.svc.Create(context.Background(), 10, CreateInput{
		PropertyID: 7, CheckIn: date(2030, 6, 2), CheckOut: date(2030, 6, 5), Guests: 1,
	})

	assert.ErrorIs(t, err, ErrDateConflict)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_OwnProperty(t *testing.T) {
	f := newFixture(t)

	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)

	_, err := f.svc.Create(context.Background(), 20, CreateInput{
		PropertyID: 7, CheckIn: date(2030, 6, 1), CheckOut: date(2030, 6, 4), Guests: 1,
	})

	assert.ErrorIs(t, err, ErrOwnProperty)
}

func TestCreate_UnapprovedProperty(t *testing.T) {
	f := newFixture(t)

	p := testProperty()
	p.IsApproved = false
	f.properties.On("GetByID", mock.Anything, int64(7)).Return(p, nil)

	_, err := f.svc.Create(context.Background(), 10, CreateInput{
		PropertyID: 7, CheckIn: date(2030, 6, 1), CheckOut: date(2030, 6, 4), Guests: 1,
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreate_PastCheckIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), 10, CreateInput{
		PropertyID: 7, CheckIn: date(2029, 12, 1), CheckOut: date(2029, 12, 4), Guests: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidStay)
}

func TestCreate_CheckOutNotAfterCheckIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), 10, CreateInput{
		PropertyID: 7, CheckIn: date(2030, 6, 4), CheckOut: date(2030, 6, 4), Guests: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidStay)
}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:         3,
		PropertyID: 7,
		GuestID:    10,
		HostID:     20,
		CheckIn:    date(2030, 6, 1),
		CheckOut:   date(2030, 6, 4),
		Guests:     2,
		Pricing:    Quote(100, 3, "USD"),
		Status:     domain.ReservationPending,
		PaymentStatus: domain.PaymentPending,
	}
}

func TestConfirm_HostConfirmsAndPaymentCollected(t *testing.T) {
	f := newFixture(t)

	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(pendingReservation(), nil)
	f.reservations.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)
	f.notifs.On("NotifyReservationConfirmed", mock.Anything, int64(10), int64(20), int64(7), int64(3), "Sea Cabin").Return()
	f.notifs.On("NotifyPaymentReceived", mock.Anything, int64(20), int64(10), int64(7), int64(3), 354.0, "USD").Return()

	res, err := f.svc.Confirm(context.Background(), 20, domain.RoleHost, 3)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, res.Status)
	assert.Equal(t, domain.PaymentPaid, res.PaymentStatus)
	f.notifs.AssertExpectations(t)
}

func TestConfirm_DoubleConfirmConflicts(t *testing.T) {
	f := newFixture(t)

	confirmed := pendingReservation()
	confirmed.Status = domain.ReservationConfirmed
	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(confirmed, nil)

	_, err := f.svc.Confirm(context.Background(), 20, domain.RoleHost, 3)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirm_StrangerForbidden(t *testing.T) {
	f := newFixture(t)

	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(pendingReservation(), nil)

	_, err := f.svc.Confirm(context.Background(), 99, domain.RoleHost, 3)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_GuestGetsFullRefundRecord(t *testing.T) {
	f := newFixture(t)

	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(pendingReservation(), nil)
	f.reservations.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)
	f.notifs.On("NotifyReservationCancelled", mock.Anything, int64(20), int64(10), int64(7), int64(3), "Sea Cabin").Return()

	res, err := f.svc.Cancel(context.Background(), 10, domain.RoleTraveler, 3, "")

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, res.Status)
	require.NotNil(t, res.Cancellation)
	assert.Equal(t, 354.0, res.Cancellation.RefundAmount)
	assert.Equal(t, "No reason provided", res.Cancellation.Reason)
	assert.Equal(t, int64(10), res.Cancellation.CancelledBy)
	assert.Equal(t, domain.PaymentPending, res.PaymentStatus)
}

func TestCancel_PaidFlipsToRefunded(t *testing.T) {
	f := newFixture(t)

	paid := pendingReservation()
	paid.Status = domain.ReservationConfirmed
	paid.PaymentStatus = domain.PaymentPaid

	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(paid, nil)
	f.reservations.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)
	f.notifs.On("NotifyReservationCancelled", mock.Anything, int64(10), int64(20), int64(7), int64(3), "Sea Cabin").Return()
	f.notifs.On("NotifyPaymentRefunded", mock.Anything, int64(10), int64(7), int64(3), 354.0, "USD").Return()

	res, err := f.svc.Cancel(context.Background(), 20, domain.RoleHost, 3, "double booked")

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, res.PaymentStatus)
	assert.Equal(t, "double booked", res.Cancellation.Reason)
	f.notifs.AssertExpectations(t)
}

func TestCancel_CompletedStayRejected(t *testing.T) {
	f := newFixture(t)

	done := pendingReservation()
	done.Status = domain.ReservationCompleted
	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(done, nil)

	_, err := f.svc.Cancel(context.Background(), 10, domain.RoleTraveler, 3, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAddReview_RecomputesRating(t *testing.T) {
	f := newFixture(t)

	done := pendingReservation()
	done.Status = domain.ReservationCompleted

	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(done, nil)
	f.reservations.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	f.reservations.On("RatingsForProperty", mock.Anything, int64(7)).Return([]int{5, 4}, nil)
	f.properties.On("UpdateRating", mock.Anything, int64(7), 4.5, 2).Return(nil)
	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)
	f.notifs.On("NotifyNewReview", mock.Anything, int64(20), int64(10), int64(7), int64(3), 5, "Sea Cabin").Return()

	res, err := f.svc.AddReview(context.Background(), 10, 3, 5, "wonderful")

	require.NoError(t, err)
	require.NotNil(t, res.Review)
	assert.Equal(t, 5, res.Review.Rating)
	f.properties.AssertExpectations(t)
}

func TestAddReview_OnlyOnce(t *testing.T) {
	f := newFixture(t)

	done := pendingReservation()
	done.Status = domain.ReservationCompleted
	done.Review = &domain.Review{Rating: 4}
	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(done, nil)

	_, err := f.svc.AddReview(context.Background(), 10, 3, 5, "")
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestAddReview_OnlyCompletedStays(t *testing.T) {
	f := newFixture(t)

	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(pendingReservation(), nil)

	_, err := f.svc.AddReview(context.Background(), 10, 3, 5, "")
	assert.ErrorIs(t, err, ErrReviewNotAllowed)
}

func TestAddReview_GuestOnly(t *testing.T) {
	f := newFixture(t)

	done := pendingReservation()
	done.Status = domain.ReservationCompleted
	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(done, nil)

	_, err := f.svc.AddReview(context.Background(), 20, 3, 5, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestForceStatus_CompletedNotifiesGuest(t *testing.T) {
	f := newFixture(t)

	confirmed := pendingReservation()
	confirmed.Status = domain.ReservationConfirmed

	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(confirmed, nil)
	f.reservations.On("Save", mock.Anything, mock.AnythingOfType("*domain.Reservation")).Return(nil)
	f.properties.On("GetByID", mock.Anything, int64(7)).Return(testProperty(), nil)
	f.notifs.On("NotifyReservationCompleted", mock.Anything, int64(10), int64(7), int64(3), "Sea Cabin").Return()

	res, err := f.svc.ForceStatus(context.Background(), 1, 3, domain.ReservationCompleted)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCompleted, res.Status)
	f.notifs.AssertExpectations(t)
}

func TestForceStatus_UnknownStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ForceStatus(context.Background(), 1, 3, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGet_StrangerForbidden(t *testing.T) {
	f := newFixture(t)

	f.reservations.On("GetByID", mock.Anything, int64(3)).Return(pendingReservation(), nil)

	_, err := f.svc.Get(context.Background(), 55, domain.RoleTraveler, 3)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)

	f.reservations.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Get(context.Background(), 10, domain.RoleTraveler, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
