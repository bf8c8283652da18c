package reservation

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type Service struct {
	reservations ReservationRepository
	properties   PropertyLookup
	users        UserLoader
	notifs       NotificationSender

	now func() time.Time
}

func NewService(reservations ReservationRepository, properties PropertyLookup, users UserLoader, notifs NotificationSender) *Service {
	return &Service{
		reservations: reservations,
		properties:   properties,
		users:        users,
		notifs:       notifs,
		now:          time.Now,
	}
}

type CreateInput struct {
	PropertyID      int64
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	SpecialRequests string
}

// Create books a stay. The pricing snapshot is frozen here; later changes to
// the property price never touch existing reservations.
func (s *Service) Create(ctx context.Context, guestID int64, in CreateInput) (*domain.Reservation, error) {
	if !in.CheckOut.After(in.CheckIn) {
		return nil, ErrInvalidStay
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if in.CheckIn.Before(today) {
		return nil, ErrInvalidStay
	}

	p, err := s.properties.GetByID(ctx, in.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if p.HostID == guestID {
		return nil, ErrOwnProperty
	}
	if !p.IsAvailable || !p.IsApproved {
		return nil, ErrNotAvailable
	}
	if in.Guests > p.Capacity.Guests {
		return nil, ErrCapacityExceeded
	}

	conflict, err := s.reservations.HasDateConflict(ctx, p.ID, in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrDateConflict
	}

	nights := Nights(in.CheckIn, in.CheckOut)
	if nights < 1 {
		return nil, ErrInvalidStay
	}

	res := &domain.Reservation{
		PropertyID:      p.ID,
		GuestID:         guestID,
		HostID:          p.HostID,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Guests:          in.Guests,
		Pricing:         Quote(p.Price.PerNight, nights, p.Price.Currency),
		Status:          domain.ReservationPending,
		PaymentStatus:   domain.PaymentPending,
		SpecialRequests: in.SpecialRequests,
	}

	if err := s.reservations.Create(ctx, res); err != nil {
		// two requests can pass the availability check concurrently; the
		// exclusion constraint catches the loser
		if repository.IsOverlapViolation(err) {
			return nil, ErrDateConflict
		}
		return nil, err
	}

	s.notifs.NotifyReservationRequested(ctx, res.HostID, guestID, p.ID, res.ID, p.Title)

	return res, nil
}

// Get returns a reservation visible to its guest, its host, or an admin.
func (s *Service) Get(ctx context.Context, callerID int64, role domain.Role, id int64) (*domain.Reservation, error) {
	res, err := s.getOwned(ctx, callerID, role, id)
	if err != nil {
		return nil, err
	}

	if p, err := s.properties.GetByID(ctx, res.PropertyID); err == nil {
		res.Property = p
	}
	if g, err := s.users.GetByID(ctx, res.GuestID); err == nil {
		g.PasswordHash = ""
		res.Guest = g
	}
	if h, err := s.users.GetByID(ctx, res.HostID); err == nil {
		h.PasswordHash = ""
		res.Host = h
	}

	return res, nil
}

func (s *Service) getOwned(ctx context.Context, callerID int64, role domain.Role, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role != domain.RoleAdmin && res.GuestID != callerID && res.HostID != callerID {
		return nil, ErrForbidden
	}
	return res, nil
}

func (s *Service) ListForGuest(ctx context.Context, guestID int64, q ListQuery) ([]domain.Reservation, int64, error) {
	return s.list(ctx, repository.ReservationFilters{GuestID: guestID, Status: q.Status}, q)
}

func (s *Service) ListForHost(ctx context.Context, hostID int64, q ListQuery) ([]domain.Reservation, int64, error) {
	return s.list(ctx, repository.ReservationFilters{HostID: hostID, Status: q.Status}, q)
}

func (s *Service) ListAll(ctx context.Context, q ListQuery) ([]domain.Reservation, int64, error) {
	return s.list(ctx, repository.ReservationFilters{Status: q.Status}, q)
}

func (s *Service) list(ctx context.Context, f repository.ReservationFilters, q ListQuery) ([]domain.Reservation, int64, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	f.Limit = q.Limit
	f.Offset = (q.Page - 1) * q.Limit
	return s.reservations.List(ctx, f)
}

// Confirm moves a pending reservation to confirmed. Only the host of the stay
// or an admin may confirm; confirming marks the payment collected.
func (s *Service) Confirm(ctx context.Context, callerID int64, role domain.Role, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role != domain.RoleAdmin && res.HostID != callerID {
		return nil, ErrForbidden
	}
	if res.Status != domain.ReservationPending {
		return nil, ErrInvalidTransition
	}

	res.Status = domain.ReservationConfirmed
	res.PaymentStatus = domain.PaymentPaid

	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	title := s.propertyTitle(ctx, res.PropertyID)
	s.notifs.NotifyReservationConfirmed(ctx, res.GuestID, callerID, res.PropertyID, res.ID, title)
	s.notifs.NotifyPaymentReceived(ctx, res.HostID, res.GuestID, res.PropertyID, res.ID, res.Pricing.Total, res.Pricing.Currency)

	return res, nil
}

// Reject declines a pending request. Host of the stay or admin only.
func (s *Service) Reject(ctx context.Context, callerID int64, role domain.Role, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role != domain.RoleAdmin && res.HostID != callerID {
		return nil, ErrForbidden
	}
	if res.Status != domain.ReservationPending {
		return nil, ErrInvalidTransition
	}

	res.Status = domain.ReservationRejected
	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	s.notifs.NotifyReservationCancelled(ctx, res.GuestID, callerID, res.PropertyID, res.ID, s.propertyTitle(ctx, res.PropertyID))

	return res, nil
}

// Cancel cancels a pending or confirmed reservation. Guest, host, or admin may
// cancel; the cancellation record always carries a full refund of the frozen
// total, and a collected payment flips to refunded.
func (s *Service) Cancel(ctx context.Context, callerID int64, role domain.Role, id int64, reason string) (*domain.Reservation, error) {
	res, err := s.getOwned(ctx, callerID, role, id)
	if err != nil {
		return nil, err
	}

	if res.Status != domain.ReservationPending && res.Status != domain.ReservationConfirmed {
		return nil, ErrInvalidTransition
	}

	if reason == "" {
		reason = "No reason provided"
	}

	wasPaid := res.PaymentStatus == domain.PaymentPaid

	res.Status = domain.ReservationCancelled
	res.Cancellation = &domain.Cancellation{
		CancelledBy:  callerID,
		Reason:       reason,
		CancelledAt:  s.now().UTC(),
		RefundAmount: res.Pricing.Total,
	}
	if wasPaid {
		res.PaymentStatus = domain.PaymentRefunded
	}

	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	title := s.propertyTitle(ctx, res.PropertyID)

	// tell the party that did not initiate the cancellation
	recipient := res.GuestID
	if callerID == res.GuestID {
		recipient = res.HostID
	}
	s.notifs.NotifyReservationCancelled(ctx, recipient, callerID, res.PropertyID, res.ID, title)

	if wasPaid {
		s.notifs.NotifyPaymentRefunded(ctx, res.GuestID, res.PropertyID, res.ID, res.Cancellation.RefundAmount, res.Pricing.Currency)
	}

	return res, nil
}

// AddReview records the guest's one review on a completed stay, then rescans
// every review on the property to recompute the denormalized rating.
func (s *Service) AddReview(ctx context.Context, guestID, id int64, rating int, comment string) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if res.GuestID != guestID {
		return nil, ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if res.Status != domain.ReservationCompleted {
		return nil, ErrReviewNotAllowed
	}
	if res.Review != nil {
		return nil, ErrReviewExists
	}

	res.Review = &domain.Review{
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now().UTC(),
	}

	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	s.recomputeRating(ctx, res.PropertyID)
	s.notifs.NotifyNewReview(ctx, res.HostID, guestID, res.PropertyID, res.ID, rating, s.propertyTitle(ctx, res.PropertyID))

	return res, nil
}

// recomputeRating rescans all reviews for the property rather than
// incrementally adjusting the aggregate, so it self-heals from any drift.
// Average is rounded half away from zero to one decimal.
func (s *Service) recomputeRating(ctx context.Context, propertyID int64) {
	ratings, err := s.reservations.RatingsForProperty(ctx, propertyID)
	if err != nil {
		log.Printf("rating_rescan_failed property_id=%d error=%q", propertyID, err)
		return
	}

	var avg float64
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		avg = round1(float64(sum) / float64(len(ratings)))
	}

	if err := s.properties.UpdateRating(ctx, propertyID, avg, len(ratings)); err != nil {
		log.Printf("rating_write_failed property_id=%d error=%q", propertyID, err)
	}
}

// ForceStatus is the admin override. It skips the normal transition rules but
// keeps the payment and cancellation bookkeeping consistent.
func (s *Service) ForceStatus(ctx context.Context, adminID, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if res.Status == status {
		return res, nil
	}

	wasPaid := res.PaymentStatus == domain.PaymentPaid
	res.Status = status

	if status == domain.ReservationCancelled {
		if res.Cancellation == nil {
			res.Cancellation = &domain.Cancellation{
				CancelledBy:  adminID,
				Reason:       "Cancelled by admin",
				CancelledAt:  s.now().UTC(),
				RefundAmount: res.Pricing.Total,
			}
		}
		if wasPaid {
			res.PaymentStatus = domain.PaymentRefunded
		}
	}

	if err := s.reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	if status == domain.ReservationCompleted {
		s.notifs.NotifyReservationCompleted(ctx, res.GuestID, res.PropertyID, res.ID, s.propertyTitle(ctx, res.PropertyID))
	}

	return res, nil
}

func (s *Service) propertyTitle(ctx context.Context, propertyID int64) string {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return "your stay"
	}
	return p.Title
}
