package reservation

import (
	"context"
	"time"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Save(ctx context.Context, res *domain.Reservation) error
	HasDateConflict(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error)
	List(ctx context.Context, f repository.ReservationFilters) ([]domain.Reservation, int64, error)
	RatingsForProperty(ctx context.Context, propertyID int64) ([]int, error)
}

type PropertyLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	UpdateRating(ctx context.Context, id int64, average float64, count int) error
}

type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// NotificationSender emits best-effort notifications. Implementations log and
// swallow storage failures; the reservation flow never depends on them.
type NotificationSender interface {
	NotifyReservationRequested(ctx context.Context, hostID, guestID, propertyID, reservationID int64, propertyTitle string)
	NotifyReservationConfirmed(ctx context.Context, guestID, senderID, propertyID, reservationID int64, propertyTitle string)
	NotifyReservationCancelled(ctx context.Context, recipientID, senderID, propertyID, reservationID int64, propertyTitle string)
	NotifyReservationCompleted(ctx context.Context, guestID, propertyID, reservationID int64, propertyTitle string)
	NotifyNewReview(ctx context.Context, hostID, guestID, propertyID, reservationID int64, rating int, propertyTitle string)
	NotifyPaymentReceived(ctx context.Context, hostID, guestID, propertyID, reservationID int64, amount float64, currency string)
	NotifyPaymentRefunded(ctx context.Context, guestID, propertyID, reservationID int64, amount float64, currency string)
}
