package notification

import (
	"context"
	"fmt"
	"log"

	"staylocal/internal/domain"
)

type Service struct {
	repo NotificationStore
}

func NewService(repo NotificationStore) *Service {
	return &Service{repo: repo}
}

// emit persists a notification record. Emission is best-effort: a storage
// failure is logged and swallowed so it never changes the outcome of the
// business operation that triggered it.
func (s *Service) emit(ctx context.Context, n *domain.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("notification_emit_failed recipient_id=%d type=%s error=%q",
			n.RecipientID, n.Type, err)
	}
}

func (s *Service) NotifyReservationRequested(ctx context.Context, hostID, guestID, propertyID, reservationID int64, propertyTitle string) {
	s.emit(ctx, &domain.Notification{
		RecipientID:   hostID,
		SenderID:      &guestID,
		Type:          domain.NotifReservationRequest,
		Title:         "New Reservation Request",
		Message:       fmt.Sprintf("You have a new reservation request for %s", propertyTitle),
		PropertyID:    &propertyID,
		ReservationID: &reservationID,
	})
}

func (s *Service) NotifyReservationConfirmed(ctx context.Context, guestID, senderID, propertyID, reservationID int64, propertyTitle string) {
	s.emit(ctx, &domain.Notification{
		RecipientID:   guestID,
		SenderID:      &senderID,
		Type:          domain.NotifReservationConfirmed,
		Title:         "Reservation Confirmed",
		Message:       fmt.Sprintf("Your reservation for %s has been confirmed!", propertyTitle),
		PropertyID:    &propertyID,
		ReservationID: &reservationID,
	})
}

func (s *Service) NotifyReservationCancelled(ctx context.Context, recipientID, senderID, propertyID, reservationID int64, propertyTitle string) {
	s.emit(ctx, &domain.Notification{
		RecipientID:   recipientID,
		SenderID:      &senderID,
		Type:          domain.NotifReservationCancelled,
		Title:         "Reservation Cancelled",
		Message:       fmt.Sprintf("Reservation for %s has been cancelled", propertyTitle),
		PropertyID:    &propertyID,
		ReservationID: &reservationID,
	})
}

func (s *Service) NotifyReservationCompleted(ctx context.Context, guestID, propertyID, reservationID int64, propertyTitle string) {
	s.emit(ctx, &domain.Notification{
		RecipientID:   guestID,
		Type:          domain.NotifReservationCompleted,
		Title:         "Stay Completed",
		Message:       fmt.Sprintf("Your stay at %s is complete. Leave a review!", propertyTitle),
		PropertyID:    &propertyID,
		ReservationID: &reservationID,
	})
}

func (s *Service) NotifyNewReview(ctx context.Context, hostID, guestID, propertyID, reservationID int64, rating int, propertyTitle string) {
	s.emit(ctx, &domain.Notification{
		RecipientID:   hostID,
		SenderID:      &guestID,
		Type:          domain.NotifNewReview,
		Title:         "New Review",
		Message:       fmt.Sprintf("%s received a new %d-star review", propertyTitle, rating),
		PropertyID:    &propertyID,
		ReservationID: &reservationID,
	})
}

func (s *Service) NotifyPropertyApproved(ctx context.Context, hostID, adminID, propertyID int64, propertyTitle string) {
	s.emit(ctx, &domain.Notification{
		RecipientID: hostID,
		SenderID:    &adminID,
		Type:        domain.NotifPropertyApproved,
		Title:       "Property Approved",
		Message:     fmt.Sprintf("Your property %s has been approved and is now listed", propertyTitle),
		PropertyID:  &propertyID,
	})
}

func (s *Service) NotifyPropertyRejected(ctx context.Context, hostID, adminID, propertyID int64, propertyTitle string) {
	s.emit(ctx, &domain.Notification{
		RecipientID: hostID,
		SenderID:    &adminID,
		Type:        domain.NotifPropertyRejected,
		Title:       "Property Rejected",
		Message:     fmt.Sprintf("Your property %s was not approved", propertyTitle),
		PropertyID:  &propertyID,
	})
}

func (s *Service) NotifyPaymentReceived(ctx context.Context, hostID, guestID, propertyID, reservationID int64, amount float64, currency string) {
	s.emit(ctx, &domain.Notification{
		RecipientID:   hostID,
		SenderID:      &guestID,
		Type:          domain.NotifPaymentReceived,
		Title:         "Payment Received",
		Message:       fmt.Sprintf("Payment of %.2f %s received for reservation #%d", amount, currency, reservationID),
		PropertyID:    &propertyID,
		ReservationID: &reservationID,
	})
}

func (s *Service) NotifyPaymentRefunded(ctx context.Context, guestID, propertyID, reservationID int64, amount float64, currency string) {
	s.emit(ctx, &domain.Notification{
		RecipientID:   guestID,
		Type:          domain.NotifPaymentRefunded,
		Title:         "Payment Refunded",
		Message:       fmt.Sprintf("A refund of %.2f %s has been issued for reservation #%d", amount, currency, reservationID),
		PropertyID:    &propertyID,
		ReservationID: &reservationID,
	})
}

func (s *Service) NotifySystemMessage(ctx context.Context, recipientID int64, senderID *int64, title, message string) {
	s.emit(ctx, &domain.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        domain.NotifSystemMessage,
		Title:       title,
		Message:     message,
	})
}

// ---- recipient-facing reads and mutations ----

func (s *Service) List(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, total, err := s.repo.ListByRecipient(ctx, recipientID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		unread = 0
	}

	return list, total, unread, nil
}

func (s *Service) MarkRead(ctx context.Context, id, recipientID int64) (*domain.Notification, error) {
	return s.repo.MarkRead(ctx, id, recipientID)
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID int64) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *Service) Delete(ctx context.Context, id, recipientID int64) error {
	return s.repo.Delete(ctx, id, recipientID)
}

func (s *Service) DeleteAll(ctx context.Context, recipientID int64) error {
	return s.repo.DeleteAll(ctx, recipientID)
}
