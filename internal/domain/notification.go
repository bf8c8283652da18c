package domain

import "time"

type NotificationType string

const (
	NotifReservationRequest   NotificationType = "reservation_request"
	NotifReservationConfirmed NotificationType = "reservation_confirmed"
	NotifReservationCancelled NotificationType = "reservation_cancelled"
	NotifReservationCompleted NotificationType = "reservation_completed"
	NotifNewReview            NotificationType = "new_review"
	NotifPropertyApproved     NotificationType = "property_approved"
	NotifPropertyRejected     NotificationType = "property_rejected"
	NotifPaymentReceived      NotificationType = "payment_received"
	NotifPaymentRefunded      NotificationType = "payment_refunded"
	NotifSystemMessage        NotificationType = "system_message"
)

// Notification is created by system actions only, never by direct user input.
// Only the recipient may mark it read or delete it.
type Notification struct {
	ID            int64            `json:"id"`
	RecipientID   int64            `json:"recipient_id"`
	SenderID      *int64           `json:"sender_id,omitempty"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	PropertyID    *int64           `json:"property_id,omitempty"`
	ReservationID *int64           `json:"reservation_id,omitempty"`
	IsRead        bool             `json:"is_read"`
	ReadAt        *time.Time       `json:"read_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}
