package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
	ReservationRejected  ReservationStatus = "rejected"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled,
		ReservationCompleted, ReservationRejected:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Pricing is the snapshot frozen at reservation creation. It is never
// recomputed, even if the property price changes later.
type Pricing struct {
	PerNight   float64 `json:"per_night"`
	Nights     int     `json:"nights"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Taxes      float64 `json:"taxes"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}

// Review is immutable once set: one review per reservation, guest only,
// completed stays only.
type Review struct {
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Cancellation struct {
	CancelledBy  int64     `json:"cancelled_by"`
	Reason       string    `json:"reason"`
	CancelledAt  time.Time `json:"cancelled_at"`
	RefundAmount float64   `json:"refund_amount"`
}

type Reservation struct {
	ID              int64             `json:"id"`
	PropertyID      int64             `json:"property_id"`
	GuestID         int64             `json:"guest_id"`
	HostID          int64             `json:"host_id"`
	CheckIn         time.Time         `json:"check_in"`
	CheckOut        time.Time         `json:"check_out"`
	Guests          int               `json:"guests"`
	Pricing         Pricing           `json:"pricing"`
	Status          ReservationStatus `json:"status"`
	PaymentStatus   PaymentStatus     `json:"payment_status"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	Review          *Review           `json:"review,omitempty"`
	Cancellation    *Cancellation     `json:"cancellation,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`

	Property *Property `json:"property,omitempty"`
	Guest    *User     `json:"guest,omitempty"`
	Host     *User     `json:"host,omitempty"`
}
