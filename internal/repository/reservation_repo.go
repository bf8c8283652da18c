package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"staylocal/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) DB() *gorm.DB { return r.db }

type reservationModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	PropertyID      int64     `gorm:"column:property_id;index:idx_reservations_property_dates"`
	GuestID         int64     `gorm:"column:guest_id;index"`
	HostID          int64     `gorm:"column:host_id;index"`
	CheckIn         time.Time `gorm:"column:check_in;index:idx_reservations_property_dates"`
	CheckOut        time.Time `gorm:"column:check_out;index:idx_reservations_property_dates"`
	Guests          int       `gorm:"column:guests"`
	PricePerNight   float64   `gorm:"column:price_per_night"`
	Nights          int       `gorm:"column:nights"`
	Subtotal        float64   `gorm:"column:subtotal"`
	ServiceFee      float64   `gorm:"column:service_fee"`
	Taxes           float64   `gorm:"column:taxes"`
	Total           float64   `gorm:"column:total"`
	Currency        string    `gorm:"column:currency"`
	Status          string    `gorm:"column:status;index"`
	PaymentStatus   string    `gorm:"column:payment_status"`
	SpecialRequests *string   `gorm:"column:special_requests"`

	ReviewRating    *int       `gorm:"column:review_rating"`
	ReviewComment   *string    `gorm:"column:review_comment"`
	ReviewCreatedAt *time.Time `gorm:"column:review_created_at"`

	CancelledBy        *int64     `gorm:"column:cancelled_by"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	RefundAmount       *float64   `gorm:"column:refund_amount"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	var special string
	if m.SpecialRequests != nil {
		special = *m.SpecialRequests
	}

	res := &domain.Reservation{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		GuestID:    m.GuestID,
		HostID:     m.HostID,
		CheckIn:    m.CheckIn,
		CheckOut:   m.CheckOut,
		Guests:     m.Guests,
		Pricing: domain.Pricing{
			PerNight:   m.PricePerNight,
			Nights:     m.Nights,
			Subtotal:   m.Subtotal,
			ServiceFee: m.ServiceFee,
			Taxes:      m.Taxes,
			Total:      m.Total,
			Currency:   m.Currency,
		},
		Status:          domain.ReservationStatus(m.Status),
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		SpecialRequests: special,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if m.ReviewRating != nil {
		var comment string
		if m.ReviewComment != nil {
			comment = *m.ReviewComment
		}
		var at time.Time
		if m.ReviewCreatedAt != nil {
			at = *m.ReviewCreatedAt
		}
		res.Review = &domain.Review{
			Rating:    *m.ReviewRating,
			Comment:   comment,
			CreatedAt: at,
		}
	}

	if m.CancelledBy != nil {
		var reason string
		if m.CancellationReason != nil {
			reason = *m.CancellationReason
		}
		var at time.Time
		if m.CancelledAt != nil {
			at = *m.CancelledAt
		}
		var refund float64
		if m.RefundAmount != nil {
			refund = *m.RefundAmount
		}
		res.Cancellation = &domain.Cancellation{
			CancelledBy:  *m.CancelledBy,
			Reason:       reason,
			CancelledAt:  at,
			RefundAmount: refund,
		}
	}

	return res
}

func toReservationModel(res *domain.Reservation) reservationModel {
	var special *string
	if res.SpecialRequests != "" {
		v := res.SpecialRequests
		special = &v
	}

	m := reservationModel{
		ID:              res.ID,
		PropertyID:      res.PropertyID,
		GuestID:         res.GuestID,
		HostID:          res.HostID,
		CheckIn:         res.CheckIn,
		CheckOut:        res.CheckOut,
		Guests:          res.Guests,
		PricePerNight:   res.Pricing.PerNight,
		Nights:          res.Pricing.Nights,
		Subtotal:        res.Pricing.Subtotal,
		ServiceFee:      res.Pricing.ServiceFee,
		Taxes:           res.Pricing.Taxes,
		Total:           res.Pricing.Total,
		Currency:        res.Pricing.Currency,
		Status:          string(res.Status),
		PaymentStatus:   string(res.PaymentStatus),
		SpecialRequests: special,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}

	if res.Review != nil {
		rating := res.Review.Rating
		m.ReviewRating = &rating
		if res.Review.Comment != "" {
			comment := res.Review.Comment
			m.ReviewComment = &comment
		}
		at := res.Review.CreatedAt
		m.ReviewCreatedAt = &at
	}

	if res.Cancellation != nil {
		by := res.Cancellation.CancelledBy
		m.CancelledBy = &by
		if res.Cancellation.Reason != "" {
			reason := res.Cancellation.Reason
			m.CancellationReason = &reason
		}
		at := res.Cancellation.CancelledAt
		m.CancelledAt = &at
		refund := res.Cancellation.RefundAmount
		m.RefundAmount = &refund
	}

	return m
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return toDomainReservation(m), nil
}

// Save writes the full reservation row back, including the review and
// cancellation columns.
func (r *ReservationRepository) Save(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*res = *toDomainReservation(m)
	return nil
}

// HasDateConflict reports whether an overlapping reservation exists for the
// property among pending/confirmed reservations. Intervals are half-open
// [checkIn, checkOut): two stays overlap iff a.checkIn < b.checkOut AND
// a.checkOut > b.checkIn, so back-to-back stays do not conflict.
func (r *ReservationRepository) HasDateConflict(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("property_id = ?", propertyID).
		Where("status IN ?", []string{string(domain.ReservationPending), string(domain.ReservationConfirmed)}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

type ReservationFilters struct {
	GuestID int64
	HostID  int64
	Status  string
	Limit   int
	Offset  int
}

func (r *ReservationRepository) List(ctx context.Context, f ReservationFilters) ([]domain.Reservation, int64, error) {
	q := r.db.WithContext(ctx).Model(&reservationModel{})

	if f.GuestID > 0 {
		q = q.Where("guest_id = ?", f.GuestID)
	}
	if f.HostID > 0 {
		q = q.Where("host_id = ?", f.HostID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []reservationModel
	q = q.Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, total, nil
}

// RatingsForProperty returns every review rating recorded on the property's
// reservations. Used by the full-rescan rating recompute.
func (r *ReservationRepository) RatingsForProperty(ctx context.Context, propertyID int64) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("property_id = ? AND review_rating IS NOT NULL", propertyID).
		Pluck("review_rating", &ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// IsOverlapViolation reports whether err is the Postgres exclusion-constraint
// violation raised when two overlapping reservations race past the
// availability check. SQLite has no such constraint; there the check-then-act
// window remains.
func IsOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName == "reservations_no_double_booking"
	}
	return false
}
