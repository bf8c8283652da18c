package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"staylocal/internal/domain"
)

// ReportRepository holds the read-only rollup queries behind the dashboards.
// Nothing in here mutates state.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CountUsers(ctx context.Context, role string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&userModel{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt, err
}

func (r *ReportRepository) CountUsersSince(ctx context.Context, since time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("created_at >= ?", since).
		Count(&cnt).Error
	return cnt, err
}

func (r *ReportRepository) CountProperties(ctx context.Context, approved *bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&propertyModel{})
	if approved != nil {
		q = q.Where("is_approved = ?", *approved)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt, err
}

type TypeCount struct {
	Type  string `gorm:"column:type" json:"type"`
	Count int64  `gorm:"column:count" json:"count"`
}

func (r *ReportRepository) PropertyTypeCounts(ctx context.Context) ([]TypeCount, error) {
	var out []TypeCount
	err := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Select("type, COUNT(1) as count").
		Where("is_approved = ?", true).
		Group("type").
		Find(&out).Error
	return out, err
}

type CityCount struct {
	City  string `gorm:"column:city" json:"city"`
	Count int64  `gorm:"column:count" json:"count"`
}

func (r *ReportRepository) TopCities(ctx context.Context, limit int) ([]CityCount, error) {
	var out []CityCount
	err := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Select("city, COUNT(1) as count").
		Where("is_approved = ?", true).
		Group("city").
		Order("count DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *ReportRepository) CountReservations(ctx context.Context, since *time.Time) (int64, error) {
	q := r.db.WithContext(ctx).Model(&reservationModel{})
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt, err
}

type StatusRollup struct {
	Status  string  `gorm:"column:status" json:"status"`
	Count   int64   `gorm:"column:count" json:"count"`
	Revenue float64 `gorm:"column:revenue" json:"revenue"`
}

func (r *ReportRepository) ReservationStatusRollup(ctx context.Context, hostID int64) ([]StatusRollup, error) {
	q := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Select("status, COUNT(1) as count, SUM(total) as revenue")
	if hostID > 0 {
		q = q.Where("host_id = ?", hostID)
	}

	var out []StatusRollup
	err := q.Group("status").Find(&out).Error
	return out, err
}

type RevenueRow struct {
	CreatedAt time.Time `gorm:"column:created_at"`
	Total     float64   `gorm:"column:total"`
}

// RevenueRows returns the creation time and total of every confirmed or
// completed reservation since the cutoff; callers bucket them into months.
// Grouping happens in Go so the query stays portable across sqlite and
// postgres.
func (r *ReportRepository) RevenueRows(ctx context.Context, hostID int64, since time.Time) ([]RevenueRow, error) {
	q := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Select("created_at, total").
		Where("status IN ?", []string{
			string(domain.ReservationConfirmed),
			string(domain.ReservationCompleted),
		}).
		Where("created_at >= ?", since)
	if hostID > 0 {
		q = q.Where("host_id = ?", hostID)
	}

	var out []RevenueRow
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

type HostPropertyRollup struct {
	Total         int64
	Approved      int64
	TotalCapacity int64
	RatingSum     float64
	RatedCount    int64
	ReviewCount   int64
}

func (r *ReportRepository) HostProperties(ctx context.Context, hostID int64) (*HostPropertyRollup, error) {
	var rows []propertyModel
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &HostPropertyRollup{Total: int64(len(rows))}
	for _, p := range rows {
		if p.IsApproved {
			out.Approved++
		}
		out.TotalCapacity += int64(p.Guests)
		if p.RatingCount > 0 {
			out.RatingSum += p.RatingAverage
			out.RatedCount++
			out.ReviewCount += int64(p.RatingCount)
		}
	}
	return out, nil
}
