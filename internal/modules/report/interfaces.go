package report

import (
	"context"
	"time"

	"staylocal/internal/repository"
)

type ReportRepository interface {
	CountUsers(ctx context.Context, role string) (int64, error)
	CountUsersSince(ctx context.Context, since time.Time) (int64, error)
	CountProperties(ctx context.Context, approved *bool) (int64, error)
	PropertyTypeCounts(ctx context.Context) ([]repository.TypeCount, error)
	TopCities(ctx context.Context, limit int) ([]repository.CityCount, error)
	CountReservations(ctx context.Context, since *time.Time) (int64, error)
	ReservationStatusRollup(ctx context.Context, hostID int64) ([]repository.StatusRollup, error)
	RevenueRows(ctx context.Context, hostID int64, since time.Time) ([]repository.RevenueRow, error)
	HostProperties(ctx context.Context, hostID int64) (*repository.HostPropertyRollup, error)
}
