package report

import (
	"context"
	"time"

	"staylocal/internal/domain"
)

type Service struct {
	reports ReportRepository

	now func() time.Time
}

func NewService(reports ReportRepository) *Service {
	return &Service{reports: reports, now: time.Now}
}

const revenueMonths = 12

// Dashboard assembles the admin overview: user and property counts, the
// reservation status rollup with revenue, a 12-month revenue series, top
// cities and the property type split.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now().UTC()

	d := &Dashboard{}

	var err error
	if d.Users.Total, err = s.reports.CountUsers(ctx, ""); err != nil {
		return nil, err
	}
	if d.Users.Travelers, err = s.reports.CountUsers(ctx, string(domain.RoleTraveler)); err != nil {
		return nil, err
	}
	if d.Users.Hosts, err = s.reports.CountUsers(ctx, string(domain.RoleHost)); err != nil {
		return nil, err
	}
	if d.Users.Admins, err = s.reports.CountUsers(ctx, string(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	if d.Users.NewThisWeek, err = s.reports.CountUsersSince(ctx, now.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}

	if d.Properties.Total, err = s.reports.CountProperties(ctx, nil); err != nil {
		return nil, err
	}
	approved := true
	if d.Properties.Approved, err = s.reports.CountProperties(ctx, &approved); err != nil {
		return nil, err
	}
	d.Properties.Pending = d.Properties.Total - d.Properties.Approved

	if d.Reservations.Total, err = s.reports.CountReservations(ctx, nil); err != nil {
		return nil, err
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if d.Reservations.ThisMonth, err = s.reports.CountReservations(ctx, &monthStart); err != nil {
		return nil, err
	}

	if d.ByStatus, err = s.reports.ReservationStatusRollup(ctx, 0); err != nil {
		return nil, err
	}

	if d.Revenue, err = s.revenue(ctx, 0, now); err != nil {
		return nil, err
	}

	if d.TopCities, err = s.reports.TopCities(ctx, 5); err != nil {
		return nil, err
	}
	if d.ByType, err = s.reports.PropertyTypeCounts(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

// HostStats is the per-host slice of the same numbers.
func (s *Service) HostStats(ctx context.Context, hostID int64) (*HostStats, error) {
	now := s.now().UTC()

	props, err := s.reports.HostProperties(ctx, hostID)
	if err != nil {
		return nil, err
	}

	out := &HostStats{Properties: props}
	if props.RatedCount > 0 {
		out.AverageRating = props.RatingSum / float64(props.RatedCount)
	}

	if out.ByStatus, err = s.reports.ReservationStatusRollup(ctx, hostID); err != nil {
		return nil, err
	}

	if out.Revenue, err = s.revenue(ctx, hostID, now); err != nil {
		return nil, err
	}

	return out, nil
}

// revenue buckets confirmed and completed reservations into calendar months.
// Empty months are present with zero values so charts get a dense series.
func (s *Service) revenue(ctx context.Context, hostID int64, now time.Time) (RevenueSummary, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(revenueMonths - 1), 0)

	rows, err := s.reports.RevenueRows(ctx, hostID, start)
	if err != nil {
		return RevenueSummary{}, err
	}

	buckets := make(map[string]*MonthlyRevenue, revenueMonths)
	order := make([]string, 0, revenueMonths)
	for i := 0; i < revenueMonths; i++ {
		key := start.AddDate(0, i, 0).Format("2006-01")
		buckets[key] = &MonthlyRevenue{Month: key}
		order = append(order, key)
	}

	var total float64
	for _, row := range rows {
		total += row.Total
		key := row.CreatedAt.UTC().Format("2006-01")
		if b, ok := buckets[key]; ok {
			b.Revenue += row.Total
			b.Count++
		}
	}

	monthly := make([]MonthlyRevenue, 0, revenueMonths)
	for _, key := range order {
		monthly = append(monthly, *buckets[key])
	}

	return RevenueSummary{Total: total, Monthly: monthly}, nil
}
