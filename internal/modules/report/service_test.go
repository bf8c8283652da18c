package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"staylocal/internal/repository"
)

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) CountUsers(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) CountUsersSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) CountProperties(ctx context.Context, approved *bool) (int64, error) {
	args := m.Called(ctx, approved)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) PropertyTypeCounts(ctx context.Context) ([]repository.TypeCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.TypeCount), args.Error(1)
}

func (m *mockReportRepo) TopCities(ctx context.Context, limit int) ([]repository.CityCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]repository.CityCount), args.Error(1)
}

func (m *mockReportRepo) CountReservations(ctx context.Context, since *time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) ReservationStatusRollup(ctx context.Context, hostID int64) ([]repository.StatusRollup, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]repository.StatusRollup), args.Error(1)
}

func (m *mockReportRepo) RevenueRows(ctx context.Context, hostID int64, since time.Time) ([]repository.RevenueRow, error) {
	args := m.Called(ctx, hostID, since)
	return args.Get(0).([]repository.RevenueRow), args.Error(1)
}

func (m *mockReportRepo) HostProperties(ctx context.Context, hostID int64) (*repository.HostPropertyRollup, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).(*repository.HostPropertyRollup), args.Error(1)
}

func TestRevenue_BucketsByMonthWithDenseSeries(t *testing.T) {
	repo := new(mockReportRepo)
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2030, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	repo.On("RevenueRows", mock.Anything, int64(0), mock.Anything).Return([]repository.RevenueRow{
		{CreatedAt: time.Date(2030, 2, 3, 0, 0, 0, 0, time.UTC), Total: 100},
		{CreatedAt: time.Date(2030, 2, 20, 0, 0, 0, 0, time.UTC), Total: 50},
		{CreatedAt: time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC), Total: 200},
	}, nil)

	sum, err := svc.revenue(context.Background(), 0, svc.now())

	require.NoError(t, err)
	assert.Equal(t, 350.0, sum.Total)
	require.Len(t, sum.Monthly, 12)

	// last two buckets are feb and mar 2030
	feb := sum.Monthly[10]
	mar := sum.Monthly[11]
	assert.Equal(t, "2030-02", feb.Month)
	assert.Equal(t, 150.0, feb.Revenue)
	assert.Equal(t, int64(2), feb.Count)
	assert.Equal(t, "2030-03", mar.Month)
	assert.Equal(t, 200.0, mar.Revenue)

	// earliest bucket exists even with no rows
	assert.Equal(t, "2029-04", sum.Monthly[0].Month)
	assert.Equal(t, 0.0, sum.Monthly[0].Revenue)
}

func TestHostStats_AverageRating(t *testing.T) {
	repo := new(mockReportRepo)
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2030, 3, 15, 0, 0, 0, 0, time.UTC)
	}

	repo.On("HostProperties", mock.Anything, int64(20)).Return(&repository.HostPropertyRollup{
		Total:      3,
		Approved:   2,
		RatingSum:  9.0,
		RatedCount: 2,
	}, nil)
	repo.On("ReservationStatusRollup", mock.Anything, int64(20)).Return([]repository.StatusRollup{
		{Status: "confirmed", Count: 4, Revenue: 1200},
	}, nil)
	repo.On("RevenueRows", mock.Anything, int64(20), mock.Anything).Return([]repository.RevenueRow{}, nil)

	stats, err := svc.HostStats(context.Background(), 20)

	require.NoError(t, err)
	assert.Equal(t, 4.5, stats.AverageRating)
	assert.Equal(t, int64(3), stats.Properties.Total)
	require.Len(t, stats.ByStatus, 1)
	assert.Equal(t, 1200.0, stats.ByStatus[0].Revenue)
}

func TestDashboard_AssemblesCounts(t *testing.T) {
	repo := new(mockReportRepo)
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2030, 3, 15, 0, 0, 0, 0, time.UTC)
	}

	repo.On("CountUsers", mock.Anything, "").Return(int64(10), nil)
	repo.On("CountUsers", mock.Anything, "traveler").Return(int64(6), nil)
	repo.On("CountUsers", mock.Anything, "host").Return(int64(3), nil)
	repo.On("CountUsers", mock.Anything, "admin").Return(int64(1), nil)
	repo.On("CountUsersSince", mock.Anything, mock.Anything).Return(int64(2), nil)
	repo.On("CountProperties", mock.Anything, (*bool)(nil)).Return(int64(5), nil)
	repo.On("CountProperties", mock.Anything, mock.AnythingOfType("*bool")).Return(int64(4), nil)
	repo.On("CountReservations", mock.Anything, (*time.Time)(nil)).Return(int64(8), nil)
	repo.On("CountReservations", mock.Anything, mock.AnythingOfType("*time.Time")).Return(int64(3), nil)
	repo.On("ReservationStatusRollup", mock.Anything, int64(0)).Return([]repository.StatusRollup{}, nil)
	repo.On("RevenueRows", mock.Anything, int64(0), mock.Anything).Return([]repository.RevenueRow{}, nil)
	repo.On("TopCities", mock.Anything, 5).Return([]repository.CityCount{{City: "Lisbon", Count: 3}}, nil)
	repo.On("PropertyTypeCounts", mock.Anything).Return([]repository.TypeCount{{Type: "villa", Count: 2}}, nil)

	d, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), d.Users.Total)
	assert.Equal(t, int64(1), d.Properties.Pending)
	assert.Equal(t, int64(3), d.Reservations.ThisMonth)
	require.Len(t, d.TopCities, 1)
}
