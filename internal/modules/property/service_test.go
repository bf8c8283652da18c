package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type mockPropertyRepo struct {
	mock.Mock
}

func (m *mockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
	}
	return args.Error(0)
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Property), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPropertyRepo) Save(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPropertyRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPropertyRepo) GetByHost(ctx context.Context, hostID int64) ([]domain.Property, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *mockPropertyRepo) List(ctx context.Context, f repository.PropertyFilters) ([]domain.Property, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Property), args.Get(1).(int64), args.Error(2)
}

type mockUserLoader struct {
	mock.Mock
}

func (m *mockUserLoader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func validCreateRequest() CreatePropertyRequest {
	return CreatePropertyRequest{
		Title:       "Beach Villa",
		Description: "Steps from the sand",
		Type:        "villa",
		Address:     domain.Address{City: "Lagos", Country: "PT"},
		Price:       domain.Price{PerNight: 120, Currency: "EUR"},
		Capacity:    domain.Capacity{Guests: 4, Bedrooms: 2},
	}
}

func TestCreate_HostStartsUnapproved(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewService(repo, new(mockUserLoader))

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Property")).Return(nil)

	p, err := svc.Create(context.Background(), 10, domain.RoleHost, validCreateRequest())

	require.NoError(t, err)
	assert.False(t, p.IsApproved)
	assert.True(t, p.IsAvailable)
	assert.Equal(t, int64(10), p.HostID)
}

func TestCreate_AdminSkipsModeration(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewService(repo, new(mockUserLoader))

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Property")).Return(nil)

	p, err := svc.Create(context.Background(), 1, domain.RoleAdmin, validCreateRequest())

	require.NoError(t, err)
	assert.True(t, p.IsApproved)
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	svc := NewService(new(mockPropertyRepo), new(mockUserLoader))

	req := validCreateRequest()
	req.Type = "castle"

	_, err := svc.Create(context.Background(), 10, domain.RoleHost, req)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestUpdate_NonOwnerHostForbidden(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewService(repo, new(mockUserLoader))

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Property{ID: 5, HostID: 10}, nil)

	title := "Hijacked"
	_, err := svc.Update(context.Background(), 99, domain.RoleHost, 5, UpdatePropertyRequest{Title: &title})

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdate_AdminBypassesOwnership(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewService(repo, new(mockUserLoader))

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Property{ID: 5, HostID: 10, Title: "Old"}, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Property")).Return(nil)

	title := "New Title"
	p, err := svc.Update(context.Background(), 1, domain.RoleAdmin, 5, UpdatePropertyRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "New Title", p.Title)
}

func TestUpdate_PartialMergeLeavesOtherFields(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewService(repo, new(mockUserLoader))

	existing := &domain.Property{
		ID:          5,
		HostID:      10,
		Title:       "Old",
		Description: "Keep me",
		Price:       domain.Price{PerNight: 80, Currency: "USD"},
	}
	repo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Property")).Return(nil)

	price := domain.Price{PerNight: 95, Currency: "USD"}
	p, err := svc.Update(context.Background(), 10, domain.RoleHost, 5, UpdatePropertyRequest{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, 95.0, p.Price.PerNight)
	assert.Equal(t, "Keep me", p.Description)
	assert.Equal(t, "Old", p.Title)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewService(repo, new(mockUserLoader))

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 10, domain.RoleHost, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_AttachesHost(t *testing.T) {
	repo := new(mockPropertyRepo)
	users := new(mockUserLoader)
	svc := NewService(repo, users)

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Property{ID: 5, HostID: 10}, nil)
	users.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10, Name: "Host", PasswordHash: "x"}, nil)

	p, err := svc.Get(context.Background(), 5)

	require.NoError(t, err)
	require.NotNil(t, p.Host)
	assert.Empty(t, p.Host.PasswordHash)
}
