package property

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type Service struct {
	properties PropertyRepository
	users      UserLoader
}

func NewService(properties PropertyRepository, users UserLoader) *Service {
	return &Service{properties: properties, users: users}
}

// List returns the public catalog: only available, approved listings.
func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Property, int64, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 12
	}
	if q.Page <= 0 {
		q.Page = 1
	}

	return s.properties.List(ctx, repository.PropertyFilters{
		Search:    q.Search,
		City:      q.City,
		Type:      q.Type,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		Guests:    q.Guests,
		Bedrooms:  q.Bedrooms,
		Amenities: q.Amenities,
		Sort:      q.Sort,
		Limit:     q.Limit,
		Offset:    (q.Page - 1) * q.Limit,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if host, err := s.users.GetByID(ctx, p.HostID); err == nil {
		host.PasswordHash = ""
		p.Host = host
	}

	return p, nil
}

// Create adds a listing for the calling host. Admin-created listings skip the
// moderation queue.
func (s *Service) Create(ctx context.Context, hostID int64, role domain.Role, req CreatePropertyRequest) (*domain.Property, error) {
	t := domain.PropertyType(req.Type)
	if !t.Valid() {
		return nil, ErrInvalidType
	}

	p := &domain.Property{
		Title:       req.Title,
		Description: req.Description,
		Type:        t,
		HostID:      hostID,
		Address:     req.Address,
		Location:    req.Location,
		Price:       req.Price,
		Capacity:    req.Capacity,
		Amenities:   req.Amenities,
		Images:      req.Images,
		IsAvailable: true,
		IsApproved:  role == domain.RoleAdmin,
	}
	if req.Rules != nil {
		p.Rules = *req.Rules
	}
	if p.Price.Currency == "" {
		p.Price.Currency = "USD"
	}

	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial update. Hosts may only touch their own listings;
// admins may touch any. Rating and approval are never writable here.
func (s *Service) Update(ctx context.Context, callerID int64, role domain.Role, id int64, req UpdatePropertyRequest) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role != domain.RoleAdmin && p.HostID != callerID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Type != nil {
		t := domain.PropertyType(*req.Type)
		if !t.Valid() {
			return nil, ErrInvalidType
		}
		p.Type = t
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Price != nil {
		p.Price = *req.Price
		if p.Price.Currency == "" {
			p.Price.Currency = "USD"
		}
	}
	if req.Capacity != nil {
		p.Capacity = *req.Capacity
	}
	if req.Amenities != nil {
		p.Amenities = *req.Amenities
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Rules != nil {
		p.Rules = *req.Rules
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}

	if err := s.properties.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, callerID int64, role domain.Role, id int64) error {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if role != domain.RoleAdmin && p.HostID != callerID {
		return ErrForbidden
	}

	return s.properties.Delete(ctx, id)
}

// MyProperties lists the caller's own listings, approved or not.
func (s *Service) MyProperties(ctx context.Context, hostID int64) ([]domain.Property, error) {
	return s.properties.GetByHost(ctx, hostID)
}
