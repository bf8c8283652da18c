package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type Service struct {
	users      UserRepository
	properties PropertyRepository
	notifs     NotificationSender
}

func NewService(users UserRepository, properties PropertyRepository, notifs NotificationSender) *Service {
	return &Service{users: users, properties: properties, notifs: notifs}
}

// ---- user management ----

func (s *Service) ListUsers(ctx context.Context, role string, isActive *bool, page, limit int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	return s.users.List(ctx, repository.UserFilters{
		Role:     role,
		IsActive: isActive,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) UpdateUserRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	u, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// SetUserActive toggles an account. Deactivated accounts fail login and token
// validation on the next request. Admins cannot lock themselves out.
func (s *Service) SetUserActive(ctx context.Context, adminID, id int64, active bool) (*domain.User, error) {
	if id == adminID && !active {
		return nil, ErrSelfDeactivate
	}

	u, err := s.users.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !active {
		s.notifs.NotifySystemMessage(ctx, id, &adminID,
			"Account Deactivated", "Your account has been deactivated by an administrator")
	}

	u.PasswordHash = ""
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, adminID, id int64) error {
	if id == adminID {
		return ErrSelfDelete
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ---- property moderation ----

func (s *Service) PendingProperties(ctx context.Context, page, limit int) ([]domain.Property, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return s.properties.ListPendingApproval(ctx, limit, (page-1)*limit)
}

func (s *Service) ApproveProperty(ctx context.Context, adminID, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if err := s.properties.SetApproval(ctx, id, true); err != nil {
		return nil, err
	}
	p.IsApproved = true

	s.notifs.NotifyPropertyApproved(ctx, p.HostID, adminID, p.ID, p.Title)

	return p, nil
}

// RejectProperty pulls a listing out of the catalog. The listing stays in the
// host's dashboard so they can fix and resubmit it.
func (s *Service) RejectProperty(ctx context.Context, adminID, id int64, reason string) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	if err := s.properties.SetApproval(ctx, id, false); err != nil {
		return nil, err
	}
	p.IsApproved = false

	s.notifs.NotifyPropertyRejected(ctx, p.HostID, adminID, p.ID, p.Title)
	if reason != "" {
		s.notifs.NotifySystemMessage(ctx, p.HostID, &adminID,
			"Rejection Reason", reason)
	}

	return p, nil
}
