package admin

import (
	"context"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, f repository.UserFilters) ([]domain.User, int64, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	ListPendingApproval(ctx context.Context, limit, offset int) ([]domain.Property, int64, error)
	SetApproval(ctx context.Context, id int64, approved bool) error
}

type NotificationSender interface {
	NotifyPropertyApproved(ctx context.Context, hostID, adminID, propertyID int64, propertyTitle string)
	NotifyPropertyRejected(ctx context.Context, hostID, adminID, propertyID int64, propertyTitle string)
	NotifySystemMessage(ctx context.Context, recipientID int64, senderID *int64, title, message string)
}
