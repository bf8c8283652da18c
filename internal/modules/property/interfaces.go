package property

import (
	"context"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Save(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
	GetByHost(ctx context.Context, hostID int64) ([]domain.Property, error)
	List(ctx context.Context, f repository.PropertyFilters) ([]domain.Property, int64, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
