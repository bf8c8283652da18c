package ticket

import (
	"context"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context, f repository.TicketFilters) ([]domain.Ticket, error)
	AddMessage(ctx context.Context, ticketID int64, msg *domain.TicketMessage) error
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
}

type NotificationSender interface {
	NotifySystemMessage(ctx context.Context, recipientID int64, senderID *int64, title, message string)
}
