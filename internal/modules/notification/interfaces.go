package notification

import (
	"context"

	"staylocal/internal/domain"
)

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, id, recipientID int64) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) error
	Delete(ctx context.Context, id, recipientID int64) error
	DeleteAll(ctx context.Context, recipientID int64) error
}
