package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"staylocal/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) DB() *gorm.DB { return r.db }

type notificationModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	RecipientID   int64      `gorm:"column:recipient_id;index:idx_notifications_recipient_read"`
	SenderID      *int64     `gorm:"column:sender_id"`
	Type          string     `gorm:"column:type"`
	Title         string     `gorm:"column:title"`
	Message       string     `gorm:"column:message"`
	PropertyID    *int64     `gorm:"column:property_id"`
	ReservationID *int64     `gorm:"column:reservation_id"`
	IsRead        bool       `gorm:"column:is_read;index:idx_notifications_recipient_read"`
	ReadAt        *time.Time `gorm:"column:read_at"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
}

func (notificationModel) TableName() string { return "notifications" }

func toDomainNotification(m notificationModel) *domain.Notification {
	return &domain.Notification{
		ID:            m.ID,
		RecipientID:   m.RecipientID,
		SenderID:      m.SenderID,
		Type:          domain.NotificationType(m.Type),
		Title:         m.Title,
		Message:       m.Message,
		PropertyID:    m.PropertyID,
		ReservationID: m.ReservationID,
		IsRead:        m.IsRead,
		ReadAt:        m.ReadAt,
		CreatedAt:     m.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := notificationModel{
		RecipientID:   n.RecipientID,
		SenderID:      n.SenderID,
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		PropertyID:    n.PropertyID,
		ReservationID: n.ReservationID,
		IsRead:        n.IsRead,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*n = *toDomainNotification(m)
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("recipient_id = ?", recipientID)

	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []notificationModel
	q = q.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainNotification(m))
	}
	return out, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&cnt).Error
	return cnt, err
}

// MarkRead flips the read flag; scoped to the recipient so users cannot touch
// notifications addressed to someone else.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) (*domain.Notification, error) {
	var m notificationModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		First(&m).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m.IsRead = true
	m.ReadAt = &now
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return toDomainNotification(m), nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&notificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]any{"is_read": true, "read_at": now}).Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&notificationModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, recipientID int64) error {
	return r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Delete(&notificationModel{}).Error
}
