package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"staylocal/internal/domain"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) DB() *gorm.DB { return r.db }

type ticketModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Subject   string    `gorm:"column:subject"`
	Category  string    `gorm:"column:category"`
	Priority  string    `gorm:"column:priority"`
	Status    string    `gorm:"column:status;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ticketModel) TableName() string { return "tickets" }

type ticketMessageModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	TicketID   int64     `gorm:"column:ticket_id;index"`
	SenderID   int64     `gorm:"column:sender_id"`
	SenderRole string    `gorm:"column:sender_role"`
	Message    string    `gorm:"column:message"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (ticketMessageModel) TableName() string { return "ticket_messages" }

func toDomainTicket(m ticketModel, msgs []ticketMessageModel) *domain.Ticket {
	t := &domain.Ticket{
		ID:        m.ID,
		UserID:    m.UserID,
		Subject:   m.Subject,
		Category:  domain.TicketCategory(m.Category),
		Priority:  domain.TicketPriority(m.Priority),
		Status:    domain.TicketStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, msg := range msgs {
		t.Messages = append(t.Messages, domain.TicketMessage{
			ID:         msg.ID,
			TicketID:   msg.TicketID,
			SenderID:   msg.SenderID,
			SenderRole: domain.MessageRole(msg.SenderRole),
			Message:    msg.Message,
			CreatedAt:  msg.CreatedAt,
		})
	}
	return t
}

// Create inserts the ticket together with its opening message in one
// transaction.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := ticketModel{
			UserID:   t.UserID,
			Subject:  t.Subject,
			Category: string(t.Category),
			Priority: string(t.Priority),
			Status:   string(t.Status),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		msgs := make([]ticketMessageModel, 0, len(t.Messages))
		for _, msg := range t.Messages {
			msgs = append(msgs, ticketMessageModel{
				TicketID:   m.ID,
				SenderID:   msg.SenderID,
				SenderRole: string(msg.SenderRole),
				Message:    msg.Message,
			})
		}
		if len(msgs) > 0 {
			if err := tx.Create(&msgs).Error; err != nil {
				return err
			}
		}

		*t = *toDomainTicket(m, msgs)
		return nil
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var m ticketModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}

	var msgs []ticketMessageModel
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	return toDomainTicket(m, msgs), nil
}

type TicketFilters struct {
	UserID int64
	Status string
}

func (r *TicketRepository) List(ctx context.Context, f TicketFilters) ([]domain.Ticket, error) {
	q := r.db.WithContext(ctx).Model(&ticketModel{})

	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var rows []ticketModel
	if err := q.Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Ticket, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTicket(m, nil))
	}
	return out, nil
}

// AddMessage appends a message and bumps the ticket's updated_at.
func (r *TicketRepository) AddMessage(ctx context.Context, ticketID int64, msg *domain.TicketMessage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := ticketMessageModel{
			TicketID:   ticketID,
			SenderID:   msg.SenderID,
			SenderRole: string(msg.SenderRole),
			Message:    msg.Message,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		if err := tx.Model(&ticketModel{}).
			Where("id = ?", ticketID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}

		msg.ID = m.ID
		msg.TicketID = m.TicketID
		msg.CreatedAt = m.CreatedAt
		return nil
	})
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	tx := r.db.WithContext(ctx).
		Model(&ticketModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TicketRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&ticketModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("ticket_id = ?", id).Delete(&ticketMessageModel{}).Error
	})
}
