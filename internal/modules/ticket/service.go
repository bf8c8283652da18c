package ticket

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type Service struct {
	tickets TicketRepository
	notifs  NotificationSender
}

func NewService(tickets TicketRepository, notifs NotificationSender) *Service {
	return &Service{tickets: tickets, notifs: notifs}
}

// Create opens a ticket with its first message. Priority defaults to medium.
func (s *Service) Create(ctx context.Context, userID int64, req CreateTicketRequest) (*domain.Ticket, error) {
	category := domain.TicketCategory(req.Category)
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	priority := domain.TicketPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	t := &domain.Ticket{
		UserID:   userID,
		Subject:  req.Subject,
		Category: category,
		Priority: priority,
		Status:   domain.TicketOpen,
		Messages: []domain.TicketMessage{{
			SenderID:   userID,
			SenderRole: domain.MessageFromUser,
			Message:    req.Message,
		}},
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns a ticket with its thread. Owner or admin only.
func (s *Service) Get(ctx context.Context, callerID int64, role domain.Role, id int64) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role != domain.RoleAdmin && t.UserID != callerID {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, status string) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, repository.TicketFilters{UserID: userID, Status: status})
}

func (s *Service) ListAll(ctx context.Context, status string) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, repository.TicketFilters{Status: status})
}

// Reply appends a message to the thread. An admin reply to an open ticket
// moves it to in-progress and pings the ticket owner.
func (s *Service) Reply(ctx context.Context, callerID int64, role domain.Role, id int64, message string) (*domain.Ticket, error) {
	t, err := s.Get(ctx, callerID, role, id)
	if err != nil {
		return nil, err
	}

	if t.Status == domain.TicketClosed {
		return nil, ErrTicketClosed
	}

	senderRole := domain.MessageFromUser
	if role == domain.RoleAdmin {
		senderRole = domain.MessageFromAdmin
	}

	msg := &domain.TicketMessage{
		SenderID:   callerID,
		SenderRole: senderRole,
		Message:    message,
	}
	if err := s.tickets.AddMessage(ctx, id, msg); err != nil {
		return nil, err
	}

	if role == domain.RoleAdmin {
		if t.Status == domain.TicketOpen {
			if _, err := s.tickets.UpdateStatus(ctx, id, domain.TicketInProgress); err != nil {
				return nil, err
			}
		}
		s.notifs.NotifySystemMessage(ctx, t.UserID, &callerID,
			"Support Reply", "Support replied to your ticket: "+t.Subject)
	}

	return s.tickets.GetByID(ctx, id)
}

// UpdateStatus is admin-only; the route gating enforces that.
func (s *Service) UpdateStatus(ctx context.Context, adminID, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	t, err := s.tickets.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.notifs.NotifySystemMessage(ctx, t.UserID, &adminID,
		"Ticket Status Updated", "Your ticket \""+t.Subject+"\" is now "+string(status))

	return t, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
