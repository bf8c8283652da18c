package domain

import "time"

type TicketCategory string

const (
	TicketBug       TicketCategory = "bug"
	TicketFeature   TicketCategory = "feature"
	TicketComplaint TicketCategory = "complaint"
	TicketQuestion  TicketCategory = "question"
	TicketOther     TicketCategory = "other"
)

func (c TicketCategory) Valid() bool {
	switch c {
	case TicketBug, TicketFeature, TicketComplaint, TicketQuestion, TicketOther:
		return true
	}
	return false
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

type MessageRole string

const (
	MessageFromUser  MessageRole = "user"
	MessageFromAdmin MessageRole = "admin"
)

type TicketMessage struct {
	ID         int64       `json:"id"`
	TicketID   int64       `json:"ticket_id"`
	SenderID   int64       `json:"sender_id"`
	SenderRole MessageRole `json:"sender_role"`
	Message    string      `json:"message"`
	CreatedAt  time.Time   `json:"created_at"`

	Sender *User `json:"sender,omitempty"`
}

type Ticket struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Subject   string          `json:"subject" validate:"required,max=200"`
	Category  TicketCategory  `json:"category"`
	Priority  TicketPriority  `json:"priority"`
	Status    TicketStatus    `json:"status"`
	Messages  []TicketMessage `json:"messages,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	User *User `json:"user,omitempty"`
}
