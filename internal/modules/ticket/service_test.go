package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"staylocal/internal/domain"
	"staylocal/internal/repository"
)

type mockTicketRepo struct {
	mock.Mock
}

func (m *mockTicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil {
		t.ID = 1
	}
	return args.Error(0)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) List(ctx context.Context, f repository.TicketFilters) ([]domain.Ticket, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Ticket), args.Error(1)
}

func (m *mockTicketRepo) AddMessage(ctx context.Context, ticketID int64, msg *domain.TicketMessage) error {
	args := m.Called(ctx, ticketID, msg)
	return args.Error(0)
}

func (m *mockTicketRepo) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	args := m.Called(ctx, id, status)
	if t := args.Get(0); t != nil {
		return t.(*domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTicketRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifySystemMessage(ctx context.Context, recipientID int64, senderID *int64, title, message string) {
	m.Called(ctx, recipientID, senderID, title, message)
}

func openTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:       5,
		UserID:   10,
		Subject:  "Cannot upload photos",
		Category: domain.TicketBug,
		Priority: domain.PriorityMedium,
		Status:   domain.TicketOpen,
	}
}

func TestCreate_DefaultsPriorityAndOpensTicket(t *testing.T) {
	repo := new(mockTicketRepo)
	svc := NewService(repo, new(mockNotifier))

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).Return(nil)

	ticket, err := svc.Create(context.Background(), 10, CreateTicketRequest{
		Subject:  "Cannot upload photos",
		Category: "bug",
		Message:  "Upload hangs at 50%",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TicketOpen, ticket.Status)
	assert.Equal(t, domain.PriorityMedium, ticket.Priority)
	require.Len(t, ticket.Messages, 1)
	assert.Equal(t, domain.MessageFromUser, ticket.Messages[0].SenderRole)
}

func TestCreate_RejectsUnknownCategory(t *testing.T) {
	svc := NewService(new(mockTicketRepo), new(mockNotifier))

	_, err := svc.Create(context.Background(), 10, CreateTicketRequest{
		Subject:  "Hi",
		Category: "rant",
		Message:  "hello",
	})

	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestGet_StrangerForbidden(t *testing.T) {
	repo := new(mockTicketRepo)
	svc := NewService(repo, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(5)).Return(openTicket(), nil)

	_, err := svc.Get(context.Background(), 99, domain.RoleTraveler, 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReply_AdminMovesOpenToInProgress(t *testing.T) {
	repo := new(mockTicketRepo)
	notifs := new(mockNotifier)
	svc := NewService(repo, notifs)

	repo.On("GetByID", mock.Anything, int64(5)).Return(openTicket(), nil)
	repo.On("AddMessage", mock.Anything, int64(5), mock.AnythingOfType("*domain.TicketMessage")).Return(nil)
	repo.On("UpdateStatus", mock.Anything, int64(5), domain.TicketInProgress).Return(openTicket(), nil)
	notifs.On("NotifySystemMessage", mock.Anything, int64(10), mock.Anything, "Support Reply", mock.Anything).Return()

	_, err := svc.Reply(context.Background(), 1, domain.RoleAdmin, 5, "Looking into it")

	require.NoError(t, err)
	repo.AssertCalled(t, "UpdateStatus", mock.Anything, int64(5), domain.TicketInProgress)
	notifs.AssertExpectations(t)
}

func TestReply_UserDoesNotChangeStatus(t *testing.T) {
	repo := new(mockTicketRepo)
	svc := NewService(repo, new(mockNotifier))

	repo.On("GetByID", mock.Anything, int64(5)).Return(openTicket(), nil)
	repo.On("AddMessage", mock.Anything, int64(5), mock.AnythingOfType("*domain.TicketMessage")).Return(nil)

	_, err := svc.Reply(context.Background(), 10, domain.RoleTraveler, 5, "Any news?")

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestReply_ClosedTicketRejected(t *testing.T) {
	repo := new(mockTicketRepo)
	svc := NewService(repo, new(mockNotifier))

	closed := openTicket()
	closed.Status = domain.TicketClosed
	repo.On("GetByID", mock.Anything, int64(5)).Return(closed, nil)

	_, err := svc.Reply(context.Background(), 10, domain.RoleTraveler, 5, "reopen please")
	assert.ErrorIs(t, err, ErrTicketClosed)
}

func TestUpdateStatus_NotifiesOwner(t *testing.T) {
	repo := new(mockTicketRepo)
	notifs := new(mockNotifier)
	svc := NewService(repo, notifs)

	resolved := openTicket()
	resolved.Status = domain.TicketResolved
	repo.On("UpdateStatus", mock.Anything, int64(5), domain.TicketResolved).Return(resolved, nil)
	notifs.On("NotifySystemMessage", mock.Anything, int64(10), mock.Anything, "Ticket Status Updated", mock.Anything).Return()

	out, err := svc.UpdateStatus(context.Background(), 1, 5, domain.TicketResolved)

	require.NoError(t, err)
	assert.Equal(t, domain.TicketResolved, out.Status)
	notifs.AssertExpectations(t)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := NewService(new(mockTicketRepo), new(mockNotifier))

	_, err := svc.UpdateStatus(context.Background(), 1, 5, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
