package ticket

import "errors"

var (
	ErrNotFound        = errors.New("ticket not found")
	ErrForbidden       = errors.New("not allowed to access this ticket")
	ErrInvalidCategory = errors.New("invalid ticket category")
	ErrInvalidPriority = errors.New("invalid ticket priority")
	ErrInvalidStatus   = errors.New("invalid ticket status")
	ErrTicketClosed    = errors.New("ticket is closed")
)
