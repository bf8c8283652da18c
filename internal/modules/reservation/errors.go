package reservation

import "errors"

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrNotAvailable      = errors.New("property is not available for booking")
	ErrOwnProperty       = errors.New("hosts cannot book their own property")
	ErrCapacityExceeded  = errors.New("guest count exceeds property capacity")
	ErrDateConflict      = errors.New("property is already booked for these dates")
	ErrInvalidStay       = errors.New("invalid check-in or check-out date")
	ErrForbidden         = errors.New("not allowed to access this reservation")
	ErrInvalidTransition = errors.New("reservation status does not allow this action")
	ErrReviewExists      = errors.New("reservation already has a review")
	ErrReviewNotAllowed  = errors.New("only completed stays can be reviewed")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus     = errors.New("unknown reservation status")
)
