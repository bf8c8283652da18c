package admin

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrSelfDelete       = errors.New("admins cannot delete their own account")
	ErrSelfDeactivate   = errors.New("admins cannot deactivate their own account")
	ErrInvalidRole      = errors.New("unknown role")
)
