package property

import "errors"

var (
	ErrNotFound    = errors.New("property not found")
	ErrForbidden   = errors.New("not the owner of this property")
	ErrInvalidType = errors.New("invalid property type")
)
