package service

import "errors"

var (
	ErrInvalidEmail       = errors.New("malformed email address")
	ErrWeakPassword       = errors.New("password must have at least 6 characters")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyMessage       = errors.New("message needs text or a file")
	ErrGroupInvalid       = errors.New("group needs a name and at least one member")
	ErrRoomInvalid        = errors.New("room needs a name")
)
