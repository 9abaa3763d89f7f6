package domain

import "errors"

var (
	ErrUserNotInRoster  = errors.New("user not in roster")
	ErrNoSelection      = errors.New("no selection")
	ErrInvalidServerURL = errors.New("invalid server url")
)
