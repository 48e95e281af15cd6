package domain

import "errors"

var (
	ErrNotFound        = errors.New("warehouse not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
