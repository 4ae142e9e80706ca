package models

import "errors"

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidDetail    = errors.New("invalid detail value")
)
