package services

import "errors"

// Report service errors
var (
	ErrNoStatement  = errors.New("no statement loaded")
	ErrInvalidInput = errors.New("invalid input")
)
