package service

import "errors"

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidStep     = errors.New("invalid conversation step")
)
