package service

import "errors"

var (
	ErrValidation          = errors.New("validation")
	ErrNotFound            = errors.New("not found")
	ErrNotInCart           = errors.New("not in cart")
	ErrConflict            = errors.New("conflict")
	ErrEmptyCart           = errors.New("empty cart")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
