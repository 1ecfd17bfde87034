package domain

import "errors"

var (
	// Lookup errors
	ErrAccountNotFound = errors.New("account not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrVoucherNotFound = errors.New("voucher not found")

	// Posting errors
	ErrDuplicateVoucher   = errors.New("voucher number already exists")
	ErrValidationRejected = errors.New("voucher failed validation")
	ErrVoucherCancelled   = errors.New("voucher is cancelled")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")

	// Authentication errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
