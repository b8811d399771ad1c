package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrRefreshMissing         = errors.New("refresh token missing")
	ErrRefreshExpired         = errors.New("refresh token expired or invalid")
	ErrInvalidPasscode        = errors.New("invalid verification code")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailDelivery          = errors.New("failed to send verification email")

	ErrDNIConflict      = errors.New("employee with this dni already exists")
	ErrUsernameConflict = errors.New("username already exists")
	ErrEmployeeNotFound = errors.New("employee not found")

	ErrShiftActive   = errors.New("user already has an open shift")
	ErrShiftNotFound = errors.New("shift not found")
)
