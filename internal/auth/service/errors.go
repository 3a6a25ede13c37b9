package service

import "errors"

var (
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrInvalidPublicKey     = errors.New("invalid public key")
	ErrUnknownUser          = errors.New("unknown user")
	ErrInvalidChallenge     = errors.New("invalid signin challenge")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenRevoked         = errors.New("token issued before revocation watermark")
	ErrInvalidTwoFactorCode = errors.New("invalid two-factor code")
	ErrTwoFactorEnabled     = errors.New("two-factor already enabled")
	ErrTwoFactorNotEnabled  = errors.New("two-factor not enabled")
	ErrTwoFactorNotEnrolled = errors.New("two-factor not enrolled")
)
