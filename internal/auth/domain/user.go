package domain

import "time"

type User struct {
	ID                  string
	Username            string
	PublicKey           string // PEM encoded RSA public key
	EncryptedPrivateKey string // opaque ciphertext, only the client can open it
	SigninChallenge     string // single-use, rotated on every successful proof
	TokenValidFrom      time.Time
	TwoFactorSecret     *string // encrypted at rest (nullable)
	TwoFactorEnabled    bool
	TwoFactorChecked    bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
