package store

import (
	"context"
	"errors"
	"time"

	"github.com/pengkiwi/pengauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories are exposed as methods so transactional
// scoping stays explicit at the call site.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername resolves a username through the lookup table.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ConsumeSigninChallenge atomically replaces the stored challenge with
	// next, but only if the stored value still equals presented. Returns
	// false when the challenge did not match (wrong proof, or already
	// consumed by a concurrent signin).
	ConsumeSigninChallenge(ctx context.Context, userID, presented, next string) (bool, error)

	// UpdateEncryptedPrivateKey swaps the stored private key ciphertext.
	UpdateEncryptedPrivateKey(ctx context.Context, userID, encryptedKey string) error

	// SetTokenValidFrom moves the revocation watermark. Tokens issued
	// before this instant are rejected.
	SetTokenValidFrom(ctx context.Context, userID string, t time.Time) error

	// UpdateTwoFactorSecret stores the encrypted TOTP secret blob, or
	// clears it when encrypted is nil.
	UpdateTwoFactorSecret(ctx context.Context, userID string, encrypted *string) error

	// SetTwoFactorEnabled flips the enrolment flag.
	SetTwoFactorEnabled(ctx context.Context, userID string, enabled bool) error

	// SetTwoFactorChecked records whether the current session passed a
	// code check.
	SetTwoFactorChecked(ctx context.Context, userID string, checked bool) error

	// DeleteUser removes the user; the username lookup row cascades.
	DeleteUser(ctx context.Context, userID string) error
}
