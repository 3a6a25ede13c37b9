package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/pengkiwi/pengauth/internal/auth/domain"
	"github.com/pengkiwi/pengauth/internal/auth/store"
	"github.com/pengkiwi/pengauth/pkg/cryptox"
	"github.com/pengkiwi/pengauth/pkg/idx"
)

// usernameRe bounds identifiers to lowercase DNS-ish labels. Uppercase is
// rejected rather than folded so the stored name is exactly what was sent.
var usernameRe = regexp.MustCompile(`^[a-z0-9._-]{1,64}$`)

type UserService struct {
	Store store.Store
}

// Signup registers a new account. The private key arrives pre-encrypted by
// the client; the server validates only the public half.
func (s *UserService) Signup(ctx context.Context, username, publicKey, encryptedPrivateKey string) (domain.User, error) {
	if !usernameRe.MatchString(username) {
		return domain.User{}, ErrInvalidIdentifier
	}
	if publicKey == "" || encryptedPrivateKey == "" {
		return domain.User{}, ErrInvalidPublicKey
	}

	// Reject keys we could never encrypt a challenge under.
	if _, err := cryptox.EncryptMessage(publicKey, "probe"); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:                  idx.New().String(),
		Username:            username,
		PublicKey:           publicKey,
		EncryptedPrivateKey: encryptedPrivateKey,
		SigninChallenge:     uuid.NewString(),
		TokenValidFrom:      now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// Primary row and username lookup row must land together.
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

// PublicProfile returns the pre-signin view of an account along with the
// current challenge sealed under the account's public key. Only the holder
// of the private key can recover it.
func (s *UserService) PublicProfile(ctx context.Context, username string) (domain.User, string, error) {
	// No format gate on the read path: a name that could never have been
	// registered is simply not found.
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, "", err
	}

	encrypted, err := cryptox.EncryptMessage(user.PublicKey, user.SigninChallenge)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("encrypt signin challenge: %w", err)
	}

	return user, encrypted, nil
}

// GetSelf returns the full account record for an authenticated user.
func (s *UserService) GetSelf(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// RotateCredential swaps the stored encrypted private key. The decrypted
// challenge re-proves possession of the current key, the watermark moves so
// every previously issued token dies, and the challenge rotates.
func (s *UserService) RotateCredential(ctx context.Context, userID, challenge, encryptedPrivateKey string) (domain.User, error) {
	if encryptedPrivateKey == "" {
		return domain.User{}, ErrInvalidPublicKey
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.Users().ConsumeSigninChallenge(ctx, userID, challenge, uuid.NewString())
		if err != nil {
			return fmt.Errorf("consume signin challenge: %w", err)
		}
		if !ok {
			return ErrInvalidChallenge
		}
		if err := tx.Users().UpdateEncryptedPrivateKey(ctx, userID, encryptedPrivateKey); err != nil {
			return fmt.Errorf("update encrypted private key: %w", err)
		}
		return tx.Users().SetTokenValidFrom(ctx, userID, time.Now().UTC())
	})
	if err != nil {
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}

// Delete removes the account and its username mapping.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	return s.Store.Users().DeleteUser(ctx, userID)
}
