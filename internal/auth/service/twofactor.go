package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pengkiwi/pengauth/internal/auth/domain"
	"github.com/pengkiwi/pengauth/internal/auth/store"
	"github.com/pengkiwi/pengauth/pkg/cryptox"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// totpOpts pins the parameters every enrolled secret is generated and
// validated with. Skew 1 accepts the adjacent 30s windows to absorb clock
// drift between server and authenticator.
var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type TwoFactorService struct {
	Store  store.Store
	Cipher *cryptox.SecretCipher
	Issuer string // issuer label shown in authenticator apps
}

// Enroll generates a fresh TOTP secret for the user, stores it encrypted and
// returns the provisioning URI. Two-factor stays disabled until Enable sees
// a valid code, proving the authenticator actually holds the secret.
func (s *TwoFactorService) Enroll(ctx context.Context, user domain.User) (string, error) {
	if user.TwoFactorEnabled {
		return "", ErrTwoFactorEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("generate totp key: %w", err)
	}

	sealed, err := s.seal(domain.TwoFactorSecret{Secret: key.Secret(), URI: key.URL()})
	if err != nil {
		return "", err
	}

	if err := s.Store.Users().UpdateTwoFactorSecret(ctx, user.ID, &sealed); err != nil {
		return "", fmt.Errorf("store two-factor secret: %w", err)
	}

	return key.URL(), nil
}

// Enable activates two-factor once a valid code confirms enrolment.
func (s *TwoFactorService) Enable(ctx context.Context, user domain.User, code string) error {
	if user.TwoFactorEnabled {
		return ErrTwoFactorEnabled
	}
	if user.TwoFactorSecret == nil {
		return ErrTwoFactorNotEnrolled
	}

	if err := s.VerifyCode(user, code); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetTwoFactorEnabled(ctx, user.ID, true); err != nil {
			return err
		}
		return tx.Users().SetTwoFactorChecked(ctx, user.ID, true)
	})
}

// Disable removes two-factor after a final valid code. The stored secret is
// wiped so a later re-enrolment starts from scratch.
func (s *TwoFactorService) Disable(ctx context.Context, user domain.User, code string) error {
	if !user.TwoFactorEnabled {
		return ErrTwoFactorNotEnabled
	}

	if err := s.VerifyCode(user, code); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetTwoFactorEnabled(ctx, user.ID, false); err != nil {
			return err
		}
		if err := tx.Users().UpdateTwoFactorSecret(ctx, user.ID, nil); err != nil {
			return err
		}
		return tx.Users().SetTwoFactorChecked(ctx, user.ID, false)
	})
}

// VerifyCode checks a 6-digit code against the user's decrypted secret.
func (s *TwoFactorService) VerifyCode(user domain.User, code string) error {
	if user.TwoFactorSecret == nil {
		return ErrTwoFactorNotEnrolled
	}

	secret, err := s.open(*user.TwoFactorSecret)
	if err != nil {
		return err
	}

	valid, err := totp.ValidateCustom(code, secret.Secret, time.Now().UTC(), totpOpts)
	if err != nil {
		return fmt.Errorf("validate totp code: %w", err)
	}
	if !valid {
		return ErrInvalidTwoFactorCode
	}
	return nil
}

// Secret decrypts the stored two-factor blob, e.g. to surface the URI to the
// account owner.
func (s *TwoFactorService) Secret(user domain.User) (domain.TwoFactorSecret, error) {
	if user.TwoFactorSecret == nil {
		return domain.TwoFactorSecret{}, ErrTwoFactorNotEnrolled
	}
	return s.open(*user.TwoFactorSecret)
}

func (s *TwoFactorService) seal(secret domain.TwoFactorSecret) (string, error) {
	payload, err := json.Marshal(secret)
	if err != nil {
		return "", fmt.Errorf("encode two-factor secret: %w", err)
	}
	sealed, err := s.Cipher.Seal(payload)
	if err != nil {
		return "", fmt.Errorf("seal two-factor secret: %w", err)
	}
	return sealed, nil
}

func (s *TwoFactorService) open(sealed string) (domain.TwoFactorSecret, error) {
	payload, err := s.Cipher.Open(sealed)
	if err != nil {
		return domain.TwoFactorSecret{}, fmt.Errorf("open two-factor secret: %w", err)
	}
	var secret domain.TwoFactorSecret
	if err := json.Unmarshal(payload, &secret); err != nil {
		return domain.TwoFactorSecret{}, fmt.Errorf("decode two-factor secret: %w", err)
	}
	return secret, nil
}
