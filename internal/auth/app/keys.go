package app

import (
	"fmt"
	"log/slog"

	"github.com/pengkiwi/pengauth/pkg/cryptox"
	"github.com/pengkiwi/pengauth/pkg/jwtx"
)

// InitTokenEngine builds the token engine from configured secrets. Any class
// left unconfigured gets an ephemeral secret generated on startup, which
// invalidates that class of tokens on every restart. Fine for development,
// noisy on purpose so it is not missed in production.
func InitTokenEngine(cfg Config, logger *slog.Logger) (*jwtx.Engine, error) {
	ephemeral := []string{}

	secret := func(name, configured string) []byte {
		if configured != "" {
			return []byte(configured)
		}
		ephemeral = append(ephemeral, name)
		return []byte(cryptox.MustGenerateToken(cryptox.TokenSize256))
	}

	engine := &jwtx.Engine{
		Issuer:  cfg.Issuer,
		Access:  jwtx.Policy{Secret: secret("access", cfg.AccessTokenSecret), TTL: cfg.AccessTokenTTL},
		Refresh: jwtx.Policy{Secret: secret("refresh", cfg.RefreshTokenSecret), TTL: cfg.RefreshTokenTTL},
		Temp:    jwtx.Policy{Secret: secret("temp", cfg.TempTokenSecret), TTL: cfg.TempTokenTTL},
	}

	if err := engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid token engine configuration: %w", err)
	}

	if len(ephemeral) > 0 {
		logger.Warn("generated ephemeral token secrets; these token classes will not survive a restart",
			"classes", ephemeral,
		)
	}

	logger.Info("token engine initialized",
		"issuer", cfg.Issuer,
		"access_ttl", cfg.AccessTokenTTL,
		"refresh_ttl", cfg.RefreshTokenTTL,
		"temp_ttl", cfg.TempTokenTTL,
	)

	return engine, nil
}

// InitSecretCipher builds the cipher that protects stored secrets (the TOTP
// blobs) at rest. Without a configured master key an ephemeral one is
// generated, which orphans previously stored secrets on restart.
func InitSecretCipher(cfg Config, logger *slog.Logger) (*cryptox.SecretCipher, error) {
	masterKey := cfg.MasterKey
	if masterKey == "" {
		masterKey = cryptox.MustGenerateToken(cryptox.TokenSize256)
		logger.Warn("generated ephemeral master key; stored secrets will be unreadable after a restart")
	}

	cipher, err := cryptox.NewSecretCipher([]byte(masterKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secret cipher: %w", err)
	}
	return cipher, nil
}

// InitBackendKeys generates the service's own RSA keypair. The public half is
// surfaced on the self profile so clients can encrypt payloads for the
// service; the private half never leaves memory.
func InitBackendKeys(logger *slog.Logger) (publicPEM, privatePEM string, err error) {
	publicPEM, privatePEM, err = cryptox.GenerateKeyPair(2048)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate backend keypair: %w", err)
	}
	logger.Info("backend keypair generated")
	return publicPEM, privatePEM, nil
}
