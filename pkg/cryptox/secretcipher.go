package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// hkdfInfo namespaces the derived key so the same master key material can
// never be reused for a different purpose without changing this label.
const hkdfInfo = "pengauth/secret-cipher/v1"

// SecretCipher provides authenticated encryption (AES-256-GCM) for small
// secrets that must be confidential at rest, e.g. TOTP secrets. The AES key
// is derived from the configured master key via HKDF-SHA256, so the master
// key itself never touches the cipher directly.
//
// A SecretCipher is immutable and safe for concurrent use.
type SecretCipher struct {
	aead cipher.AEAD
}

// NewSecretCipher derives a cipher from the given master key material.
// Any non-empty key material is acceptable; it is stretched to 32 bytes.
func NewSecretCipher(masterKey []byte) (*SecretCipher, error) {
	if len(masterKey) == 0 {
		return nil, errors.New("cryptox: master key must not be empty")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, masterKey, nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("cryptox: key derivation failed: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: failed to create GCM: %w", err)
	}

	return &SecretCipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns base64url(nonce || ciphertext || tag).
// A fresh random nonce is used per call.
func (c *SecretCipher) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts data produced by Seal. Tampered or truncated input fails
// with a *CryptoError.
func (c *SecretCipher) Open(encoded string) ([]byte, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, cryptoErr("open secret", err)
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize {
		return nil, cryptoErr("open secret", errors.New("ciphertext too short"))
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, cryptoErr("open secret", err)
	}
	return plaintext, nil
}
