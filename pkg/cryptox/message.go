package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
)

// PEM block types for the message envelope and key material.
const (
	messageBlockType    = "MESSAGE"
	publicKeyBlockType  = "PUBLIC KEY"
	privateKeyBlockType = "PRIVATE KEY"
)

// CryptoError wraps any failure caused by malformed key material or
// ciphertext. Callers match it with errors.As to distinguish "bad input"
// from infrastructure failures.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("cryptox: %s: %v", e.Op, e.Err)
}

func (e *CryptoError) Unwrap() error { return e.Err }

func cryptoErr(op string, err error) error {
	return &CryptoError{Op: op, Err: err}
}

// EncryptMessage encrypts a short UTF-8 message under the recipient's
// RSA public key (PKIX PEM) using OAEP with SHA-256. The result is a PEM
// "MESSAGE" block that round-trips exactly through DecryptMessage.
//
// OAEP bounds the plaintext to keySize - 66 bytes for SHA-256, which is
// plenty for signin challenges.
func EncryptMessage(publicKeyPEM, message string) (string, error) {
	pub, err := parsePublicKey(publicKeyPEM)
	if err != nil {
		return "", err
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, []byte(message), nil)
	if err != nil {
		return "", cryptoErr("encrypt", err)
	}

	armored := pem.EncodeToMemory(&pem.Block{
		Type:  messageBlockType,
		Bytes: ciphertext,
	})
	return string(armored), nil
}

// DecryptMessage is the inverse of EncryptMessage. It fails with a
// *CryptoError if the envelope is malformed or the key does not match.
func DecryptMessage(privateKeyPEM, armored string) (string, error) {
	priv, err := parsePrivateKey(privateKeyPEM)
	if err != nil {
		return "", err
	}

	block, _ := pem.Decode([]byte(armored))
	if block == nil || block.Type != messageBlockType {
		return "", cryptoErr("decrypt", errors.New("input is not a MESSAGE block"))
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, block.Bytes, nil)
	if err != nil {
		return "", cryptoErr("decrypt", err)
	}
	return string(plaintext), nil
}

// Hash returns the hex-encoded SHA-256 digest of the input. It is meant
// for non-secret identifier derivation (e.g. logging a stable reference
// to a username), never for credential storage.
func Hash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// GenerateKeyPair creates an RSA keypair and returns (publicPEM,
// privatePEM). Production clients generate their own keys; this exists
// for tests and local tooling.
func GenerateKeyPair(bits int) (string, string, error) {
	if bits < 2048 {
		return "", "", fmt.Errorf("cryptox: RSA key size must be at least 2048 bits")
	}

	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return "", "", fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}

	pubBytes, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("cryptox: failed to marshal public key: %w", err)
	}
	privBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", "", fmt.Errorf("cryptox: failed to marshal private key: %w", err)
	}

	pubPEM := pem.EncodeToMemory(&pem.Block{Type: publicKeyBlockType, Bytes: pubBytes})
	privPEM := pem.EncodeToMemory(&pem.Block{Type: privateKeyBlockType, Bytes: privBytes})
	return string(pubPEM), string(privPEM), nil
}

func parsePublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil || block.Type != publicKeyBlockType {
		return nil, cryptoErr("parse public key", errors.New("input is not a PUBLIC KEY block"))
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, cryptoErr("parse public key", err)
	}

	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, cryptoErr("parse public key", fmt.Errorf("unsupported key type %T", key))
	}
	return pub, nil
}

func parsePrivateKey(privateKeyPEM string) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privateKeyPEM))
	if block == nil {
		return nil, cryptoErr("parse private key", errors.New("input is not PEM encoded"))
	}

	switch block.Type {
	case privateKeyBlockType:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, cryptoErr("parse private key", err)
		}
		priv, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, cryptoErr("parse private key", fmt.Errorf("unsupported key type %T", key))
		}
		return priv, nil
	case "RSA PRIVATE KEY":
		priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, cryptoErr("parse private key", err)
		}
		return priv, nil
	default:
		return nil, cryptoErr("parse private key", fmt.Errorf("unexpected block type %q", block.Type))
	}
}
