package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecretCipherRoundTrip(t *testing.T) {
	c, err := NewSecretCipher([]byte("test-master-key"))
	require.NoError(t, err)

	sealed, err := c.Seal([]byte(`{"secret":"JBSWY3DPEHPK3PXP"}`))
	require.NoError(t, err)

	opened, err := c.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, `{"secret":"JBSWY3DPEHPK3PXP"}`, string(opened))
}

func TestSecretCipher_NonceUnique(t *testing.T) {
	c, err := NewSecretCipher([]byte("test-master-key"))
	require.NoError(t, err)

	a, err := c.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := c.Seal([]byte("same"))
	require.NoError(t, err)
	require.NotEqual(t, a, b, "each Seal must use a fresh nonce")
}

func TestSecretCipher_WrongKey(t *testing.T) {
	c1, err := NewSecretCipher([]byte("key-one"))
	require.NoError(t, err)
	c2, err := NewSecretCipher([]byte("key-two"))
	require.NoError(t, err)

	sealed, err := c1.Seal([]byte("secret"))
	require.NoError(t, err)

	var cryptoErr *CryptoError
	_, err = c2.Open(sealed)
	require.ErrorAs(t, err, &cryptoErr)
}

func TestSecretCipher_Tampered(t *testing.T) {
	c, err := NewSecretCipher([]byte("test-master-key"))
	require.NoError(t, err)

	sealed, err := c.Seal([]byte("secret"))
	require.NoError(t, err)

	var cryptoErr *CryptoError

	t.Run("truncated", func(t *testing.T) {
		_, err := c.Open(sealed[:8])
		require.ErrorAs(t, err, &cryptoErr)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := c.Open("%%%")
		require.ErrorAs(t, err, &cryptoErr)
	})

	t.Run("flipped byte", func(t *testing.T) {
		mutated := []byte(sealed)
		if mutated[len(mutated)-1] == 'A' {
			mutated[len(mutated)-1] = 'B'
		} else {
			mutated[len(mutated)-1] = 'A'
		}
		_, err := c.Open(string(mutated))
		require.ErrorAs(t, err, &cryptoErr)
	})
}

func TestSecretCipher_EmptyMasterKey(t *testing.T) {
	_, err := NewSecretCipher(nil)
	require.Error(t, err)
}
