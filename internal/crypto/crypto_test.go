package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)

	plaintexts := []string{
		"+243812345678",
		"",
		"exactly sixteen!",
		"a longer value spanning multiple AES blocks to exercise padding",
	}
	for _, pt := range plaintexts {
		encrypted, err := Encrypt(pt, key)
		require.NoError(t, err)
		assert.NotEqual(t, pt, encrypted)

		decrypted, err := Decrypt(encrypted, key)
		require.NoError(t, err)
		assert.Equal(t, pt, decrypted)
	}
}

func TestEncryptRejectsBadKeyLength(t *testing.T) {
	_, err := Encrypt("data", []byte("short"))
	assert.Error(t, err)
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	other := bytes.Repeat([]byte{0x24}, 32)

	encrypted, err := Encrypt("+243991234567", key)
	require.NoError(t, err)

	// CBC with random IV: wrong key yields garbage that fails pkcs7 validation
	// in almost all cases.
	decrypted, err := Decrypt(encrypted, other)
	if err == nil {
		assert.NotEqual(t, "+243991234567", decrypted)
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)

	_, err := Decrypt("not-base64!!!", key)
	assert.Error(t, err)

	_, err = Decrypt("dG9vc2hvcnQ=", key) // decodes to "tooshort"
	assert.Error(t, err)
}
