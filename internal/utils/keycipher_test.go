package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCipherRoundTrip(t *testing.T) {
	cipher := NewKeyCipher("0123456789abcdef0123456789abcdef")

	encrypted, err := cipher.Encrypt("sk-proj-verysecretapikey12345")
	require.NoError(t, err)
	assert.NotEqual(t, "sk-proj-verysecretapikey12345", encrypted)

	decrypted, err := cipher.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "sk-proj-verysecretapikey12345", decrypted)
}

func TestKeyCipherNonDeterministic(t *testing.T) {
	cipher := NewKeyCipher("0123456789abcdef0123456789abcdef")

	first, err := cipher.Encrypt("same plaintext")
	require.NoError(t, err)
	second, err := cipher.Encrypt("same plaintext")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestKeyCipherWrongSecret(t *testing.T) {
	cipher := NewKeyCipher("0123456789abcdef0123456789abcdef")
	other := NewKeyCipher("fedcba9876543210fedcba9876543210")

	encrypted, err := cipher.Encrypt("sk-ant-api03-key")
	require.NoError(t, err)

	_, err = other.Decrypt(encrypted)
	assert.Error(t, err)
}

func TestKeyCipherGarbageInput(t *testing.T) {
	cipher := NewKeyCipher("0123456789abcdef0123456789abcdef")

	_, err := cipher.Decrypt("not base64!!!")
	assert.Error(t, err)

	_, err = cipher.Decrypt("c2hvcnQ=")
	assert.Error(t, err)
}
