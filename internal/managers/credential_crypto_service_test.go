package managers

import (
	"testing"
	"time"

	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialCryptoService_RoundTrip(t *testing.T) {
	privateKey, publicKey, err := GenerateKeyPair()
	require.NoError(t, err)

	svc := NewCredentialCryptoService(privateKey, publicKey)
	payload := []byte(`{"account":"abc123","user":"bot","password":"secret1"}`)

	sealed, err := svc.SealCredential(domain.EncryptedCredential{ID: "cred-1"}, payload)
	require.NoError(t, err)

	assert.Len(t, sealed.EphemeralPublicKey, 32)
	assert.Len(t, sealed.Nonce, 12)
	assert.NotContains(t, string(sealed.EncryptedPayload), "secret1")

	decrypted, err := svc.DecryptCredential(sealed)
	require.NoError(t, err)
	assert.Equal(t, payload, decrypted)
}

func TestCredentialCryptoService_Expired(t *testing.T) {
	privateKey, publicKey, err := GenerateKeyPair()
	require.NoError(t, err)

	svc := NewCredentialCryptoService(privateKey, publicKey)

	sealed, err := svc.SealCredential(domain.EncryptedCredential{
		ID:        "cred-1",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}, []byte(`{}`))
	require.NoError(t, err)

	_, err = svc.DecryptCredential(sealed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestCredentialCryptoService_WrongKey(t *testing.T) {
	privateKey, publicKey, err := GenerateKeyPair()
	require.NoError(t, err)

	otherPrivateKey, _, err := GenerateKeyPair()
	require.NoError(t, err)

	sealer := NewCredentialCryptoService(privateKey, publicKey)
	opener := NewCredentialCryptoService(otherPrivateKey, publicKey)

	sealed, err := sealer.SealCredential(domain.EncryptedCredential{ID: "cred-1"}, []byte(`{}`))
	require.NoError(t, err)

	_, err = opener.DecryptCredential(sealed)
	require.Error(t, err)
}

func TestCredentialCryptoService_TamperedPayload(t *testing.T) {
	privateKey, publicKey, err := GenerateKeyPair()
	require.NoError(t, err)

	svc := NewCredentialCryptoService(privateKey, publicKey)

	sealed, err := svc.SealCredential(domain.EncryptedCredential{ID: "cred-1"}, []byte(`{}`))
	require.NoError(t, err)

	sealed.EncryptedPayload[0] ^= 0xff

	_, err = svc.DecryptCredential(sealed)
	require.Error(t, err)
}

func TestGenerateKeyPair(t *testing.T) {
	privateKey, publicKey, err := GenerateKeyPair()
	require.NoError(t, err)
	assert.NotEmpty(t, privateKey)
	assert.NotEmpty(t, publicKey)
	assert.NotEqual(t, privateKey, publicKey)
}
