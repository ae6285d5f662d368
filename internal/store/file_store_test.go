package store

import (
	"context"
	"testing"

	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileCredentialStore {
	t.Helper()

	s, err := NewFileCredentialStore(t.TempDir())
	require.NoError(t, err)

	return s
}

func testCredential(id, name string) domain.EncryptedCredential {
	return domain.EncryptedCredential{
		ID:                 id,
		Name:               name,
		Type:               domain.CredentialTypeSnowflake,
		EphemeralPublicKey: make([]byte, 32),
		EncryptedPayload:   []byte("sealed"),
		Nonce:              make([]byte, 12),
	}
}

func TestFileCredentialStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	credential := testCredential("cred-1", "warehouse-bot")
	require.NoError(t, s.SaveCredential(ctx, credential))

	loaded, err := s.GetCredential(ctx, "cred-1")
	require.NoError(t, err)
	assert.Equal(t, credential, loaded)
}

func TestFileCredentialStore_GetByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCredential(ctx, testCredential("cred-1", "warehouse-bot")))

	loaded, err := s.GetCredential(ctx, "warehouse-bot")
	require.NoError(t, err)
	assert.Equal(t, "cred-1", loaded.ID)
}

func TestFileCredentialStore_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetCredential(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFileCredentialStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCredential(ctx, testCredential("cred-1", "first")))
	require.NoError(t, s.SaveCredential(ctx, testCredential("cred-2", "second")))

	credentials, err := s.ListCredentials(ctx)
	require.NoError(t, err)
	assert.Len(t, credentials, 2)
}
