package domain

import "context"

type CredentialType string

var (
	CredentialTypeSnowflake CredentialType = "snowflake"
)

// Credential is a decrypted secret-holding configuration record.
type Credential struct {
	ID          string
	Name        string
	WorkspaceID string
	Type        CredentialType

	DecryptedPayload map[string]any
}

// EncryptedCredential is the sealed at-rest form of a credential block.
type EncryptedCredential struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	WorkspaceID        string         `json:"workspace_id,omitempty"`
	Type               CredentialType `json:"type"`
	EphemeralPublicKey []byte         `json:"ephemeral_public_key"` // 32 bytes X25519 ephemeral public key
	EncryptedPayload   []byte         `json:"encrypted_payload"`
	Nonce              []byte         `json:"nonce"` // 12 bytes for ChaCha20-Poly1305
	ExpiresAt          int64          `json:"expires_at,omitempty"`
}

// CredentialStore persists sealed credential blocks.
type CredentialStore interface {
	GetCredential(ctx context.Context, credentialID string) (EncryptedCredential, error)
	SaveCredential(ctx context.Context, credential EncryptedCredential) error
	ListCredentials(ctx context.Context) ([]EncryptedCredential, error)
}

// CredentialDecryptionService opens the payload of a sealed credential block.
type CredentialDecryptionService interface {
	DecryptCredential(credential EncryptedCredential) ([]byte, error)
}

// CredentialCryptoService both seals and opens credential block payloads.
type CredentialCryptoService interface {
	CredentialDecryptionService
	SealCredential(credential EncryptedCredential, payload []byte) (EncryptedCredential, error)
}

// CredentialManager resolves a credential block and returns its decrypted
// JSON payload.
type CredentialManager interface {
	GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error)
}

// CredentialGetter returns typed credentials decoded from decrypted payloads.
type CredentialGetter[T any] interface {
	GetDecryptedCredential(ctx context.Context, credentialID string) (T, error)
}

// PayloadUnmarshaler lets a credential type construct itself from the raw
// decrypted payload, so cross-field validation runs before field decoding.
type PayloadUnmarshaler interface {
	UnmarshalPayload(values map[string]any) error
}
