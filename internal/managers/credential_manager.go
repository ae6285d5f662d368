package managers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"
)

type credentialManager struct {
	store         domain.CredentialStore
	decryptionSvc domain.CredentialDecryptionService
}

func NewCredentialManager(store domain.CredentialStore, decryptionSvc domain.CredentialDecryptionService) domain.CredentialManager {
	return &credentialManager{
		store:         store,
		decryptionSvc: decryptionSvc,
	}
}

func (m *credentialManager) GetDecryptedCredential(ctx context.Context, credentialID string) ([]byte, error) {
	encryptedCred, err := m.store.GetCredential(ctx, credentialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get encrypted credential: %w", err)
	}

	decryptedBytes, err := m.decryptionSvc.DecryptCredential(encryptedCred)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credential: %w", err)
	}

	return decryptedBytes, nil
}

// CredentialGetter retrieves decrypted credential payloads and decodes them
// into typed credentials.
type CredentialGetter[T any] struct {
	manager domain.CredentialManager
}

func NewCredentialGetter[T any](
	manager domain.CredentialManager,
) *CredentialGetter[T] {
	return &CredentialGetter[T]{
		manager: manager,
	}
}

func (g *CredentialGetter[T]) GetDecryptedCredential(ctx context.Context, credentialID string) (T, error) {
	var zero T

	decryptedBytes, err := g.manager.GetDecryptedCredential(ctx, credentialID)
	if err != nil {
		return zero, fmt.Errorf("failed to get decrypted credential: %w", err)
	}

	var result T

	// Credential types with cross-field rules construct themselves from the
	// raw payload so validation runs before field decoding.
	if unmarshaler, ok := any(&result).(domain.PayloadUnmarshaler); ok {
		var values map[string]any
		if err := json.Unmarshal(decryptedBytes, &values); err != nil {
			return zero, fmt.Errorf("failed to unmarshal credential payload: %w", err)
		}

		if err := unmarshaler.UnmarshalPayload(values); err != nil {
			return zero, err
		}

		return result, nil
	}

	if err := json.Unmarshal(decryptedBytes, &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return result, nil
}
