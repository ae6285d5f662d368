package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"

	"github.com/rs/zerolog/log"
)

// FileCredentialStore keeps sealed credential blocks as one JSON document
// per block under a directory. Blocks are addressed by ID, with a fallback
// lookup by name.
type FileCredentialStore struct {
	dir string
}

func NewFileCredentialStore(dir string) (*FileCredentialStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create credential store directory: %w", err)
	}

	return &FileCredentialStore{dir: dir}, nil
}

func (s *FileCredentialStore) GetCredential(ctx context.Context, credentialID string) (domain.EncryptedCredential, error) {
	data, err := os.ReadFile(s.path(credentialID))
	if err == nil {
		var credential domain.EncryptedCredential
		if err := json.Unmarshal(data, &credential); err != nil {
			return domain.EncryptedCredential{}, fmt.Errorf("failed to unmarshal credential block: %w", err)
		}
		return credential, nil
	}

	if !os.IsNotExist(err) {
		return domain.EncryptedCredential{}, fmt.Errorf("failed to read credential block: %w", err)
	}

	// Not an ID; try to resolve by block name.
	credentials, err := s.ListCredentials(ctx)
	if err != nil {
		return domain.EncryptedCredential{}, err
	}

	for _, credential := range credentials {
		if credential.Name == credentialID {
			return credential, nil
		}
	}

	return domain.EncryptedCredential{}, fmt.Errorf("credential block not found: %s", credentialID)
}

func (s *FileCredentialStore) SaveCredential(ctx context.Context, credential domain.EncryptedCredential) error {
	data, err := json.MarshalIndent(credential, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credential block: %w", err)
	}

	if err := os.WriteFile(s.path(credential.ID), data, 0o600); err != nil {
		return fmt.Errorf("failed to write credential block: %w", err)
	}

	log.Debug().Str("credential_id", credential.ID).Str("name", credential.Name).Msg("Saved credential block")

	return nil
}

func (s *FileCredentialStore) ListCredentials(ctx context.Context) ([]domain.EncryptedCredential, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read credential store directory: %w", err)
	}

	var credentials []domain.EncryptedCredential

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read credential block %s: %w", entry.Name(), err)
		}

		var credential domain.EncryptedCredential
		if err := json.Unmarshal(data, &credential); err != nil {
			log.Warn().Str("file", entry.Name()).Err(err).Msg("Skipping unreadable credential block")
			continue
		}

		credentials = append(credentials, credential)
	}

	return credentials, nil
}

func (s *FileCredentialStore) path(credentialID string) string {
	return filepath.Join(s.dir, credentialID+".json")
}
