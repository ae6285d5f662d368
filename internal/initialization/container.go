package initialization

import (
	"fmt"

	"github.com/flowbaker/flowbaker-snowflake/internal/managers"
	"github.com/flowbaker/flowbaker-snowflake/internal/store"
	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"
	"github.com/flowbaker/flowbaker-snowflake/pkg/snowflake"
)

// Container wires the credential store, crypto service, and typed getters
// for the CLI commands.
type Container struct {
	config            *Config
	credentialStore   domain.CredentialStore
	credentialManager domain.CredentialManager
	cryptoService     domain.CredentialCryptoService
	credentialGetter  domain.CredentialGetter[snowflake.Credentials]
}

func NewContainer() (*Container, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	credentialStore, err := store.NewFileCredentialStore(config.BlocksPath)
	if err != nil {
		return nil, err
	}

	cryptoService := managers.NewCredentialCryptoService(config.X25519PrivateKey, config.X25519PublicKey)
	credentialManager := managers.NewCredentialManager(credentialStore, cryptoService)
	credentialGetter := managers.NewCredentialGetter[snowflake.Credentials](credentialManager)

	return &Container{
		config:            config,
		credentialStore:   credentialStore,
		credentialManager: credentialManager,
		cryptoService:     cryptoService,
		credentialGetter:  credentialGetter,
	}, nil
}

func (c *Container) GetConfig() *Config {
	return c.config
}

func (c *Container) GetCredentialStore() domain.CredentialStore {
	return c.credentialStore
}

func (c *Container) GetCredentialManager() domain.CredentialManager {
	return c.credentialManager
}

func (c *Container) GetCryptoService() domain.CredentialCryptoService {
	return c.cryptoService
}

func (c *Container) GetCredentialGetter() domain.CredentialGetter[snowflake.Credentials] {
	return c.credentialGetter
}
