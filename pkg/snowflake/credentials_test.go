package snowflake

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"

	"github.com/snowflakedb/gosnowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentials_Validation(t *testing.T) {
	tests := []struct {
		name         string
		values       map[string]any
		expectedRule string
	}{
		{
			name: "no auth method",
			values: map[string]any{
				"account": "abc123",
				"user":    "bot",
			},
			expectedRule: "auth_method",
		},
		{
			name: "default authenticator alone is not an auth method",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"authenticator": "snowflake",
			},
			expectedRule: "auth_method",
		},
		{
			name: "oauth without token",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"authenticator": "oauth",
			},
			expectedRule: "oauth_token",
		},
		{
			name: "oauth with empty token",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"authenticator": "oauth",
				"token":         "",
			},
			expectedRule: "oauth_token",
		},
		{
			name: "okta_endpoint without endpoint",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"authenticator": "okta_endpoint",
			},
			expectedRule: "okta_endpoint",
		},
		{
			name: "missing account",
			values: map[string]any{
				"user":     "bot",
				"password": "secret1",
			},
			expectedRule: "required_fields",
		},
		{
			name: "missing user",
			values: map[string]any{
				"account":  "abc123",
				"password": "secret1",
			},
			expectedRule: "required_fields",
		},
		{
			name: "unknown authenticator",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"authenticator": "kerberos",
			},
			expectedRule: "authenticator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCredentials(tt.values)
			require.Error(t, err)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.expectedRule, validationErr.Rule)
		})
	}
}

func TestNewCredentials_Valid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{
			name: "password auth",
			values: map[string]any{
				"account":  "abc123",
				"user":     "bot",
				"password": "secret1",
			},
		},
		{
			name: "oauth with token",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"authenticator": "oauth",
				"token":         "token-value",
			},
		},
		{
			name: "okta endpoint",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"authenticator": "okta_endpoint",
				"okta_endpoint": "https://acme.okta.com",
			},
		},
		{
			name: "external browser",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"authenticator": "externalbrowser",
			},
		},
		{
			name: "mfa",
			values: map[string]any{
				"account":       "abc123",
				"user":          "bot",
				"password":      "secret1",
				"authenticator": "username_password_mfa",
			},
		},
		{
			name: "token only",
			values: map[string]any{
				"account": "abc123",
				"user":    "bot",
				"token":   "token-value",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credentials, err := NewCredentials(tt.values)
			require.NoError(t, err)
			assert.Equal(t, "abc123", credentials.Account)
			assert.Equal(t, "bot", credentials.User)
		})
	}
}

func TestNewCredentials_DefaultAuthenticator(t *testing.T) {
	credentials, err := NewCredentials(map[string]any{
		"account":  "abc123",
		"user":     "bot",
		"password": "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, AuthenticatorSnowflake, credentials.Authenticator)
}

func TestNewCredentials_SecretsRedacted(t *testing.T) {
	credentials, err := NewCredentials(map[string]any{
		"account":  "abc123",
		"user":     "bot",
		"password": "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "secret1", credentials.Password.Reveal())
	assert.Equal(t, domain.SecretPlaceholder, credentials.Password.String())
	assert.NotContains(t, fmt.Sprintf("%v", credentials), "secret1")
	assert.NotContains(t, fmt.Sprintf("%+v", credentials), "secret1")

	rendered, err := json.Marshal(credentials)
	require.NoError(t, err)
	assert.NotContains(t, string(rendered), "secret1")
	assert.Contains(t, string(rendered), domain.SecretPlaceholder)
}

func TestCredentials_UnmarshalPayload(t *testing.T) {
	var credentials Credentials

	err := credentials.UnmarshalPayload(map[string]any{
		"account": "abc123",
		"user":    "bot",
	})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))

	err = credentials.UnmarshalPayload(map[string]any{
		"account":  "abc123",
		"user":     "bot",
		"password": "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", credentials.Account)
}

func TestCredentials_ConnectConfig(t *testing.T) {
	t.Run("password auth", func(t *testing.T) {
		credentials, err := NewCredentials(map[string]any{
			"account":   "abc123",
			"user":      "bot",
			"password":  "secret1",
			"role":      "SYSADMIN",
			"warehouse": "COMPUTE_WH",
			"database":  "ANALYTICS",
			"schema":    "PUBLIC",
		})
		require.NoError(t, err)

		cfg, err := credentials.ConnectConfig()
		require.NoError(t, err)

		assert.Equal(t, "abc123", cfg.Account)
		assert.Equal(t, "bot", cfg.User)
		assert.Equal(t, "secret1", cfg.Password)
		assert.Equal(t, "SYSADMIN", cfg.Role)
		assert.Equal(t, "COMPUTE_WH", cfg.Warehouse)
		assert.Equal(t, "ANALYTICS", cfg.Database)
		assert.Equal(t, "PUBLIC", cfg.Schema)
		assert.Equal(t, gosnowflake.AuthTypeSnowflake, cfg.Authenticator)
	})

	t.Run("oauth", func(t *testing.T) {
		credentials, err := NewCredentials(map[string]any{
			"account":       "abc123",
			"user":          "bot",
			"authenticator": "oauth",
			"token":         "token-value",
		})
		require.NoError(t, err)

		cfg, err := credentials.ConnectConfig()
		require.NoError(t, err)

		assert.Equal(t, gosnowflake.AuthTypeOAuth, cfg.Authenticator)
		assert.Equal(t, "token-value", cfg.Token)
	})

	t.Run("okta endpoint", func(t *testing.T) {
		credentials, err := NewCredentials(map[string]any{
			"account":       "abc123",
			"user":          "bot",
			"authenticator": "okta_endpoint",
			"okta_endpoint": "https://acme.okta.com",
		})
		require.NoError(t, err)

		cfg, err := credentials.ConnectConfig()
		require.NoError(t, err)

		assert.Equal(t, gosnowflake.AuthTypeOkta, cfg.Authenticator)
		require.NotNil(t, cfg.OktaURL)
		assert.Equal(t, "acme.okta.com", cfg.OktaURL.Host)
	})

	t.Run("external browser", func(t *testing.T) {
		credentials, err := NewCredentials(map[string]any{
			"account":       "abc123",
			"user":          "bot",
			"authenticator": "externalbrowser",
		})
		require.NoError(t, err)

		cfg, err := credentials.ConnectConfig()
		require.NoError(t, err)

		assert.Equal(t, gosnowflake.AuthTypeExternalBrowser, cfg.Authenticator)
	})

	t.Run("autocommit", func(t *testing.T) {
		credentials, err := NewCredentials(map[string]any{
			"account":    "abc123",
			"user":       "bot",
			"password":   "secret1",
			"autocommit": false,
		})
		require.NoError(t, err)

		cfg, err := credentials.ConnectConfig()
		require.NoError(t, err)

		require.Contains(t, cfg.Params, "autocommit")
		assert.Equal(t, "false", *cfg.Params["autocommit"])
	})

	t.Run("private key", func(t *testing.T) {
		rsaKey, keyPEM, _ := generatePKCS8KeyPEM(t)

		credentials, err := NewCredentials(map[string]any{
			"account":     "abc123",
			"user":        "bot",
			"private_key": string(keyPEM),
		})
		require.NoError(t, err)

		cfg, err := credentials.ConnectConfig()
		require.NoError(t, err)

		assert.Equal(t, gosnowflake.AuthTypeJwt, cfg.Authenticator)
		require.NotNil(t, cfg.PrivateKey)
		assert.True(t, rsaKey.Equal(cfg.PrivateKey))
	})
}

func TestCredentials_DSN(t *testing.T) {
	credentials, err := NewCredentials(map[string]any{
		"account":  "abc123",
		"user":     "bot",
		"password": "secret1",
	})
	require.NoError(t, err)

	dsn, err := credentials.DSN()
	require.NoError(t, err)

	assert.Contains(t, dsn, "abc123")
	assert.Contains(t, dsn, "bot")
}
