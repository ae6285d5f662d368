package snowflake

import (
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"

	"github.com/go-viper/mapstructure/v2"
	"github.com/snowflakedb/gosnowflake"
)

// Authenticator selects how the client proves its identity to Snowflake.
type Authenticator string

const (
	AuthenticatorSnowflake           Authenticator = "snowflake"
	AuthenticatorExternalBrowser     Authenticator = "externalbrowser"
	AuthenticatorOktaEndpoint        Authenticator = "okta_endpoint"
	AuthenticatorOAuth               Authenticator = "oauth"
	AuthenticatorUsernamePasswordMFA Authenticator = "username_password_mfa"
)

var authTypes = map[Authenticator]gosnowflake.AuthType{
	AuthenticatorSnowflake:           gosnowflake.AuthTypeSnowflake,
	AuthenticatorExternalBrowser:     gosnowflake.AuthTypeExternalBrowser,
	AuthenticatorOktaEndpoint:        gosnowflake.AuthTypeOkta,
	AuthenticatorOAuth:               gosnowflake.AuthTypeOAuth,
	AuthenticatorUsernamePasswordMFA: gosnowflake.AuthTypeUsernamePasswordMFA,
}

// Credentials holds validated Snowflake connection parameters. Construct
// through NewCredentials and treat as read-only afterwards. Secret fields
// stay redacted in logs and JSON output.
type Credentials struct {
	Account              string              `json:"account" mapstructure:"account"`
	User                 string              `json:"user" mapstructure:"user"`
	Password             domain.SecretString `json:"password,omitempty" mapstructure:"password"`
	PrivateKey           domain.SecretBytes  `json:"private_key,omitempty" mapstructure:"private_key"`
	PrivateKeyPassphrase domain.SecretString `json:"private_key_passphrase,omitempty" mapstructure:"private_key_passphrase"`
	Authenticator        Authenticator       `json:"authenticator,omitempty" mapstructure:"authenticator"`
	Token                domain.SecretString `json:"token,omitempty" mapstructure:"token"`
	OktaEndpoint         string              `json:"okta_endpoint,omitempty" mapstructure:"okta_endpoint"`
	Role                 string              `json:"role,omitempty" mapstructure:"role"`
	Autocommit           *bool               `json:"autocommit,omitempty" mapstructure:"autocommit"`
	Warehouse            string              `json:"warehouse,omitempty" mapstructure:"warehouse"`
	Database             string              `json:"database,omitempty" mapstructure:"database"`
	Schema               string              `json:"schema,omitempty" mapstructure:"schema"`
}

type credentialRule struct {
	name  string
	check func(values map[string]any) string // returns a message when violated
}

// credentialRules run against the raw payload before any field decoding, so
// cross-field violations surface even when individual values would fail to
// coerce.
var credentialRules = []credentialRule{
	{
		name: "auth_method",
		check: func(values map[string]any) string {
			if provided(values["password"]) || provided(values["private_key"]) || provided(values["token"]) {
				return ""
			}
			if authenticator, ok := values["authenticator"].(string); ok && authenticator != "" && Authenticator(authenticator) != AuthenticatorSnowflake {
				return ""
			}
			return "one of the authentication fields must be provided: password, private_key, authenticator, token"
		},
	},
	{
		name: "oauth_token",
		check: func(values map[string]any) string {
			if authenticator, _ := values["authenticator"].(string); Authenticator(authenticator) == AuthenticatorOAuth && !provided(values["token"]) {
				return "token must be provided when authenticator is set to oauth"
			}
			return ""
		},
	},
	{
		name: "okta_endpoint",
		check: func(values map[string]any) string {
			if authenticator, _ := values["authenticator"].(string); Authenticator(authenticator) == AuthenticatorOktaEndpoint && !provided(values["okta_endpoint"]) {
				return "okta_endpoint must be provided when authenticator is set to okta_endpoint"
			}
			return ""
		},
	},
}

func provided(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case []byte:
		return len(value) > 0
	case bool:
		return value
	default:
		return true
	}
}

// NewCredentials builds a validated credential record from a raw payload,
// typically the decrypted contents of a credential block.
func NewCredentials(values map[string]any) (*Credentials, error) {
	for _, rule := range credentialRules {
		if message := rule.check(values); message != "" {
			return nil, &domain.ValidationError{Rule: rule.name, Message: message}
		}
	}

	credentials := &Credentials{
		Authenticator: AuthenticatorSnowflake,
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     credentials,
		DecodeHook: secretDecodeHook,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create credential decoder: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("failed to decode credential payload: %w", err)
	}

	if credentials.Account == "" {
		return nil, &domain.ValidationError{Rule: "required_fields", Message: "account must be provided"}
	}

	if credentials.User == "" {
		return nil, &domain.ValidationError{Rule: "required_fields", Message: "user must be provided"}
	}

	if _, ok := authTypes[credentials.Authenticator]; !ok {
		return nil, &domain.ValidationError{
			Rule:    "authenticator",
			Message: fmt.Sprintf("unknown authenticator %q", credentials.Authenticator),
		}
	}

	return credentials, nil
}

// UnmarshalPayload implements domain.PayloadUnmarshaler so generic credential
// getters construct records through NewCredentials.
func (c *Credentials) UnmarshalPayload(values map[string]any) error {
	credentials, err := NewCredentials(values)
	if err != nil {
		return err
	}

	*c = *credentials

	return nil
}

// secretDecodeHook converts plain payload values into their secret wrapper
// types during decoding.
func secretDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to {
	case reflect.TypeOf(domain.SecretString{}):
		if value, ok := data.(string); ok {
			return domain.NewSecretString(value), nil
		}
	case reflect.TypeOf(domain.SecretBytes{}):
		switch value := data.(type) {
		case string:
			return domain.NewSecretBytes([]byte(value)), nil
		case []byte:
			return domain.NewSecretBytes(value), nil
		}
	}

	return data, nil
}

// ConnectConfig builds the driver configuration. Secrets are revealed here
// and nowhere else; the private key, if present, is normalized to DER/PKCS8
// before being handed to the driver.
func (c *Credentials) ConnectConfig() (*gosnowflake.Config, error) {
	authType, ok := authTypes[c.Authenticator]
	if !ok {
		return nil, fmt.Errorf("unknown authenticator %q", c.Authenticator)
	}

	cfg := &gosnowflake.Config{
		Account:       c.Account,
		User:          c.User,
		Role:          c.Role,
		Warehouse:     c.Warehouse,
		Database:      c.Database,
		Schema:        c.Schema,
		Authenticator: authType,
	}

	if !c.Password.IsEmpty() {
		cfg.Password = c.Password.Reveal()
	}

	switch c.Authenticator {
	case AuthenticatorOAuth:
		cfg.Token = c.Token.Reveal()
	case AuthenticatorOktaEndpoint:
		oktaURL, err := url.Parse(c.OktaEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to parse okta endpoint: %w", err)
		}
		cfg.OktaURL = oktaURL
	}

	if !c.PrivateKey.IsEmpty() {
		der, err := NormalizePrivateKey(c.PrivateKey.Reveal(), c.PrivateKeyPassphrase.Reveal())
		if err != nil {
			return nil, fmt.Errorf("failed to normalize private key: %w", err)
		}

		key, err := x509.ParsePKCS8PrivateKey(der)
		if err != nil {
			return nil, fmt.Errorf("failed to parse normalized private key: %w", err)
		}

		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key is not RSA type")
		}

		cfg.PrivateKey = rsaKey

		// Key pair auth requires JWT unless the caller picked another method.
		if cfg.Authenticator == gosnowflake.AuthTypeSnowflake {
			cfg.Authenticator = gosnowflake.AuthTypeJwt
		}
	}

	if c.Autocommit != nil {
		autocommit := strconv.FormatBool(*c.Autocommit)
		cfg.Params = map[string]*string{"autocommit": &autocommit}
	}

	return cfg, nil
}

// DSN renders the credentials as a driver connection string.
func (c *Credentials) DSN() (string, error) {
	cfg, err := c.ConnectConfig()
	if err != nil {
		return "", err
	}

	dsn, err := gosnowflake.DSN(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to build DSN: %w", err)
	}

	return dsn, nil
}
