package snowflake

import (
	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"
)

var (
	Schema                    = schema
	schema domain.Integration = domain.Integration{
		ID:                domain.CredentialTypeSnowflake,
		Name:              "Snowflake Credentials",
		Description:       "Use Snowflake credentials to authenticate query and warehouse operations against a Snowflake account.",
		LogoURL:           "https://images.ctfassets.net/gm98wzqotmnx/2DxzAeTM9eHLDcRQx1FR34/f858a501cdff918d398b39365ec2150f/snowflake.png?h=250",
		CanTestConnection: true,
		CredentialProperties: []domain.NodeProperty{
			{
				Key:         "account",
				Name:        "Account",
				Description: "Snowflake account identifier",
				Required:    true,
				Type:        domain.NodePropertyType_String,
			},
			{
				Key:         "user",
				Name:        "User",
				Description: "User name used to authenticate",
				Required:    true,
				Type:        domain.NodePropertyType_String,
			},
			{
				Key:         "authenticator",
				Name:        "Authenticator",
				Description: "How the connection proves its identity",
				Required:    false,
				Type:        domain.NodePropertyType_String,
				Options: []domain.NodePropertyOption{
					{
						Label: "Snowflake",
						Value: string(AuthenticatorSnowflake),
					},
					{
						Label: "External Browser",
						Value: string(AuthenticatorExternalBrowser),
					},
					{
						Label: "Okta Endpoint",
						Value: string(AuthenticatorOktaEndpoint),
					},
					{
						Label: "OAuth",
						Value: string(AuthenticatorOAuth),
					},
					{
						Label: "Username & Password with MFA",
						Value: string(AuthenticatorUsernamePasswordMFA),
					},
				},
			},
			{
				Key:         "password",
				Name:        "Password",
				Description: "Password used to authenticate",
				Required:    false,
				Type:        domain.NodePropertyType_String,
				IsSecret:    true,
			},
			{
				Key:         "private_key",
				Name:        "Private Key",
				Description: "RSA private key in PEM format",
				Required:    false,
				Type:        domain.NodePropertyType_Text,
				IsSecret:    true,
			},
			{
				Key:         "private_key_passphrase",
				Name:        "Private Key Passphrase",
				Description: "Passphrase for encrypted private key (optional)",
				Required:    false,
				Type:        domain.NodePropertyType_String,
				IsSecret:    true,
			},
			{
				Key:         "token",
				Name:        "Token",
				Description: "OAuth or JWT token used when authenticator is oauth",
				Required:    false,
				Type:        domain.NodePropertyType_String,
				IsSecret:    true,
				DependsOn: &domain.DependsOn{
					PropertyKey: "authenticator",
					Value:       string(AuthenticatorOAuth),
				},
			},
			{
				Key:         "okta_endpoint",
				Name:        "Okta Endpoint",
				Description: "Okta endpoint URL used when authenticator is okta_endpoint",
				Required:    false,
				Type:        domain.NodePropertyType_String,
				Placeholder: "https://<okta_account_name>.okta.com",
				DependsOn: &domain.DependsOn{
					PropertyKey: "authenticator",
					Value:       string(AuthenticatorOktaEndpoint),
				},
			},
			{
				Key:         "role",
				Name:        "Role",
				Description: "Default role to use (optional)",
				Required:    false,
				Type:        domain.NodePropertyType_String,
			},
			{
				Key:         "autocommit",
				Name:        "Autocommit",
				Description: "Whether to automatically commit (optional)",
				Required:    false,
				Type:        domain.NodePropertyType_Boolean,
			},
			{
				Key:         "warehouse",
				Name:        "Warehouse",
				Description: "Default warehouse name (optional)",
				Required:    false,
				Type:        domain.NodePropertyType_String,
			},
			{
				Key:         "database",
				Name:        "Database",
				Description: "Default database name (optional)",
				Required:    false,
				Type:        domain.NodePropertyType_String,
			},
			{
				Key:         "schema",
				Name:        "Schema",
				Description: "Default schema name (optional)",
				Required:    false,
				Type:        domain.NodePropertyType_String,
			},
		},
	}
)
