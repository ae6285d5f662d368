package snowflake

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"
)

// ConnectionTester verifies that a stored credential block can open a
// Snowflake connection.
type ConnectionTester struct {
	credentialGetter domain.CredentialGetter[Credentials]
}

func NewConnectionTester(credentialGetter domain.CredentialGetter[Credentials]) *ConnectionTester {
	return &ConnectionTester{
		credentialGetter: credentialGetter,
	}
}

func (t *ConnectionTester) TestConnection(ctx context.Context, credentialID string) (bool, error) {
	credential, err := t.credentialGetter.GetDecryptedCredential(ctx, credentialID)
	if err != nil {
		return false, err
	}

	dsn, err := credential.DSN()
	if err != nil {
		return false, fmt.Errorf("failed to build DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return false, fmt.Errorf("failed to open connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return false, fmt.Errorf("failed to ping Snowflake: %w", err)
	}

	return true, nil
}
