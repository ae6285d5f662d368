package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/flowbaker/flowbaker-snowflake/internal/initialization"
	"github.com/flowbaker/flowbaker-snowflake/pkg/domain"
	"github.com/flowbaker/flowbaker-snowflake/pkg/snowflake"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewCreateCommand(container *initialization.Container) *cobra.Command {
	var (
		name        string
		payloadPath string
		expiresIn   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Validate and seal a new Snowflake credential block",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(payloadPath)
			if err != nil {
				return fmt.Errorf("failed to read payload file: %w", err)
			}

			var values map[string]any
			if err := json.Unmarshal(payload, &values); err != nil {
				return fmt.Errorf("failed to parse payload JSON: %w", err)
			}

			// Reject invalid credentials before anything touches the store.
			if _, err := snowflake.NewCredentials(values); err != nil {
				return err
			}

			credential := domain.EncryptedCredential{
				ID:   xid.New().String(),
				Name: name,
				Type: domain.CredentialTypeSnowflake,
			}

			if expiresIn > 0 {
				credential.ExpiresAt = time.Now().Add(expiresIn).Unix()
			}

			sealed, err := container.GetCryptoService().SealCredential(credential, payload)
			if err != nil {
				return fmt.Errorf("failed to seal credential: %w", err)
			}

			if err := container.GetCredentialStore().SaveCredential(cmd.Context(), sealed); err != nil {
				return err
			}

			log.Info().Str("credential_id", sealed.ID).Str("name", sealed.Name).Msg("Created credential block")

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the credential block")
	cmd.Flags().StringVar(&payloadPath, "file", "", "Path to the JSON payload with credential fields")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "Optional lifetime of the block (e.g. 720h)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("file")

	return cmd
}
