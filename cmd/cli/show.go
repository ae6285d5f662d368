package cli

import (
	"encoding/json"
	"fmt"

	"github.com/flowbaker/flowbaker-snowflake/internal/initialization"

	"github.com/spf13/cobra"
)

func NewShowCommand(container *initialization.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <credential-id>",
		Short: "Show a credential block with secrets redacted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credential, err := container.GetCredentialGetter().GetDecryptedCredential(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Secret fields marshal as placeholders, so this never prints
			// raw secret values.
			rendered, err := json.MarshalIndent(credential, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render credential: %w", err)
			}

			fmt.Println(string(rendered))

			return nil
		},
	}
}
