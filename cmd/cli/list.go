package cli

import (
	"fmt"
	"time"

	"github.com/flowbaker/flowbaker-snowflake/internal/initialization"

	"github.com/spf13/cobra"
)

func NewListCommand(container *initialization.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored credential blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			credentials, err := container.GetCredentialStore().ListCredentials(cmd.Context())
			if err != nil {
				return err
			}

			if len(credentials) == 0 {
				fmt.Println("No credential blocks found")
				return nil
			}

			for _, credential := range credentials {
				expiry := "never"
				if credential.ExpiresAt > 0 {
					expiry = time.Unix(credential.ExpiresAt, 0).Format(time.RFC3339)
				}
				fmt.Printf("%s  %s  type=%s  expires=%s\n", credential.ID, credential.Name, credential.Type, expiry)
			}

			return nil
		},
	}
}
