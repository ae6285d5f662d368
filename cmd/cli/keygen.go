package cli

import (
	"fmt"

	"github.com/flowbaker/flowbaker-snowflake/internal/managers"

	"github.com/spf13/cobra"
)

func NewKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an X25519 keypair for sealing credential blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, publicKey, err := managers.GenerateKeyPair()
			if err != nil {
				return err
			}

			fmt.Printf("EXECUTOR_X25519_PRIVATE_KEY=%s\n", privateKey)
			fmt.Printf("EXECUTOR_X25519_PUBLIC_KEY=%s\n", publicKey)

			return nil
		},
	}
}
