package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/flowbaker/flowbaker-snowflake/pkg/snowflake"

	"github.com/spf13/cobra"
)

func NewResolveKeyCommand() *cobra.Command {
	var (
		keyPath    string
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "resolve-key",
		Short: "Normalize a PEM private key into base64 DER/PKCS8",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := os.ReadFile(keyPath)
			if err != nil {
				return fmt.Errorf("failed to read key file: %w", err)
			}

			der, err := snowflake.NormalizePrivateKey(key, passphrase)
			if err != nil {
				return err
			}

			fmt.Println(base64.StdEncoding.EncodeToString(der))

			return nil
		},
	}

	cmd.Flags().StringVar(&keyPath, "key", "", "Path to the PEM private key")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Passphrase for encrypted keys")
	cmd.MarkFlagRequired("key")

	return cmd
}
