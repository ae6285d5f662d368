package cli

import (
	"context"
	"time"

	"github.com/flowbaker/flowbaker-snowflake/internal/initialization"
	"github.com/flowbaker/flowbaker-snowflake/pkg/snowflake"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewTestCommand(container *initialization.Container) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "test <credential-id>",
		Short: "Test the connection of a stored credential block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			tester := snowflake.NewConnectionTester(container.GetCredentialGetter())

			ok, err := tester.TestConnection(ctx, args[0])
			if err != nil {
				return err
			}

			if ok {
				log.Info().Str("credential_id", args[0]).Msg("Connection test succeeded")
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Connection test timeout")

	return cmd
}
