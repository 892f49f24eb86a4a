package fetch

import (
	"github.com/AD7six/giphy-fetch/internal/commands/version"
	"github.com/AD7six/giphy-fetch/internal/config"
	internalhttp "github.com/AD7six/giphy-fetch/internal/http"
	"github.com/AD7six/giphy-fetch/internal/logging"
	"github.com/AD7six/giphy-fetch/internal/opener"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command, which downloads one random media item.
func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "giphy-fetch",
		Short:         "Download a random GIF for a tag",
		Long:          "Fetches a random item for a tag from the Giphy API, saves it to the output path and prints that path.",
		Args:          cobra.NoArgs,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.InitLogger(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			return Run(cmd.Context(), settings, Deps{
				Client: internalhttp.NewClient(settings, "giphy-fetch/"+version.Version),
				Opener: opener.Browser{},
				Stdout: cmd.OutOrStdout(),
			})
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL, else warn)")

	return cmd
}
