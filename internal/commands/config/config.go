package config

import (
	"fmt"
	"io"

	internalconfig "github.com/AD7six/giphy-fetch/internal/config"
	"github.com/AD7six/giphy-fetch/internal/templating"
	"github.com/spf13/cobra"
)

// NewConfigCmd returns a cobra command that displays current configuration.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long:  "Shows the resolved configuration values, including the output path a download would be written to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := internalconfig.LoadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			displaySettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}

	return cmd
}

// displaySettings prints each setting as "NAME: value"
func displaySettings(w io.Writer, s *internalconfig.Settings) {
	fmt.Fprintf(w, "GIPHY_API_KEY: %s\n", maskSecret(s.APIKey))
	fmt.Fprintf(w, "GIPHY_API_URL: %s\n", s.APIBaseURL)
	fmt.Fprintf(w, "tag: %s\n", s.Tag)
	fmt.Fprintf(w, "filetype: %s\n", s.FileType)
	fmt.Fprintf(w, "output: %s\n", s.OutputTemplate)
	fmt.Fprintf(w, "resolved output: %s\n", templating.ResolveOutputPath(s.OutputTemplate, s.Tag, s.FileType.Extension()))
	fmt.Fprintf(w, "open: %t\n", s.Open)
	// HTTP_TIMEOUT is configured in seconds
	fmt.Fprintf(w, "HTTP_TIMEOUT: %d\n", int(s.HTTPTimeout.Seconds()))
	fmt.Fprintf(w, "HTTP_MAX_BODY_SIZE: %d\n", s.HTTPMaxBodySize)
	fmt.Fprintf(w, "HTTP_RETRIES: %d\n", s.HTTPRetries)
}

// maskSecret masks all but the last 4 characters of a secret.
func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
