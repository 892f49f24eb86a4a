package fetch

import (
	"context"
	"fmt"
	"io"

	"github.com/AD7six/giphy-fetch/internal/config"
	"github.com/AD7six/giphy-fetch/internal/giphy"
	"github.com/AD7six/giphy-fetch/internal/logging"
	"github.com/AD7six/giphy-fetch/internal/opener"
	"github.com/AD7six/giphy-fetch/internal/templating"
)

// Deps are the side-effecting collaborators of Run.
type Deps struct {
	Client giphy.HTTPClient
	Opener opener.Opener
	Stdout io.Writer
}

// Run fetches random media metadata for settings.Tag, downloads the selected
// encoding to the resolved output path and prints that path. If the response has
// no URL for the requested file type nothing is downloaded or printed. With
// settings.Open the path is opened afterwards either way.
func Run(ctx context.Context, settings *config.Settings, deps Deps) error {
	outputPath := templating.ResolveOutputPath(settings.OutputTemplate, settings.Tag, settings.FileType.Extension())

	logging.Logger.Debug("fetching random media", "tag", settings.Tag, "filetype", settings.FileType)
	url := giphy.RandomURL(settings.APIBaseURL, settings.APIKey, settings.Tag)
	doc, err := giphy.FetchRandom(ctx, deps.Client, url, settings.HTTPMaxBodySize)
	if err != nil {
		return fmt.Errorf("failed to fetch metadata: %w", err)
	}

	if mediaURL, ok := giphy.SelectMediaURL(doc, settings.FileType); ok {
		n, err := giphy.DownloadAsset(ctx, deps.Client, mediaURL, outputPath)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", mediaURL, err)
		}
		logging.Logger.Info("media saved", "url", mediaURL, "path", outputPath, "bytes", n)
		fmt.Fprintln(deps.Stdout, outputPath)
	} else {
		logging.Logger.Debug("no media url in response", "field", "data.images.original."+settings.FileType.Field())
	}

	if settings.Open {
		if err := deps.Opener.Open(outputPath); err != nil {
			return fmt.Errorf("failed to open %s: %w", outputPath, err)
		}
	}

	return nil
}
