package opener

import (
	"os"

	"github.com/pkg/browser"
)

// Opener opens a local file with some external application.
type Opener interface {
	Open(path string) error
}

// Browser opens files with the OS default handler (xdg-open, open or the
// Windows URL handler).
type Browser struct{}

func init() {
	// Keep stdout reserved for the downloaded path.
	browser.Stdout = os.Stderr
}

func (Browser) Open(path string) error {
	return browser.OpenFile(path)
}
