package giphy

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// FileType is one of the media encodings offered for every Giphy image.
type FileType string

const (
	GIF  FileType = "gif"
	MP4  FileType = "mp4"
	WebP FileType = "webp"
)

// FileTypes lists the supported file types in display order.
var FileTypes = []FileType{GIF, MP4, WebP}

var _ pflag.Value = (*FileType)(nil)

// ParseFileType converts s (case-insensitive) to a FileType.
func ParseFileType(s string) (FileType, error) {
	switch FileType(strings.ToLower(strings.TrimSpace(s))) {
	case GIF:
		return GIF, nil
	case MP4:
		return MP4, nil
	case WebP:
		return WebP, nil
	}
	return "", fmt.Errorf("invalid filetype %q (must be one of %s)", s, joinFileTypes())
}

// Extension is the file extension written to disk.
func (f FileType) Extension() string {
	return string(f)
}

// Field is the key under data.images.original holding the media URL.
func (f FileType) Field() string {
	if f == GIF {
		return "url"
	}
	return string(f)
}

func (f FileType) String() string {
	return string(f)
}

func (f *FileType) Set(s string) error {
	v, err := ParseFileType(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f *FileType) Type() string {
	return "filetype"
}

func joinFileTypes() string {
	names := make([]string, len(FileTypes))
	for i, ft := range FileTypes {
		names[i] = string(ft)
	}
	return strings.Join(names, ", ")
}
