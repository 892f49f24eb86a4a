package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AD7six/giphy-fetch/internal/giphy"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Flag names shared between the commands that register them and LoadSettings.
const (
	FlagAPIKey   = "api-key"
	FlagTag      = "tag"
	FlagOutput   = "output"
	FlagFileType = "filetype"
	FlagOpen     = "open"
	FlagConfig   = "config"
)

const (
	DefaultTag            = "pain"
	DefaultOutputTemplate = "/tmp/{name}.{ext}"
	DefaultFileType       = giphy.WebP
	DefaultAPIBaseURL     = "https://api.giphy.com"
)

// ErrNoAPIKey is returned when no API key can be resolved from any source.
var ErrNoAPIKey = errors.New("no API key provided")

// Settings contains the resolved configuration for a single run.
type Settings struct {
	APIKey          string         // Required, Giphy API key
	Tag             string         // Search tag, defaults to "pain"
	OutputTemplate  string         // Output path template, defaults to "/tmp/{name}.{ext}"
	FileType        giphy.FileType // Which media encoding to download, defaults to webp
	Open            bool           // Open the file with the OS default handler afterwards
	APIBaseURL      string         // Scheme and host of the Giphy API, defaults to https://api.giphy.com
	HTTPTimeout     time.Duration  // Per-request timeout, 0 means none
	HTTPMaxBodySize int64          // Maximum metadata response size in bytes, defaults to 10MB
	HTTPRetries     int            // Retries for transport errors, 5xx and 429, defaults to 0
}

// fileSettings is the shape of the optional YAML config file.
type fileSettings struct {
	APIKey   string `yaml:"api_key"`
	Tag      string `yaml:"tag"`
	Output   string `yaml:"output"`
	FileType string `yaml:"filetype"`
	Open     *bool  `yaml:"open"`
}

// RegisterFlags defines the fetch flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	ft := DefaultFileType
	fs.StringP(FlagAPIKey, "a", "", "API key (can be set with GIPHY_API_KEY env var)")
	fs.StringP(FlagTag, "t", DefaultTag, "Tag to search for")
	fs.StringP(FlagOutput, "o", DefaultOutputTemplate, "Output file (supports {name}, {ext} and {ANY_ENV_VAR})")
	fs.VarP(&ft, FlagFileType, "f", "Filetype to download (gif, mp4, webp)")
	fs.BoolP(FlagOpen, "w", false, "Open in web browser")
	fs.String(FlagConfig, "", "Path to a YAML config file (can be set with GIPHY_CONFIG env var)")
}

// LoadSettings resolves configuration from environment variables, an optional .env
// file, an optional YAML config file and the given flags.
//
// The API key comes from GIPHY_API_KEY when set (even if empty), then --api-key,
// then the config file.
// Other values come from explicitly set flags, then the config file, then defaults.
// Optional variables: GIPHY_CONFIG, GIPHY_API_URL, HTTP_TIMEOUT, HTTP_MAX_BODY_SIZE, HTTP_RETRIES.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	// If .env exists, try to load it
	if _, err := os.Stat(".env"); err == nil {
		err := godotenv.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	configPath := getEnv("GIPHY_CONFIG", "")
	if v := flagString(flags, FlagConfig); v != "" {
		configPath = v
	}
	file := &fileSettings{}
	if configPath != "" {
		var err error
		if file, err = loadFile(configPath); err != nil {
			return nil, err
		}
	}

	// A set GIPHY_API_KEY wins even when empty
	apiKey, ok := os.LookupEnv("GIPHY_API_KEY")
	if !ok {
		if apiKey = flagString(flags, FlagAPIKey); apiKey == "" {
			apiKey = file.APIKey
		}
		if apiKey == "" {
			return nil, ErrNoAPIKey
		}
	}

	fileType, err := giphy.ParseFileType(resolve(flags, FlagFileType, file.FileType, string(DefaultFileType)))
	if err != nil {
		return nil, err
	}

	open := false
	if file.Open != nil {
		open = *file.Open
	}
	if changed(flags, FlagOpen) {
		open, _ = flags.GetBool(FlagOpen)
	}

	baseURL := strings.TrimRight(getEnv("GIPHY_API_URL", DefaultAPIBaseURL), "/")

	return &Settings{
		APIKey:          apiKey,
		Tag:             resolve(flags, FlagTag, file.Tag, DefaultTag),
		OutputTemplate:  resolve(flags, FlagOutput, file.Output, DefaultOutputTemplate),
		FileType:        fileType,
		Open:            open,
		APIBaseURL:      baseURL,
		HTTPTimeout:     time.Duration(getEnvInt("HTTP_TIMEOUT", 0)) * time.Second,
		HTTPMaxBodySize: int64(getEnvInt("HTTP_MAX_BODY_SIZE", 10*1024*1024)), // 10MB default
		HTTPRetries:     getEnvInt("HTTP_RETRIES", 0),
	}, nil
}

func loadFile(path string) (*fileSettings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var fs fileSettings
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	// An empty file decodes to io.EOF
	if err := dec.Decode(&fs); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &fs, nil
}

// resolve picks an explicitly set flag, then the config file value, then def.
func resolve(flags *pflag.FlagSet, name, fileVal, def string) string {
	if changed(flags, name) {
		return flags.Lookup(name).Value.String()
	}
	if fileVal != "" {
		return fileVal
	}
	return def
}

func changed(flags *pflag.FlagSet, name string) bool {
	return flags != nil && flags.Lookup(name) != nil && flags.Changed(name)
}

func flagString(flags *pflag.FlagSet, name string) string {
	if flags == nil || flags.Lookup(name) == nil {
		return ""
	}
	return flags.Lookup(name).Value.String()
}

// get the env variable with a default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// getEnvInt returns an integer env var, defaulting when unset/empty or invalid.
func getEnvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return i
	}
	return def
}
