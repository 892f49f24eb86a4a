package giphy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/AD7six/giphy-fetch/internal/logging"
	"github.com/AD7six/giphy-fetch/internal/storage"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPClient is an interface for HTTP clients that can perform GET requests.
// This allows using both the retrying client and test fakes.
type HTTPClient interface {
	GetWithContext(ctx context.Context, url string) (*http.Response, error)
}

// StatusError is returned when a download responds with a non-success status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// queryEncoder percent-encodes the bytes a browser would encode in a query
// string. Reserved characters such as & = + and # are left alone.
var queryEncoder = strings.NewReplacer(
	" ", "%20",
	"\"", "%22",
	"<", "%3C",
	">", "%3E",
	"\t", "%09",
	"\n", "%0A",
	"\r", "%0D",
)

// RandomURL builds the random endpoint URL. The key and tag are interpolated
// without query escaping; only spaces, quotes, angle brackets and control
// characters are percent-encoded so the request line stays valid.
func RandomURL(baseURL, apiKey, tag string) string {
	return fmt.Sprintf("%s/v1/gifs/random?api_key=%s&tag=%s", baseURL, queryEncoder.Replace(apiKey), queryEncoder.Replace(tag))
}

// FetchRandom requests url and returns the raw JSON body. A body larger than
// maxBodySize bytes is an error (no limit when maxBodySize <= 0). The response status is not checked: API
// errors come back as JSON documents that simply lack media fields.
func FetchRandom(ctx context.Context, client HTTPClient, url string, maxBodySize int64) ([]byte, error) {
	resp, err := client.GetWithContext(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Logger.Warn("metadata request returned non-success status", "status", resp.Status)
	}

	var body io.Reader = resp.Body
	if maxBodySize > 0 {
		// One extra byte tells an oversized body apart from one of exactly maxBodySize
		body = io.LimitReader(resp.Body, maxBodySize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if maxBodySize > 0 && int64(len(data)) > maxBodySize {
		return nil, fmt.Errorf("response exceeds %d bytes", maxBodySize)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return data, nil
}

// SelectMediaURL returns data.images.original.<field> for ft. ok is false when the
// path is missing, is not a string, or is empty.
func SelectMediaURL(doc []byte, ft FileType) (string, bool) {
	v := jsoniter.Get(doc, "data", "images", "original", ft.Field())
	if v.ValueType() != jsoniter.StringValue {
		return "", false
	}
	url := v.ToString()
	return url, url != ""
}

// DownloadAsset streams url to path and returns the number of bytes written.
// A non-success status is reported before path is created.
func DownloadAsset(ctx context.Context, client HTTPClient, url, path string) (int64, error) {
	resp, err := client.GetWithContext(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return storage.WriteStream(path, resp.Body)
}
