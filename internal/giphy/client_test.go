package giphy

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeHTTPClient struct {
	resp *http.Response
	err  error
	urls []string
}

func (f *fakeHTTPClient) GetWithContext(ctx context.Context, url string) (*http.Response, error) {
	f.urls = append(f.urls, url)
	return f.resp, f.err
}

func newResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// serverClient adapts *http.Client to HTTPClient for httptest servers.
type serverClient struct{ c *http.Client }

func (s serverClient) GetWithContext(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return s.c.Do(req)
}

const sampleDoc = `{
  "data": {
    "images": {
      "original": {
        "url": "http://x/a.gif",
        "mp4": "http://x/a.mp4",
        "webp": "http://x/a.webp"
      }
    }
  },
  "meta": {"status": 200}
}`

func TestRandomURL(t *testing.T) {
	tests := []struct {
		name string
		key  string
		tag  string
		want string
	}{
		{
			name: "simple values",
			key:  "abc",
			tag:  "cats",
			want: "https://api.giphy.com/v1/gifs/random?api_key=abc&tag=cats",
		},
		{
			name: "reserved characters are not escaped",
			key:  "k",
			tag:  "cats&dogs",
			want: "https://api.giphy.com/v1/gifs/random?api_key=k&tag=cats&dogs",
		},
		{
			name: "spaces are percent-encoded",
			key:  "k",
			tag:  "happy dance",
			want: "https://api.giphy.com/v1/gifs/random?api_key=k&tag=happy%20dance",
		},
		{
			name: "quotes and angle brackets are percent-encoded",
			key:  "a b",
			tag:  `"<x>"`,
			want: "https://api.giphy.com/v1/gifs/random?api_key=a%20b&tag=%22%3Cx%3E%22",
		},
		{
			name: "plus equals and hash are left alone",
			key:  "k",
			tag:  "a+b=c#d",
			want: "https://api.giphy.com/v1/gifs/random?api_key=k&tag=a+b=c#d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RandomURL("https://api.giphy.com", tt.key, tt.tag); got != tt.want {
				t.Errorf("RandomURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchRandom_HappyPath(t *testing.T) {
	client := &fakeHTTPClient{resp: newResponse(http.StatusOK, sampleDoc)}

	got, err := FetchRandom(context.Background(), client, "https://api.example.com/v1/gifs/random", 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != sampleDoc {
		t.Errorf("FetchRandom() returned %q, want the raw body", got)
	}
	if len(client.urls) != 1 || client.urls[0] != "https://api.example.com/v1/gifs/random" {
		t.Errorf("requested urls = %v", client.urls)
	}
}

func TestFetchRandom_NonSuccessStatusStillParsed(t *testing.T) {
	body := `{"message":"Invalid authentication credentials"}`
	client := &fakeHTTPClient{resp: newResponse(http.StatusUnauthorized, body)}

	got, err := FetchRandom(context.Background(), client, "https://api.example.com", 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := SelectMediaURL(got, GIF); ok {
		t.Error("SelectMediaURL() found a url in an error document")
	}
}

func TestFetchRandom_MalformedJSON(t *testing.T) {
	client := &fakeHTTPClient{resp: newResponse(http.StatusOK, "<html>nope</html>")}

	if _, err := FetchRandom(context.Background(), client, "https://api.example.com", 1024); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestFetchRandom_BodyLimit(t *testing.T) {
	t.Run("rejects oversized body", func(t *testing.T) {
		client := &fakeHTTPClient{resp: newResponse(http.StatusOK, sampleDoc)}

		_, err := FetchRandom(context.Background(), client, "https://api.example.com", 10)
		if err == nil {
			t.Fatal("expected error for oversized body")
		}
		if !strings.Contains(err.Error(), "response exceeds 10 bytes") {
			t.Errorf("error = %q, want it to mention the size limit", err)
		}
	})

	t.Run("accepts body of exactly the limit", func(t *testing.T) {
		client := &fakeHTTPClient{resp: newResponse(http.StatusOK, sampleDoc)}

		if _, err := FetchRandom(context.Background(), client, "https://api.example.com", int64(len(sampleDoc))); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestFetchRandom_TransportError(t *testing.T) {
	wantErr := errors.New("connection refused")
	client := &fakeHTTPClient{err: wantErr}

	_, err := FetchRandom(context.Background(), client, "https://api.example.com", 1024)
	if !errors.Is(err, wantErr) {
		t.Fatalf("FetchRandom() error = %v, want %v", err, wantErr)
	}
}

func TestSelectMediaURL(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		ft     FileType
		want   string
		wantOK bool
	}{
		{"gif uses url field", sampleDoc, GIF, "http://x/a.gif", true},
		{"mp4 uses mp4 field", sampleDoc, MP4, "http://x/a.mp4", true},
		{"webp uses webp field", sampleDoc, WebP, "http://x/a.webp", true},
		{"missing field", `{"data":{"images":{"original":{"url":"http://x/a.gif"}}}}`, WebP, "", false},
		{"missing images", `{"data":{}}`, GIF, "", false},
		{"data is an empty array", `{"data":[],"meta":{"status":200}}`, GIF, "", false},
		{"field is not a string", `{"data":{"images":{"original":{"url":42}}}}`, GIF, "", false},
		{"field is null", `{"data":{"images":{"original":{"url":null}}}}`, GIF, "", false},
		{"field is empty", `{"data":{"images":{"original":{"url":""}}}}`, GIF, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectMediaURL([]byte(tt.doc), tt.ft)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("SelectMediaURL() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDownloadAsset_WritesBody(t *testing.T) {
	content := strings.Repeat("GIF89a", 20000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "cats.gif")
	n, err := DownloadAsset(context.Background(), serverClient{server.Client()}, server.URL+"/a.gif", path)
	if err != nil {
		t.Fatalf("DownloadAsset() unexpected error: %v", err)
	}
	if n != int64(len(content)) {
		t.Errorf("DownloadAsset() wrote %d bytes, want %d", n, len(content))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(got) != content {
		t.Error("downloaded content does not match server body")
	}
}

func TestDownloadAsset_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.webp")
	if err := os.WriteFile(path, []byte("old content that is longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	client := &fakeHTTPClient{resp: newResponse(http.StatusOK, "new")}
	if _, err := DownloadAsset(context.Background(), client, "http://x/a.webp", path); err != nil {
		t.Fatalf("DownloadAsset() unexpected error: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("file content = %q, want %q", got, "new")
	}
}

func TestDownloadAsset_NonSuccessStatusCreatesNoFile(t *testing.T) {
	client := &fakeHTTPClient{resp: newResponse(http.StatusNotFound, "not found")}
	path := filepath.Join(t.TempDir(), "a.gif")

	_, err := DownloadAsset(context.Background(), client, "http://x/a.gif", path)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("DownloadAsset() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no file at %s, stat err = %v", path, err)
	}
}
