package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestDownloaderFetch(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
	}{
		{name: "ok", statusCode: http.StatusOK, body: "archive-bytes"},
		{name: "not found", statusCode: http.StatusNotFound, body: "nope", wantErr: true},
		{name: "server error", statusCode: http.StatusInternalServerError, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("User-Agent") != DefaultUserAgent {
					t.Errorf("unexpected User-Agent: %s", r.Header.Get("User-Agent"))
				}
				gotPath = r.URL.Path
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			root := t.TempDir()
			d := Downloader{Client: server.Client(), Host: server.URL}
			path, err := d.Fetch(context.Background(), WasmBindgen, "0.2.83", linuxAMD64, root)

			if tt.wantErr {
				if !errors.Is(err, ErrNetwork) {
					t.Fatalf("expected ErrNetwork, got %v", err)
				}
				if !strings.Contains(err.Error(), server.URL) {
					t.Fatalf("error should name the url: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if want := filepath.Join(root, "wasm-bindgen-0.2.83.tmp"); path != want {
				t.Fatalf("path = %s, want %s", path, want)
			}
			if got := readFile(t, path); got != tt.body {
				t.Fatalf("content = %q", got)
			}
			if want := "/rustwasm/wasm-bindgen/releases/download/0.2.83/wasm-bindgen-0.2.83-x86_64-unknown-linux-musl.tar.gz"; gotPath != want {
				t.Fatalf("requested %s, want %s", gotPath, want)
			}
		})
	}
}

func TestDownloaderTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	d := Downloader{Host: url}
	_, err := d.Fetch(context.Background(), WasmOpt, "version_110", linuxAMD64, t.TempDir())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestDownloaderUnsupportedPlatform(t *testing.T) {
	d := Downloader{Host: "http://127.0.0.1:1"}
	_, err := d.Fetch(context.Background(), Sass, "1.54.9", windowsARM64, t.TempDir())
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestDownloaderCustomUserAgentAndProgress(t *testing.T) {
	body := strings.Repeat("x", 300<<10)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "mirror-bot/2" {
			t.Errorf("unexpected User-Agent: %s", got)
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	var last, total int64
	calls := 0
	d := Downloader{
		Client:    server.Client(),
		Host:      server.URL,
		UserAgent: "mirror-bot/2",
		Progress: func(key InstallKey, done, n int64) {
			if key.Tool != Sass || key.Version != "1.54.9" {
				t.Errorf("unexpected key %v", key)
			}
			calls++
			last, total = done, n
		},
	}
	path, err := d.Fetch(context.Background(), Sass, "1.54.9", linuxAMD64, t.TempDir())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls == 0 {
		t.Fatal("expected progress callbacks")
	}
	if last != int64(len(body)) || total != int64(len(body)) {
		t.Fatalf("final progress = %d/%d, want %d", last, total, len(body))
	}
	if info, err := os.Stat(path); err != nil || info.Size() != int64(len(body)) {
		t.Fatalf("unexpected file: %v %v", info, err)
	}
}

func TestDownloaderWriteFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	// The temp path is occupied by a directory, so creating the file fails.
	root := t.TempDir()
	if err := os.Mkdir(TempPath(root, Sass, "1.54.9"), 0o755); err != nil {
		t.Fatal(err)
	}
	d := Downloader{Client: server.Client(), Host: server.URL}
	_, err := d.Fetch(context.Background(), Sass, "1.54.9", linuxAMD64, root)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNetwork) {
		t.Fatalf("filesystem failure should not be reported as network: %v", err)
	}
}
