package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"toolfetch/internal/platform"
)

const DefaultUserAgent = "toolfetch/1.0"

// Downloader streams release archives into the cache root.
type Downloader struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// Host replaces DefaultReleaseHost, e.g. for a mirror.
	Host      string
	UserAgent string
	// Progress, when set, is called as bytes arrive. total is -1 when the
	// server sends no Content-Length.
	Progress func(key InstallKey, done, total int64)
}

// TempPath returns the deterministic download location for tool@version.
func TempPath(cacheRoot string, tool Tool, version string) string {
	return filepath.Join(cacheRoot, fmt.Sprintf("%s-%s.tmp", tool.Name(), version))
}

// Fetch downloads the archive for tool@version to TempPath and returns that
// path. Removing the file is the caller's job; on failure a partial file may
// remain.
func (d Downloader) Fetch(ctx context.Context, tool Tool, version string, plat platform.Info, cacheRoot string) (string, error) {
	url, err := downloadURL(d.Host, tool, version, plat)
	if err != nil {
		return "", err
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	userAgent := d.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: download %s: %v", ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: download %s: unexpected status %s", ErrNetwork, url, resp.Status)
	}

	dest := TempPath(cacheRoot, tool, version)
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	var w io.Writer = out
	if d.Progress != nil {
		w = &progressWriter{
			w:     out,
			total: resp.ContentLength,
			fn: func(done, total int64) {
				d.Progress(InstallKey{Tool: tool, Version: version}, done, total)
			},
		}
	}

	body := &bodyReader{r: resp.Body}
	if _, err := io.Copy(w, body); err != nil {
		out.Close()
		if body.err != nil {
			return dest, fmt.Errorf("%w: download %s: %v", ErrNetwork, url, err)
		}
		return dest, fmt.Errorf("write temp file %s: %w", dest, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return dest, fmt.Errorf("sync temp file: %w", err)
	}
	if err := out.Close(); err != nil {
		return dest, fmt.Errorf("close temp file: %w", err)
	}
	return dest, nil
}

// progressWriter reports roughly once per percent, or once per MiB when the
// size is unknown.
type progressWriter struct {
	w     io.Writer
	done  int64
	last  int64
	total int64
	fn    func(done, total int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.done += int64(n)
	step := int64(1 << 20)
	if p.total > 0 {
		step = max(p.total/100, 64<<10)
	}
	if p.done-p.last >= step || p.done == p.total {
		p.last = p.done
		p.fn(p.done, p.total)
	}
	return n, err
}

// bodyReader remembers read failures so they can be told apart from write
// failures after io.Copy.
type bodyReader struct {
	r   io.Reader
	err error
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF {
		b.err = err
	}
	return n, err
}
