package tools

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// Archive extracts single named entries from a release archive. Entry names
// are matched after dropping their first path component, which is the
// version-specific root folder releases are wrapped in.
//
// Sequential containers (tar.gz) can be read once: after ExtractFile the
// handle must be replaced with the result of Reset before the next call.
// Random-access containers (zip) return themselves from Reset, so callers
// can treat Reset as a required step for every format.
type Archive interface {
	ExtractFile(name, targetDir string) error
	Reset() (Archive, error)
	Close() error
}

// OpenArchive opens path as the given container format.
func OpenArchive(format ArchiveFormat, path string) (Archive, error) {
	switch format {
	case ArchiveZip:
		return OpenZip(path)
	case ArchiveTarGz:
		return OpenTarGz(path)
	default:
		return nil, fmt.Errorf("unsupported archive format %q", format)
	}
}

type tarGzArchive struct {
	file  *os.File
	gz    *gzip.Reader
	tr    *tar.Reader
	spent bool
}

// OpenTarGz opens a gzip-compressed tar archive for sequential reading.
func OpenTarGz(path string) (Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	a, err := newTarGz(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return a, nil
}

func newTarGz(file *os.File) (*tarGzArchive, error) {
	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("gzip reader %s: %w", file.Name(), err)
	}
	return &tarGzArchive{file: file, gz: gz, tr: tar.NewReader(gz)}, nil
}

func (a *tarGzArchive) ExtractFile(name, targetDir string) error {
	if a.file == nil {
		return fmt.Errorf("extract %s: archive handle closed", name)
	}
	if a.spent {
		return fmt.Errorf("extract %s: %w", name, ErrArchiveNotReset)
	}
	a.spent = true

	for {
		header, err := a.tr.Next()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s in %s", ErrEntryNotFound, name, a.file.Name())
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if rel, ok := stripFirstComponent(header.Name); !ok || rel != name {
			continue
		}
		return writeEntry(a.tr, targetDir, name, header.FileInfo().Mode())
	}
}

// Reset rewinds the underlying file and hands it to a fresh handle. The
// receiver is unusable afterwards.
func (a *tarGzArchive) Reset() (Archive, error) {
	if a.file == nil {
		return nil, errors.New("reset archive: handle closed")
	}
	file := a.file
	a.file = nil
	_ = a.gz.Close()
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("rewind archive: %w", err)
	}
	next, err := newTarGz(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return next, nil
}

func (a *tarGzArchive) Close() error {
	if a.file == nil {
		return nil
	}
	file := a.file
	a.file = nil
	_ = a.gz.Close()
	return file.Close()
}

type zipArchive struct {
	rc *zip.ReadCloser
}

// OpenZip opens a zip archive for random access.
func OpenZip(path string) (Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	return &zipArchive{rc: rc}, nil
}

func (a *zipArchive) ExtractFile(name, targetDir string) error {
	for _, f := range a.rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if rel, ok := stripFirstComponent(f.Name); !ok || rel != name {
			continue
		}
		src, err := f.Open()
		if err != nil {
			return fmt.Errorf("open zip entry %s: %w", f.Name, err)
		}
		defer src.Close()
		var mode fs.FileMode
		if createdOnUnix(f) {
			mode = f.Mode()
		}
		return writeEntry(src, targetDir, name, mode)
	}
	return fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

func (a *zipArchive) Reset() (Archive, error) {
	return a, nil
}

func (a *zipArchive) Close() error {
	return a.rc.Close()
}

func createdOnUnix(f *zip.File) bool {
	return f.CreatorVersion>>8 == 3
}

// stripFirstComponent drops the leading directory of an archive entry name.
// Names that are absolute or escape the archive root are rejected.
func stripFirstComponent(name string) (string, bool) {
	clean := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if !fs.ValidPath(clean) {
		return "", false
	}
	_, rest, ok := strings.Cut(clean, "/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// writeEntry copies r to targetDir/name. A zero mode leaves the created
// file's default permissions alone.
func writeEntry(r io.Reader, targetDir, name string, mode fs.FileMode) error {
	target := filepath.Join(targetDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("prepare file %s: %w", target, err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", target, err)
	}
	if mode.Perm() != 0 && runtime.GOOS != "windows" {
		if err := os.Chmod(target, mode.Perm()); err != nil {
			return fmt.Errorf("chmod %s: %w", target, err)
		}
	}
	return nil
}
