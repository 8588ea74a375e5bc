package tools

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"toolfetch/internal/platform"
)

// Installer extracts a tool's files from a downloaded release archive.
// Extractions across all tools share a fixed number of slots so that
// decompression cannot crowd out in-flight downloads.
type Installer struct {
	Platform platform.Info
	// Slots defaults to runtime.NumCPU().
	Slots int64

	once sync.Once
	sem  *semaphore.Weighted
}

// NewInstaller returns an Installer for plat with the given slot count.
func NewInstaller(plat platform.Info, slots int64) *Installer {
	return &Installer{Platform: plat, Slots: slots}
}

func (in *Installer) slots() *semaphore.Weighted {
	in.once.Do(func() {
		n := in.Slots
		if n <= 0 {
			n = int64(runtime.NumCPU())
		}
		in.sem = semaphore.NewWeighted(n)
	})
	return in.sem
}

// Install extracts the main binary and then every extra path into
// targetDir. The first failure aborts; files already written stay on disk
// and are overwritten by the next attempt.
func (in *Installer) Install(ctx context.Context, tool Tool, archivePath, targetDir string) error {
	sem := in.slots()
	if err := sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("wait for extraction slot: %w", err)
	}
	defer sem.Release(1)

	archive, err := OpenArchive(ArchiveKind(tool, in.Platform), archivePath)
	if err != nil {
		return err
	}
	defer func() { archive.Close() }()

	if err := archive.ExtractFile(MainPath(tool, in.Platform), targetDir); err != nil {
		return err
	}
	for _, extra := range ExtraPaths(tool, in.Platform) {
		archive, err = archive.Reset()
		if err != nil {
			archive = nopArchive{}
			return err
		}
		if err := archive.ExtractFile(extra, targetDir); err != nil {
			return err
		}
	}
	return nil
}

// nopArchive stands in after a failed Reset, which already released the file.
type nopArchive struct{}

func (nopArchive) ExtractFile(string, string) error { return ErrArchiveNotReset }
func (a nopArchive) Reset() (Archive, error)        { return a, nil }
func (nopArchive) Close() error                     { return nil }
