// Package platform reports the operating system and CPU architecture that
// release downloads are selected for.
//
// OS and Arch always use Go's GOOS/GOARCH spelling ("linux", "darwin",
// "windows"; "amd64", "arm64"). Translating those names into whatever a
// release page calls them is the job of the tool tables, not this package.
package platform

import (
	"context"
	"runtime"
	"strings"
)

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Info describes a host platform.
type Info struct {
	OS       string // "linux", "darwin", "windows"
	Arch     string // "amd64", "arm64" (normalized)
	ArchRaw  string // architecture before normalisation
	Platform string // distro ID (Linux only, e.g. "ubuntu")
	Family   string // canonical family (e.g. "debian")
	Version  string // distro version (Linux only)
}

// Host returns the OS and architecture of the running binary. It never
// touches the filesystem.
func Host() Info {
	return Info{
		OS:      runtime.GOOS,
		Arch:    normalizeArch(runtime.GOARCH),
		ArchRaw: runtime.GOARCH,
	}
}

// IsWindows returns true if the platform is Windows.
func (i Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsMacOS returns true if the platform is macOS.
func (i Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsLinux returns true if the platform is Linux.
func (i Info) IsLinux() bool {
	return i.OS == "linux"
}

// String renders the platform as os/arch, followed by the distro when known.
func (i Info) String() string {
	var b strings.Builder
	b.WriteString(i.OS)
	b.WriteByte('/')
	b.WriteString(i.Arch)
	if i.Platform != "" {
		b.WriteString(" (")
		b.WriteString(i.Platform)
		if i.Version != "" {
			b.WriteByte(' ')
			b.WriteString(i.Version)
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
