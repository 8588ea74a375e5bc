package tools

import (
	"fmt"
	"strings"

	"toolfetch/internal/platform"
)

// DefaultReleaseHost is the prefix every release URL is built on. Mirrors
// replace it wholesale.
const DefaultReleaseHost = "https://github.com"

// ArchiveFormat names a release container.
type ArchiveFormat string

const (
	ArchiveZip   ArchiveFormat = "zip"
	ArchiveTarGz ArchiveFormat = "tar.gz"
)

type platformKey struct {
	OS   string
	Arch string
}

type releaseSpec struct {
	Repo string
	// Assets maps a host to the asset file name; %[1]s is the version.
	Assets map[platformKey]string
}

// releaseIndex is the decision table for download URLs. A missing pair means
// no release is published for it.
var releaseIndex = map[Tool]releaseSpec{
	Sass: {
		Repo: "sass/dart-sass",
		Assets: map[platformKey]string{
			{"windows", "amd64"}: "dart-sass-%[1]s-windows-x64.zip",
			{"darwin", "amd64"}:  "dart-sass-%[1]s-macos-x64.tar.gz",
			{"darwin", "arm64"}:  "dart-sass-%[1]s-macos-arm64.tar.gz",
			{"linux", "amd64"}:   "dart-sass-%[1]s-linux-x64.tar.gz",
			{"linux", "arm64"}:   "dart-sass-%[1]s-linux-arm64.tar.gz",
		},
	},
	// Only x86_64 builds are published; arm64 hosts get them too and rely on
	// emulation.
	WasmBindgen: {
		Repo: "rustwasm/wasm-bindgen",
		Assets: map[platformKey]string{
			{"windows", "amd64"}: "wasm-bindgen-%[1]s-x86_64-pc-windows-msvc.tar.gz",
			{"windows", "arm64"}: "wasm-bindgen-%[1]s-x86_64-pc-windows-msvc.tar.gz",
			{"darwin", "amd64"}:  "wasm-bindgen-%[1]s-x86_64-apple-darwin.tar.gz",
			{"darwin", "arm64"}:  "wasm-bindgen-%[1]s-x86_64-apple-darwin.tar.gz",
			{"linux", "amd64"}:   "wasm-bindgen-%[1]s-x86_64-unknown-linux-musl.tar.gz",
			{"linux", "arm64"}:   "wasm-bindgen-%[1]s-x86_64-unknown-linux-musl.tar.gz",
		},
	},
	WasmOpt: {
		Repo: "WebAssembly/binaryen",
		Assets: map[platformKey]string{
			{"windows", "amd64"}: "binaryen-%[1]s-x86_64-windows.tar.gz",
			{"windows", "arm64"}: "binaryen-%[1]s-aarch64-windows.tar.gz",
			{"darwin", "amd64"}:  "binaryen-%[1]s-x86_64-macos.tar.gz",
			{"darwin", "arm64"}:  "binaryen-%[1]s-arm64-macos.tar.gz",
			{"linux", "amd64"}:   "binaryen-%[1]s-x86_64-linux.tar.gz",
			{"linux", "arm64"}:   "binaryen-%[1]s-aarch64-linux.tar.gz",
		},
	},
}

// DownloadURL returns the release archive URL on DefaultReleaseHost.
func DownloadURL(t Tool, version string, plat platform.Info) (string, error) {
	return downloadURL(DefaultReleaseHost, t, version, plat)
}

func downloadURL(host string, t Tool, version string, plat platform.Info) (string, error) {
	spec, ok := releaseIndex[t]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownTool, int(t))
	}
	asset, ok := spec.Assets[platformKey{plat.OS, plat.Arch}]
	if !ok {
		return "", fmt.Errorf("%w: no %s release for %s/%s", ErrUnsupportedPlatform, t.Name(), plat.OS, plat.Arch)
	}
	if host == "" {
		host = DefaultReleaseHost
	}
	return fmt.Sprintf("%s/%s/releases/download/%s/%s",
		strings.TrimSuffix(host, "/"), spec.Repo, version, fmt.Sprintf(asset, version)), nil
}

// ArchiveKind reports the container format of the tool's release archive.
func ArchiveKind(t Tool, plat platform.Info) ArchiveFormat {
	if t == Sass && plat.IsWindows() {
		return ArchiveZip
	}
	return ArchiveTarGz
}

// Supported reports whether a release exists for the tool on plat.
func Supported(t Tool, plat platform.Info) bool {
	_, err := DownloadURL(t, DefaultVersion(t), plat)
	return err == nil
}
