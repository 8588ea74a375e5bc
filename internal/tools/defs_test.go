package tools

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"toolfetch/internal/platform"
)

var (
	linuxAMD64   = platform.Info{OS: "linux", Arch: "amd64"}
	linuxARM64   = platform.Info{OS: "linux", Arch: "arm64"}
	darwinAMD64  = platform.Info{OS: "darwin", Arch: "amd64"}
	darwinARM64  = platform.Info{OS: "darwin", Arch: "arm64"}
	windowsAMD64 = platform.Info{OS: "windows", Arch: "amd64"}
	windowsARM64 = platform.Info{OS: "windows", Arch: "arm64"}
)

func TestParseTool(t *testing.T) {
	for _, tool := range KnownTools() {
		got, err := ParseTool(strings.ToUpper(tool.Name()))
		if err != nil {
			t.Fatalf("ParseTool(%s): %v", tool.Name(), err)
		}
		if got != tool {
			t.Fatalf("ParseTool(%s) = %v", tool.Name(), got)
		}
	}
	if _, err := ParseTool("webpack"); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	want := map[Tool]string{Sass: "1.54.9", WasmBindgen: "0.2.83", WasmOpt: "version_110"}
	for tool, version := range want {
		if got := DefaultVersion(tool); got != version {
			t.Errorf("DefaultVersion(%s) = %s, want %s", tool, got, version)
		}
		if got := VersionArg(tool); got != "--version" {
			t.Errorf("VersionArg(%s) = %s", tool, got)
		}
	}
}

func TestMainAndExtraPaths(t *testing.T) {
	tests := []struct {
		tool   Tool
		plat   platform.Info
		main   string
		extras []string
	}{
		{Sass, linuxAMD64, "sass", nil},
		{Sass, darwinARM64, "sass", []string{"src/dart", "src/sass.snapshot"}},
		{Sass, windowsAMD64, "sass.bat", []string{"src/dart.exe", "src/sass.snapshot"}},
		{WasmBindgen, linuxAMD64, "wasm-bindgen", nil},
		{WasmBindgen, darwinAMD64, "wasm-bindgen", nil},
		{WasmBindgen, windowsAMD64, "wasm-bindgen.exe", nil},
		{WasmOpt, linuxARM64, "bin/wasm-opt", nil},
		{WasmOpt, darwinARM64, "bin/wasm-opt", []string{"lib/libbinaryen.dylib"}},
		{WasmOpt, windowsAMD64, "bin/wasm-opt.exe", nil},
	}
	for _, tt := range tests {
		if got := MainPath(tt.tool, tt.plat); got != tt.main {
			t.Errorf("MainPath(%s, %s) = %s, want %s", tt.tool, tt.plat, got, tt.main)
		}
		if got := ExtraPaths(tt.tool, tt.plat); !reflect.DeepEqual(got, tt.extras) {
			t.Errorf("ExtraPaths(%s, %s) = %v, want %v", tt.tool, tt.plat, got, tt.extras)
		}
	}
}

func TestDownloadURL(t *testing.T) {
	tests := []struct {
		tool    Tool
		version string
		plat    platform.Info
		want    string
	}{
		{Sass, "1.54.9", windowsAMD64, "https://github.com/sass/dart-sass/releases/download/1.54.9/dart-sass-1.54.9-windows-x64.zip"},
		{Sass, "1.54.9", darwinAMD64, "https://github.com/sass/dart-sass/releases/download/1.54.9/dart-sass-1.54.9-macos-x64.tar.gz"},
		{Sass, "1.54.9", linuxARM64, "https://github.com/sass/dart-sass/releases/download/1.54.9/dart-sass-1.54.9-linux-arm64.tar.gz"},
		{WasmBindgen, "0.2.83", linuxAMD64, "https://github.com/rustwasm/wasm-bindgen/releases/download/0.2.83/wasm-bindgen-0.2.83-x86_64-unknown-linux-musl.tar.gz"},
		{WasmBindgen, "0.2.83", darwinARM64, "https://github.com/rustwasm/wasm-bindgen/releases/download/0.2.83/wasm-bindgen-0.2.83-x86_64-apple-darwin.tar.gz"},
		{WasmBindgen, "0.2.83", windowsAMD64, "https://github.com/rustwasm/wasm-bindgen/releases/download/0.2.83/wasm-bindgen-0.2.83-x86_64-pc-windows-msvc.tar.gz"},
		{WasmOpt, "version_110", darwinARM64, "https://github.com/WebAssembly/binaryen/releases/download/version_110/binaryen-version_110-arm64-macos.tar.gz"},
		{WasmOpt, "version_110", linuxARM64, "https://github.com/WebAssembly/binaryen/releases/download/version_110/binaryen-version_110-aarch64-linux.tar.gz"},
		{WasmOpt, "version_110", windowsAMD64, "https://github.com/WebAssembly/binaryen/releases/download/version_110/binaryen-version_110-x86_64-windows.tar.gz"},
	}
	for _, tt := range tests {
		got, err := DownloadURL(tt.tool, tt.version, tt.plat)
		if err != nil {
			t.Errorf("DownloadURL(%s, %s): %v", tt.tool, tt.plat, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DownloadURL(%s, %s)\n got  %s\n want %s", tt.tool, tt.plat, got, tt.want)
		}
	}
}

func TestDownloadURLUnsupported(t *testing.T) {
	tests := []struct {
		tool Tool
		plat platform.Info
	}{
		{Sass, windowsARM64},
		{Sass, platform.Info{OS: "freebsd", Arch: "amd64"}},
		{WasmBindgen, platform.Info{OS: "linux", Arch: "riscv64"}},
		{WasmOpt, platform.Info{OS: "plan9", Arch: "386"}},
	}
	for _, tt := range tests {
		_, err := DownloadURL(tt.tool, "1.0", tt.plat)
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("DownloadURL(%s, %s) = %v, want ErrUnsupportedPlatform", tt.tool, tt.plat, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.plat.OS) || !strings.Contains(err.Error(), tt.plat.Arch) {
			t.Errorf("error %q should name the platform", err)
		}
		if Supported(tt.tool, tt.plat) {
			t.Errorf("Supported(%s, %s) should be false", tt.tool, tt.plat)
		}
	}
}

func TestDownloadURLMirrorHost(t *testing.T) {
	got, err := downloadURL("https://mirror.example.com/gh/", WasmOpt, "version_110", linuxAMD64)
	if err != nil {
		t.Fatal(err)
	}
	want := "https://mirror.example.com/gh/WebAssembly/binaryen/releases/download/version_110/binaryen-version_110-x86_64-linux.tar.gz"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestArchiveKind(t *testing.T) {
	if got := ArchiveKind(Sass, windowsAMD64); got != ArchiveZip {
		t.Fatalf("Sass on windows should be zip, got %s", got)
	}
	for _, tool := range KnownTools() {
		for _, plat := range []platform.Info{linuxAMD64, darwinARM64} {
			if got := ArchiveKind(tool, plat); got != ArchiveTarGz {
				t.Errorf("ArchiveKind(%s, %s) = %s, want tar.gz", tool, plat, got)
			}
		}
	}
	if got := ArchiveKind(WasmOpt, windowsAMD64); got != ArchiveTarGz {
		t.Fatalf("wasm-opt on windows should be tar.gz, got %s", got)
	}
}

func TestInstallHints(t *testing.T) {
	for _, tool := range KnownTools() {
		for _, plat := range []platform.Info{linuxAMD64, darwinARM64, windowsAMD64} {
			if len(InstallHints(tool, plat)) == 0 {
				t.Errorf("expected hints for %s on %s", tool, plat)
			}
		}
	}
}
