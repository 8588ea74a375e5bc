package tools

import (
	"fmt"
	"strings"

	"toolfetch/internal/platform"
)

type definition struct {
	Name           string
	DefaultVersion string
	VersionArg     string
}

var toolDefinitions = map[Tool]definition{
	Sass: {
		Name:           "sass",
		DefaultVersion: "1.54.9",
		VersionArg:     "--version",
	},
	WasmBindgen: {
		Name:           "wasm-bindgen",
		DefaultVersion: "0.2.83",
		VersionArg:     "--version",
	},
	WasmOpt: {
		Name:           "wasm-opt",
		DefaultVersion: "version_110",
		VersionArg:     "--version",
	},
}

// Name returns the tool's canonical base name, which is also the executable
// name looked up on PATH.
func (t Tool) Name() string {
	if def, ok := toolDefinitions[t]; ok {
		return def.Name
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

func (t Tool) String() string {
	return t.Name()
}

// ParseTool maps a canonical name back to its Tool.
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range KnownTools() {
		if toolDefinitions[t].Name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// KnownTools returns every supported tool in declaration order.
func KnownTools() []Tool {
	return []Tool{Sass, WasmBindgen, WasmOpt}
}

// DefaultVersion returns the version installed when the caller names none.
func DefaultVersion(t Tool) string {
	return toolDefinitions[t].DefaultVersion
}

// VersionArg returns the single argument that makes the tool print its
// version and exit.
func VersionArg(t Tool) string {
	return toolDefinitions[t].VersionArg
}

// MainPath returns the archive-relative, slash-separated path of the
// runnable binary.
func MainPath(t Tool, plat platform.Info) string {
	switch t {
	case Sass:
		if plat.IsWindows() {
			return "sass.bat"
		}
		return "sass"
	case WasmBindgen:
		return executableName("wasm-bindgen", plat)
	case WasmOpt:
		return "bin/" + executableName("wasm-opt", plat)
	default:
		return ""
	}
}

// ExtraPaths lists the files that must be extracted next to the main
// binary, in extraction order.
func ExtraPaths(t Tool, plat platform.Info) []string {
	switch t {
	case Sass:
		switch {
		case plat.IsWindows():
			return []string{"src/dart.exe", "src/sass.snapshot"}
		case plat.IsMacOS():
			return []string{"src/dart", "src/sass.snapshot"}
		}
	case WasmOpt:
		if plat.IsMacOS() {
			return []string{"lib/libbinaryen.dylib"}
		}
	}
	return nil
}

func executableName(base string, plat platform.Info) string {
	if plat.IsWindows() {
		return base + ".exe"
	}
	return base
}
