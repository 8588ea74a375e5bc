package tools

import "toolfetch/internal/platform"

// InstallHints suggests package-manager commands for hosts without a
// published release.
func InstallHints(t Tool, plat platform.Info) []string {
	switch t {
	case Sass:
		switch plat.OS {
		case "darwin":
			return []string{"Install Sass via Homebrew: brew install sass/sass/sass"}
		case "windows":
			return []string{"Install Sass via Chocolatey: choco install sass"}
		default:
			return []string{"Install Sass via npm: npm install -g sass"}
		}
	case WasmBindgen:
		return []string{"Build wasm-bindgen from source: cargo install wasm-bindgen-cli"}
	case WasmOpt:
		switch plat.OS {
		case "darwin":
			return []string{"Install binaryen via Homebrew: brew install binaryen"}
		case "linux":
			return []string{"Install binaryen with your distro package manager, e.g. sudo apt install binaryen"}
		default:
			return []string{"Install binaryen via npm: npm install -g binaryen"}
		}
	default:
		return nil
	}
}
