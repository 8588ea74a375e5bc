package tools

import (
	"fmt"
	"strings"
)

// ParseVersionOutput extracts the normalized version from the output of
// `<tool> --version`.
func ParseVersionOutput(t Tool, raw string) (string, error) {
	text := strings.TrimSpace(raw)
	switch t {
	case Sass:
		line := firstLine(text)
		if line == "" {
			return "", malformed(t, raw)
		}
		return line, nil
	case WasmBindgen:
		if tok, ok := nthField(text, 1); ok {
			return tok, nil
		}
		return "", malformed(t, raw)
	case WasmOpt:
		if tok, ok := nthField(text, 2); ok {
			return "version_" + tok, nil
		}
		return "", malformed(t, raw)
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownTool, int(t))
	}
}

func malformed(t Tool, raw string) error {
	return fmt.Errorf("%w: %s printed %q", ErrMalformedVersionOutput, t.Name(), raw)
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimRight(text[:idx], "\r")
	}
	return text
}

// nthField splits on single spaces, so runs of spaces yield empty tokens.
// An empty token is reported as missing: "wasm-bindgen  0.2.83" is malformed
// rather than a system binary of version "".
func nthField(text string, n int) (string, bool) {
	parts := strings.Split(text, " ")
	if n >= len(parts) || parts[n] == "" {
		return "", false
	}
	return parts[n], true
}
