package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const probeTimeout = 10 * time.Second

// SystemProbe finds tool binaries that are already installed on PATH.
type SystemProbe struct {
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
	// Runner defaults to CmdRunner.
	Runner Runner
	Logger *log.Logger
}

// FindSystem reports a system binary for tool whose version equals wanted
// exactly, or any version when wanted is empty. Every failure along the way
// is a miss, never an error.
func (p SystemProbe) FindSystem(ctx context.Context, tool Tool, wanted string) (path, version string, ok bool) {
	logger := p.Logger
	if logger == nil {
		logger = discardLogger
	}
	logger = logger.With("tool", tool.Name())

	path, version, err := p.probe(ctx, tool)
	if err != nil {
		logger.Debug("no usable system binary", "err", err)
		return "", "", false
	}
	if wanted != "" && version != wanted {
		logger.Debug("system binary version mismatch", "path", path, "found", version, "wanted", wanted)
		return "", "", false
	}
	return path, version, true
}

func (p SystemProbe) probe(ctx context.Context, tool Tool) (string, string, error) {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	runner := p.Runner
	if runner == nil {
		runner = CmdRunner{}
	}

	path, err := lookPath(tool.Name())
	if err != nil {
		return "", "", fmt.Errorf("%s not found in PATH", tool.Name())
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	res, err := runner.Run(ctx, path, VersionArg(tool))
	if err != nil {
		if stderr := strings.TrimSpace(firstLine(string(res.Stderr))); stderr != "" {
			return "", "", fmt.Errorf("%s %s: %w: %s", path, VersionArg(tool), err, stderr)
		}
		return "", "", fmt.Errorf("%s %s: %w", path, VersionArg(tool), err)
	}
	if !utf8.Valid(res.Stdout) {
		return "", "", fmt.Errorf("%s %s: output is not valid UTF-8", path, VersionArg(tool))
	}
	version, err := ParseVersionOutput(tool, string(res.Stdout))
	if err != nil {
		return "", "", err
	}
	return path, version, nil
}
