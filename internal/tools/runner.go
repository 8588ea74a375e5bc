package tools

import (
	"bytes"
	"context"
	"os/exec"
)

type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes a subprocess and captures its output. A non-zero exit is
// reported as an error alongside whatever was captured.
type Runner interface {
	Run(ctx context.Context, command string, args ...string) (RunResult, error)
}

type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}, err
}

var _ Runner = CmdRunner{}
