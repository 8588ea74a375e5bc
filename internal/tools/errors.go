package tools

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform is returned when no release exists for the
	// host OS and architecture.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrMalformedVersionOutput is returned when a version probe prints
	// something the tool's parser does not recognise.
	ErrMalformedVersionOutput = errors.New("malformed version output")
	// ErrNetwork covers transport errors and non-2xx responses.
	ErrNetwork = errors.New("network failure")
	// ErrEntryNotFound is returned when an archive lacks a required file.
	ErrEntryNotFound = errors.New("archive entry not found")
	// ErrArchiveNotReset is returned when a sequential archive is read
	// twice without Reset.
	ErrArchiveNotReset = errors.New("archive must be reset before extracting another entry")
	ErrUnknownTool     = errors.New("unknown tool")
)

// InstallError reports a failed Get with the tool and version involved.
type InstallError struct {
	Tool    Tool
	Version string
	Err     error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("get %s %s: %v", e.Tool.Name(), e.Version, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}
