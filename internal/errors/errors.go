// Package errors provides structured error types for vidsweep operations.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindIO represents generic I/O errors.
	KindIO ErrorKind = iota
	// KindPath represents an invalid scan root or other path problems.
	KindPath
	// KindCommand represents external command execution errors.
	KindCommand
	// KindJSONParse represents JSON parsing errors.
	KindJSONParse
	// KindProbeFailed means the media probe could not be run or read.
	KindProbeFailed
	// KindNoVideoStream means the probe succeeded but found no video stream.
	KindNoVideoStream
	// KindMalformedMetadata means required stream fields were missing or unparsable.
	KindMalformedMetadata
	// KindFileUnreadable means the file could not be stat'd.
	KindFileUnreadable
	// KindActionFailed represents a per-file delete or trash failure.
	KindActionFailed
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindNoFilesFound represents no video files found under a root.
	KindNoFilesFound
	// KindCancelled represents user-cancelled operations.
	KindCancelled
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindPath:
		return "Path error"
	case KindCommand:
		return "Command error"
	case KindJSONParse:
		return "JSON parse error"
	case KindProbeFailed:
		return "Probe failed"
	case KindNoVideoStream:
		return "No video stream"
	case KindMalformedMetadata:
		return "Malformed metadata"
	case KindFileUnreadable:
		return "File unreadable"
	case KindActionFailed:
		return "Action failed"
	case KindConfig:
		return "Configuration error"
	case KindNoFilesFound:
		return "No files found"
	case KindCancelled:
		return "Operation cancelled"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for vidsweep operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewPathError creates a new path-related error.
func NewPathError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindPath, Message: message, Underlying: underlying}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	cmdErr := &CommandError{Command: cmd, Kind: CommandStart, Underlying: err}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewJSONParseError creates a new JSON parsing error.
func NewJSONParseError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindJSONParse, Message: message, Underlying: underlying}
}

// NewProbeFailedError wraps a probe execution or decoding failure for path.
func NewProbeFailedError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindProbeFailed, Message: fmt.Sprintf("cannot probe %s", path), Underlying: underlying}
}

// NewNoVideoStreamError creates an error for files without a video stream.
func NewNoVideoStreamError(path string) *CoreError {
	return &CoreError{Kind: KindNoVideoStream, Message: fmt.Sprintf("no video stream found in %s", path)}
}

// NewMalformedMetadataError creates an error for missing or unparsable stream fields.
func NewMalformedMetadataError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindMalformedMetadata, Message: message, Underlying: underlying}
}

// NewFileUnreadableError creates an error for files that cannot be stat'd.
func NewFileUnreadableError(path string, underlying error) *CoreError {
	return &CoreError{Kind: KindFileUnreadable, Message: fmt.Sprintf("cannot stat %s", path), Underlying: underlying}
}

// NewActionFailedError wraps a per-file delete or trash failure.
func NewActionFailedError(action, path string, underlying error) *CoreError {
	return &CoreError{Kind: KindActionFailed, Message: fmt.Sprintf("%s %s", action, path), Underlying: underlying}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message, Underlying: underlying}
}

// NewNoFilesFoundError creates an error for when no video files are found.
func NewNoFilesFoundError(dir string) *CoreError {
	return &CoreError{Kind: KindNoFilesFound, Message: fmt.Sprintf("no video files found in %s", dir)}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user"}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// IsSkippable reports whether err is a per-file extraction failure that the
// scanner should log and move past.
func IsSkippable(err error) bool {
	var coreErr *CoreError
	if !errors.As(err, &coreErr) {
		return false
	}
	switch coreErr.Kind {
	case KindProbeFailed, KindNoVideoStream, KindMalformedMetadata, KindFileUnreadable:
		return true
	default:
		return false
	}
}

// WrapExecError wraps an exec.ExitError into a CoreError.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandStartError(cmd, err)
}
