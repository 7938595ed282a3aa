package failures

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUsage             = errors.New("usage error")
	ErrInvalidDelay      = errors.New("invalid delay value")
	ErrInvalidDirectory  = errors.New("invalid directory")
	ErrEmptyDirectory    = errors.New("empty directory")
	ErrCorruptImage      = errors.New("unsupported or corrupt image")
	ErrDimensionMismatch = errors.New("frame dimension mismatch")
	ErrOutputCreate      = errors.New("output create failed")
	ErrEncoderInit       = errors.New("encoder init failed")
	ErrFrameWrite        = errors.New("frame write failed")
	ErrConfiguration     = errors.New("configuration error")
)

// Exit codes returned by the CLI. Values are stable; scripts may depend on them.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitUsage             = 2
	ExitInvalidDelay      = 3
	ExitInvalidDirectory  = 4
	ExitEmptyDirectory    = 5
	ExitCorruptImage      = 6
	ExitDimensionMismatch = 7
	ExitOutputCreate      = 8
	ExitEncoderInit       = 9
	ExitFrameWrite        = 10
	ExitConfiguration     = 11
	ExitCanceled          = 130
)

var exitCodes = []struct {
	marker error
	code   int
}{
	{ErrUsage, ExitUsage},
	{ErrInvalidDelay, ExitInvalidDelay},
	{ErrInvalidDirectory, ExitInvalidDirectory},
	{ErrEmptyDirectory, ExitEmptyDirectory},
	{ErrCorruptImage, ExitCorruptImage},
	{ErrDimensionMismatch, ExitDimensionMismatch},
	{ErrOutputCreate, ExitOutputCreate},
	{ErrEncoderInit, ExitEncoderInit},
	{ErrFrameWrite, ExitFrameWrite},
	{ErrConfiguration, ExitConfiguration},
}

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = errors.New("failure")
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsUsage reports whether err is something the user fixes by changing the
// invocation or the input directory, as opposed to an environment failure.
func IsUsage(err error) bool {
	switch {
	case errors.Is(err, ErrUsage),
		errors.Is(err, ErrInvalidDelay),
		errors.Is(err, ErrEmptyDirectory),
		errors.Is(err, ErrConfiguration):
		return true
	default:
		return false
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	for _, entry := range exitCodes {
		if errors.Is(err, entry.marker) {
			return entry.code
		}
	}
	return ExitFailure
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
