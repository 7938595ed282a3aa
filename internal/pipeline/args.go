package pipeline

import (
	"fmt"

	"gifmaker/internal/failures"
	"gifmaker/internal/timing"
)

// Args holds the validated positional arguments of a run.
type Args struct {
	Dir    string
	Policy timing.Policy
}

// ParseArgs validates <dir> <interior-delay> <boundary-delay>. Arguments are
// taken verbatim, so a directory name may carry surrounding spaces. It does
// not check that dir exists; that is left to the loader.
func ParseArgs(args []string) (Args, error) {
	if len(args) != 3 {
		return Args{}, failures.Wrap(failures.ErrUsage, "parse arguments",
			fmt.Sprintf("expected <dir> <interior-delay> <boundary-delay>, got %d argument(s)", len(args)), nil)
	}
	dir := args[0]
	if dir == "" {
		return Args{}, failures.Wrap(failures.ErrUsage, "parse arguments", "directory must not be empty", nil)
	}
	interior, err := timing.ParseDelay(args[1])
	if err != nil {
		return Args{}, failures.Wrap(failures.ErrInvalidDelay, "parse arguments", "interior delay", err)
	}
	boundary, err := timing.ParseDelay(args[2])
	if err != nil {
		return Args{}, failures.Wrap(failures.ErrInvalidDelay, "parse arguments", "boundary delay", err)
	}
	return Args{
		Dir:    dir,
		Policy: timing.Policy{Interior: interior, Boundary: boundary},
	}, nil
}
