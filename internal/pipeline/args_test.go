package pipeline_test

import (
	"errors"
	"testing"

	"gifmaker/internal/failures"
	"gifmaker/internal/pipeline"
	"gifmaker/internal/timing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   pipeline.Args
		marker error
	}{
		{
			name: "valid",
			args: []string{"frames", "10", "100"},
			want: pipeline.Args{Dir: "frames", Policy: timing.Policy{Interior: 10, Boundary: 100}},
		},
		{
			name: "zero delays",
			args: []string{"frames", "0", "0"},
			want: pipeline.Args{Dir: "frames"},
		},
		{
			name: "max delay",
			args: []string{"frames", "65535", "7"},
			want: pipeline.Args{Dir: "frames", Policy: timing.Policy{Interior: 65535, Boundary: 7}},
		},
		{
			name: "dir kept verbatim",
			args: []string{" frames ", "10", "100"},
			want: pipeline.Args{Dir: " frames ", Policy: timing.Policy{Interior: 10, Boundary: 100}},
		},
		{
			name: "blank dir kept verbatim",
			args: []string{"  ", "10", "100"},
			want: pipeline.Args{Dir: "  ", Policy: timing.Policy{Interior: 10, Boundary: 100}},
		},
		{name: "no args", args: nil, marker: failures.ErrUsage},
		{name: "two args", args: []string{"frames", "10"}, marker: failures.ErrUsage},
		{name: "four args", args: []string{"frames", "10", "100", "x"}, marker: failures.ErrUsage},
		{name: "empty dir", args: []string{"", "10", "100"}, marker: failures.ErrUsage},
		{name: "padded interior delay", args: []string{"frames", " 10", "100"}, marker: failures.ErrInvalidDelay},
		{name: "trailing newline delay", args: []string{"frames", "10", "100\n"}, marker: failures.ErrInvalidDelay},
		{name: "word delay", args: []string{"frames", "fast", "100"}, marker: failures.ErrInvalidDelay},
		{name: "negative delay", args: []string{"frames", "10", "-1"}, marker: failures.ErrInvalidDelay},
		{name: "fractional delay", args: []string{"frames", "1.5", "100"}, marker: failures.ErrInvalidDelay},
		{name: "overflow delay", args: []string{"frames", "10", "65536"}, marker: failures.ErrInvalidDelay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pipeline.ParseArgs(tt.args)
			if tt.marker != nil {
				if !errors.Is(err, tt.marker) {
					t.Fatalf("ParseArgs(%v) error = %v, want %v", tt.args, err, tt.marker)
				}
				if !failures.IsUsage(err) {
					t.Fatalf("argument errors should be usage errors: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArgs(%v): %v", tt.args, err)
			}
			if got != tt.want {
				t.Fatalf("ParseArgs(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseArgsDoesNotTouchFilesystem(t *testing.T) {
	if _, err := pipeline.ParseArgs([]string{"/definitely/not/here", "1", "2"}); err != nil {
		t.Fatalf("ParseArgs should not stat the directory: %v", err)
	}
}
