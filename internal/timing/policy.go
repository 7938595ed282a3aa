// Package timing decides how long each frame of an animation stays on screen.
package timing

import (
	"fmt"
	"strconv"
)

// Delay is a frame display duration in hundredths of a second, the native
// unit of the GIF graphic control extension.
type Delay uint16

// ParseDelay parses a non-negative base-10 integer that fits in 16 bits.
// Surrounding whitespace is rejected.
func ParseDelay(value string) (Delay, error) {
	n, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("delay %q must be an integer between 0 and 65535", value)
	}
	return Delay(n), nil
}

// Policy assigns Boundary to the first and last frames and Interior to the rest.
type Policy struct {
	Interior Delay
	Boundary Delay
}

// DelayFor returns the delay of the frame at the 1-based index in a sequence
// of total frames. A single-frame sequence gets the boundary delay.
func (p Policy) DelayFor(index, total int) Delay {
	if index == 1 || index == total {
		return p.Boundary
	}
	return p.Interior
}

// Delays returns the full schedule for a sequence of total frames.
func (p Policy) Delays(total int) []Delay {
	if total <= 0 {
		return nil
	}
	out := make([]Delay, total)
	for i := range out {
		out[i] = p.DelayFor(i+1, total)
	}
	return out
}
