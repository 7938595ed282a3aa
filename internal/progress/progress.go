// Package progress renders human-readable pipeline progress on the terminal.
//
// Output is informational only. The Lines reporter reproduces the plain
// line-per-event format; Bar draws a redrawing bar when attached to a TTY.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Style names accepted by Resolve.
const (
	StyleAuto  = "auto"
	StyleLines = "lines"
	StyleBar   = "bar"
	StyleNone  = "none"
)

// Reporter receives pipeline progress events.
type Reporter interface {
	LoadStarted(total int)
	FileLoaded(path string)
	EncodeStarted(total int)
	FrameWritten(index, total int)
	Done()
}

// ValidStyle reports whether style is a recognised reporter style.
func ValidStyle(style string) bool {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case StyleAuto, StyleLines, StyleBar, StyleNone, "":
		return true
	default:
		return false
	}
}

// Resolve builds the reporter for style writing to w. The auto style picks
// Bar when w is a terminal and Lines otherwise.
func Resolve(style string, w io.Writer) Reporter {
	if w == nil {
		return Nop{}
	}
	switch strings.ToLower(strings.TrimSpace(style)) {
	case StyleNone:
		return Nop{}
	case StyleBar:
		return NewBar(w)
	case StyleLines:
		return NewLines(w)
	default:
		if IsTerminal(w) {
			return NewBar(w)
		}
		return NewLines(w)
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Nop discards every event.
type Nop struct{}

func (Nop) LoadStarted(int)       {}
func (Nop) FileLoaded(string)     {}
func (Nop) EncodeStarted(int)     {}
func (Nop) FrameWritten(int, int) {}
func (Nop) Done()                 {}

// Lines prints one line per loaded file and a "current / total" counter per
// written frame.
type Lines struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLines constructs a line reporter.
func NewLines(w io.Writer) *Lines {
	return &Lines{w: w}
}

func (l *Lines) LoadStarted(int) {}

func (l *Lines) FileLoaded(path string) {
	l.printf("%q\n", path)
}

func (l *Lines) EncodeStarted(int) {
	l.printf("Creating gif...\n")
}

func (l *Lines) FrameWritten(index, total int) {
	l.printf("%d / %d\n", index, total)
}

func (l *Lines) Done() {}

func (l *Lines) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format, args...)
}

// Bar draws one progress bar for loading and one for encoding.
type Bar struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewBar constructs a terminal bar reporter.
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

func (b *Bar) LoadStarted(total int) {
	b.start(total, "loading frames")
}

func (b *Bar) FileLoaded(string) {
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

func (b *Bar) EncodeStarted(total int) {
	b.finish()
	b.start(total, "creating gif")
}

func (b *Bar) FrameWritten(int, int) {
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

func (b *Bar) Done() {
	b.finish()
}

func (b *Bar) start(total int, description string) {
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(b.w) }),
	)
}

func (b *Bar) finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	b.bar = nil
}
