package progress_test

import (
	"bytes"
	"testing"

	"gifmaker/internal/progress"
)

func TestLinesFormat(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewLines(&buf)
	r.LoadStarted(2)
	r.FileLoaded("/tmp/frames/1.png")
	r.FileLoaded("/tmp/frames/2.png")
	r.EncodeStarted(2)
	r.FrameWritten(1, 2)
	r.FrameWritten(2, 2)
	r.Done()

	want := "\"/tmp/frames/1.png\"\n\"/tmp/frames/2.png\"\nCreating gif...\n1 / 2\n2 / 2\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestResolveAutoUsesLinesForBuffers(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := progress.Resolve(progress.StyleAuto, &buf).(*progress.Lines); !ok {
		t.Fatal("expected line reporter for non-terminal writer")
	}
	if _, ok := progress.Resolve("", &buf).(*progress.Lines); !ok {
		t.Fatal("expected empty style to behave like auto")
	}
}

func TestResolveExplicitStyles(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := progress.Resolve(progress.StyleNone, &buf).(progress.Nop); !ok {
		t.Fatal("expected nop reporter")
	}
	if _, ok := progress.Resolve("BAR", &buf).(*progress.Bar); !ok {
		t.Fatal("expected bar reporter")
	}
	if _, ok := progress.Resolve(progress.StyleLines, nil).(progress.Nop); !ok {
		t.Fatal("expected nop reporter for nil writer")
	}
}

func TestBarWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewBar(&buf)
	r.LoadStarted(1)
	r.FileLoaded("a.png")
	r.EncodeStarted(1)
	r.FrameWritten(1, 1)
	r.Done()
	if buf.Len() == 0 {
		t.Fatal("expected bar output")
	}
}

func TestValidStyle(t *testing.T) {
	for _, style := range []string{"auto", "lines", "bar", "none", " Lines "} {
		if !progress.ValidStyle(style) {
			t.Fatalf("expected %q to be valid", style)
		}
	}
	if progress.ValidStyle("fancy") {
		t.Fatal("expected unknown style to be rejected")
	}
}
