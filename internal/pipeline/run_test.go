package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gifmaker/internal/failures"
	"gifmaker/internal/gifenc"
	"gifmaker/internal/pipeline"
	"gifmaker/internal/progress"
	"gifmaker/internal/testsupport"
	"gifmaker/internal/timing"
)

func decode(t *testing.T, path string) *gif.GIF {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return g
}

func frameColor(t *testing.T, g *gif.GIF, i int) color.RGBA {
	t.Helper()
	return color.RGBAModel.Convert(g.Image[i].At(0, 0)).(color.RGBA)
}

func wantColor(n int) color.RGBA {
	return color.RGBAModel.Convert(testsupport.FrameColor(n)).(color.RGBA)
}

func assertNoOutput(t *testing.T, root string) {
	t.Helper()
	if _, err := os.Stat(filepath.Join(root, "out.gif")); !os.IsNotExist(err) {
		t.Fatalf("out.gif should not exist (stat err=%v)", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("leftover file %s", entry.Name())
		}
	}
}

func TestRunTenFrames(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "frames")
	paths := testsupport.WriteNumberedPNGs(t, dir, 10, 4, 4)
	var out bytes.Buffer

	result, err := pipeline.Run(context.Background(),
		pipeline.Args{Dir: dir, Policy: timing.Policy{Interior: 10, Boundary: 100}},
		pipeline.Options{Reporter: progress.NewLines(&out)},
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantPath := filepath.Join(root, "out.gif")
	if result.OutputPath != wantPath {
		t.Fatalf("output path = %q, want %q", result.OutputPath, wantPath)
	}
	if result.Frames != 10 || result.Width != 4 || result.Height != 4 || result.Bytes <= 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if !strings.Contains(result.Summary(), "10 frames") {
		t.Fatalf("summary = %q", result.Summary())
	}

	g := decode(t, wantPath)
	if g.LoopCount != 0 {
		t.Fatalf("loop count = %d", g.LoopCount)
	}
	wantDelays := []int{100, 10, 10, 10, 10, 10, 10, 10, 10, 100}
	if fmt.Sprint(g.Delay) != fmt.Sprint(wantDelays) {
		t.Fatalf("delays = %v, want %v", g.Delay, wantDelays)
	}
	for i := range g.Image {
		if got := frameColor(t, g, i); got != wantColor(i+1) {
			t.Fatalf("frame %d colour %v, want %v", i+1, got, wantColor(i+1))
		}
	}

	var want strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&want, "%q\n", path)
	}
	want.WriteString("Creating gif...\n")
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&want, "%d / 10\n", i)
	}
	if out.String() != want.String() {
		t.Fatalf("progress output:\n%s\nwant:\n%s", out.String(), want.String())
	}
}

func TestRunOrdersNumerically(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "frames")
	for _, n := range []int{2, 10, 1} {
		testsupport.WritePNG(t, filepath.Join(dir, fmt.Sprintf("%d.png", n)), testsupport.SolidImage(2, 2, testsupport.FrameColor(n)))
	}

	if _, err := pipeline.Run(context.Background(), pipeline.Args{Dir: dir, Policy: timing.Policy{Interior: 5, Boundary: 50}}, pipeline.Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	g := decode(t, filepath.Join(root, "out.gif"))
	for i, n := range []int{1, 2, 10} {
		if got := frameColor(t, g, i); got != wantColor(n) {
			t.Fatalf("frame %d should come from %d.png", i+1, n)
		}
	}
	if fmt.Sprint(g.Delay) != "[50 5 50]" {
		t.Fatalf("delays = %v", g.Delay)
	}
}

func TestRunTrailingSlashAndCustomName(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "frames")
	testsupport.WriteNumberedPNGs(t, dir, 2, 3, 3)

	result, err := pipeline.Run(context.Background(),
		pipeline.Args{Dir: dir + string(filepath.Separator), Policy: timing.Policy{Interior: 1, Boundary: 2}},
		pipeline.Options{OutputName: "loop.gif"},
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.OutputPath != filepath.Join(root, "loop.gif") {
		t.Fatalf("output path = %q", result.OutputPath)
	}
}

func TestRunInvalidDirectoryCreatesNoOutput(t *testing.T) {
	root := t.TempDir()
	_, err := pipeline.Run(context.Background(), pipeline.Args{Dir: filepath.Join(root, "missing"), Policy: timing.Policy{Interior: 1, Boundary: 1}}, pipeline.Options{})
	if !errors.Is(err, failures.ErrInvalidDirectory) {
		t.Fatalf("expected invalid directory, got %v", err)
	}
	if failures.IsUsage(err) {
		t.Fatal("a missing directory is an environment error")
	}
	assertNoOutput(t, root)
}

func TestRunEmptyDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "frames")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := pipeline.Run(context.Background(), pipeline.Args{Dir: dir, Policy: timing.Policy{Interior: 1, Boundary: 1}}, pipeline.Options{})
	if !errors.Is(err, failures.ErrEmptyDirectory) {
		t.Fatalf("expected empty directory, got %v", err)
	}
	if failures.ExitCode(err) != failures.ExitEmptyDirectory {
		t.Fatalf("exit code = %d", failures.ExitCode(err))
	}
	assertNoOutput(t, root)
}

func TestRunCorruptImageCreatesNoOutput(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "frames")
	testsupport.WriteNumberedPNGs(t, dir, 2, 2, 2)
	testsupport.WriteFile(t, filepath.Join(dir, "3.png"), 32)

	_, err := pipeline.Run(context.Background(), pipeline.Args{Dir: dir, Policy: timing.Policy{Interior: 1, Boundary: 1}}, pipeline.Options{})
	if !errors.Is(err, failures.ErrCorruptImage) {
		t.Fatalf("expected corrupt image, got %v", err)
	}
	assertNoOutput(t, root)
}

func TestRunDimensionPolicies(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "frames")
	testsupport.WritePNG(t, filepath.Join(dir, "1.png"), testsupport.SolidImage(4, 4, testsupport.FrameColor(1)))
	testsupport.WritePNG(t, filepath.Join(dir, "2.png"), testsupport.SolidImage(8, 2, testsupport.FrameColor(2)))
	args := pipeline.Args{Dir: dir, Policy: timing.Policy{Interior: 1, Boundary: 1}}

	_, err := pipeline.Run(context.Background(), args, pipeline.Options{Dimensions: gifenc.DimensionReject})
	if !errors.Is(err, failures.ErrDimensionMismatch) {
		t.Fatalf("reject: expected dimension mismatch, got %v", err)
	}
	assertNoOutput(t, root)

	result, err := pipeline.Run(context.Background(), args, pipeline.Options{Dimensions: gifenc.DimensionClip})
	if err != nil {
		t.Fatalf("clip: %v", err)
	}
	g := decode(t, result.OutputPath)
	if b := g.Image[1].Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("clipped frame bounds = %v", b)
	}
}

func TestOutputPath(t *testing.T) {
	root := t.TempDir()
	got, err := pipeline.OutputPath(filepath.Join(root, "a", "frames"), "")
	if err != nil {
		t.Fatalf("OutputPath: %v", err)
	}
	if got != filepath.Join(root, "a", "out.gif") {
		t.Fatalf("OutputPath = %q", got)
	}

	t.Chdir(root)
	got, err = pipeline.OutputPath(".", "x.gif")
	if err != nil {
		t.Fatalf("OutputPath: %v", err)
	}
	if got != filepath.Join(filepath.Dir(root), "x.gif") {
		t.Fatalf("OutputPath(.) = %q", got)
	}
}
