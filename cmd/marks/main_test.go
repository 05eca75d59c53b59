package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/marks/internal/errors"
)

const frames = `
domain: [0, 100]
frames:
  - data: [10, 20, 30]
  - data: [20, 30, 40]
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderSVG(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "frames.yaml", frames)
	cfg := writeFile(t, dir, "marks.json", `{"width": 200, "symbol": {"shape": "square"}}`)
	out := filepath.Join(dir, "chart.svg")

	if _, err := run(t, "render", data, "-o", out, "-c", cfg); err != nil {
		t.Fatalf("render error = %v", err)
	}
	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	s := string(svg)
	if n := strings.Count(s, "<rect"); n != 4 {
		t.Errorf("got %d rects, want 3 squares plus the background", n)
	}
	for _, want := range []string{"translate(40,0)", "translate(60,0)", "translate(80,0)"} {
		if !strings.Contains(s, want) {
			t.Errorf("final frame missing %s", want)
		}
	}
	if strings.Contains(s, "translate(20,0)") {
		t.Error("exited mark for 10 still rendered")
	}
}

func TestRenderEveryPNG(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "frames.yaml", frames)
	out := filepath.Join(dir, "out", "frame.png")

	if _, err := run(t, "render", data, "-o", out, "--every", "-c", dir); err == nil {
		t.Fatal("directory without a config file should fail")
	}

	writeFile(t, dir, "marks.yaml", "width: 100\nlabel:\n  enabled: true\n")
	if _, err := run(t, "render", data, "-o", out, "--every", "-c", dir); err != nil {
		t.Fatalf("render error = %v", err)
	}
	for _, name := range []string{"frame-000.png", "frame-001.png"} {
		png, err := os.ReadFile(filepath.Join(dir, "out", name))
		if err != nil || !bytes.HasPrefix(png, []byte("\x89PNG")) {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "frames.yaml", frames)

	_, err := run(t, "render", data, "-o", filepath.Join(dir, "chart.gif"), "-c", writeFile(t, dir, "marks.json", "{}"))
	if got := errors.CodeOf(err); got != "M303" {
		t.Errorf("code = %q, want M303", got)
	}
}

func TestPublishToDir(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "latency.yaml", frames)
	cfg := writeFile(t, dir, "marks.json", "{}")
	site := filepath.Join(dir, "site")

	out, err := run(t, "publish", data, "-c", cfg, "--dir", site, "--format", "svg")
	if err != nil {
		t.Fatalf("publish error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(site, "latency.svg")); err != nil {
		t.Errorf("latency.svg not written: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(site, "latency.png")); err == nil {
		t.Error("png written although only svg was requested")
	}
}

func TestPublishNeedsTarget(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "frames.yaml", frames)

	_, err := run(t, "publish", data, "-c", writeFile(t, dir, "marks.json", "{}"))
	if got := errors.CodeOf(err); got != "M402" {
		t.Errorf("code = %q, want M402", got)
	}
}

func TestInitThenRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "error-budget")

	out, err := run(t, "init", dir, "--template", "labelled")
	if err != nil {
		t.Fatalf("init error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "Created labelled project") {
		t.Errorf("output = %q", out)
	}

	svg := filepath.Join(dir, "chart.svg")
	if _, err := run(t, "render", filepath.Join(dir, "frames.yaml"), "-c", dir, "-o", svg); err != nil {
		t.Fatalf("render error = %v", err)
	}
	data, err := os.ReadFile(svg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "error budget") {
		t.Error("title from directory name missing")
	}

	if _, err := run(t, "init", dir, "--template", "labelled"); errors.CodeOf(err) != "M105" {
		t.Errorf("second init code = %q, want M105", errors.CodeOf(err))
	}
	if _, err := run(t, "init", dir, "--template", "nope"); errors.CodeOf(err) != "M104" {
		t.Errorf("unknown template code = %q, want M104", errors.CodeOf(err))
	}
}

func TestQuiet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "quiet")
	out, err := run(t, "init", dir, "-q")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("quiet init printed %q", out)
	}

	_, err = run(t, "init", dir, "-q")
	var buf bytes.Buffer
	printError(&buf, err, true)
	got := buf.String()
	if !strings.HasPrefix(got, filepath.Join(dir, "frames.yaml")+": M105: ") {
		t.Errorf("compact error = %q", got)
	}
	if strings.Count(got, "\n") != 1 || strings.Contains(got, "\033[") {
		t.Errorf("compact error should be one plain line: %q", got)
	}

	buf.Reset()
	printError(&buf, err, false)
	if !strings.Contains(buf.String(), "M105") || strings.Count(buf.String(), "\n") < 2 {
		t.Errorf("full error = %q", buf.String())
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}

func TestFrameFile(t *testing.T) {
	tests := []struct {
		out  string
		i    int
		want string
	}{
		{"chart.svg", 3, "chart-003.svg"},
		{"out/frame.png", 12, "out/frame-012.png"},
		{"latency", 1000, "latency-1000"},
	}
	for _, tt := range tests {
		if got := frameFile(tt.out, tt.i); got != tt.want {
			t.Errorf("frameFile(%q, %d) = %q, want %q", tt.out, tt.i, got, tt.want)
		}
	}
}
