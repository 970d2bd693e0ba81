package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
	"github.com/matzehuels/adkdiagram/pkg/diagram/adk"
	"github.com/matzehuels/adkdiagram/pkg/errors"
	"github.com/matzehuels/adkdiagram/pkg/render"
)

// stubBackend returns a fixed image instead of running Graphviz.
type stubBackend struct {
	err    error
	calls  int
	format diagram.Format
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Render(_ context.Context, dot []byte, format diagram.Format) ([]byte, error) {
	s.calls++
	s.format = format
	if s.err != nil {
		return nil, s.err
	}
	return []byte("image:" + string(format)), nil
}

// testCLI wires a CLI to b and runs it in a fresh working directory.
type testCLI struct {
	*CLI
	out     bytes.Buffer
	logs    bytes.Buffer
	backend string
}

func newTestCLI(t *testing.T, b render.Backend) *testCLI {
	t.Helper()
	t.Chdir(t.TempDir())

	tc := &testCLI{}
	tc.CLI = New(&tc.logs, LogDebug)
	tc.CLI.out = &tc.out
	tc.CLI.newBackend = func(name string) (render.Backend, error) {
		tc.backend = name
		return b, nil
	}
	return tc
}

func (tc *testCLI) run(args ...string) error {
	root := tc.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func exists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("stat %s: %v", path, err)
	}
	return err == nil
}

func TestRoot_DefaultArtifacts(t *testing.T) {
	b := &stubBackend{}
	tc := newTestCLI(t, b)

	if err := tc.run(); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	img, err := os.ReadFile("adk_fancy_diagram.png")
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	if string(img) != "image:png" {
		t.Errorf("image = %q, want %q", img, "image:png")
	}

	src, err := os.ReadFile("adk_fancy_diagram")
	if err != nil {
		t.Fatalf("DOT source not kept: %v", err)
	}
	g, _ := adk.Build(diagram.FormatPNG)
	if string(src) != g.DOT() {
		t.Error("kept source differs from the diagram's DOT")
	}

	if b.calls != 1 {
		t.Errorf("backend called %d times, want 1", b.calls)
	}
	if tc.backend != render.BackendAuto {
		t.Errorf("backend = %q, want %q", tc.backend, render.BackendAuto)
	}
	if !strings.Contains(tc.out.String(), "adk_fancy_diagram.png") {
		t.Errorf("output should list the image path:\n%s", tc.out.String())
	}
}

func TestRender_Cleanup(t *testing.T) {
	tc := newTestCLI(t, &stubBackend{})

	if err := tc.run("render", "--cleanup"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if !exists(t, "adk_fancy_diagram.png") {
		t.Error("image should be written")
	}
	if exists(t, "adk_fancy_diagram") {
		t.Error("DOT source should be removed with --cleanup")
	}
}

func TestRender_BackendUnavailable(t *testing.T) {
	b := &stubBackend{err: errors.New(errors.ErrCodeRenderingUnavailable, "dot not found")}
	tc := newTestCLI(t, b)

	err := tc.run()
	if !errors.Unavailable(err) {
		t.Fatalf("run() error = %v, want RENDERING_UNAVAILABLE", err)
	}

	entries, _ := os.ReadDir(".")
	if len(entries) != 0 {
		t.Errorf("failed render left %d files behind", len(entries))
	}
}

func TestRender_FlagsOverrideConfig(t *testing.T) {
	b := &stubBackend{}
	tc := newTestCLI(t, b)

	cfg := "output = \"from_config\"\nformat = \"svg\"\nbackend = \"embedded\"\n"
	if err := os.WriteFile("adkdiagram.toml", []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tc.run("-f", "jpg"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if b.format != diagram.FormatJPG {
		t.Errorf("format = %q, want jpg from flag", b.format)
	}
	if tc.backend != render.BackendEmbedded {
		t.Errorf("backend = %q, want embedded from config", tc.backend)
	}
	if !exists(t, "from_config.jpg") {
		t.Error("image should use the configured base name")
	}
}

func TestRender_FlagOverridesBadConfigValue(t *testing.T) {
	b := &stubBackend{}
	tc := newTestCLI(t, b)

	if err := os.WriteFile("adkdiagram.toml", []byte("format = \"tiff\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tc.run("-f", "svg"); err != nil {
		t.Fatalf("run(-f svg) error: %v", err)
	}
	if b.format != diagram.FormatSVG {
		t.Errorf("format = %q, want svg", b.format)
	}
	if !exists(t, "adk_fancy_diagram.svg") {
		t.Error("image should be written as svg")
	}
}

func TestRender_BadConfigValueWithoutOverride(t *testing.T) {
	b := &stubBackend{}
	tc := newTestCLI(t, b)

	if err := os.WriteFile("adkdiagram.toml", []byte("format = \"tiff\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tc.run(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Fatalf("run() error = %v, want INVALID_FORMAT", err)
	}
	if b.calls != 0 {
		t.Error("backend should not be called for an invalid format")
	}
}

func TestRender_ExplicitConfig(t *testing.T) {
	tc := newTestCLI(t, &stubBackend{})

	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("keep_source = false\nformat = \"svg\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := tc.run("--config", path); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if !exists(t, "adk_fancy_diagram.svg") {
		t.Error("image should be written as svg")
	}
	if exists(t, "adk_fancy_diagram") {
		t.Error("source should not be kept when keep_source = false")
	}
}

func TestRender_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"format", []string{"-f", "bmp"}, errors.ErrCodeInvalidFormat},
		{"backend", []string{"--backend", "cairo"}, errors.ErrCodeInvalidBackend},
		{"output", []string{"-o", ""}, errors.ErrCodeInvalidPath},
		{"missing config", []string{"--config", "nope.toml"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &stubBackend{}
			tc := newTestCLI(t, b)

			err := tc.run(tt.args...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("run(%v) error = %v, want %s", tt.args, err, tt.code)
			}
			if b.calls != 0 {
				t.Error("backend should not be called for invalid settings")
			}
		})
	}
}

func TestRender_RejectsArgs(t *testing.T) {
	tc := newTestCLI(t, &stubBackend{})
	if err := tc.run("extra"); err == nil {
		t.Error("run() with positional argument should fail")
	}
}

func TestRender_EmbeddedBackend(t *testing.T) {
	t.Chdir(t.TempDir())

	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.out = &out

	root := c.RootCommand()
	root.SetArgs([]string{"--backend", "embedded", "-f", "svg"})
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	svg, err := os.ReadFile("adk_fancy_diagram.svg")
	if err != nil {
		t.Fatalf("image not written: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not an SVG document")
	}
	if !bytes.Contains(svg, []byte("Google ADK")) {
		t.Error("SVG should contain the ADK node label")
	}
}

func TestDot(t *testing.T) {
	b := &stubBackend{}
	tc := newTestCLI(t, b)

	if err := tc.run("dot"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	g, _ := adk.Build(adk.DefaultFormat)
	if tc.out.String() != g.DOT() {
		t.Errorf("dot output differs from the diagram's DOT:\n%s", tc.out.String())
	}
	if b.calls != 0 {
		t.Error("dot should not render")
	}

	entries, _ := os.ReadDir(".")
	if len(entries) != 0 {
		t.Error("dot should not write files")
	}
}

func TestDescribe(t *testing.T) {
	tc := newTestCLI(t, &stubBackend{})

	if err := tc.run("describe"); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	got := tc.out.String()
	for _, want := range []string{
		adk.Comment,
		"Google ADK (LlmAgent, SequentialAgent)",
		"RAG (Vector Store, Knowledge Base)",
		"Deliver Response",
		"(return)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("describe output missing %q:\n%s", want, got)
		}
	}
}

func TestCompletion(t *testing.T) {
	tc := newTestCLI(t, &stubBackend{})

	if err := tc.run("completion", "bash"); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if !strings.Contains(tc.out.String(), "adkdiagram") {
		t.Error("completion script should reference the command name")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{49357, "48.2 KB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
