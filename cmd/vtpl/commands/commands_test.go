package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/livefir/vtpl"
	"github.com/livefir/vtpl/cmd/vtpl/internal/config"
)

// setup moves into a fresh directory and captures stdout
func setup(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var out bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &bytes.Buffer{}
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return dir, &out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   string
	}{
		{name: "json by default", want: `"tag": "div"`},
		{name: "format flag", args: []string{"--format", "yaml"}, want: "tag: div"},
		{name: "single dash flag", args: []string{"-format", "yaml"}, want: "tag: div"},
		{name: "format from config", config: "format: yaml\n", want: "tag: div"},
		{name: "flag beats config", config: "format: yaml\n", args: []string{"--format", "json"}, want: `"tag": "div"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, out := setup(t)
			if tt.config != "" {
				writeFile(t, dir, config.ConfigFileName, tt.config)
			}
			path := writeFile(t, dir, "app.html", `<div :id="x">{{ a }}</div>`)

			if err := Parse(append(tt.args, path)); err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("Expected %q in output:\n%s", tt.want, out.String())
			}
		})
	}
}

func TestParse_Stdin(t *testing.T) {
	_, out := setup(t)
	oldIn := stdin
	stdin = strings.NewReader(`<p v-if="ok">yes</p>`)
	t.Cleanup(func() { stdin = oldIn })

	if err := Parse([]string{"-"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if !strings.Contains(out.String(), `"kind": "if"`) {
		t.Errorf("Expected condition in output:\n%s", out.String())
	}
}

func TestParse_Errors(t *testing.T) {
	dir, _ := setup(t)
	path := writeFile(t, dir, "loop.html", `<li v-for="x in xs">{{ x }}</li>`)

	err := Parse([]string{path})
	var loopErr vtpl.ErrLoopOnRoot
	if !errors.As(err, &loopErr) {
		t.Errorf("Expected ErrLoopOnRoot, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "loop.html") {
		t.Errorf("Expected file name in %q", err.Error())
	}

	err = Parse([]string{"--format", "xml", path})
	var invalid *config.InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidConfigError, got %v", err)
	}

	if err := Parse(nil); err == nil || !strings.Contains(err.Error(), "template file required") {
		t.Errorf("Expected missing file error, got %v", err)
	}
	if err := Parse([]string{path, path}); err == nil || !strings.Contains(err.Error(), "expected one template file") {
		t.Errorf("Expected too many files error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	dir, out := setup(t)
	path := writeFile(t, dir, "link.html", `<a v-bind:href="url" v-on:click="go">x</a>`)

	if err := Render([]string{path}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got, want := out.String(), "<a :href=\"url\" @click=\"go\">x</a>\n"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_Minify(t *testing.T) {
	dir, out := setup(t)
	path := writeFile(t, dir, "box.html", "<div class=\"box\">\n  <p>hello   world</p>\n</div>")

	if err := Render([]string{"--minify", path}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(out.String(), "hello   world") {
		t.Errorf("Expected collapsed whitespace, got %q", out.String())
	}
}

const document = `<html><body>
<div id="app"><p>{{ msg }}</p></div>
</body></html>`

func TestExtract(t *testing.T) {
	dir, out := setup(t)
	path := writeFile(t, dir, "index.html", document)

	if err := Extract([]string{"--id", "app", path}); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if got, want := out.String(), "<div id=\"app\"><p>{{ msg }}</p></div>\n"; got != want {
		t.Errorf("Extract() = %q, want %q", got, want)
	}
}

func TestExtract_IDFromConfig(t *testing.T) {
	dir, out := setup(t)
	writeFile(t, dir, config.ConfigFileName, "id: app\n")
	path := writeFile(t, dir, "index.html", document)

	if err := Extract([]string{path}); err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if !strings.Contains(out.String(), `id="app"`) {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestExtract_Errors(t *testing.T) {
	dir, _ := setup(t)
	path := writeFile(t, dir, "index.html", document)

	if err := Extract([]string{path}); err == nil || !strings.Contains(err.Error(), "element id required") {
		t.Errorf("Expected missing id error, got %v", err)
	}

	err := Extract([]string{"--id", "nope", path})
	var notFound vtpl.ErrElementNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("Expected ErrElementNotFound, got %v", err)
	}
}

func TestStats(t *testing.T) {
	dir, out := setup(t)
	good := writeFile(t, dir, "good.html", `<ul><li v-for="x in xs" :key="x">{{ x }}</li></ul>`)
	bad := writeFile(t, dir, "bad.html", `<li v-for="x in xs"></li>`)

	err := Stats([]string{good, bad})
	if err == nil || err.Error() != "1 of 2 templates failed" {
		t.Errorf("Expected failure summary, got %v", err)
	}

	got := out.String()
	for _, want := range []string{"good.html", "bad.html", "elements", "for=1 key=1", "Summary", "parsed"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in output:\n%s", want, got)
		}
	}
}

func TestStats_NoFiles(t *testing.T) {
	setup(t)
	if err := Stats(nil); err == nil {
		t.Error("Expected error without files")
	}
}

func TestInit(t *testing.T) {
	dir, out := setup(t)

	if err := Init(nil); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if !strings.Contains(out.String(), config.ConfigFileName) {
		t.Errorf("Unexpected output %q", out.String())
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("Expected default config, got %+v", cfg)
	}

	if err := Init(nil); err == nil {
		t.Error("Expected error when config exists")
	}
	if err := Init([]string{"--force"}); err != nil {
		t.Errorf("Init(--force) error: %v", err)
	}
}
