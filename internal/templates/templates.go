package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/marks/internal/errors"
)

// Config contains template values.
type Config struct {
	// Title is written into the config and the sample dataset.
	Title string
}

// Template is a set of files written into a project directory.
type Template struct {
	Name        string
	Description string

	// Files maps relative paths to text/template sources.
	Files map[string]string
}

var templates = map[string]*Template{
	"basic":    basicTemplate(),
	"labelled": labelledTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("M104").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: basic, labelled")
	}
	return tmpl, nil
}

// List returns all template names in sorted order.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create writes the template into dir. Existing files are left alone unless
// overwrite is set.
func (t *Template) Create(dir string, cfg Config, overwrite bool) ([]string, error) {
	paths := make([]string, 0, len(t.Files))
	for rel := range t.Files {
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	if !overwrite {
		for _, rel := range paths {
			if _, err := os.Stat(filepath.Join(dir, rel)); err == nil {
				return nil, errors.New("M105").WithLocation(filepath.Join(dir, rel), 0).
					WithSuggestion("Use --force to overwrite")
			}
		}
	}

	written := make([]string, 0, len(paths))
	for _, rel := range paths {
		tmpl, err := template.New(rel).Parse(t.Files[rel])
		if err != nil {
			return written, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", rel, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return written, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", rel, err)
		}

		full := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(full, buf.Bytes(), 0644); err != nil {
			return written, err
		}
		written = append(written, full)
	}
	return written, nil
}

func basicTemplate() *Template {
	return &Template{
		Name:        "basic",
		Description: "One row of circles over a few frames",
		Files: map[string]string{
			"marks.json": `{
  "title": {{printf "%q" .Title}},
  "width": 640,
  "symbol": {"shape": "circle", "size": 10, "fill": "steelblue"},
  "transition": {"duration": "400ms", "ease": "cubic"},
  "publish": {"dir": "dist"}
}
`,
			"frames.yaml": `title: {{printf "%q" .Title}}
domain: [0, 100]
frames:
  - name: start
    data: [10, 25, 40, 70]
  - name: shift
    data: [25, 40, 55, 70, 90]
  - name: zoom
    domain: [0, 200]
    data: [25, 40, 55, 90]
`,
		},
	}
}

func labelledTemplate() *Template {
	return &Template{
		Name:        "labelled",
		Description: "Several labelled rows of diamonds",
		Files: map[string]string{
			"marks.yaml": `title: {{printf "%q" .Title}}
width: 800
symbol:
  shape: diamond
  size: 12
  fill: darkorange
label:
  enabled: true
  fontSize: 9
transition:
  duration: 600ms
  ease: out-cubic
server:
  frameInterval: 2s
publish:
  dir: dist
`,
			"frames.yaml": `title: {{printf "%q" .Title}}
domain: [0, 500]
frames:
  - name: week 1
    rows:
      - {name: api, data: [120, 180, 240]}
      - {name: web, data: [60, 90]}
      - {name: worker, data: [300]}
  - name: week 2
    rows:
      - {name: api, data: [180, 240, 310]}
      - {name: web, data: [90, 140]}
  - name: week 3
    rows:
      - {name: api, data: [240, 310]}
      - {name: web, data: [90, 140, 200]}
      - {name: worker, data: [300, 420]}
`,
		},
	}
}
