package dataset

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/scale"
	"github.com/vango-dev/marks/pkg/scatter"
)

// DefaultRow names the row produced by a frame's bare data list.
const DefaultRow = "default"

// Format is a dataset encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New("M203").WithLocation(path, 0)
}

// Row is one named series of values.
type Row struct {
	Name string    `json:"name" yaml:"name"`
	Data []float64 `json:"data" yaml:"data"`
}

// Frame is one state of the chart.
type Frame struct {
	Name   string    `json:"name,omitempty" yaml:"name,omitempty"`
	Domain []float64 `json:"domain,omitempty" yaml:"domain,omitempty"`
	Data   []float64 `json:"data,omitempty" yaml:"data,omitempty"`
	Rows   []Row     `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Series returns the frame's rows, expanding the bare data shorthand and
// naming anonymous rows by position.
func (f Frame) Series() []Row {
	rows := f.Rows
	if len(rows) == 0 && f.Data != nil {
		return []Row{{Name: DefaultRow, Data: f.Data}}
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		if r.Name == "" {
			r.Name = "row-" + strconv.Itoa(i)
		}
		out[i] = r
	}
	if f.Data != nil {
		out = append(out, Row{Name: DefaultRow, Data: f.Data})
	}
	return out
}

// Values returns every value in the frame.
func (f Frame) Values() []float64 {
	var all []float64
	for _, r := range f.Series() {
		all = append(all, r.Data...)
	}
	return all
}

// Row returns the named row's data, or nil when the frame lacks it.
func (f Frame) Row(name string) []float64 {
	for _, r := range f.Series() {
		if r.Name == name {
			return r.Data
		}
	}
	return nil
}

// Dataset is a decoded frame file.
type Dataset struct {
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Domain is the default x domain. Frames without a domain of their own
	// fall back to it, then to the extent of their values.
	Domain []float64 `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Range is the x range. Empty means [0, width].
	Range []float64 `json:"range,omitempty" yaml:"range,omitempty"`

	Frames []Frame `json:"frames" yaml:"frames"`
}

// Load reads and decodes a dataset file.
func Load(path string) (*Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("M201").WithLocation(path, 0).Wrap(err)
	}
	ds, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.Location == nil {
			e.WithLocation(path, lineOf(err))
		}
		return nil, err
	}
	return ds, nil
}

// Decode reads a dataset in the given format and validates it.
func Decode(r io.Reader, format Format) (*Dataset, error) {
	ds := &Dataset{}
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(ds)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(ds)
	default:
		return nil, errors.New("M203").WithDetailf("unknown format %q", format)
	}
	if err != nil {
		return nil, errors.New("M201").Wrap(err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate checks the frame list and domain shapes.
func (ds *Dataset) Validate() error {
	if len(ds.Frames) == 0 {
		return errors.New("M202").WithSuggestion("Add at least one entry under frames")
	}
	if err := checkPair("domain", ds.Domain); err != nil {
		return err
	}
	if err := checkPair("range", ds.Range); err != nil {
		return err
	}
	for i, f := range ds.Frames {
		if err := checkPair("frames["+strconv.Itoa(i)+"].domain", f.Domain); err != nil {
			return err
		}
	}
	return nil
}

func checkPair(field string, v []float64) error {
	if len(v) != 0 && len(v) != 2 {
		return errors.New("M201").WithDetailf("%s must have two values, got %d", field, len(v))
	}
	return nil
}

// Len returns the number of frames.
func (ds *Dataset) Len() int {
	return len(ds.Frames)
}

// Append adds a frame after validating its domain.
func (ds *Dataset) Append(f Frame) error {
	if err := checkPair("domain", f.Domain); err != nil {
		return err
	}
	ds.Frames = append(ds.Frames, f)
	return nil
}

// RowNames returns every row name across all frames in order of first
// appearance.
func (ds *Dataset) RowNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range ds.Frames {
		for _, r := range f.Series() {
			if !seen[r.Name] {
				seen[r.Name] = true
				names = append(names, r.Name)
			}
		}
	}
	return names
}

// Scale returns the x scale of frame i for a chart of the given width.
func (ds *Dataset) Scale(i int, width float64) scale.Linear {
	f := ds.Frames[i]
	var d0, d1 float64
	switch {
	case len(f.Domain) == 2:
		d0, d1 = f.Domain[0], f.Domain[1]
	case len(ds.Domain) == 2:
		d0, d1 = ds.Domain[0], ds.Domain[1]
	default:
		d0, d1 = scale.Extent(f.Values())
	}
	r0, r1 := 0.0, width
	if len(ds.Range) == 2 {
		r0, r1 = ds.Range[0], ds.Range[1]
	}
	return scale.NewLinear(d0, d1, r0, r1)
}

// Collection builds the collection bound to the named row for frame i. A
// row missing from the frame yields an empty collection, so all its marks
// exit.
func (ds *Dataset) Collection(i int, row string, width float64) scatter.Collection[float64] {
	return scatter.Collection[float64]{
		Data:   ds.Frames[i].Row(row),
		Series: scatter.Series[float64]{XScale: ds.Scale(i, width)},
	}
}

// lineOf extracts the line number yaml.v3 reports in its messages.
func lineOf(err error) int {
	_, rest, ok := strings.Cut(err.Error(), "line ")
	if !ok {
		return 0
	}
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(rest[:end])
	return n
}
