// Package playback steps a scatter line through the frames of a dataset,
// one container per dataset row, and assembles the resulting chart.
package playback

import (
	"context"
	"log/slog"

	"github.com/vango-dev/marks/pkg/dataset"
	"github.com/vango-dev/marks/pkg/render"
	"github.com/vango-dev/marks/pkg/scatter"
	"github.com/vango-dev/marks/pkg/selection"
	"github.com/vango-dev/marks/pkg/vdom"
)

// DefaultRowHeight is used when neither the line nor its renderer declares
// a layout height.
const DefaultRowHeight = 20

// Option configures a Player.
type Option func(*Player)

// WithWidth sets the chart width and the default scale range.
func WithWidth(w float64) Option {
	return func(p *Player) { p.width = w }
}

// WithTitle sets the SVG title.
func WithTitle(title string) Option {
	return func(p *Player) { p.title = title }
}

// WithBackground sets the chart background color.
func WithBackground(c string) Option {
	return func(p *Player) { p.background = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) { p.logger = logger }
}

// Player owns the containers of a chart and reconciles them frame by frame.
// It is not safe for concurrent use.
type Player struct {
	line       *scatter.Line[float64]
	ds         *dataset.Dataset
	width      float64
	title      string
	background string
	logger     *slog.Logger

	rows  []*selection.Container[float64]
	frame int
}

// New creates a player positioned before the first frame.
func New(ds *dataset.Dataset, line *scatter.Line[float64], opts ...Option) *Player {
	p := &Player{
		line:   line,
		ds:     ds,
		width:  640,
		title:  ds.Title,
		logger: slog.Default(),
		frame:  -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.syncRows()
	return p
}

// syncRows adds a container for each dataset row not yet seen.
func (p *Player) syncRows() {
	have := make(map[string]bool, len(p.rows))
	for _, c := range p.rows {
		have[c.Name()] = true
	}
	for _, name := range p.ds.RowNames() {
		if !have[name] {
			p.rows = append(p.rows, selection.NewContainer[float64](name))
		}
	}
}

// Len returns the number of frames.
func (p *Player) Len() int {
	return p.ds.Len()
}

// Frame returns the index of the last reconciled frame, or -1.
func (p *Player) Frame() int {
	return p.frame
}

// Dataset returns the dataset being played.
func (p *Player) Dataset() *dataset.Dataset {
	return p.ds
}

// Line returns the scatter line driving the containers.
func (p *Player) Line() *scatter.Line[float64] {
	return p.line
}

// Rows returns the row containers in dataset order.
func (p *Player) Rows() []*selection.Container[float64] {
	return p.rows
}

// Seek reconciles every row against frame i. Out-of-range indices are ignored.
func (p *Player) Seek(ctx context.Context, i int) {
	if i < 0 || i >= p.ds.Len() {
		return
	}
	p.syncRows()
	bindings := make([]scatter.Binding[float64], len(p.rows))
	for j, c := range p.rows {
		bindings[j] = scatter.Binding[float64]{
			Container:  c,
			Collection: p.ds.Collection(i, c.Name(), p.width),
		}
	}
	p.line.ReconcileAll(ctx, bindings...)
	p.frame = i
	p.logger.DebugContext(ctx, "frame reconciled", "frame", i, "name", p.ds.Frames[i].Name, "rows", len(p.rows))
}

// Next advances one frame. When loop is set the last frame wraps to the
// first; otherwise Next reports false at the end.
func (p *Player) Next(ctx context.Context, loop bool) bool {
	next := p.frame + 1
	if next >= p.ds.Len() {
		if !loop || p.ds.Len() == 0 {
			return false
		}
		next = 0
	}
	p.Seek(ctx, next)
	return true
}

// Append adds a frame to the dataset and reconciles it.
func (p *Player) Append(ctx context.Context, f dataset.Frame) error {
	if err := p.ds.Append(f); err != nil {
		return err
	}
	p.Seek(ctx, p.ds.Len()-1)
	return nil
}

// Replace swaps in a new dataset, keeping the containers and their memos so
// that marks shared with the new data animate rather than re-enter. Rows the
// new dataset no longer names have their marks exited and are dropped.
func (p *Player) Replace(ctx context.Context, ds *dataset.Dataset) {
	keep := make(map[string]bool)
	for _, name := range ds.RowNames() {
		keep[name] = true
	}
	rows := make([]*selection.Container[float64], 0, len(p.rows))
	for _, c := range p.rows {
		if keep[c.Name()] {
			rows = append(rows, c)
			continue
		}
		p.line.Reconcile(ctx, c, scatter.Collection[float64]{})
		p.logger.DebugContext(ctx, "row dropped", "row", c.Name())
	}
	p.rows = rows

	p.ds = ds
	if ds.Title != "" {
		p.title = ds.Title
	}
	p.frame = -1
	p.Seek(ctx, 0)
}

// RowHeight returns the vertical extent given to each row.
func (p *Player) RowHeight() float64 {
	if h := p.line.LayoutHeight(); h > 0 {
		return h
	}
	return DefaultRowHeight
}

// Chart assembles the current rows into a chart.
func (p *Player) Chart() *render.Chart {
	c := render.NewChart(p.width)
	c.Title = p.title
	c.Background = p.background
	h := p.RowHeight()
	for _, row := range p.rows {
		c.Add(render.RowOf(row, h))
	}
	return c
}

// Snapshot returns a detached copy of the current chart tree.
func (p *Player) Snapshot() *vdom.VNode {
	return p.Chart().Node().Clone()
}
