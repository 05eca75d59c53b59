package publish

import (
	"bytes"
	"context"

	"github.com/vango-dev/marks/internal/errors"
	"github.com/vango-dev/marks/pkg/raster"
	"github.com/vango-dev/marks/pkg/render"
)

// Format is a snapshot encoding.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Publisher renders charts and stores them.
type Publisher struct {
	store   Store
	svg     *render.Renderer
	painter *raster.Painter
	formats []Format
}

// NewPublisher creates a publisher writing SVG and PNG to store.
func NewPublisher(store Store) *Publisher {
	return &Publisher{
		store:   store,
		svg:     render.NewRenderer(render.RendererConfig{Declaration: true}),
		painter: raster.NewPainter(),
		formats: []Format{SVG, PNG},
	}
}

// WithFormats restricts the formats written.
func (p *Publisher) WithFormats(formats ...Format) *Publisher {
	p.formats = formats
	return p
}

// WithPainter replaces the PNG painter.
func (p *Publisher) WithPainter(painter *raster.Painter) *Publisher {
	p.painter = painter
	return p
}

// Encode renders chart in format f.
func (p *Publisher) Encode(chart *render.Chart, f Format) ([]byte, error) {
	var buf bytes.Buffer
	root := chart.Node()
	switch f {
	case SVG:
		if err := p.svg.RenderToWriter(&buf, root); err != nil {
			return nil, errors.New("M301").Wrap(err)
		}
	case PNG:
		if err := p.painter.EncodePNG(&buf, root, chart.Width, chart.Height()); err != nil {
			return nil, errors.New("M302").Wrap(err)
		}
	default:
		return nil, errors.New("M303").WithDetailf("unknown format %q", f)
	}
	return buf.Bytes(), nil
}

// Publish stores chart as name.<format> for each configured format and
// returns the stored locations in the same order.
func (p *Publisher) Publish(ctx context.Context, name string, chart *render.Chart) ([]string, error) {
	locations := make([]string, 0, len(p.formats))
	for _, f := range p.formats {
		body, err := p.Encode(chart, f)
		if err != nil {
			return locations, err
		}
		loc, err := p.store.Put(ctx, name+"."+string(f), f.ContentType(), body)
		if err != nil {
			return locations, errors.New("M401").WithDetail(name + "." + string(f)).Wrap(err)
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
