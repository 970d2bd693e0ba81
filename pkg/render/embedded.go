package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
	"github.com/matzehuels/adkdiagram/pkg/errors"
)

// Embedded lays out in-process with the WebAssembly build of Graphviz, so it
// needs no Graphviz installation. SVG and DOT come straight from Graphviz.
// PNG, JPG and PDF are converted from the SVG by rsvg-convert; the WASM
// build's own raster output loses pen colors and dashed strokes.
type Embedded struct {
	// Scale multiplies the raster size of PNG and JPG output.
	Scale float64
}

// NewEmbedded creates an embedded backend drawing rasters at 1x.
func NewEmbedded() *Embedded { return &Embedded{Scale: 1} }

// Name implements [Backend].
func (e *Embedded) Name() string { return BackendEmbedded }

// Render implements [Backend].
func (e *Embedded) Render(ctx context.Context, dot []byte, format diagram.Format) ([]byte, error) {
	switch format {
	case diagram.FormatSVG:
		return e.render(ctx, dot, graphviz.SVG)
	case diagram.FormatDOT:
		return e.render(ctx, dot, graphviz.XDOT)
	case diagram.FormatPNG, diagram.FormatJPG, diagram.FormatPDF:
		return e.rasterize(ctx, dot, format)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "embedded backend cannot render %s", format)
}

func (e *Embedded) rasterize(ctx context.Context, dot []byte, format diagram.Format) ([]byte, error) {
	svg, err := e.render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	switch format {
	case diagram.FormatPNG:
		return ToPNG(ctx, svg, e.Scale)
	case diagram.FormatJPG:
		return ToJPG(ctx, svg, e.Scale)
	default:
		return ToPDF(ctx, svg)
	}
}

func (e *Embedded) render(ctx context.Context, dot []byte, format graphviz.Format) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderingUnavailable, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderingUnavailable, err, "render %s", format)
	}
	if buf.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRenderingUnavailable, "graphviz produced no %s output", format)
	}
	return buf.Bytes(), nil
}

var _ Backend = (*Embedded)(nil)
