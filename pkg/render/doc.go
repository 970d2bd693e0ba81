// Package render draws diagram graphs to image files.
//
// # Overview
//
// A [Renderer] serializes a [diagram.Graph] to DOT, hands it to a [Backend]
// and writes the result next to an optional copy of the description:
//
//	r := render.New(render.Auto(), logger)
//	res, err := r.Render(ctx, g, "adk_fancy_diagram", true)
//	// res.ImagePath  == "adk_fancy_diagram.png"
//	// res.SourcePath == "adk_fancy_diagram"
//
// # Backends
//
//   - [Embedded]: in-process Graphviz via [github.com/goccy/go-graphviz].
//     Renders svg, png, jpg and dot natively; pdf goes through rsvg-convert.
//   - [Exec]: the system dot executable, for full Graphviz fidelity.
//   - [Auto]: Exec when dot is on PATH, Embedded otherwise.
//
// # Errors
//
// A backend that cannot run, and an output location that cannot be written,
// both surface as [errors.ErrCodeRenderingUnavailable]. No artifact is left
// behind on failure.
//
// [diagram.Graph]: github.com/matzehuels/adkdiagram/pkg/diagram.Graph
// [errors.ErrCodeRenderingUnavailable]: github.com/matzehuels/adkdiagram/pkg/errors.ErrCodeRenderingUnavailable
package render
