package render

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
	"github.com/matzehuels/adkdiagram/pkg/errors"
)

// Renderer writes a graph's image (and optionally its description) to disk
// through a [Backend].
type Renderer struct {
	backend Backend
	logger  *log.Logger
}

// New creates a renderer. A nil logger means log.Default().
func New(b Backend, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{backend: b, logger: logger}
}

// Result describes the artifacts written by [Renderer.Render].
type Result struct {
	ImagePath  string         // <base>.<ext>
	SourcePath string         // <base>, empty unless the description was kept
	Format     diagram.Format // format of the image
	Backend    string         // name of the backend that drew the image
	Size       int            // image size in bytes
	Duration   time.Duration  // time spent in the backend
}

// Render draws g in its declared format and writes the image to
// base+"."+format. When keepSource is true, the DOT description is also
// written to base itself.
//
// Failures to draw or to write are returned with code
// [errors.ErrCodeRenderingUnavailable]. A failed Render neither leaves new
// files behind nor removes artifacts of an earlier run: the backend runs
// before any file is created, and all outputs are staged under temporary
// names before the first one is renamed into place.
func (r *Renderer) Render(ctx context.Context, g *diagram.Graph, base string, keepSource bool) (*Result, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no graph to render")
	}
	if err := errors.ValidateOutputBase(base); err != nil {
		return nil, err
	}
	format := g.Format()
	if !format.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "graph %q", g.Comment())
	}
	if r.backend == nil {
		return nil, errors.New(errors.ErrCodeRenderingUnavailable, "no rendering backend configured")
	}

	dot := []byte(g.DOT())
	r.logger.Debug("Rendering graph", "backend", r.backend.Name(), "format", format, "nodes", g.NodeCount(), "edges", g.EdgeCount())

	start := time.Now()
	data, err := r.backend.Render(ctx, dot, format)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeRenderingUnavailable, err, "%s backend", r.backend.Name())
		}
		return nil, err
	}
	elapsed := time.Since(start)
	r.logger.Debugf("Backend produced %d bytes in %s", len(data), elapsed.Round(time.Millisecond))

	result := &Result{
		ImagePath: base + format.Ext(),
		Format:    format,
		Backend:   r.backend.Name(),
		Size:      len(data),
		Duration:  elapsed,
	}

	files := []pendingFile{{path: result.ImagePath, data: data}}
	if keepSource {
		files = append(files, pendingFile{path: base, data: dot})
		result.SourcePath = base
	}
	if err := writeFilesAtomic(files...); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderingUnavailable, err, "write %s", result.ImagePath)
	}
	return result, nil
}

type pendingFile struct {
	path string
	data []byte
}

// writeFilesAtomic stages every file next to its destination under a
// temporary name, then renames them into place in order. Nothing is renamed
// unless all files were staged.
func writeFilesAtomic(files ...pendingFile) error {
	tmps := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range tmps {
			os.Remove(tmp) // no-op once renamed
		}
	}()

	for _, f := range files {
		tmp, err := stageFile(f.path, f.data)
		if err != nil {
			return err
		}
		tmps = append(tmps, tmp)
	}
	for i, f := range files {
		if err := os.Rename(tmps[i], f.path); err != nil {
			return err
		}
	}
	return nil
}

// stageFile writes data to a temporary file in path's directory and returns
// its name.
func stageFile(path string, data []byte) (string, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", err
	}
	return tmpName, nil
}
