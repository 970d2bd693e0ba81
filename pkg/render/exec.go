package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
	"github.com/matzehuels/adkdiagram/pkg/errors"
)

const defaultDotBinary = "dot"

// Exec renders through the Graphviz dot executable, feeding the description
// on stdin and reading the image from stdout.
type Exec struct {
	binary string
}

// NewExec creates an exec backend for the given dot binary.
// An empty binary means "dot" resolved on PATH.
func NewExec(binary string) *Exec {
	if binary == "" {
		binary = defaultDotBinary
	}
	return &Exec{binary: binary}
}

// Name implements [Backend].
func (e *Exec) Name() string { return BackendExec }

// Render implements [Backend].
func (e *Exec) Render(ctx context.Context, dot []byte, format diagram.Format) ([]byte, error) {
	path, err := lookPath(e.binary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderingUnavailable, err,
			"graphviz executable %q not found. Install with:\n  macOS:  brew install graphviz\n  Linux:  apt install graphviz", e.binary)
	}

	cmd := exec.CommandContext(ctx, path, "-T"+string(format))
	cmd.Stdin = bytes.NewReader(dot)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeRenderingUnavailable, err, "%s -T%s: %s", e.binary, format, strings.TrimSpace(errBuf.String()))
	}
	if out.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRenderingUnavailable, "%s -T%s produced no output", e.binary, format)
	}
	return out.Bytes(), nil
}

var _ Backend = (*Exec)(nil)
