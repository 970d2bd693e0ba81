package render

import (
	"context"
	"os/exec"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
	"github.com/matzehuels/adkdiagram/pkg/errors"
)

// Backend turns a DOT description into image bytes.
//
// Implementations return an error coded [errors.ErrCodeRenderingUnavailable]
// when they cannot execute (missing tool, failed layout) and must not write
// anything to disk themselves.
type Backend interface {
	// Name identifies the backend in logs, e.g. "embedded".
	Name() string
	// Render lays out dot and encodes it in format.
	Render(ctx context.Context, dot []byte, format diagram.Format) ([]byte, error)
}

// Backend names accepted by [NewBackend].
const (
	BackendAuto     = "auto"
	BackendEmbedded = "embedded"
	BackendExec     = "exec"
)

// BackendNames lists the accepted backend names in display order.
var BackendNames = []string{BackendAuto, BackendEmbedded, BackendExec}

// lookPath is swapped in tests to simulate a missing Graphviz installation.
var lookPath = exec.LookPath

// NewBackend returns the backend registered under name. An empty name means
// [BackendAuto].
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", BackendAuto:
		return Auto(), nil
	case BackendEmbedded:
		return NewEmbedded(), nil
	case BackendExec:
		return NewExec(""), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidBackend, "unknown backend: %s (must be 'auto', 'embedded', or 'exec')", name)
	}
}

// Auto prefers the system Graphviz installation, which supports gradients and
// orthogonal routing in full, and falls back to the embedded renderer when
// the dot executable is not on PATH.
func Auto() Backend {
	if _, err := lookPath(defaultDotBinary); err == nil {
		return NewExec("")
	}
	return NewEmbedded()
}
