package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/adkdiagram/internal/config"
	"github.com/matzehuels/adkdiagram/pkg/diagram"
	"github.com/matzehuels/adkdiagram/pkg/diagram/adk"
	"github.com/matzehuels/adkdiagram/pkg/errors"
	"github.com/matzehuels/adkdiagram/pkg/render"
)

// renderOpts holds the command-line flags for rendering.
// Only flags the user actually set override the config file.
type renderOpts struct {
	output  string // artifact base name, without extension
	format  string // image format
	backend string // auto, embedded or exec
	cleanup bool   // drop the DOT description after rendering
}

// renderCommand creates the render command. It does the same as running the
// root command without a subcommand.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the diagram to an image file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRenderCommand(cmd, &opts)
		},
	}

	addRenderFlags(cmd, &opts)
	return cmd
}

// addRenderFlags registers the render flags on cmd.
func addRenderFlags(cmd *cobra.Command, opts *renderOpts) {
	defaults := config.Default()
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaults.Output, "output base name; the format extension is appended")
	cmd.Flags().StringVarP(&opts.format, "format", "f", defaults.Format, "image format: "+joinFormats())
	cmd.Flags().StringVar(&opts.backend, "backend", defaults.Backend, "rendering backend: "+strings.Join(render.BackendNames, ", "))
	cmd.Flags().BoolVar(&opts.cleanup, "cleanup", !defaults.KeepSource, "remove the intermediate DOT description after rendering")
}

func joinFormats() string {
	names := make([]string, len(diagram.Formats))
	for i, f := range diagram.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// resolveConfig loads the config file and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, opts *renderOpts) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("cleanup") {
		cfg.KeepSource = !opts.cleanup
	}
	return cfg, cfg.Validate()
}

func (c *CLI) runRenderCommand(cmd *cobra.Command, opts *renderOpts) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	_, err = c.runRender(cmd.Context(), cfg)
	return err
}

// runRender builds the ADK diagram and renders it as described by cfg.
func (c *CLI) runRender(ctx context.Context, cfg config.Config) (*render.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	g, err := adk.Build(diagram.Format(cfg.Format))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "build diagram")
	}
	c.Logger.Debugf("Built graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	backend, err := c.newBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	c.Logger.Infof("Rendering %s with %s backend", cfg.Output+diagram.Format(cfg.Format).Ext(), backend.Name())

	prog := newProgress(c.Logger)
	res, err := render.New(backend, c.Logger).Render(ctx, g, cfg.Output, cfg.KeepSource)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Rendered %d nodes, %d edges", g.NodeCount(), g.EdgeCount()))

	c.Logger.Debugf("%s backend took %s", res.Backend, res.Duration.Round(time.Millisecond))
	printSuccess(c.out, "Generated %s diagram (%s)", res.Format, formatSize(res.Size))
	printFile(c.out, res.ImagePath)
	if res.SourcePath != "" {
		printFile(c.out, res.SourcePath)
	}
	return res, nil
}

// formatSize renders a byte count for status lines, e.g. "48.2 KB".
func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
