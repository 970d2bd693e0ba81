// Package cli implements the adkdiagram command-line interface.
//
// Running the binary with no arguments renders the ADK architecture diagram
// to adk_fancy_diagram.png and keeps the DOT description next to it. The
// render, dot and describe subcommands expose the individual steps.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging via
// charmbracelet/log. Status lines go to stdout styled with lipgloss; logs
// go to stderr.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/adkdiagram/internal/config"
	"github.com/matzehuels/adkdiagram/pkg/buildinfo"
	"github.com/matzehuels/adkdiagram/pkg/render"
)

// appName is the application name used for display.
const appName = "adkdiagram"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer
	newBackend func(name string) (render.Backend, error)
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		out:        os.Stdout,
		newBackend: render.NewBackend,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself renders the diagram.
func (c *CLI) RootCommand() *cobra.Command {
	opts := renderOpts{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Render the ADK-RAG-MCP-LLM interaction diagram",
		Long: `adkdiagram draws a fixed architecture diagram of how a user query flows
through Google ADK agents, a RAG knowledge base, an MCP tool server and an LLM,
and writes it to adk_fancy_diagram.png in the current directory.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRenderCommand(cmd, &opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.PersistentFlags().String("config", "", "path to a TOML config file (default ./"+config.DefaultFile+" if present)")
	addRenderFlags(root, &opts)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.completionCommand())

	return root
}
