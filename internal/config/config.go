// Package config loads optional render settings from a TOML file.
//
// Precedence is defaults < file < command-line flags; the CLI applies flags on
// top of the loaded [Config]. A missing default file is not an error.
package config

import (
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/adkdiagram/pkg/diagram"
	"github.com/matzehuels/adkdiagram/pkg/diagram/adk"
	"github.com/matzehuels/adkdiagram/pkg/errors"
	"github.com/matzehuels/adkdiagram/pkg/render"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "adkdiagram.toml"

// Config holds render settings.
type Config struct {
	Output     string `toml:"output"`      // artifact base name, without extension
	Format     string `toml:"format"`      // image format
	Backend    string `toml:"backend"`     // auto, embedded or exec
	KeepSource bool   `toml:"keep_source"` // also write the DOT description
}

// Default returns the settings that produce adk_fancy_diagram.png and its DOT description.
func Default() Config {
	return Config{
		Output:     adk.Filename,
		Format:     string(adk.DefaultFormat),
		Backend:    render.BackendAuto,
		KeepSource: true,
	}
}

// Load reads path on top of [Default]. An empty path reads [DefaultFile] if
// it exists; an explicit path must exist.
//
// Field values are not checked here: callers apply their overrides first and
// then call [Config.Validate] on the merged result.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := errors.ValidateOutputBase(c.Output); err != nil {
		return err
	}
	if !diagram.Format(c.Format).Valid() {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %v)", c.Format, diagram.Formats)
	}
	if !slices.Contains(render.BackendNames, c.Backend) {
		return errors.New(errors.ErrCodeInvalidBackend, "invalid backend: %s (must be one of %v)", c.Backend, render.BackendNames)
	}
	return nil
}
