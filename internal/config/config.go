// Package config loads mtimes run files.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/csotherden/gorgonia-mtimes/internal/logging"
	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

// Environment variables that override run file settings.
const (
	// EnvLogLevel overrides log.level.
	EnvLogLevel = "MTIMES_LOG_LEVEL"
	// EnvBackend overrides backend.
	EnvBackend = "MTIMES_BACKEND"
)

// Backend names the implementation that computes the product.
type Backend string

const (
	BackendKernel Backend = "kernel"
	BackendEngine Backend = "engine"
	BackendGraph  Backend = "graph"
)

// Layout is the element order of the B values in a run file.
type Layout string

const (
	LayoutColumn Layout = "column"
	LayoutRow    Layout = "row"
)

// Operand is the dynamically shaped right-hand matrix as written in a
// run file.
type Operand struct {
	Rows   int32
	Cols   int32
	Layout Layout
	Data   []float64
}

// Config is a resolved run file.
type Config struct {
	Backend Backend
	Log     logging.Config
	A       []float64 // column-major 2x4
	B       Operand
}

// run file key mapping.
type fileConfig struct {
	Backend string `toml:"backend"`
	Log     struct {
		Level   string `toml:"level"`
		Console bool   `toml:"console"`
	} `toml:"log"`
	A struct {
		Data []float64 `toml:"data"`
	} `toml:"a"`
	B struct {
		Rows   int32     `toml:"rows"`
		Cols   int32     `toml:"cols"`
		Layout string    `toml:"layout"`
		Data   []float64 `toml:"data"`
	} `toml:"b"`
}

// Default returns the settings used for keys a run file leaves out.
func Default() Config {
	return Config{
		Backend: BackendKernel,
		Log: logging.Config{
			Level:   "info",
			Console: true,
		},
		B: Operand{
			Rows:   mtimes.ACols,
			Layout: LayoutColumn,
		},
	}
}

// Load decodes path over Default and applies environment overrides. It
// does not validate: callers apply their own overrides first and then call
// Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "load mtimes config")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("load mtimes config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("backend") {
		cfg.Backend = Backend(strings.ToLower(strings.TrimSpace(raw.Backend)))
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "console") {
		cfg.Log.Console = raw.Log.Console
	}
	if meta.IsDefined("a", "data") {
		cfg.A = raw.A.Data
	}
	if meta.IsDefined("b", "rows") {
		cfg.B.Rows = raw.B.Rows
	}
	if meta.IsDefined("b", "cols") {
		cfg.B.Cols = raw.B.Cols
	}
	if meta.IsDefined("b", "layout") {
		cfg.B.Layout = Layout(strings.ToLower(strings.TrimSpace(raw.B.Layout)))
	}
	if meta.IsDefined("b", "data") {
		cfg.B.Data = raw.B.Data
	}

	ApplyEnv(&cfg, os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides cfg from the MTIMES_* environment variables.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvBackend)); v != "" {
		cfg.Backend = Backend(strings.ToLower(v))
	}
}

// Validate checks the backend and layout names and the operand sizes.
// B's row count is not checked here; a mismatch surfaces as
// mtimes.ErrDimensionMismatch when the product is computed.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendKernel, BackendEngine, BackendGraph:
	default:
		return errors.Errorf("config: unknown backend %q", c.Backend)
	}
	switch c.B.Layout {
	case LayoutColumn, LayoutRow:
	default:
		return errors.Errorf("config: unknown layout %q", c.B.Layout)
	}
	if len(c.A) != len(mtimes.Fixed2x4{}) {
		return errors.Errorf("config: a.data has %d values, want %d", len(c.A), len(mtimes.Fixed2x4{}))
	}
	if c.B.Rows < 0 || c.B.Cols < 0 {
		return errors.Wrapf(mtimes.ErrBadShape, "config: b is %dx%d", c.B.Rows, c.B.Cols)
	}
	if want := int(c.B.Rows) * int(c.B.Cols); len(c.B.Data) != want {
		return errors.Errorf("config: b.data has %d values, want %d", len(c.B.Data), want)
	}
	return nil
}

// Fixed returns A as the fixed-shape operand.
func (c Config) Fixed() mtimes.Fixed2x4 {
	var a mtimes.Fixed2x4
	copy(a[:], c.A)
	return a
}

// Matrix returns B in column-major storage.
func (o Operand) Matrix() (mtimes.Matrix, error) {
	if o.Layout == LayoutRow {
		return mtimes.FromRowMajor(int(o.Rows), int(o.Cols), o.Data)
	}
	m := mtimes.Matrix{
		Data: append([]float64(nil), o.Data...),
		Size: mtimes.Size{o.Rows, o.Cols},
	}
	if err := m.Validate(); err != nil {
		return mtimes.Matrix{}, err
	}
	return m, nil
}
