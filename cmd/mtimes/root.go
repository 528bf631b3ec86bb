package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/csotherden/gorgonia-mtimes/engine"
	"github.com/csotherden/gorgonia-mtimes/internal/config"
	"github.com/csotherden/gorgonia-mtimes/internal/logging"
	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

type rootFlags struct {
	configPath string
	backend    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           "mtimes",
		Short:         "Multiply a fixed 2x4 matrix by a 4xn matrix read from a TOML run file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "path to the TOML run file")
	cmd.Flags().StringVar(&flags.backend, "backend", "", "override backend: kernel, engine or graph")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "override log level")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func run(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.backend != "" {
		cfg.Backend = config.Backend(strings.ToLower(flags.backend))
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.Log, cmd.ErrOrStderr(), "mtimes")
	b, err := cfg.B.Matrix()
	if err != nil {
		return err
	}
	log.Debug().
		Str("backend", string(cfg.Backend)).
		Int("b_rows", b.Rows()).
		Int("b_cols", b.Cols()).
		Msg("computing product")

	c, err := compute(cfg.Backend, cfg.Fixed(), b, log)
	if err != nil {
		return err
	}
	log.Info().Int("c_cols", c.Cols()).Msg("product computed")
	return printMatrix(cmd.OutOrStdout(), c)
}

// compute returns A*B with the selected backend.
func compute(backend config.Backend, a mtimes.Fixed2x4, b mtimes.Matrix, log zerolog.Logger) (mtimes.Matrix, error) {
	if backend == config.BackendKernel {
		data, size, err := mtimes.Mtimes(a, b.Data, b.Size)
		if err != nil {
			return mtimes.Matrix{}, err
		}
		return mtimes.Matrix{Data: data, Size: size}, nil
	}
	if b.Rows() != mtimes.ACols {
		return mtimes.Matrix{}, errors.Wrapf(mtimes.ErrDimensionMismatch, "mtimes: B has %d rows, want %d", b.Rows(), mtimes.ACols)
	}

	ta, err := engine.ToTensor(a.Matrix())
	if err != nil {
		return mtimes.Matrix{}, err
	}
	tb, err := engine.ToTensor(b)
	if err != nil {
		return mtimes.Matrix{}, err
	}

	switch backend {
	case config.BackendEngine:
		tc, err := engine.NewEng(engine.WithLogger(log)).Multiply(ta, tb)
		if err != nil {
			return mtimes.Matrix{}, err
		}
		return engine.FromTensor(tc)
	case config.BackendGraph:
		tc, err := engine.GraphMatMul(ta, tb)
		if err != nil {
			return mtimes.Matrix{}, err
		}
		return engine.FromTensor(tc)
	default:
		return mtimes.Matrix{}, errors.Errorf("unknown backend %q", backend)
	}
}

func printMatrix(w io.Writer, c mtimes.Matrix) error {
	if _, err := fmt.Fprintf(w, "C_size = [%d %d]\n", c.Size[0], c.Size[1]); err != nil {
		return err
	}
	if c.Cols() == 0 {
		return nil
	}
	for i := 0; i < c.Rows(); i++ {
		row := make([]string, c.Cols())
		for j := range row {
			row[j] = fmt.Sprintf("%g", c.Data[c.Index(i, j)])
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}
