package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/millerindex"
	"github.com/hupe1980/millerindex/codec"
	"github.com/hupe1980/millerindex/observability"
)

const shutdownTimeout = 5 * time.Second

// app carries the state shared by all subcommands of one invocation.
type app struct {
	configPath  string
	input       string
	logLevel    string
	format      string
	metricsAddr string

	cfg     Config
	logger  *millerindex.Logger
	codec   codec.Codec
	metrics millerindex.MetricsCollector
	server  *http.Server
}

// run executes one command line.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if serr := a.shutdown(); err == nil {
		err = serr
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "millerindex",
		Short: "Symmetry-aware lookup and neighbour queries over Miller indices",
		Long: `millerindex reads a list of Miller indices (one "h k l" triple per line,
optionally zstd-compressed), indexes it under a point group and answers
find, neighbourhood and area queries. Results are written as JSON.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	flags.StringVarP(&a.input, "input", "i", "-", `index file ("-" for stdin, ".zst" is decompressed)`)
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.format, "format", "", "output codec ("+strings.Join(codec.Names(), ", ")+")")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	root.AddCommand(
		a.findCmd(),
		a.neighbourhoodCmd(),
		a.areaCmd(),
		a.statsCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Level())

	c, ok := codec.ByName(cfg.Format)
	if !ok {
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
	a.codec = c

	a.metrics = millerindex.NoopMetricsCollector{}
	if a.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		a.metrics = observability.NewPrometheusCollector(reg)
		if err := a.serveMetrics(reg); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(w io.Writer, format string, level slog.Level) *millerindex.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return millerindex.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return millerindex.NewLogger(slog.NewTextHandler(w, opts))
}

func (a *app) serveMetrics(reg *prometheus.Registry) error {
	ln, err := net.Listen("tcp", a.metricsAddr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	a.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", ln.Addr().String())
	return nil
}

func (a *app) shutdown() error {
	if a.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.server.Shutdown(ctx)
}

// open reads the input and builds the index.
func (a *app) open(cmd *cobra.Command) (*millerindex.Index, error) {
	indices, err := loadIndices(a.input, cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a.input, err)
	}

	sym, err := a.cfg.Description()
	if err != nil {
		return nil, err
	}

	opts, err := a.cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		millerindex.WithLogger(a.logger),
		millerindex.WithMetricsCollector(a.metrics),
	)

	return millerindex.New(indices, sym, opts...)
}

// write encodes v as one line of output.
func (a *app) write(cmd *cobra.Command, v any) error {
	return codec.NewWriter(cmd.OutOrStdout(), a.codec).Encode(v)
}

// writeLists writes per-seed lists as one array, or as one record per seed
// when records is set.
func (a *app) writeLists(cmd *cobra.Command, idx *millerindex.Index, lists [][]int, records bool) error {
	if !records {
		return a.write(cmd, lists)
	}
	return codec.NewWriter(cmd.OutOrStdout(), a.codec).EncodeLists(idx.Tensor().Indices(), lists)
}
