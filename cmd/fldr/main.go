// SPDX-License-Identifier: MIT

// Command fldr builds a Fast Loaded Dice Roller and prints samples from it.
//
//	fldr -weights 1,2,3 -n 10 -seed 42
//	fldr -dist d3.yaml -chi -n 100000
//	fldr -dist d3.yaml -snapshot-out d3.fldr
//	fldr -snapshot-in d3.fldr -n 5 -metrics :9100
//
// Exit status is 0 on success, 1 on runtime errors and 2 on bad usage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/katalvlaran/fldr/bitsource"
	"github.com/katalvlaran/fldr/distfile"
	"github.com/katalvlaran/fldr/metrics"
	"github.com/katalvlaran/fldr/roller"
	"github.com/katalvlaran/fldr/snapshot"
	"github.com/katalvlaran/fldr/stats"
)

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	dist        string
	weights     string
	n           int
	seed        uint64
	wordBits    int
	source      string
	snapshotOut string
	snapshotIn  string
	metricsAddr string
	chi         bool
	verbose     bool
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fldr", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.dist, "dist", "", "distribution YAML file")
	fs.StringVar(&o.weights, "weights", "", "comma separated integer weights, e.g. 1,2,3")
	fs.IntVar(&o.n, "n", distfile.DefaultSamples, "number of samples")
	fs.Uint64Var(&o.seed, "seed", distfile.DefaultSeed, "LCG seed")
	fs.IntVar(&o.wordBits, "word-bits", bitsource.DefaultWordBits, "bits used from each generator word (1..64)")
	fs.StringVar(&o.source, "source", "lcg", "bit generator: lcg, pcg or crypto")
	fs.StringVar(&o.snapshotOut, "snapshot-out", "", "write the built tables to this file")
	fs.StringVar(&o.snapshotIn, "snapshot-in", "", "restore tables from this file instead of building")
	fs.StringVar(&o.metricsAddr, "metrics", "", "serve Prometheus metrics on this address and wait for a signal")
	fs.BoolVar(&o.chi, "chi", false, "print a histogram and chi-square goodness of fit")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	log, err := newLogger(o.verbose)
	if err != nil {
		fmt.Fprintln(stderr, "logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := execute(o, set, stdout, log); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, err)
			fs.Usage()
			return 2
		}
		log.Errorw("fldr failed", "error", err)
		return 1
	}
	return 0
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().Named("fldr"), nil
}

func execute(o options, set map[string]bool, stdout io.Writer, log *zap.SugaredLogger) error {
	sources := 0
	for _, name := range []string{"dist", "weights", "snapshot-in"} {
		if set[name] {
			sources++
		}
	}
	if sources != 1 {
		return fmt.Errorf("%w: exactly one of -dist, -weights, -snapshot-in is required", errUsage)
	}
	if o.dist == "" && o.weights == "" && o.snapshotIn == "" {
		return fmt.Errorf("%w: empty input source", errUsage)
	}

	var (
		r       *roller.Roller
		weights []uint64
		label   = strconv.Itoa
		err     error
	)
	switch {
	case set["dist"]:
		f, err := distfile.Load(o.dist)
		if err != nil {
			return err
		}
		// file values apply unless overridden on the command line
		if !set["seed"] {
			o.seed = f.Seed
		}
		if !set["word-bits"] {
			o.wordBits = f.WordBits
		}
		if !set["n"] {
			o.n = f.Samples
		}
		weights, label = f.Weights, f.Label
		log.Debugw("loaded distribution", "name", f.Name, "path", o.dist, "outcomes", len(f.Weights))
	case set["weights"]:
		if weights, err = parseWeights(o.weights); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
	default:
		var hdr snapshot.Header
		if r, hdr, err = snapshot.ReadFile(o.snapshotIn); err != nil {
			return err
		}
		log.Debugw("restored snapshot", "path", o.snapshotIn, "id", hdr.ID.String(), "version", hdr.Version)
	}
	if o.n < 0 {
		return fmt.Errorf("%w: -n must be non-negative", errUsage)
	}
	if o.wordBits < 1 || o.wordBits > 64 {
		return fmt.Errorf("%w: -word-bits must be in [1,64]", errUsage)
	}

	if r == nil {
		if r, err = roller.New(weights); err != nil {
			return err
		}
	} else {
		weights = make([]uint64, r.N())
		for i := range weights {
			weights[i] = r.Weight(i)
		}
	}
	log.Debugw("roller ready", "roller", r.String(), "levels", r.Levels())

	if o.snapshotOut != "" {
		id, err := snapshot.WriteFile(o.snapshotOut, r)
		if err != nil {
			return err
		}
		log.Infow("snapshot written", "path", o.snapshotOut, "id", id.String())
	}

	src, err := newSource(o.source, o.seed, o.wordBits)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, "")
	if err != nil {
		return err
	}

	out := make([]int, o.n)
	if err := m.SampleN(r, src, out); err != nil {
		return err
	}

	names := make([]string, len(out))
	for i, z := range out {
		names[i] = label(z)
	}
	fmt.Fprintln(stdout, strings.Join(names, " "))

	if o.chi {
		if err := report(stdout, out, weights, label); err != nil {
			return err
		}
	}

	if o.metricsAddr != "" {
		return serve(o.metricsAddr, reg, log)
	}
	return nil
}

func newSource(kind string, seed uint64, wordBits int) (roller.BitSource, error) {
	var words bitsource.WordSource
	switch kind {
	case "lcg":
		words = bitsource.NewLCG(seed)
	case "pcg":
		words = bitsource.NewPCG(seed)
	case "crypto":
		words = bitsource.NewCrypto()
	default:
		return nil, fmt.Errorf("%w: unknown -source %q", errUsage, kind)
	}
	return bitsource.NewBuffer(words, bitsource.WithWordBits(wordBits)), nil
}

// report prints per-outcome counts against expectation and the fit summary.
func report(w io.Writer, samples []int, weights []uint64, label func(int) string) error {
	obs, err := stats.Histogram(samples, len(weights))
	if err != nil {
		return err
	}
	var total uint64
	for _, x := range weights {
		total += x
	}
	n := float64(len(samples))
	for i, c := range obs {
		if weights[i] == 0 && c == 0 {
			continue
		}
		exp := n * float64(weights[i]) / float64(total)
		fmt.Fprintf(w, "%-12s %10d %14.2f\n", label(i), c, exp)
	}

	res, err := stats.ChiSquare(obs, weights)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "chi2=%.4f df=%d p=%.4f entropy=%.4f\n", res.Statistic, res.DF, res.PValue, stats.Entropy(weights))
	return nil
}

func serve(addr string, reg *prometheus.Registry, log *zap.SugaredLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Infow("serving metrics", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Infow("shutting down")
	return srv.Shutdown(context.Background())
}

// parseWeights reads a comma separated list of non-negative integers.
func parseWeights(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	ws := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty weight in %q", s)
		}
		w, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("weight %q: %w", p, err)
		}
		ws = append(ws, w)
	}
	return ws, nil
}
