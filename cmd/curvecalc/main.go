package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ordli77/interestrate/config"
	"github.com/ordli77/interestrate/curve"
	"github.com/ordli77/interestrate/marketdata"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("curvecalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "curve set definition (yaml)")
		dsn        = fs.String("dsn", "", "postgres DSN; falls back to CURVECALC_DSN, then to bundled samples")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *configPath == "" {
		usage(stderr, fs)
		return 2
	}

	// optional .env for the DSN
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := newLogger(stderr, cfg.Logging, *verbose)

	cat, cleanup, err := loadCatalog(cfg, *dsn, &logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer cleanup()

	started := time.Now()
	res, err := config.Build(cfg, cat, &logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger.Info().
		Int("curves", len(res.Order)).
		Dur("elapsed", time.Since(started)).
		Msg("curve set calibrated")

	for _, name := range res.Order {
		if err := printCurve(stdout, res.Curves[name]); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: curvecalc -config curves.yaml [-dsn postgres://...] [-v]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bootstrap the curve set defined in the config and print the")
	fmt.Fprintln(w, "calibrated nodes of every curve. Quotes come from Postgres when")
	fmt.Fprintln(w, "a DSN is given, from the bundled sample strips otherwise.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
}

func newLogger(w io.Writer, lc config.Logging, verbose bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	out := w
	if lc.Pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func loadCatalog(cfg *config.File, dsn string, logger *zerolog.Logger) (marketdata.Catalog, func(), error) {
	noop := func() {}
	if dsn == "" {
		dsn = os.Getenv("CURVECALC_DSN")
	}
	if dsn == "" {
		logger.Debug().Msg("no DSN, using bundled sample quotes")
		return marketdata.SampleCatalog(), noop, nil
	}
	date, err := cfg.Date()
	if err != nil {
		return nil, noop, err
	}
	store, err := marketdata.Open(dsn, logger)
	if err != nil {
		return nil, noop, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	cat, err := store.Catalog(ctx, date, classes(cfg)...)
	if err != nil {
		store.Close()
		return nil, noop, err
	}
	return cat, func() { store.Close() }, nil
}

// classes collects the distinct quote classes the curve set references.
func classes(cfg *config.File) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, c := range cfg.Curves {
		add(c.Class)
		for _, in := range c.Instruments {
			add(in.Class)
		}
	}
	return out
}

func printCurve(w io.Writer, c *curve.PiecewiseCurve) error {
	nodes, err := c.Nodes()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "curve %s  reference %s  pillars %d\n",
		c.Name(), c.ReferenceDate().Format("2006-01-02"), len(nodes)-1)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tyears\tpivot\tzero\tdf")
	for _, n := range nodes {
		df, err := c.DiscountFactor(n.Date, false)
		if err != nil {
			return err
		}
		z, err := c.ZeroRate(n.Date, curve.Continuous, 0, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%.8f\t%.4f%%\t%.8f\n",
			n.Date.Format("2006-01-02"), n.Time, n.Value, z*100, df)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
