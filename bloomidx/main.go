// Command bloomidx builds a Bloom filter over the SHA-256 digests of a set of
// files and answers "possibly indexed" / "definitely not indexed" queries
// against a saved filter.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	bloomfilter "fnvbloom/bloom-filter"
)

type config struct {
	numBits   int
	numHashes int
	expected  int
	fpRate    float64
	hash      string
	seed      uint32
	save      string
	load      string
	test      string
	timeout   time.Duration
	workers   int
	verbose   bool
}

var (
	errUsage     = errors.New("usage")
	errNeedsLoad = errors.New("-test requires -load")
)

func parseFlags(args []string, out io.Writer) (*config, []string, error) {
	var cfg config
	fs := flag.NewFlagSet("bloomidx", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVar(&cfg.numBits, "bits", 0, "Filter size in bits (rounded up to a multiple of 32)")
	fs.IntVar(&cfg.numHashes, "k", 0, "Number of probes per key")
	fs.IntVar(&cfg.expected, "n", 0, "Expected number of keys when sizing from -p (default: number of files)")
	fs.Float64Var(&cfg.fpRate, "p", 0.01, "Target false positive rate when -bits/-k are not given")
	fs.StringVar(&cfg.hash, "hash", hashFNV, "Hash source: fnv or murmur3")
	seed := fs.Uint("seed", 0, "Seed for the murmur3 hash source")
	fs.StringVar(&cfg.save, "save", "", "Path to save the filter snapshot as JSON")
	fs.StringVar(&cfg.load, "load", "", "Path to load a filter snapshot from JSON")
	fs.StringVar(&cfg.test, "test", "", "Comma separated keys to test against the filter")
	fs.DurationVar(&cfg.timeout, "timeout", 30*time.Second, "Timeout for hashing files")
	fs.IntVar(&cfg.workers, "workers", 0, "Hashing workers (default: number of CPUs)")
	fs.BoolVar(&cfg.verbose, "v", false, "Enable debug logging")
	showHelp := fs.Bool("h", false, "Show help message")

	fs.Usage = func() {
		fmt.Fprintln(out, "Bloom filter index CLI")
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintln(out, "  Index a directory:    bloomidx [-save=filter.json] [directory]")
		fmt.Fprintln(out, "  Index files:          bloomidx [-save=filter.json] [files...]")
		fmt.Fprintln(out, "  Query keys:           bloomidx -load=filter.json -test=key1,key2")
		fmt.Fprintln(out, "  Query files:          bloomidx -load=filter.json [files...]")
		fmt.Fprintln(out, "")
		fmt.Fprintln(out, "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if *showHelp {
		fs.Usage()
		return nil, nil, errUsage
	}
	if cfg.test != "" && cfg.load == "" {
		fmt.Fprintln(out, errNeedsLoad)
		fs.Usage()
		return nil, nil, errNeedsLoad
	}
	cfg.seed = uint32(*seed)
	return &cfg, fs.Args(), nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func buildFilter(cfg *config, keys int) (*bloomfilter.Filter, error) {
	opts, err := filterOptions(cfg.hash, cfg.seed)
	if err != nil {
		return nil, err
	}
	if cfg.numBits > 0 || cfg.numHashes > 0 {
		return bloomfilter.New(cfg.numBits, cfg.numHashes, opts...)
	}
	n := cfg.expected
	if n <= 0 {
		n = keys
	}
	return bloomfilter.NewWithEstimates(n, cfg.fpRate, opts...)
}

func run(ctx context.Context, cfg *config, args []string, out io.Writer, log *zap.Logger) error {
	if cfg.load != "" {
		return query(ctx, cfg, args, out, log)
	}
	return index(ctx, cfg, args, out, log)
}

func index(ctx context.Context, cfg *config, args []string, out io.Writer, log *zap.Logger) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	start := time.Now()
	hashed, err := hashFiles(ctx, files, cfg.workers, cfg.timeout)
	if err != nil {
		return fmt.Errorf("hashing files: %w", err)
	}
	log.Debug("hashed files", zap.Int("files", len(hashed)), zap.Duration("elapsed", time.Since(start)))

	f, err := buildFilter(cfg, len(hashed))
	if err != nil {
		return fmt.Errorf("creating filter: %w", err)
	}
	for _, h := range hashed {
		f.Add(h.Digest)
		log.Debug("indexed", zap.String("file", h.File), zap.String("digest", h.Digest))
	}

	fpRate := bloomfilter.FalsePositiveRate(f.NumBits(), f.NumHashes(), len(hashed))
	log.Info("built filter",
		zap.Int("keys", len(hashed)),
		zap.Int("num_bits", f.NumBits()),
		zap.Int("num_hashes", f.NumHashes()),
		zap.Float64("fill_ratio", f.FillRatio()),
		zap.Float64("expected_fp_rate", fpRate),
	)
	fmt.Fprintf(out, "indexed %d files into %d bits, k=%d\n", len(hashed), f.NumBits(), f.NumHashes())

	if cfg.save != "" {
		snap := newSnapshot(f, cfg.hash, cfg.seed, len(hashed))
		if err := snap.SaveToFile(cfg.save); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		log.Info("saved snapshot", zap.String("path", cfg.save))
	}
	return nil
}

func query(ctx context.Context, cfg *config, args []string, out io.Writer, log *zap.Logger) error {
	snap, err := LoadSnapshotFromFile(cfg.load)
	if err != nil {
		return err
	}
	f, err := snap.Restore()
	if err != nil {
		return fmt.Errorf("restoring %s: %w", cfg.load, err)
	}
	log.Info("loaded snapshot",
		zap.String("path", cfg.load),
		zap.Int("num_bits", f.NumBits()),
		zap.Int("num_hashes", f.NumHashes()),
		zap.String("hash", snap.Hash),
		zap.Int("key_count", snap.KeyCount),
		zap.Int("approx_size", f.ApproxSize()),
		zap.Time("created_at", snap.CreatedAt),
	)

	if cfg.test != "" {
		for _, key := range strings.Split(cfg.test, ",") {
			fmt.Fprintf(out, "%s\t%s\n", verdict(f.Test(key)), key)
		}
	}

	if len(args) == 0 {
		return nil
	}
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	hashed, err := hashFiles(ctx, files, cfg.workers, cfg.timeout)
	if err != nil {
		return fmt.Errorf("hashing files: %w", err)
	}
	for _, h := range hashed {
		fmt.Fprintf(out, "%s\t%s\n", verdict(f.Test(h.Digest)), h.File)
	}
	return nil
}

func verdict(maybe bool) string {
	if maybe {
		return "maybe"
	}
	return "absent"
}

func main() {
	cfg, args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	log, err := newLogger(cfg.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), cfg, args, os.Stdout, log); err != nil {
		log.Error("bloomidx failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
