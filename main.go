package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"

	"key-maze/internal/config"
	"key-maze/internal/db"
	"key-maze/internal/engine"
	"key-maze/internal/logger"
)

var version = "dev"

func main() {
	// Logs go to stderr so stdout carries only the answers.
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Error("Config", err.Error())
		os.Exit(1)
	}

	flag.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "search strategy: memo, dijkstra or explore")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "mazes solved concurrently")
	flag.BoolVar(&cfg.Prune, "prune", cfg.Prune, "fill dead ends before searching")
	flag.BoolVar(&cfg.Strict, "strict", cfg.Strict, "fail when a key is unreachable even with all doors open")
	flag.IntVar(&cfg.MaxSteps, "max-steps", cfg.MaxSteps, "walk length limit for the explore strategy (0 = none)")
	flag.BoolVar(&cfg.ShowRoute, "route", cfg.ShowRoute, "print the key collection order after each answer")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "trace the search")
	flag.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "record runs in this SQLite file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [maze ...]\n\nReads stdin when no maze file is given.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(cfg, flag.Args(), os.Stdout); err != nil {
		logger.Error("Solve", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, paths []string, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	strategy, err := engine.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	logger.Banner(version)

	jobs, err := readJobs(paths)
	if err != nil {
		return err
	}

	var history *db.DB
	if cfg.HistoryPath != "" {
		history, err = db.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer history.Close()
	}

	opts := engine.Options{
		Log:      traceLogger(cfg.Verbose),
		Prune:    cfg.Prune,
		Strict:   cfg.Strict,
		MaxSteps: cfg.MaxSteps,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Solve", fmt.Sprintf("%d maze(s), strategy=%s, workers=%d", len(jobs), strategy, cfg.Workers))
	began := time.Now()
	cache := engine.NewSolveCache()
	outcomes, err := engine.SolveAll(ctx, cache, jobs, strategy, opts, cfg.Workers)
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		if cfg.ShowRoute {
			fmt.Fprintf(stdout, "%d %s\n", o.Result.Steps, o.Result.Order)
		} else {
			fmt.Fprintf(stdout, "%d\n", o.Result.Steps)
		}
		if history != nil {
			record(history, o)
		}
	}

	logger.Section("Statistics")
	for _, o := range outcomes {
		logger.Stats(o.Name, o.Result.Steps)
		logger.Stats("  states", o.Result.States)
		if o.Result.Strategy == engine.StrategyMemo {
			logger.Stats("  memo entries", o.Result.MemoSize)
			logger.Stats("  memo hits", o.Result.MemoHits)
		}
		if o.Result.Pruned > 0 {
			logger.Stats("  pruned cells", o.Result.Pruned)
		}
		logger.Stats("  elapsed", o.Duration)
	}
	logger.Stats("Distinct mazes", cache.Len())
	logger.Stats("Total", time.Since(began))
	return nil
}

// record stores an outcome and warns when a previous run of the same maze
// and strategy reported a different answer.
func record(history *db.DB, o engine.Outcome) {
	if prev, ok := history.LastSteps(o.Result.Digest, string(o.Result.Strategy)); ok && prev != o.Result.Steps {
		logger.Warn("DB", fmt.Sprintf("%s: answer %d differs from recorded %d", o.Name, o.Result.Steps, prev))
	}
	_, err := history.InsertRun(db.Run{
		Maze:       o.Name,
		Digest:     o.Result.Digest,
		Strategy:   string(o.Result.Strategy),
		Steps:      o.Result.Steps,
		KeyOrder:   o.Result.Order,
		States:     o.Result.States,
		MemoHits:   o.Result.MemoHits,
		DurationMs: o.Duration.Milliseconds(),
	})
	if err != nil {
		logger.Warn("DB", err.Error())
	}
}

func readJobs(paths []string) ([]engine.Job, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []engine.Job{{Name: "stdin", Text: string(data)}}, nil
	}
	jobs := make([]engine.Job, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read maze: %w", err)
		}
		jobs = append(jobs, engine.Job{Name: p, Text: string(data)})
	}
	return jobs, nil
}

func traceLogger(verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
