package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kailas-cloud/workermatch/internal/config"
	"github.com/kailas-cloud/workermatch/internal/domain/search/filter"
	"github.com/kailas-cloud/workermatch/internal/domain/search/request"
	"github.com/kailas-cloud/workermatch/internal/domain/search/strategy"
	traininguc "github.com/kailas-cloud/workermatch/internal/usecase/training"
	"github.com/kailas-cloud/workermatch/internal/version"
)

func newApp(connect connectFunc, out io.Writer) *cli.App {
	c := &commands{connect: connect, out: out}
	return &cli.App{
		Name:    "workermatchctl",
		Usage:   "Maintain the worker recommendation model",
		Version: fmt.Sprintf("%s (%s, %s)", version.Version, version.Commit, version.Date),
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "Config environment (local, prod)",
				EnvVars: []string{"ENV"},
				Value:   config.GetEnv(),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Override logging level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "train",
				Usage:  "Train the similarity model and store it in the cache",
				Action: c.train,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Retrain even when a cached model exists",
					},
					&cli.BoolFlag{
						Name:  "validate",
						Usage: "Validate the corpus first and abort on a poor grade",
					},
				},
			},
			{
				Name:   "validate-corpus",
				Usage:  "Report worker corpus readiness for training",
				Action: c.validateCorpus,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "detailed",
						Usage: "List sample worker ids per issue",
					},
				},
			},
			{
				Name:   "invalidate",
				Usage:  "Drop the cached model",
				Action: c.invalidate,
			},
			{
				Name:      "search",
				Usage:     "Run a recommendation query",
				ArgsUsage: "<query>",
				Action:    c.search,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Ranking strategy (tfidf, fallback, hybrid)",
						Value:   string(strategy.Default),
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Number of workers to return",
						Value:   request.DefaultTopN,
					},
				},
			},
		},
	}
}

type commands struct {
	connect connectFunc
	out     io.Writer
}

func (c *commands) withEngine(cCtx *cli.Context, fn func(ctx context.Context, e engine) error) error {
	ctx := cCtx.Context
	if ctx == nil {
		ctx = context.Background()
	}
	e, release, err := c.connect(ctx, cCtx.String("env"), cCtx.String("log-level"))
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx, e)
}

func (c *commands) train(cCtx *cli.Context) error {
	return c.withEngine(cCtx, func(ctx context.Context, e engine) error {
		if cCtx.Bool("validate") {
			report, err := e.ValidateCorpus(ctx, false)
			if err != nil {
				return fmt.Errorf("validate corpus: %w", err)
			}
			c.printCorpus(&report)
			if report.Grade == traininguc.GradePoor {
				return fmt.Errorf("corpus not ready for training: grade %s, %.1f%% ML-ready",
					report.Grade, report.ReadyPercentage)
			}
		}

		m, err := e.Train(ctx, cCtx.Bool("force"))
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}
		fmt.Fprintf(c.out, "status:       %s\n", m.Status)
		fmt.Fprintf(c.out, "model:        %s\n", m.ModelID)
		fmt.Fprintf(c.out, "workers:      %d\n", m.WorkersCount)
		fmt.Fprintf(c.out, "vocabulary:   %d\n", m.VocabularySize)
		fmt.Fprintf(c.out, "matrix:       %dx%d\n", m.Rows, m.Cols)
		fmt.Fprintf(c.out, "elapsed:      %.1fms\n", m.ElapsedMs)
		return nil
	})
}

func (c *commands) validateCorpus(cCtx *cli.Context) error {
	return c.withEngine(cCtx, func(ctx context.Context, e engine) error {
		report, err := e.ValidateCorpus(ctx, cCtx.Bool("detailed"))
		if err != nil {
			return fmt.Errorf("validate corpus: %w", err)
		}
		c.printCorpus(&report)
		return nil
	})
}

func (c *commands) invalidate(cCtx *cli.Context) error {
	return c.withEngine(cCtx, func(ctx context.Context, e engine) error {
		if err := e.Invalidate(ctx); err != nil {
			return fmt.Errorf("invalidate: %w", err)
		}
		fmt.Fprintln(c.out, "model cache invalidated")
		return nil
	})
}

func (c *commands) search(cCtx *cli.Context) error {
	query := strings.Join(cCtx.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search: query argument required")
	}
	req, err := request.New(query, strategy.Strategy(cCtx.String("strategy")), cCtx.Int("top"), filter.Filters{})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	return c.withEngine(cCtx, func(ctx context.Context, e engine) error {
		resp, err := e.Search(ctx, req)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		fmt.Fprintf(c.out, "query %q -> %q (%s, %.1fms, cache_hit=%t)\n",
			resp.Query, resp.ProcessedQuery, resp.Strategy, resp.PerformanceMs, resp.CacheHit)
		if len(resp.Candidates) == 0 {
			fmt.Fprintln(c.out, "no workers found")
			return nil
		}
		for i := range resp.Candidates {
			cand := &resp.Candidates[i]
			fmt.Fprintf(c.out, "%2d. %-30s %-12s %.3f  %s\n",
				i+1, cand.Worker.FullName, cand.Worker.Profession, cand.Score, cand.Summary())
		}
		return nil
	})
}

func (c *commands) printCorpus(r *traininguc.CorpusReport) {
	fmt.Fprintf(c.out, "active workers:   %d\n", r.ActiveWorkers)
	fmt.Fprintf(c.out, "useful bio:       %d\n", r.UsefulBiography)
	fmt.Fprintf(c.out, "short bio:        %d\n", r.ShortBiography)
	fmt.Fprintf(c.out, "empty bio:        %d\n", r.EmptyBiography)
	fmt.Fprintf(c.out, "missing location: %d\n", r.MissingLocation)
	fmt.Fprintf(c.out, "ML ready:         %d (%.1f%%, %s)\n", r.MLReady, r.ReadyPercentage, r.Grade)
	for _, p := range r.Professions {
		fmt.Fprintf(c.out, "  %-14s %d\n", p.Profession, p.Count)
	}
	printSamples(c.out, "empty bio", r.EmptySamples)
	printSamples(c.out, "short bio", r.ShortSamples)
	printSamples(c.out, "no location", r.NoLocationSamples)
	for _, rec := range r.Recommendations {
		fmt.Fprintf(c.out, "- %s\n", rec)
	}
}

func printSamples(w io.Writer, label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(w, "%s samples: %s\n", label, strings.Join(ids, ", "))
}
