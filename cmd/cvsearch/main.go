package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"cvsearch/internal/app"
	"cvsearch/internal/config"
	"cvsearch/internal/logger"
	"cvsearch/internal/search"
	"cvsearch/internal/util"
)

func main() {
	_ = godotenv.Load(".env")
	if err := newCLI(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type session struct {
	cfg config.Config
	log *zap.Logger
}

func newCLI(out io.Writer) *cli.App {
	s := &session{}
	return &cli.App{
		Name:      "cvsearch",
		Usage:     "Search a folder of résumés by keyword",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:    "collection",
				Aliases: []string{"c"},
				Usage:   "Directory holding the résumé files",
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Ignore Postgres and Temporal settings and run everything in process",
			},
		},
		Before: s.setup,
		After: func(*cli.Context) error {
			if s.log != nil {
				_ = s.log.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank résumés by relevance to a keyword",
				ArgsUsage: "<keyword>",
				Action:    s.searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "excerpt-width",
						Usage: "Maximum excerpt length in characters",
						Value: 240,
					},
				},
			},
			{
				Name:   "batch",
				Usage:  "Copy every PDF mentioning the batch keyword to the results directory",
				Action: s.batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "keyword",
						Aliases: []string{"k"},
						Usage:   "Keyword to look for (defaults to CVSEARCH_BATCH_KEYWORD)",
					},
					&cli.StringFlag{
						Name:  "results",
						Usage: "Destination directory for matching PDFs",
					},
				},
			},
			{
				Name:      "variants",
				Usage:     "Show the terms a keyword expands to",
				ArgsUsage: "<keyword>",
				Action:    s.variantsCommand,
			},
		},
	}
}

func (s *session) setup(c *cli.Context) error {
	s.cfg = config.Load()
	if c.IsSet("log-level") {
		s.cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("collection") {
		s.cfg.CollectionDir = c.String("collection")
	}
	l, err := logger.NewLogger(s.cfg.Env, s.cfg.LogLevel)
	if err != nil {
		return err
	}
	s.log = l
	c.Context = logger.ContextWithLogger(c.Context, l)
	return nil
}

func (s *session) build(c *cli.Context) (*app.App, error) {
	var opts []app.Option
	if c.Bool("local") {
		opts = append(opts, app.LocalOnly())
	}
	return app.New(ctxOf(c), s.cfg, s.log, opts...)
}

func ctxOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

func (s *session) searchCommand(c *cli.Context) error {
	keyword := strings.Join(c.Args().Slice(), " ")
	a, err := s.build(c)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.Searcher.Run(ctxOf(c), keyword)
	if errors.Is(err, search.ErrEmptyQuery) {
		return cli.Exit("type a keyword to search", 2)
	}
	if err != nil {
		return err
	}

	w := c.App.Writer
	if len(resp.Results) == 0 {
		fmt.Fprintf(w, "no résumé found for %q (%d scanned)\n", resp.Keyword, resp.Scanned)
		return nil
	}
	fmt.Fprintf(w, "%d résumé(s) found for %q:\n", len(resp.Results), resp.Keyword)
	for _, r := range resp.Results {
		fmt.Fprintf(w, "%s\tscore=%d\n", r.Filename, r.Score)
		fmt.Fprintf(w, "  %s\n", util.DisplaySnippet(r.Excerpt, c.Int("excerpt-width")))
	}
	return nil
}

func (s *session) batchCommand(c *cli.Context) error {
	if c.IsSet("keyword") {
		s.cfg.BatchKeyword = c.String("keyword")
	}
	if c.IsSet("results") {
		s.cfg.ResultsDir = c.String("results")
	}
	a, err := s.build(c)
	if err != nil {
		return err
	}
	defer a.Close()

	rep, err := a.Batch.Run(ctxOf(c))
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "%d file(s) copied to %s\n", rep.Count, s.cfg.ResultsDir)
	for _, name := range rep.Matched {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}

func (s *session) variantsCommand(c *cli.Context) error {
	keyword := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(keyword) == "" {
		return cli.Exit("type a keyword to expand", 2)
	}
	a, err := s.build(c)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, v := range a.Expander.Expand(keyword).Terms() {
		fmt.Fprintln(c.App.Writer, v)
	}
	return nil
}
