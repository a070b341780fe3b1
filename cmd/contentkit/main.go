package main

import (
	"contentkit/internal/build"
	"contentkit/internal/domain/config"
	"contentkit/internal/index"
	"contentkit/internal/logging"
	"contentkit/internal/report"
	"context"
	"fmt"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exitCode := 0
	cmd := &cli.Command{
		Name:  "contentkit",
		Usage: "Validate content front matter against the category schemas",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   config.DefaultFile,
				Sources: cli.EnvVars("CONTENTKIT_CONFIG"),
				Usage:   "YAML config file",
			},
			&cli.StringSliceFlag{
				Name:  "type",
				Usage: "Only validate specific content type (blog, guide, hub, spoke, documentation, faq)",
			},
			&cli.BoolFlag{
				Name:  "fix",
				Usage: "Print hints for common validation issues",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show detailed validation output",
			},
			&cli.BoolFlag{
				Name:  "legacy",
				Usage: "Upgrade legacy front matter before validating",
			},
			&cli.StringFlag{
				Name:  "index",
				Usage: "Index file path, overrides index.path",
			},
			&cli.BoolFlag{
				Name:  "no-index",
				Usage: "Do not update the index",
			},
			&cli.StringFlag{
				Name:  "json",
				Usage: "Also write the report as JSON to this file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			runner := &build.Runner{
				Cfg:    cfg,
				Types:  c.StringSlice("type"),
				Logger: logger,
			}
			if cfg.Index.Path != "" && !c.Bool("no-index") {
				st, err := index.Open(index.OpenOptions{Path: cfg.Index.Path})
				if err != nil {
					return err
				}
				defer st.Close()
				runner.Index = st
			}

			rep, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			if err := report.Print(os.Stdout, *rep, report.PrintOptions{
				Verbose: c.Bool("verbose"),
				Fix:     c.Bool("fix"),
			}); err != nil {
				return err
			}
			if out := c.String("json"); out != "" {
				if err := build.WriteJSON(filepath.Dir(out), filepath.Base(out), rep); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			}
			exitCode = rep.ExitCode()
			return nil
		},
		Commands: []*cli.Command{
			schemaCommand(),
			serveCommand(),
			runsCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "contentkit:", err.Error())
		os.Exit(1)
	}
	os.Exit(exitCode)
}

// setup loads the config file and applies flag overrides. A missing file is
// only an error when the path was given explicitly.
func setup(c *cli.Command) (config.Config, *zap.Logger, error) {
	path := c.String("config")
	var (
		cfg config.Config
		err error
	)
	if c.IsSet("config") {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return cfg, nil, fmt.Errorf("config %s: %w", path, err)
	}

	if c.Bool("legacy") {
		cfg.Content.Legacy = true
	}
	if p := c.String("index"); p != "" {
		cfg.Index.Path = p
	}
	if l := c.String("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger, err := logging.New(cfg.Log.Level, c.Bool("verbose"))
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
