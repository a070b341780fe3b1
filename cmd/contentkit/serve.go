package main

import (
	"contentkit/internal/index"
	"contentkit/internal/serve"
	"context"
	"errors"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Watch the content directories and serve validation results over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "HTTP listen address, overrides serve.addr",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if a := c.String("addr"); a != "" {
				cfg.Serve.Addr = a
			}
			if cfg.Index.Path == "" {
				return errors.New("serve requires index.path")
			}
			st, err := index.Open(index.OpenOptions{Path: cfg.Index.Path})
			if err != nil {
				return err
			}
			defer st.Close()

			s := serve.New(cfg, st, logger.Named("serve"))
			defer s.Close()
			return s.ListenAndServe(ctx, cfg.Serve.Addr)
		},
	}
}
