package main

import (
	"contentkit/internal/domain/content"
	"contentkit/internal/index"
	"contentkit/internal/schema"
	"context"
	"encoding/json"
	"fmt"
	"github.com/urfave/cli/v3"
	"os"
	"path/filepath"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the JSON Schema of a content type, or of all of them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "Content type; empty prints the union",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write one <type>.schema.json per category into this directory",
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			if dir := c.String("out"); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
				for _, cat := range content.Categories {
					doc, err := schema.ExportCategory(cat)
					if err != nil {
						return err
					}
					name := filepath.Join(dir, string(cat)+".schema.json")
					if err := os.WriteFile(name, append(doc, '\n'), 0o644); err != nil {
						return err
					}
				}
				return nil
			}

			var cat content.Category
			if t := c.String("category"); t != "" {
				parsed, ok := content.ParseCategory(t)
				if !ok {
					return fmt.Errorf("unknown content type: %s", t)
				}
				cat = parsed
			}
			doc, err := schema.ExportCategory(cat)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, string(doc))
			return err
		},
	}
}

func runsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "List recent validation runs recorded in the index",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Value: 10,
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			st, err := index.Open(index.OpenOptions{Path: cfg.Index.Path})
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.Runs(int(c.Int("limit")))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		},
	}
}
