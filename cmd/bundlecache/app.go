package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/bundlecache"
	"github.com/unkn0wn-root/bundlecache/config"
	bczap "github.com/unkn0wn-root/bundlecache/log/zap"
	pr "github.com/unkn0wn-root/bundlecache/provider"
	"github.com/unkn0wn-root/bundlecache/provider/redis"
	"github.com/unkn0wn-root/bundlecache/provider/valkey"
)

// opener dials the store named by backend at url.
type opener func(ctx context.Context, backend, url string) (pr.Provider, error)

func openStore(ctx context.Context, backend, url string) (pr.Provider, error) {
	switch backend {
	case "redis":
		return redis.NewFromURL(ctx, url)
	case "valkey":
		return valkey.NewFromURL(ctx, url)
	default:
		return nil, fmt.Errorf("unknown backend %q (want redis or valkey)", backend)
	}
}

func newApp(out io.Writer, open opener) *cli.Command {
	cfg := config.FromEnv()
	storeURL := cfg.StoreURL
	if storeURL == "" {
		storeURL = "redis://localhost:6379/0"
	}

	app := &cli.Command{
		Name:  "bundlecache",
		Usage: "Inspect and edit cached localization bundles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "store-url",
				Usage: "store URL (redis://host:port/db)",
				Value: storeURL,
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "store client: redis or valkey",
				Value: "redis",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log cache activity to stderr",
			},
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:  "get",
			Usage: "Print the valid cached bundles as JSON",
			Flags: []cli.Flag{langFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCache(ctx, cmd, cfg, open, func(c bundlecache.Cache) error {
					bundles, err := c.Load(ctx, cmd.StringSlice("lang"))
					if err != nil {
						return err
					}
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(bundles)
				})
			},
		},
		{
			Name:  "put",
			Usage: "Store a JSON bundle file for one or more languages",
			Flags: []cli.Flag{
				langFlag(),
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"f"},
					Usage:    `JSON object of key -> translation ("-" for stdin)`,
					Required: true,
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				bundle, err := readBundle(cmd.String("file"))
				if err != nil {
					return err
				}
				payload := make(map[string]bundlecache.Bundle)
				for _, lng := range cmd.StringSlice("lang") {
					payload[lng] = bundle
				}
				return withCache(ctx, cmd, cfg, open, func(c bundlecache.Cache) error {
					return c.Store(ctx, payload)
				})
			},
		},
		{
			Name:  "purge",
			Usage: "Delete stored bundles",
			Flags: []cli.Flag{langFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCache(ctx, cmd, cfg, open, func(c bundlecache.Cache) error {
					return c.Purge(ctx, cmd.StringSlice("lang"))
				})
			},
		},
	}

	for _, sub := range app.Commands {
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].Names()[0] < sub.Flags[j].Names()[0]
		})
	}
	return app
}

func langFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:     "lang",
		Aliases:  []string{"l"},
		Usage:    "language to operate on (repeatable)",
		Required: true,
	}
}

// withCache opens the store, runs fn against a cache over it and closes both.
func withCache(ctx context.Context, cmd *cli.Command, cfg config.Config, open opener, fn func(bundlecache.Cache) error) (err error) {
	p, err := open(ctx, cmd.String("backend"), cmd.String("store-url"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	opts := bundlecache.Options{Provider: p}
	cfg.Apply(&opts)
	if cmd.Bool("verbose") {
		l, lerr := zap.NewDevelopment()
		if lerr == nil {
			defer func() { _ = l.Sync() }()
			opts.Logger = bczap.ZapLogger{L: l}
		}
	}

	c, err := bundlecache.New(opts)
	if err != nil {
		_ = p.Close(ctx)
		return err
	}
	defer func() {
		if cerr := c.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

func readBundle(path string) (bundlecache.Bundle, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var bundle bundlecache.Bundle
	if err := json.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("read bundle %s: %w", path, err)
	}
	if len(bundle) == 0 {
		return nil, fmt.Errorf("read bundle %s: empty", path)
	}
	return bundle, nil
}
