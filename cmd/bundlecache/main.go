// Command bundlecache inspects and edits cached localization bundles in a
// Redis or Valkey store.
//
//	bundlecache get --lang en --lang fr
//	bundlecache put --lang en --file en.json
//	bundlecache purge --lang en
//
// Cache settings (prefix, expiration, versions) come from BUNDLECACHE_*
// environment variables; see package config.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx := context.Background()
	app := newApp(os.Stdout, openStore)
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
