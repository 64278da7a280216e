package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/entry"
	"tableflip.dev/symptoms/pkg/store"
)

// Info prints where entries are stored and how many there are.
type Info struct {
	Config  *store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(_ context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	if override := os.Getenv("SYMPTOMS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "SYMPTOMS_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "SYMPTOMS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.backend: ", n.Config.Backend)
	switch n.Config.Backend {
	case store.BackendSQLite:
		_, _ = fmt.Fprintln(out, "Config.sqlite.path: ", n.Config.SQLitePath)
	case store.BackendS3:
		_, _ = fmt.Fprintf(out, "Config.s3: s3://%s/%s\n", n.Config.S3.Bucket, n.Config.S3.Prefix)
	case store.BackendMemory:
	default:
		_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.Path)
	}
	_, _ = fmt.Fprintln(out, "Config.key: ", n.Config.Key)

	if n.Service == nil {
		return fmt.Errorf("failed to create service")
	}

	counts := make(map[entry.Category]int)
	all := n.Service.Entries()
	for _, e := range all {
		counts[e.Category()]++
	}
	_, _ = fmt.Fprintf(out, "Entries: %d\n", len(all))
	for _, c := range entry.AllCategories() {
		_, _ = fmt.Fprintf(out, "  %-8s %d\n", c.Label(), counts[c])
	}
	return nil
}
