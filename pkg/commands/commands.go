package commands

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/symptoms/pkg/app"
	"tableflip.dev/symptoms/pkg/commands/options"
	"tableflip.dev/symptoms/pkg/logging"
	"tableflip.dev/symptoms/pkg/store"
)

// config is loaded once per invocation by the root command.
var config *store.Config

func New() *cobra.Command {
	var ephemeral bool

	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: options.Wrap80("Log meals, drinks, medication and symptoms on the command line, and look back at what happened."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			if ephemeral {
				cfg.Backend = store.BackendMemory
			}
			if err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
				return err
			}
			config = cfg
			log.WithFields(log.Fields{"backend": cfg.Backend, "key": cfg.Key}).Debug("config loaded")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&ephemeral, "ephemeral", false, "Keep entries in memory only, nothing is saved.")
	flags.String("backend", "", "Storage backend: diskv, sqlite, s3 or memory.")
	flags.String("log-level", "", "Log level: debug, info, warn or error.")
	flags.String("log-format", "", "Log format: cli, text, json or discard.")
	_ = viper.BindPFlag("backend", flags.Lookup("backend"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addSymptom(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addRecent(topLevel)
	addHistory(topLevel)
	addSuggest(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addInfo(topLevel)
	addWatch(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// openService opens the configured store and loads the entry cache.
func openService(ctx context.Context) (*app.Service, error) {
	cfg := config
	if cfg == nil {
		var err error
		if cfg, err = store.LoadConfig(); err != nil {
			return nil, err
		}
	}
	p, err := store.Open(ctx, cfg, store.WithLogger(log.Log))
	if err != nil {
		return nil, err
	}
	return app.New(ctx, p, app.WithLogger(log.Log))
}

// closeService flushes the cache and releases the store. The flush runs
// even when ctx was cancelled by an interrupt.
func closeService(ctx context.Context, svc *app.Service) {
	if err := svc.Close(context.WithoutCancel(ctx)); err != nil {
		log.WithError(err).Warn("closing store")
	}
}
