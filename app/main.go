package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lysyi3m/rent-comb/app/cfg"
	"github.com/lysyi3m/rent-comb/app/dedup"
	"github.com/lysyi3m/rent-comb/app/fetch"
	"github.com/lysyi3m/rent-comb/app/ledger"
	"github.com/lysyi3m/rent-comb/app/listing"
	"github.com/lysyi3m/rent-comb/app/logger"
	"github.com/lysyi3m/rent-comb/app/notify"
	"github.com/lysyi3m/rent-comb/app/source"
	"github.com/lysyi3m/rent-comb/app/tasks"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	appCfg, err := cfg.Load(args)
	if errors.Is(err, cfg.ErrVersion) {
		fmt.Println(cfg.GetVersion())
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if appCfg == nil {
		// Help was shown
		return 0
	}

	level := appCfg.LogLevel
	if appCfg.Debug {
		level = "debug"
	}
	log, closer, err := logger.New(logger.Options{Level: level, Format: appCfg.LogFormat, File: appCfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer closer.Close()
	defer log.Sync()

	log.Info("Starting Rent Comb",
		zap.String("version", appCfg.Version),
		zap.Bool("debug", appCfg.Debug))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, appCfg, log); err != nil {
		log.Error("Run failed", zap.Error(err))
		return 1
	}

	if ctx.Err() != nil {
		log.Warn("Run interrupted")
	}

	return 0
}

func execute(ctx context.Context, appCfg *cfg.Cfg, log *zap.Logger) error {
	search := source.Search{
		PriceMin: appCfg.PriceMin,
		PriceMax: appCfg.PriceMax,
		Query:    appCfg.Query,
		Radius:   appCfg.Radius,
	}

	defs, err := source.NewLoader(appCfg.SourcesDir, search, log).Merge(source.Defaults(search))
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	registry, err := source.NewRegistry(defs...)
	if err != nil {
		return fmt.Errorf("failed to build source registry: %w", err)
	}
	log.Info("Sources loaded", zap.Strings("sources", registry.Names()))

	seen, err := ledger.Open(ledger.Options{
		Driver:   ledger.Driver(appCfg.LedgerDriver),
		Path:     appCfg.LedgerPath,
		ReadOnly: appCfg.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer seen.Close()

	engine := dedup.NewEngine(seen, os.Stdout, log)
	if engine.FirstRun() {
		log.Info("Ledger not found, first run: listings will be recorded without notifications",
			zap.String("ledger", appCfg.LedgerPath))
	} else {
		log.Debug("Ledger loaded", zap.Int("fingerprints", engine.Known()))
	}

	var (
		fetcher  fetch.Fetcher
		notifier notify.Notifier
	)
	if appCfg.Debug {
		fetcher = fetch.NewFixtureFetcher(appCfg.Fixture)
		notifier = notify.NewLogNotifier(log)
	} else {
		fetcher = fetch.NewHTTPFetcher(appCfg.FetchTimeout, appCfg.UserAgent)

		smtp, err := notify.NewSMTPNotifier(notify.SMTPOptions{
			Server:    appCfg.SMTPServer,
			Port:      appCfg.SMTPPort,
			Username:  appCfg.SMTPUsername,
			Password:  appCfg.SMTPPassword,
			Recipient: appCfg.Recipient,
			From:      appCfg.SMTPFrom,
		})
		if err != nil {
			return fmt.Errorf("failed to configure notifications: %w", err)
		}
		notifier = notify.NewPaced(smtp, appCfg.NotifyInterval)
	}

	parser := listing.NewParser(listing.NewExcluder(appCfg.Exclude), log)
	runner := tasks.NewRunner(registry, fetcher, parser, engine, notifier, log)

	if _, err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
