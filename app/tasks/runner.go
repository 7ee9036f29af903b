package tasks

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lysyi3m/rent-comb/app/dedup"
	"github.com/lysyi3m/rent-comb/app/fetch"
	"github.com/lysyi3m/rent-comb/app/listing"
	"github.com/lysyi3m/rent-comb/app/notify"
	"github.com/lysyi3m/rent-comb/app/source"
)

type RunStats struct {
	Sources       int
	FailedSources []string
	Total         int
	New           int
	Duplicates    int
	Seeded        int
	Notified      int
	NotifyFailed  int
}

// Runner performs one complete pass: every source is fetched and parsed in
// registry order, then each listing goes through deduplication and, when
// new, notification.
type Runner struct {
	registry *source.Registry
	fetcher  fetch.Fetcher
	parser   PageParser
	dedup    Deduplicator
	notifier notify.Notifier
	logger   *zap.Logger

	failed []string
}

func NewRunner(registry *source.Registry, fetcher fetch.Fetcher, parser PageParser,
	deduplicator Deduplicator, notifier notify.Notifier, logger *zap.Logger) *Runner {
	return &Runner{
		registry: registry,
		fetcher:  fetcher,
		parser:   parser,
		dedup:    deduplicator,
		notifier: notifier,
		logger:   logger,
	}
}

// FetchAll runs one FetchSourceTask per source, one after another. A source
// that fails is logged and contributes nothing; the rest still run.
func (r *Runner) FetchAll(ctx context.Context) []listing.Listing {
	r.failed = nil
	var all []listing.Listing

	for _, def := range r.registry.All() {
		if ctx.Err() != nil {
			break
		}

		task := NewFetchSourceTask(def, r.fetcher, r.parser, r.logger)
		listings, err := task.Execute(ctx)
		if err != nil {
			r.failed = append(r.failed, def.Name)
			r.logger.Error("Source failed",
				zap.String("source", def.Name),
				zap.String("endpoint", def.Endpoint),
				zap.Error(err))
			continue
		}

		all = append(all, listings...)
	}

	return all
}

func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	start := time.Now()

	listings := r.FetchAll(ctx)
	stats := RunStats{
		Sources:       r.registry.Len(),
		FailedSources: r.failed,
		Total:         len(listings),
	}

	for _, l := range listings {
		outcome, err := r.dedup.Process(l)
		if err != nil {
			return stats, err
		}

		switch outcome {
		case dedup.Duplicate:
			stats.Duplicates++
			continue
		case dedup.Seeded:
			stats.Seeded++
			continue
		}
		stats.New++

		if err := r.notifier.Notify(ctx, l); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return stats, err
			}
			stats.NotifyFailed++
			r.logger.Warn("Notification failed",
				zap.String("source", l.Source),
				zap.String("fingerprint", l.Fingerprint()),
				zap.Error(err))
			continue
		}
		stats.Notified++
	}

	r.logger.Info("Run completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("sources", stats.Sources),
		zap.Strings("failed_sources", stats.FailedSources),
		zap.Int("total", stats.Total),
		zap.Int("new", stats.New),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("seeded", stats.Seeded),
		zap.Int("notified", stats.Notified),
		zap.Int("notify_failed", stats.NotifyFailed))

	return stats, nil
}
