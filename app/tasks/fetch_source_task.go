package tasks

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lysyi3m/rent-comb/app/fetch"
	"github.com/lysyi3m/rent-comb/app/listing"
	"github.com/lysyi3m/rent-comb/app/source"
)

type FetchSourceTask struct {
	Task
	Definition source.Definition
	fetcher    fetch.Fetcher
	parser     PageParser
	logger     *zap.Logger
}

func NewFetchSourceTask(def source.Definition, fetcher fetch.Fetcher, parser PageParser, logger *zap.Logger) *FetchSourceTask {
	return &FetchSourceTask{
		Task:       NewTask(TaskTypeFetchSource, def.Name),
		Definition: def,
		fetcher:    fetcher,
		parser:     parser,
		logger:     logger,
	}
}

func (t *FetchSourceTask) Execute(ctx context.Context) ([]listing.Listing, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	t.Start()

	body, err := t.fetcher.Get(ctx, t.Definition.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}

	listings, err := t.parser.Run(string(body), t.Definition)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	t.logger.Info("Task completed",
		zap.String("task_id", t.GetID()),
		zap.String("type", string(t.GetType())),
		zap.String("source", t.GetSourceName()),
		zap.Duration("duration", t.GetDuration()),
		zap.Int("bytes", len(body)),
		zap.Int("listings", len(listings)))

	return listings, nil
}
