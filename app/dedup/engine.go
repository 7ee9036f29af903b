package dedup

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lysyi3m/rent-comb/app/ledger"
	"github.com/lysyi3m/rent-comb/app/listing"
)

type Outcome int

const (
	// New listings were never seen before and should be notified.
	New Outcome = iota
	// Duplicate listings are already in the ledger or were seen earlier in this run.
	Duplicate
	// Seeded listings were recorded during the first run and are not notified.
	Seeded
)

func (o Outcome) String() string {
	switch o {
	case New:
		return "new"
	case Duplicate:
		return "duplicate"
	case Seeded:
		return "seeded"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Engine decides whether a listing has been handled before. Every
// fingerprint it lets through is durably appended to the ledger before
// Process returns.
type Engine struct {
	ledger   ledger.Ledger
	seen     map[string]struct{}
	firstRun bool
	out      io.Writer
	logger   *zap.Logger
}

func NewEngine(l ledger.Ledger, out io.Writer, logger *zap.Logger) *Engine {
	fingerprints := l.Fingerprints()

	seen := make(map[string]struct{}, len(fingerprints))
	for _, fp := range fingerprints {
		seen[fp] = struct{}{}
	}

	if out == nil {
		out = io.Discard
	}

	return &Engine{
		ledger:   l,
		seen:     seen,
		firstRun: l.FirstRun(),
		out:      out,
		logger:   logger,
	}
}

func (e *Engine) FirstRun() bool {
	return e.firstRun
}

// Known reports how many fingerprints the engine currently holds.
func (e *Engine) Known() int {
	return len(e.seen)
}

func (e *Engine) Process(l listing.Listing) (Outcome, error) {
	fp := l.Fingerprint()

	if _, ok := e.seen[fp]; ok {
		e.logger.Debug("Duplicate listing",
			zap.String("source", l.Source),
			zap.String("fingerprint", fp))
		return Duplicate, nil
	}

	if err := e.ledger.Append(fp); err != nil {
		return Duplicate, fmt.Errorf("failed to record fingerprint %s: %w", fp, err)
	}
	e.seen[fp] = struct{}{}

	fmt.Fprintln(e.out, l.String())

	if e.firstRun {
		e.logger.Debug("Listing seeded on first run",
			zap.String("source", l.Source),
			zap.String("fingerprint", fp))
		return Seeded, nil
	}

	e.logger.Info("New listing",
		zap.String("source", l.Source),
		zap.String("location", l.Location),
		zap.String("price", l.PriceText),
		zap.String("fingerprint", fp))
	return New, nil
}
