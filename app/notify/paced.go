package notify

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/lysyi3m/rent-comb/app/listing"
)

const DefaultInterval = 10 * time.Second

// Paced spaces out deliveries of the wrapped Notifier by at least interval.
// The first delivery is immediate.
type Paced struct {
	next  Notifier
	limit *rate.Limiter
}

func NewPaced(next Notifier, interval time.Duration) *Paced {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &Paced{
		next:  next,
		limit: rate.NewLimiter(limit, 1),
	}
}

func (p *Paced) Notify(ctx context.Context, l listing.Listing) error {
	if err := p.limit.Wait(ctx); err != nil {
		return err
	}
	return p.next.Notify(ctx, l)
}
