package predict

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Update is one poll outcome. Seq is the monotonically increasing request
// tag; consumers only ever see the latest-issued sequence, stale
// completions are discarded inside the poller.
type Update struct {
	Seq    uint64
	Result *Result
	Err    error
}

// DefaultPollInterval matches the dashboard's live refresh cadence.
const DefaultPollInterval = 30 * time.Second

// Poller drives a fixed-interval live SOC estimate. It is cancellable via
// context: when the consuming UI context is torn down, cancelling stops
// the ticker and closes the update channel so no orphaned completion
// mutates state after disposal.
type Poller struct {
	client   *Client
	interval time.Duration
	log      zerolog.Logger

	seq uint64 // last issued request tag
	wg  sync.WaitGroup
}

// NewPoller builds a poller over client. A zero interval defaults to
// DefaultPollInterval.
func NewPoller(client *Client, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{client: client, interval: interval, log: log}
}

// Run polls input() until ctx is cancelled, delivering results on the
// returned channel. Requests are not deduplicated: if a poll fires while a
// previous one is outstanding, both complete independently, but an update
// is only delivered when its sequence number is still the latest issued,
// keeping the displayed state monotonic under out-of-order completion.
func (p *Poller) Run(ctx context.Context, input func() Input) <-chan Update {
	updates := make(chan Update, 1)

	go func() {
		// The channel closes only after every in-flight request goroutine
		// has returned, so a late completion can never send on a closed
		// channel.
		defer func() {
			p.wg.Wait()
			close(updates)
		}()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		// Immediate first poll, then the fixed interval.
		p.poll(ctx, input(), updates)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx, input(), updates)
			}
		}
	}()

	return updates
}

func (p *Poller) poll(ctx context.Context, in Input, updates chan<- Update) {
	seq := atomic.AddUint64(&p.seq, 1)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		res, err := p.client.Predict(ctx, in)

		if atomic.LoadUint64(&p.seq) != seq {
			p.log.Debug().Uint64("seq", seq).Msg("discarding stale prediction response")
			return
		}

		if err != nil {
			p.log.Warn().Err(err).Uint64("seq", seq).Msg("live prediction failed")
		}

		select {
		case updates <- Update{Seq: seq, Result: res, Err: err}:
		case <-ctx.Done():
		}
	}()
}
