package service

import (
	"context"
	"log"
	"time"

	"github.com/gatewatch/server/internal/gatewatch/store"
)

// LedgerSweeper deletes access records older than a configurable retention
// period. Retention 0 keeps everything and the sweeper never starts; only an
// explicit site policy turns it on.
type LedgerSweeper struct {
	ledger    store.AccessLedger
	retention time.Duration
	interval  time.Duration
	logger    *log.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

type SweeperConfig struct {
	// RetentionDays is how many days of ledger history to keep.
	// 0 means keep everything (sweeper will not start).
	RetentionDays int

	// IntervalHours is how often the sweep runs. Defaults to 6.
	IntervalHours int
}

// NewLedgerSweeper creates a sweeper but does not start it.
func NewLedgerSweeper(ledger store.AccessLedger, cfg SweeperConfig, logger *log.Logger) *LedgerSweeper {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	return &LedgerSweeper{
		ledger:    ledger,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:  interval,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start begins the background sweep loop: one immediate sweep, then one per
// interval until ctx is cancelled or Stop is called.
func (s *LedgerSweeper) Start(ctx context.Context) {
	if s.retention <= 0 {
		s.logger.Printf("ledger retention sweep disabled (retention=0, records kept forever)")
		close(s.done)
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)

	go s.loop(ctx)

	s.logger.Printf("ledger retention sweep started (retention=%dd, interval=%dh)",
		int(s.retention.Hours()/24), int(s.interval.Hours()))
}

// Stop signals the sweeper to exit and waits for it to finish.
func (s *LedgerSweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.done
}

func (s *LedgerSweeper) loop(ctx context.Context) {
	defer close(s.done)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *LedgerSweeper) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.retention)
	deleted, err := s.ledger.PruneOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Printf("ledger sweep error: %v", err)
		return
	}
	if deleted > 0 {
		s.logger.Printf("ledger sweep: deleted %d records older than %s",
			deleted, cutoff.Format(time.RFC3339))
	}
}
