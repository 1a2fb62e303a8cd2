/*
Package monitor runs the polling loop that turns successive auction lists into
notifications.

The first successful poll only records a baseline. Later polls announce
auctions that were not seen before and, for auctions inside the ending-soon
window, every change of the leading bid.
*/
package monitor

//go:generate mockgen -source=monitor.go -destination=mock_deps.go -package=monitor

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shanehull/auctionwatch/internal/clock"
	"github.com/shanehull/auctionwatch/internal/logging"
	"github.com/shanehull/auctionwatch/internal/notify"
	"github.com/shanehull/auctionwatch/internal/tracking"
	"github.com/shanehull/auctionwatch/internal/types"
	"github.com/shanehull/auctionwatch/internal/watch"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type State int

const (
	Bootstrapping State = iota
	Steady
)

func (s State) String() string {
	switch s {
	case Bootstrapping:
		return "bootstrapping"
	case Steady:
		return "steady"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AuctionSource lists the currently open auctions.
type AuctionSource interface {
	ListAuctions(ctx context.Context) ([]types.AuctionItem, error)
}

// Notifier receives the events detected by the monitor.
type Notifier interface {
	NotifyAuction(ctx context.Context, item types.AuctionItem, isNew bool) []notify.Delivery
	NotifyBidChange(ctx context.Context, item types.AuctionItem, newBid, oldBid decimal.Decimal) []notify.Delivery
}

// ImageNotifier sends the heartbeat image.
type ImageNotifier interface {
	NotifyHeartbeatImage(ctx context.Context) []notify.Delivery
}

type Config struct {
	Interval time.Duration
	// AlertBeforeEnd is the width of the ending-soon window.
	AlertBeforeEnd time.Duration
	// PruneAfter drops auctions that ended and dropped out of the listing
	// at least this long ago. Zero keeps them forever.
	PruneAfter time.Duration
	Watch      watch.List
}

// Stats is a point-in-time view of the monitor, safe to hand to other
// goroutines.
type Stats struct {
	State             string    `json:"state"`
	Cycles            int       `json:"cycles"`
	FailedCycles      int       `json:"failed_cycles"`
	KnownAuctions     int       `json:"known_auctions"`
	TrackedBids       int       `json:"tracked_bids"`
	NotificationsSent int       `json:"notifications_sent"`
	LastSuccessAt     time.Time `json:"last_success_at"`
	LastError         string    `json:"last_error,omitempty"`
}

type Monitor struct {
	cfg      Config
	source   AuctionSource
	notifier Notifier
	clock    *clock.Clock
	store    *tracking.Store
	state    State

	mu    sync.Mutex
	stats Stats
}

func New(cfg Config, src AuctionSource, n Notifier, clk *clock.Clock) *Monitor {
	return &Monitor{
		cfg:      cfg,
		source:   src,
		notifier: n,
		clock:    clk,
		store:    tracking.NewStore(),
		state:    Bootstrapping,
		stats:    Stats{State: Bootstrapping.String()},
	}
}

func (m *Monitor) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Run polls until ctx is canceled. A failed or panicking iteration is logged
// and followed by the normal sleep.
func (m *Monitor) Run(ctx context.Context) {
	logging.Info("monitor started", map[string]any{
		"interval":         m.cfg.Interval.String(),
		"alert_before_end": m.cfg.AlertBeforeEnd.String(),
		"watched":          m.cfg.Watch.Len(),
	})

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("monitor stopped", nil)
			return
		case <-timer.C:
		}

		m.runCycle(ctx)
		timer.Reset(m.cfg.Interval)
	}
}

func (m *Monitor) runCycle(ctx context.Context) {
	cycleID := uuid.NewString()
	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in poll cycle: %v", r)
				logging.Debug("poll cycle stack", map[string]any{"cycle_id": cycleID, "stack": string(debug.Stack())})
			}
		}()
		return m.RunOnce(ctx)
	}()
	m.finishCycle(err)

	fields := map[string]any{
		"cycle_id": cycleID,
		"state":    m.state.String(),
		"took":     time.Since(start).String(),
	}
	if err != nil {
		fields["error"] = err.Error()
		logging.Error("poll cycle failed", fields)
		return
	}
	logging.Debug("poll cycle done", fields)
}

// RunOnce performs a single poll. On error the tracking state reflects the
// items processed before the failure, and a failed fetch leaves it untouched.
func (m *Monitor) RunOnce(ctx context.Context) error {
	items, err := m.source.ListAuctions(ctx)
	if err != nil {
		return err
	}

	tracked := make([]types.AuctionItem, 0, len(items))
	for _, item := range items {
		if m.cfg.Watch.ShouldTrack(item.Name) {
			tracked = append(tracked, item)
		}
	}

	if m.state == Bootstrapping {
		if err := m.bootstrap(ctx, tracked); err != nil {
			return err
		}
	} else {
		for _, item := range tracked {
			if err := m.process(ctx, item); err != nil {
				return err
			}
		}
	}

	m.prune()
	return nil
}

func (m *Monitor) bootstrap(ctx context.Context, items []types.AuctionItem) error {
	for _, item := range items {
		endsAt, err := m.clock.Parse(item.EndTime)
		if err != nil {
			return fmt.Errorf("auction %s: %w", item.ID, err)
		}

		m.report(m.notifier.NotifyAuction(ctx, item, false))
		m.store.MarkKnown(item.ID, endsAt, m.clock.Now())

		if m.endingSoon(endsAt) {
			m.store.RecordBid(item.ID, item.CurrentBid)
		}
	}

	m.state = Steady
	logging.Info(fmt.Sprintf("bootstrap complete: %d auctions", len(items)), map[string]any{
		"known":        m.store.KnownCount(),
		"tracked_bids": m.store.TrackedBidCount(),
	})
	return nil
}

func (m *Monitor) process(ctx context.Context, item types.AuctionItem) error {
	endsAt, err := m.clock.Parse(item.EndTime)
	if err != nil {
		return fmt.Errorf("auction %s: %w", item.ID, err)
	}

	if !m.store.IsKnown(item.ID) {
		m.report(m.notifier.NotifyAuction(ctx, item, true))
	}
	m.store.MarkKnown(item.ID, endsAt, m.clock.Now())

	if !m.endingSoon(endsAt) {
		return nil
	}

	stored, ok := m.store.LastBid(item.ID)
	switch {
	case !ok:
		m.store.RecordBid(item.ID, item.CurrentBid)
	case !stored.Equal(item.CurrentBid):
		m.report(m.notifier.NotifyBidChange(ctx, item, item.CurrentBid, stored))
		m.store.RecordBid(item.ID, item.CurrentBid)
	}
	return nil
}

func (m *Monitor) endingSoon(endsAt time.Time) bool {
	return clock.EndingSoon(endsAt.Sub(m.clock.Now()), m.cfg.AlertBeforeEnd)
}

func (m *Monitor) prune() {
	if m.cfg.PruneAfter <= 0 {
		return
	}
	if n := m.store.Prune(m.clock.Now().Add(-m.cfg.PruneAfter)); n > 0 {
		logging.Debug("pruned ended auctions", map[string]any{"removed": n})
	}
}

// report logs failed deliveries and counts the successful ones.
func (m *Monitor) report(deliveries []notify.Delivery) {
	sent := 0
	for _, d := range deliveries {
		switch d.Status {
		case notify.Sent:
			sent++
		case notify.Failed:
			logging.Warn("notification failed", map[string]any{"channel": d.Channel, "error": d.Err.Error()})
		}
	}

	m.mu.Lock()
	m.stats.NotificationsSent += sent
	m.mu.Unlock()
}

func (m *Monitor) finishCycle(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Cycles++
	m.stats.State = m.state.String()
	m.stats.KnownAuctions = m.store.KnownCount()
	m.stats.TrackedBids = m.store.TrackedBidCount()
	if err != nil {
		m.stats.FailedCycles++
		m.stats.LastError = err.Error()
		return
	}
	m.stats.LastSuccessAt = m.clock.Now()
	m.stats.LastError = ""
}
