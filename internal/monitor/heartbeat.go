package monitor

import (
	"context"
	"time"

	"github.com/shanehull/auctionwatch/internal/logging"
	"github.com/shanehull/auctionwatch/internal/notify"
)

// Heartbeat periodically sends a fixed image so the chat shows the monitor is
// alive. It shares no state with Monitor.
type Heartbeat struct {
	notifier ImageNotifier
	interval time.Duration
}

func NewHeartbeat(n ImageNotifier, interval time.Duration) *Heartbeat {
	return &Heartbeat{notifier: n, interval: interval}
}

// Run sends the image once per interval, the first time one interval after
// start, until ctx is canceled.
func (h *Heartbeat) Run(ctx context.Context) {
	if h.interval <= 0 {
		logging.Info("heartbeat disabled", nil)
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			h.beat(ctx)
		}
	}
}

func (h *Heartbeat) beat(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("heartbeat panicked", map[string]any{"panic": r})
		}
	}()

	for _, d := range h.notifier.NotifyHeartbeatImage(ctx) {
		if d.Status == notify.Failed {
			logging.Warn("heartbeat image failed", map[string]any{"channel": d.Channel, "error": d.Err.Error()})
		}
	}
}
