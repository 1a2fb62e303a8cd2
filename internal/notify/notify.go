/*
Package notify reports auction events to local output and to every
configured messaging channel (Telegram, email).

Dispatch is best effort: each channel's outcome is returned as a Delivery and
never as an error, so a failing channel cannot disturb the caller.
*/
package notify

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shanehull/auctionwatch/internal/clock"
	"github.com/shanehull/auctionwatch/internal/logging"
	"github.com/shanehull/auctionwatch/internal/types"

	"github.com/shopspring/decimal"
)

const unknownBidder = "unknown"

var (
	ErrImageNotFound   = errors.New("heartbeat image not found")
	ErrChannelDisabled = errors.New("channel disabled")
)

// Sender delivers rendered messages over one messaging channel.
type Sender interface {
	Channel() string
	SendText(ctx context.Context, msg *RenderedMessage) error
	SendImage(ctx context.Context, path string) error
}

// toggler is implemented by senders that can be configured off. A sender
// without it is always active.
type toggler interface {
	Enabled() bool
}

func active(s Sender) bool {
	t, ok := s.(toggler)
	return !ok || t.Enabled()
}

// BidLookup fetches the recent bids of an auction, newest first.
type BidLookup interface {
	ListRecentBids(ctx context.Context, id types.AuctionID) ([]types.Bid, error)
}

type Status int

const (
	Sent Status = iota
	Failed
	Skipped
)

func (s Status) String() string {
	switch s {
	case Sent:
		return "sent"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Delivery is the outcome of one dispatch on one channel.
type Delivery struct {
	Channel string
	Status  Status
	Err     error
}

type Config struct {
	LinkBase  string
	ImagePath string
}

type Notifier struct {
	senders   []Sender
	bids      BidLookup
	clock     *clock.Clock
	renderer  *Renderer
	imagePath string
}

// New returns a Notifier dispatching to senders. Nil senders are ignored, so
// callers can pass optional channels directly.
func New(cfg Config, bids BidLookup, clk *clock.Clock, senders ...Sender) *Notifier {
	n := &Notifier{
		bids:      bids,
		clock:     clk,
		renderer:  NewRenderer(cfg.LinkBase),
		imagePath: cfg.ImagePath,
	}
	for _, s := range senders {
		if s != nil {
			n.senders = append(n.senders, s)
		}
	}
	return n
}

// Enabled reports whether at least one messaging channel is active.
func (n *Notifier) Enabled() bool {
	return len(n.Channels()) > 0
}

// Channels names the active channels. Inactive senders still receive every
// dispatch and report it as Skipped.
func (n *Notifier) Channels() []string {
	names := make([]string, 0, len(n.senders))
	for _, s := range n.senders {
		if active(s) {
			names = append(names, s.Channel())
		}
	}
	return names
}

func (n *Notifier) NotifyStartup(ctx context.Context) []Delivery {
	return n.dispatch(ctx, n.renderer.RenderStartup())
}

// NotifyAuction announces a listing. isNew is false for the informational
// listings of the first poll.
func (n *Notifier) NotifyAuction(ctx context.Context, item types.AuctionItem, isNew bool) []Delivery {
	left := n.timeLeft(item)

	tag := ""
	if isNew {
		tag = "[new] "
	}
	logging.Info(fmt.Sprintf("%s%s | %s | %s", tag, item.Name, item.CurrentBid, left), map[string]any{
		"auction_id": item.ID.String(),
		"new":        isNew,
	})

	msg, err := n.renderer.RenderAuction(item, isNew, left)
	if err != nil {
		return n.failAll(err)
	}
	return n.dispatch(ctx, msg)
}

// NotifyBidChange announces that the leading bid moved from oldBid to newBid.
// The bidder is looked up on the way and reported as "unknown" when the lookup
// fails.
func (n *Notifier) NotifyBidChange(ctx context.Context, item types.AuctionItem, newBid, oldBid decimal.Decimal) []Delivery {
	left := n.timeLeft(item)
	bidder := n.lookupBidder(ctx, item.ID)

	logging.Info(fmt.Sprintf("[bid] %s: %s -> %s | %s", item.Name, bidder, newBid, left), map[string]any{
		"auction_id": item.ID.String(),
		"old_bid":    oldBid.String(),
		"new_bid":    newBid.String(),
	})

	msg, err := n.renderer.RenderBidChange(item, newBid, oldBid, bidder, left)
	if err != nil {
		return n.failAll(err)
	}
	return n.dispatch(ctx, msg)
}

// NotifyHeartbeatImage sends the configured image to every channel.
func (n *Notifier) NotifyHeartbeatImage(ctx context.Context) []Delivery {
	if !n.Enabled() {
		return nil
	}

	if _, err := os.Stat(n.imagePath); err != nil {
		return n.failAll(fmt.Errorf("%w: %s: %v", ErrImageNotFound, n.imagePath, err))
	}

	deliveries := make([]Delivery, 0, len(n.senders))
	for _, s := range n.senders {
		deliveries = append(deliveries, outcome(s.Channel(), s.SendImage(ctx, n.imagePath)))
	}
	return deliveries
}

func (n *Notifier) dispatch(ctx context.Context, msg *RenderedMessage) []Delivery {
	deliveries := make([]Delivery, 0, len(n.senders))
	for _, s := range n.senders {
		deliveries = append(deliveries, outcome(s.Channel(), s.SendText(ctx, msg)))
	}
	return deliveries
}

func (n *Notifier) failAll(err error) []Delivery {
	deliveries := make([]Delivery, 0, len(n.senders))
	for _, s := range n.senders {
		if !active(s) {
			deliveries = append(deliveries, Delivery{Channel: s.Channel(), Status: Skipped, Err: ErrChannelDisabled})
			continue
		}
		deliveries = append(deliveries, Delivery{Channel: s.Channel(), Status: Failed, Err: err})
	}
	return deliveries
}

func (n *Notifier) timeLeft(item types.AuctionItem) string {
	left, err := n.clock.FormatRemaining(item.EndTime)
	if err != nil {
		logging.Warn("cannot compute time left", map[string]any{"auction_id": item.ID.String(), "error": err.Error()})
		return "?"
	}
	return left
}

func (n *Notifier) lookupBidder(ctx context.Context, id types.AuctionID) string {
	if n.bids == nil {
		return unknownBidder
	}

	bids, err := n.bids.ListRecentBids(ctx, id)
	if err != nil {
		logging.Warn("bid lookup failed", map[string]any{"auction_id": id.String(), "error": err.Error()})
		return unknownBidder
	}
	if len(bids) == 0 || bids[0].UserName == "" {
		return unknownBidder
	}
	return bids[0].UserName
}

func outcome(channel string, err error) Delivery {
	switch {
	case err == nil:
		return Delivery{Channel: channel, Status: Sent}
	case errors.Is(err, ErrChannelDisabled):
		return Delivery{Channel: channel, Status: Skipped, Err: err}
	default:
		return Delivery{Channel: channel, Status: Failed, Err: err}
	}
}
