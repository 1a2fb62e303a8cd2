package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/shanehull/auctionwatch/internal/clock"
	"github.com/shanehull/auctionwatch/internal/config"
	"github.com/shanehull/auctionwatch/internal/logging"
	"github.com/shanehull/auctionwatch/internal/monitor"
	"github.com/shanehull/auctionwatch/internal/notify"
	"github.com/shanehull/auctionwatch/internal/source"
	"github.com/shanehull/auctionwatch/internal/status"
	"github.com/shanehull/auctionwatch/internal/watch"
)

var (
	envFile = flag.String("env-file", ".env", "(-e) Optional dotenv file loaded before the environment is read")
	once    = flag.Bool("once", false, "Run a single poll cycle and exit")
)

func init() {
	flag.StringVar(envFile, "e", ".env", "(-e) Optional dotenv file (shorthand)")
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.New(cfg.Auction.UTCOffset)
	src := source.NewClient(cfg.Auction.APIURL, cfg.Auction.RequestTimeout)
	notifier := notify.New(notify.Config{
		LinkBase:  cfg.Auction.LinkBase,
		ImagePath: cfg.Heartbeat.Image,
	}, src, clk, senders(cfg)...)

	mon := monitor.New(monitor.Config{
		Interval:       cfg.Monitor.Interval,
		AlertBeforeEnd: cfg.Monitor.Threshold(),
		PruneAfter:     cfg.Monitor.PruneAfter,
		Watch:          watch.NewList(cfg.Monitor.WatchedNicks),
	}, src, notifier, clk)

	messaging := "off"
	if notifier.Enabled() {
		messaging = "on (" + strings.Join(notifier.Channels(), ", ") + ")"
	}
	logging.Info("started | messaging: "+messaging, map[string]any{
		"api":     cfg.Auction.APIURL,
		"watched": cfg.Monitor.WatchedNicks,
		"zone":    clk.Location().String(),
	})

	if *once {
		if err := mon.RunOnce(ctx); err != nil {
			logging.Error("poll failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		return
	}

	for _, d := range notifier.NotifyStartup(ctx) {
		if d.Status == notify.Failed {
			logging.Warn("startup notice failed", map[string]any{"channel": d.Channel, "error": d.Err.Error()})
		}
	}

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		mon.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		monitor.NewHeartbeat(notifier, cfg.Heartbeat.Interval).Run(ctx)
	}()

	if cfg.Status.Addr != "" {
		handler := status.NewHandler(mon.Snapshot, 3*cfg.Monitor.Interval+cfg.Auction.RequestTimeout)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := status.Serve(ctx, cfg.Status.Addr, status.NewRouter(handler)); err != nil {
				logging.Error("status server stopped", map[string]any{"error": err.Error()})
			}
		}()
	}

	<-ctx.Done()
	logging.Info("shutting down", nil)
	wg.Wait()
}

// senders builds the messaging channels. A Telegram channel that fails to
// initialize is logged and left out.
func senders(cfg *config.Config) []notify.Sender {
	var out []notify.Sender

	if cfg.Telegram.Enabled() {
		tg, err := notify.NewTelegramSender(notify.TelegramConfig{
			Token:       cfg.Telegram.Token,
			ChatID:      cfg.Telegram.ChatID,
			APIEndpoint: cfg.Telegram.APIEndpoint,
			Proxy:       cfg.Telegram.Proxy,
		})
		switch {
		case err == nil:
			out = append(out, tg)
		case errors.Is(err, notify.ErrChannelDisabled):
		default:
			logging.Warn("telegram disabled", map[string]any{"error": err.Error()})
		}
	}

	// Email is always registered; without SMTP settings it reports Skipped.
	out = append(out, notify.NewEmailSender(notify.EmailConfig{
		SMTPServer: cfg.Email.SMTPServer,
		SMTPPort:   cfg.Email.SMTPPort,
		SMTPUser:   cfg.Email.SMTPUser,
		SMTPPass:   cfg.Email.SMTPPass,
		FromEmail:  cfg.Email.FromEmail,
		ToEmail:    cfg.Email.ToEmail,
		Enabled:    cfg.Email.Enabled(),
	}))

	return out
}
