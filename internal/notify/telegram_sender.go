package notify

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shanehull/auctionwatch/internal/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/net/proxy"
)

type TelegramConfig struct {
	Token       string
	ChatID      string
	APIEndpoint string
	// Proxy is an optional socks5:// URL for reaching the Bot API.
	Proxy   string
	Timeout time.Duration
}

// TelegramSender posts messages and photos to a single chat through the Bot API.
type TelegramSender struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	channel string
}

// NewTelegramSender prepares a Bot API client for one chat. ChatID may be a
// numeric chat id or an @channel username. The token is checked with getMe,
// but a failed check only logs a warning; every send stands on its own.
func NewTelegramSender(cfg TelegramConfig) (*TelegramSender, error) {
	if cfg.Token == "" || cfg.ChatID == "" {
		return nil, fmt.Errorf("telegram: %w: missing token or chat id", ErrChannelDisabled)
	}

	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport, err := newTransport(cfg.Proxy)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: timeout, Transport: transport}

	// NewBotAPIWithClient fails outright when getMe does; build the client
	// directly so a transient error at startup does not lose the channel.
	bot := &tgbotapi.BotAPI{Token: cfg.Token, Client: client, Buffer: 100}
	bot.SetAPIEndpoint(endpoint)
	if me, err := bot.GetMe(); err != nil {
		logging.Warn("telegram authorization check failed", map[string]any{"error": err.Error()})
	} else {
		bot.Self = me
		logging.Info("telegram authorized", map[string]any{"bot": me.UserName})
	}

	s := &TelegramSender{bot: bot}
	chat := strings.TrimSpace(cfg.ChatID)
	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		s.chatID = id
	} else {
		s.channel = chat
	}
	return s, nil
}

func (s *TelegramSender) Channel() string {
	return "telegram"
}

func (s *TelegramSender) SendText(ctx context.Context, msg *RenderedMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := tgbotapi.NewMessage(s.chatID, msg.Markup)
	m.ChannelUsername = s.channel
	m.ParseMode = tgbotapi.ModeHTML
	m.DisableWebPagePreview = true

	if _, err := s.bot.Send(m); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

func (s *TelegramSender) SendImage(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := tgbotapi.NewPhoto(s.chatID, tgbotapi.FilePath(path))
	p.ChannelUsername = s.channel

	if _, err := s.bot.Send(p); err != nil {
		return fmt.Errorf("telegram sendPhoto: %w", err)
	}
	logging.Info("image sent", map[string]any{"path": path})
	return nil
}

func newTransport(proxyURL string) (*http.Transport, error) {
	t := &http.Transport{Proxy: http.ProxyFromEnvironment, DisableKeepAlives: true}
	if proxyURL == "" {
		return t, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("telegram proxy url: %w", err)
	}
	dialer, err := proxy.FromURL(u, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("telegram proxy: %w", err)
	}

	t.Proxy = nil
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		t.DialContext = cd.DialContext
	} else {
		t.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	}
	return t, nil
}
