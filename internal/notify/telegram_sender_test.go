package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	getMeReply   = `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"t","username":"tbot"}}`
	messageReply = `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`
)

type botCall struct {
	method string
	form   map[string]string
	files  []string
}

type fakeBotAPI struct {
	mu       sync.Mutex
	calls    []botCall
	fail     bool
	getMeErr bool
}

func (f *fakeBotAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if !assert.Len(t, parts, 2) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "botTOKEN", parts[0])
		method := parts[1]

		call := botCall{method: method, form: map[string]string{}}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			for name := range r.MultipartForm.File {
				call.files = append(call.files, name)
			}
			for k, v := range r.MultipartForm.Value {
				call.form[k] = v[0]
			}
		} else {
			assert.NoError(t, r.ParseForm())
			for k := range r.PostForm {
				call.form[k] = r.PostForm.Get(k)
			}
		}

		f.mu.Lock()
		f.calls = append(f.calls, call)
		fail := f.fail
		getMeErr := f.getMeErr
		f.mu.Unlock()

		if method == "getMe" && getMeErr {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case method == "getMe":
			_, _ = w.Write([]byte(getMeReply))
		case fail:
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
		default:
			_, _ = w.Write([]byte(messageReply))
		}
	}
}

func (f *fakeBotAPI) last() botCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeBotAPI) setFail(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *fakeBotAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestTelegram(t *testing.T, chatID string) (*TelegramSender, *fakeBotAPI) {
	t.Helper()
	api := &fakeBotAPI{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	s, err := NewTelegramSender(TelegramConfig{
		Token:       "TOKEN",
		ChatID:      chatID,
		APIEndpoint: srv.URL + "/bot%s/%s",
	})
	require.NoError(t, err)
	require.Equal(t, "getMe", api.last().method)
	return s, api
}

func TestNewTelegramSender_MissingCredentials(t *testing.T) {
	_, err := NewTelegramSender(TelegramConfig{Token: "", ChatID: "42"})
	require.ErrorIs(t, err, ErrChannelDisabled)

	_, err = NewTelegramSender(TelegramConfig{Token: "TOKEN", ChatID: ""})
	require.ErrorIs(t, err, ErrChannelDisabled)
}

func TestTelegramSender_SendText(t *testing.T) {
	s, api := newTestTelegram(t, "42")
	require.Equal(t, "telegram", s.Channel())

	err := s.SendText(context.Background(), &RenderedMessage{Markup: "<b>new:</b> <b>Notch</b>"})
	require.NoError(t, err)

	call := api.last()
	require.Equal(t, "sendMessage", call.method)
	require.Equal(t, "42", call.form["chat_id"])
	require.Equal(t, "<b>new:</b> <b>Notch</b>", call.form["text"])
	require.Equal(t, "HTML", call.form["parse_mode"])
	require.Equal(t, "true", call.form["disable_web_page_preview"])
}

func TestTelegramSender_SendText_ChannelUsername(t *testing.T) {
	s, api := newTestTelegram(t, "@auctions")

	require.NoError(t, s.SendText(context.Background(), &RenderedMessage{Markup: "hi"}))
	require.Equal(t, "@auctions", api.last().form["chat_id"])
}

func TestTelegramSender_SendText_APIError(t *testing.T) {
	s, api := newTestTelegram(t, "42")
	api.setFail(true)

	err := s.SendText(context.Background(), &RenderedMessage{Markup: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "chat not found")
}

func TestTelegramSender_SendText_CanceledContext(t *testing.T) {
	s, api := newTestTelegram(t, "42")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.SendText(ctx, &RenderedMessage{Markup: "hi"}), context.Canceled)
	require.Equal(t, 1, api.count())
}

func TestTelegramSender_SendImage(t *testing.T) {
	s, api := newTestTelegram(t, "42")

	img := filepath.Join(t.TempDir(), "image.jpg")
	require.NoError(t, os.WriteFile(img, []byte{0xff, 0xd8, 0xff, 0xe0}, 0o644))

	require.NoError(t, s.SendImage(context.Background(), img))

	call := api.last()
	require.Equal(t, "sendPhoto", call.method)
	require.Equal(t, "42", call.form["chat_id"])
	require.Equal(t, []string{"photo"}, call.files)
}

func TestNewTelegramSender_GetMeFailureKeepsChannel(t *testing.T) {
	api := &fakeBotAPI{getMeErr: true}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	s, err := NewTelegramSender(TelegramConfig{
		Token:       "TOKEN",
		ChatID:      "42",
		APIEndpoint: srv.URL + "/bot%s/%s",
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Equal(t, "getMe", api.last().method)

	require.NoError(t, s.SendText(context.Background(), &RenderedMessage{Markup: "still here"}))
	call := api.last()
	require.Equal(t, "sendMessage", call.method)
	require.Equal(t, "still here", call.form["text"])
	require.Equal(t, 2, api.count())
}

func TestNewTelegramSender_BadProxy(t *testing.T) {
	_, err := NewTelegramSender(TelegramConfig{Token: "TOKEN", ChatID: "42", Proxy: "ftp://proxy.example.test:21"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "telegram proxy")
}

func TestNewTransport_Socks5(t *testing.T) {
	tr, err := newTransport("socks5://127.0.0.1:1080")
	require.NoError(t, err)
	require.Nil(t, tr.Proxy)
	require.NotNil(t, tr.DialContext)
	require.True(t, tr.DisableKeepAlives)

	tr, err = newTransport("")
	require.NoError(t, err)
	require.NotNil(t, tr.Proxy)
	require.Nil(t, tr.DialContext)
}
