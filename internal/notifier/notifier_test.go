package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/Alias1177/cryptopulse/internal/platform/http"
)

func testHTTPClient() *httpClient.Client {
	return httpClient.NewClient(httpClient.ClientOptions{
		Timeout:         2 * time.Second,
		RequestsPerSec:  100,
		MaxRetries:      1,
		MaxRetryTimeout: 2 * time.Second,
	})
}

func TestDiscord_PublishChunksInOrder(t *testing.T) {
	var mu sync.Mutex
	var contents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		mu.Lock()
		contents = append(contents, payload["content"])
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	message := strings.Repeat("a", 2000) + strings.Repeat("b", 500)
	err := NewDiscord(srv.URL, testHTTPClient()).Publish(context.Background(), message)
	require.NoError(t, err)

	require.Len(t, contents, 2)
	assert.Equal(t, strings.Repeat("a", 2000), contents[0])
	assert.Equal(t, strings.Repeat("b", 500), contents[1])
}

func TestDiscord_PublishStopsOnRejectedChunk(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message":"Invalid Webhook Token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewDiscord(srv.URL, testHTTPClient()).Publish(context.Background(), strings.Repeat("x", 4500))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discord chunk 1/3")

	var statusErr *httpClient.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, 1, calls)
}

func newTelegramServer(t *testing.T, sent *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Pulse","username":"pulse_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "42", r.FormValue("chat_id"))
			*sent = append(*sent, r.FormValue("text"))
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestTelegram_Publish(t *testing.T) {
	var sent []string
	srv := newTelegramServer(t, &sent)
	defer srv.Close()

	bot, err := tgbotapi.NewBotAPIWithClient("test-token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	tg := NewTelegramWithBot(bot, 42)
	require.NoError(t, tg.Publish(context.Background(), strings.Repeat("z", TelegramMaxMessageLen+10)))

	require.Len(t, sent, 2)
	assert.Len(t, sent[0], TelegramMaxMessageLen)
	assert.Len(t, sent[1], 10)
}

func TestTelegram_PublishCountsUTF16Units(t *testing.T) {
	var sent []string
	srv := newTelegramServer(t, &sent)
	defer srv.Close()

	bot, err := tgbotapi.NewBotAPIWithClient("test-token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	message := strings.Repeat("📊", 3000)
	require.NoError(t, NewTelegramWithBot(bot, 42).Publish(context.Background(), message))

	require.Len(t, sent, 2)
	for _, text := range sent {
		assert.LessOrEqual(t, len(utf16.Encode([]rune(text))), TelegramMaxMessageLen)
	}
	assert.Equal(t, message, strings.Join(sent, ""))
}

func TestTelegram_PublishCancelled(t *testing.T) {
	var sent []string
	srv := newTelegramServer(t, &sent)
	defer srv.Close()

	bot, err := tgbotapi.NewBotAPIWithClient("test-token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewTelegramWithBot(bot, 42).Publish(ctx, "hello")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sent)
}

type recordingPublisher struct {
	name     string
	err      error
	messages []string
}

func (p *recordingPublisher) Name() string { return p.name }

func (p *recordingPublisher) Publish(_ context.Context, message string) error {
	p.messages = append(p.messages, message)
	return p.err
}

func TestMulti_PublishesToAllSinks(t *testing.T) {
	boom := errors.New("boom")
	first := &recordingPublisher{name: "first", err: boom}
	second := &recordingPublisher{name: "second"}

	m := Multi{first, second}
	assert.Equal(t, "multi(first,second)", m.Name())

	err := m.Publish(context.Background(), "report")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "first: boom")
	assert.Equal(t, []string{"report"}, first.messages)
	assert.Equal(t, []string{"report"}, second.messages, "a failing sink must not block the rest")
}

func TestWriter_Publish(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Writer{W: &sb}.Publish(context.Background(), "report"))
	assert.Equal(t, "report\n", sb.String())
}
