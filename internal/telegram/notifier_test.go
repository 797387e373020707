package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/futig/proposal-backend/internal/entity"
	pkgRetry "github.com/futig/proposal-backend/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	failures int
	calls    int
	sent     []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.calls++
	if f.calls <= f.failures {
		return tgbotapi.Message{}, errors.New("telegram unavailable")
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{MessageID: f.calls}, nil
}

func fastRetry() *pkgRetry.RetryConfig {
	return &pkgRetry.RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestBotNotifierRetries(t *testing.T) {
	api := &fakeSender{failures: 2}
	n := newBotNotifier(api, 42, time.Second, fastRetry(), zap.NewNop())

	require.NoError(t, n.Notify(context.Background(), "hello"))

	assert.Equal(t, 3, api.calls)
	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
	assert.Equal(t, "hello", api.sent[0].Text)
}

func TestBotNotifierGivesUp(t *testing.T) {
	api := &fakeSender{failures: 10}
	n := newBotNotifier(api, 42, time.Second, fastRetry(), zap.NewNop())

	err := n.Notify(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 3, api.calls)
}

// newTelegramServer fakes the Bot API: getMe always succeeds, sendMessage is up to the test
func newTelegramServer(t *testing.T, sendMessage http.HandlerFunc) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Admin","username":"admin_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			sendMessage(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(func() {
		// drops requests that are still hanging so Close does not wait on them
		srv.CloseClientConnections()
		srv.Close()
	})

	return srv.URL + "/bot%s/%s"
}

// hangingSendMessage never answers; it returns once the client goes away
func hangingSendMessage(w http.ResponseWriter, r *http.Request) {
	<-r.Context().Done()
}

func TestBotNotifierSendsOverBotAPI(t *testing.T) {
	received := make(chan url.Values, 1)
	endpoint := newTelegramServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err == nil {
			received <- r.PostForm
		}
		fmt.Fprint(w, `{"ok":true,"result":{"message_id":5,"date":0,"chat":{"id":42,"type":"private"},"text":"hi"}}`)
	})

	api, err := newBotAPI("token", endpoint, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "admin_bot", api.Self.UserName)

	n := newBotNotifier(api, 42, time.Second, fastRetry(), zap.NewNop())
	require.NoError(t, n.Notify(context.Background(), "hi"))

	form := <-received
	assert.Equal(t, "42", form.Get("chat_id"))
	assert.Equal(t, "hi", form.Get("text"))
}

func TestBotNotifierStopsAtContextDeadline(t *testing.T) {
	endpoint := newTelegramServer(t, hangingSendMessage)

	api, err := newBotAPI("token", endpoint, 10*time.Second)
	require.NoError(t, err)
	n := newBotNotifier(api, 42, 10*time.Second, fastRetry(), zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = n.Notify(ctx, "hello")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBotNotifierSendTimeout(t *testing.T) {
	endpoint := newTelegramServer(t, hangingSendMessage)

	// the client timeout alone has to end the request when the caller has no deadline
	api, err := newBotAPI("token", endpoint, 100*time.Millisecond)
	require.NoError(t, err)
	n := newBotNotifier(api, 42, 0, &pkgRetry.RetryConfig{Attempts: 1}, zap.NewNop())

	start := time.Now()
	err = n.Notify(context.Background(), "hello")

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMessages(t *testing.T) {
	msg := ProposalGenerated(&entity.Proposal{RequestID: 7, Version: 2, Status: entity.ProposalStatusDraft})
	assert.Contains(t, msg, "#7")
	assert.Contains(t, msg, "Version: 2")

	msg = ComparisonGenerated(&entity.Comparison{RequestID: 3, ComparisonEstimates: entity.ComparisonEstimates{
		TimelineIndustryTime: "6 months",
		BudgetFormitCost:     "$40k",
	}})
	assert.Contains(t, msg, "6 months (industry) vs n/a (accelerated)")
	assert.Contains(t, msg, "$40k (accelerated)")

	assert.Contains(t, UserRegistered(&entity.User{Email: "a@b.c"}), "Name: n/a")
}
