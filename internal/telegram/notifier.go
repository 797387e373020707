package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/proposal-backend/internal/config"
	pkgRetry "github.com/futig/proposal-backend/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Notifier delivers short operational messages to the admin chat
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// sender is the part of *tgbotapi.BotAPI the notifier needs
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type BotNotifier struct {
	api         sender
	chatID      int64
	sendTimeout time.Duration
	retry       *pkgRetry.RetryConfig
	logger      *zap.Logger
}

var _ Notifier = &BotNotifier{}

// NewBotNotifier authorizes the bot token and returns a notifier bound to the admin chat
func NewBotNotifier(cfg *config.TelegramConfig, logger *zap.Logger) (*BotNotifier, error) {
	api, err := newBotAPI(cfg.BotToken, tgbotapi.APIEndpoint, cfg.SendTimeout)
	if err != nil {
		return nil, err
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return newBotNotifier(api, cfg.AdminChatID, cfg.SendTimeout, &cfg.Retry, logger), nil
}

// newBotAPI builds a bot whose every HTTP call, getMe included, is bounded by timeout
func newBotAPI(token, endpoint string, timeout time.Duration) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	api.Debug = false
	return api, nil
}

func newBotNotifier(api sender, chatID int64, sendTimeout time.Duration, retry *pkgRetry.RetryConfig, logger *zap.Logger) *BotNotifier {
	return &BotNotifier{
		api:         api,
		chatID:      chatID,
		sendTimeout: sendTimeout,
		retry:       retry,
		logger:      logger,
	}
}

// Notify sends text to the admin chat. It returns once ctx is done even if
// Telegram has not answered yet.
func (n *BotNotifier) Notify(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true

	attempt := 0
	err := n.retry.Do(ctx, func() error {
		attempt++
		err := n.send(ctx, msg)
		if err != nil {
			n.logger.Warn("failed to send admin notification",
				zap.Error(err),
				zap.Int("attempt", attempt),
				zap.Int64("chat_id", n.chatID),
			)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("send admin notification: %w", err)
	}

	if attempt > 1 {
		ctxzap.Info(ctx, "admin notification sent after retry", zap.Int("attempt", attempt))
	}
	return nil
}

// send runs one Send call. tgbotapi takes no context, so the call is raced
// against ctx; the HTTP client timeout ends the abandoned request.
func (n *BotNotifier) send(ctx context.Context, msg tgbotapi.MessageConfig) error {
	if n.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.sendTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		_, err := n.api.Send(msg)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogNotifier writes notifications to the log instead of Telegram
type LogNotifier struct {
	logger *zap.Logger
}

var _ Notifier = &LogNotifier{}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, text string) error {
	n.logger.Info("admin notification", zap.String("text", text))
	return nil
}
