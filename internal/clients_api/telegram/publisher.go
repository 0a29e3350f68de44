package telegram

// Delivers rendered charts to a Telegram chat as photos
// Sends are rate limited, wrapped in a circuit breaker and retried on 429/5xx
// A 429 with retry_after waits for the server-provided delay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	logging "sales-chart/internal/infra/log"
	"sales-chart/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Sender is the part of *tgbotapi.BotAPI the publisher uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Options struct {
	// RatePerMinute caps sends; 0 disables the limiter.
	RatePerMinute int
	Retry         retry.Options
	// BreakerFailures consecutive failures open the breaker for BreakerTimeout.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func DefaultOptions() Options {
	return Options{
		RatePerMinute: 20,
		Retry: retry.Options{
			MaxRetries: 3,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   30 * time.Second,
		},
		BreakerFailures: 5,
		BreakerTimeout:  time.Minute,
	}
}

type Publisher struct {
	sender  Sender
	chatID  int64
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	retry   retry.Options
}

func NewPublisher(sender Sender, chatID string, opts Options) (*Publisher, error) {
	if sender == nil {
		return nil, errors.New("telegram sender is nil")
	}
	id, err := parseChatID(chatID)
	if err != nil {
		return nil, err
	}

	limit := rate.Inf
	if opts.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RatePerMinute))
	}
	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "telegram",
		Timeout: opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.LogWarn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Publisher{
		sender:  sender,
		chatID:  id,
		limiter: rate.NewLimiter(limit, 1),
		breaker: breaker,
		retry:   opts.Retry,
	}, nil
}

// NewBotPublisher authorises token against the Bot API and wraps it.
func NewBotPublisher(token, chatID string, opts Options) (*Publisher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	logging.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return NewPublisher(bot, chatID, opts)
}

// PublishChart sends the PNG at chartPath with caption and returns the sent
// message id.
func (p *Publisher) PublishChart(ctx context.Context, runID, chartPath, caption string) (int, error) {
	if _, err := os.Stat(chartPath); err != nil {
		return 0, fmt.Errorf("chart file is not readable: %w", err)
	}

	photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(chartPath))
	photo.Caption = caption

	target := "telegram:" + strconv.FormatInt(p.chatID, 10)
	var sent tgbotapi.Message

	err := retry.Do(ctx, p.retry, func() error {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}

		start := time.Now()
		res, err := p.breaker.Execute(func() (interface{}, error) {
			return p.sender.Send(photo)
		})
		logging.LogDelivery(runID, target, err == nil, time.Since(start).Milliseconds(),
			zap.String("file", chartPath))
		if err != nil {
			return classify(err)
		}
		sent = res.(tgbotapi.Message)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to send chart to %s: %w", target, err)
	}

	return sent.MessageID, nil
}

// classify maps Bot API errors onto retry.HTTPError so retry.Do can decide.
func classify(err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return &retry.HTTPError{
			StatusCode: apiErr.Code,
			Body:       []byte(apiErr.Message),
			RetryAfter: time.Duration(apiErr.RetryAfter) * time.Second,
		}
	}
	return err
}

func parseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram chat id %q: %w", chatID, err)
	}
	return id, nil
}
