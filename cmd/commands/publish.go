package commands

// Command to render the chart and send it to Telegram
// Rendering is identical to the render command; delivery goes through the
// rate limited, breaker protected publisher

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-chart/internal/clients_api/telegram"
	logging "sales-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the sales chart and send it to a Telegram chat",
	Long: `Render the chart exactly like the render command, then send the PNG as a
photo to telegram.chat_id. Requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID
(or the matching config keys).`,
	RunE: runPublish,
}

func init() {
	addChartFlags(publishCmd.Flags())
	f := publishCmd.Flags()
	f.String("bot-token", "", "Telegram bot token")
	f.String("chat-id", "", "Telegram chat id")
	f.String("caption", "", "photo caption (default chart title)")
	f.Int("rate", 20, "max sends per minute, 0 disables the limiter")
	f.Int("max-retries", 3, "retries on 429 and 5xx responses")
	f.Int("send-timeout", 30, "delivery timeout in seconds")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateTelegram(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runID := logging.GenerateRunID()
	runLog := logging.RunLogger(runID)
	runLog.Info("Publish started", zap.String("chat_id", cfg.Telegram.ChatID))

	res, err := renderChart(ctx, cfg)
	if err != nil {
		return err
	}

	opts := telegram.DefaultOptions()
	opts.RatePerMinute = cfg.Telegram.RatePerMinute
	opts.Retry.MaxRetries = cfg.Telegram.MaxRetries

	publisher, err := telegram.NewBotPublisher(cfg.Telegram.BotToken, cfg.Telegram.ChatID, opts)
	if err != nil {
		logging.LogError("Failed to initialize Telegram publisher", zap.Error(err))
		return err
	}

	caption := cfg.Telegram.Caption
	if caption == "" {
		caption = cfg.Chart.Title
	}

	sendCtx := ctx
	if cfg.Telegram.Timeout > 0 {
		var sendCancel context.CancelFunc
		sendCtx, sendCancel = context.WithTimeout(ctx, time.Duration(cfg.Telegram.Timeout)*time.Second)
		defer sendCancel()
	}

	msgID, err := publisher.PublishChart(sendCtx, runID, res.Path, caption)
	if err != nil {
		logging.LogError("Failed to publish chart", zap.String("run_id", runID), zap.Error(err))
		return err
	}

	runLog.Info("Publish finished", zap.Int("message_id", msgID))
	logging.LogSuccess("Chart published",
		zap.String("run_id", runID),
		zap.String("filename", res.Path),
		zap.Int("message_id", msgID))
	return nil
}
