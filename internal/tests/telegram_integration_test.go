//go:build integration

package tests

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sales-chart/internal/clients_api/telegram"
	"sales-chart/internal/features/charts"
)

// go test -tags integration ./internal/tests/...
// Needs TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID of a chat the bot can post to.
func TestIntegration_Telegram_PublishChart(t *testing.T) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatID == "" {
		t.Skip("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID not set")
	}

	path := filepath.Join(t.TempDir(), "sales_chart.png")
	if err := charts.Render(charts.SampleSeries(), charts.KindLine, path); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	publisher, err := telegram.NewBotPublisher(token, chatID, telegram.DefaultOptions())
	if err != nil {
		t.Fatalf("NewBotPublisher failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	msgID, err := publisher.PublishChart(ctx, "integration", path, "Sales Over Time (integration test)")
	if err != nil {
		t.Fatalf("PublishChart failed: %v", err)
	}
	if msgID <= 0 {
		t.Fatalf("expected message id > 0, got %d", msgID)
	}
}
