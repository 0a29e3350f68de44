package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("kind", "line", "")
	fs.String("output", "sales_chart.png", "")
	fs.Float64("dpi", 150, "")
	fs.String("chat-id", "", "")
	fs.Bool("tight", true, "")
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Kind != "line" || cfg.Chart.Backend != "gg" || cfg.Chart.Output != "sales_chart.png" {
		t.Errorf("unexpected chart defaults: %+v", cfg.Chart)
	}
	if cfg.Chart.WidthIn != 10 || cfg.Chart.HeightIn != 6 || cfg.Chart.DPI != 150 {
		t.Errorf("unexpected figure defaults: %+v", cfg.Chart)
	}
	if cfg.Chart.Title != "Sales Over Time" || cfg.Chart.XLabel != "Month" || cfg.Chart.YLabel != "Sales ($)" {
		t.Errorf("unexpected labels: %+v", cfg.Chart)
	}
	if cfg.Chart.GridAlpha != 0.3 || !cfg.Chart.Tight {
		t.Errorf("unexpected grid/tight defaults: %+v", cfg.Chart)
	}
	if cfg.Telegram.RatePerMinute != 20 || cfg.Telegram.MaxRetries != 3 || cfg.App.LogDir != "logs" {
		t.Errorf("unexpected defaults: %+v %+v", cfg.Telegram, cfg.App)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, "config.yaml", `
chart:
  kind: bar
  dpi: 100
  title: Quarterly
telegram:
  caption: weekly report
`)

	cfg, err := LoadConfig("", newFlags(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Kind != "bar" || cfg.Chart.DPI != 100 || cfg.Chart.Title != "Quarterly" {
		t.Fatalf("yaml not applied or shadowed by unset flags: %+v", cfg.Chart)
	}
	if cfg.Telegram.Caption != "weekly report" {
		t.Fatalf("caption = %q", cfg.Telegram.Caption)
	}

	t.Setenv("SALES_CHART_CHART_KIND", "scatter")
	cfg, err = LoadConfig("", newFlags(t))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Kind != "scatter" {
		t.Fatalf("env should override yaml, kind = %q", cfg.Chart.Kind)
	}

	cfg, err = LoadConfig("", newFlags(t, "--kind=line", "--dpi=72", "--tight=false"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Kind != "line" || cfg.Chart.DPI != 72 || cfg.Chart.Tight {
		t.Fatalf("flags should override env and yaml: %+v", cfg.Chart)
	}
}

func TestLoadConfigEnvAliasesAndDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, ".env", "TELEGRAM_CHAT_ID=-100123\n")
	t.Cleanup(func() { os.Unsetenv("TELEGRAM_CHAT_ID") })
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Telegram.BotToken != "123:abc" {
		t.Errorf("bot token = %q", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "-100123" {
		t.Errorf("chat id = %q", cfg.Telegram.ChatID)
	}
	if err := cfg.ValidateTelegram(); err != nil {
		t.Errorf("ValidateTelegram: %v", err)
	}
}

func TestLoadConfigExplicitFile(t *testing.T) {
	dir := chdirTemp(t)
	path := writeConfig(t, dir, "chart.yaml", "chart:\n  backend: gonum\n")

	cfg, err := LoadConfig(path, nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Chart.Backend != "gonum" {
		t.Fatalf("backend = %q", cfg.Chart.Backend)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"grid alpha", "chart:\n  grid_alpha: 2\n"},
		{"dpi", "chart:\n  dpi: 0\n"},
		{"backend", "chart:\n  backend: svg\n"},
		{"data file", "data:\n  file: nope.csv\n"},
		{"retries", "telegram:\n  max_retries: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirTemp(t)
			writeConfig(t, dir, "config.yaml", tt.yaml)
			if _, err := LoadConfig("", nil); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateTelegramRequiresSettings(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateTelegram(); err == nil {
		t.Fatal("expected error without token")
	}
	cfg.Telegram.BotToken = "x"
	if err := cfg.ValidateTelegram(); err == nil {
		t.Fatal("expected error without chat id")
	}
}
