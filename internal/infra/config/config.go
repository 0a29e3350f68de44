package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Chart    ChartConfig    `mapstructure:"chart"`
	Data     DataConfig     `mapstructure:"data"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	App      AppConfig      `mapstructure:"app"`
}

type ChartConfig struct {
	Kind       string  `mapstructure:"kind"`
	Output     string  `mapstructure:"output"`
	Backend    string  `mapstructure:"backend"`
	WidthIn    float64 `mapstructure:"width_in"`
	HeightIn   float64 `mapstructure:"height_in"`
	DPI        float64 `mapstructure:"dpi"`
	Title      string  `mapstructure:"title"`
	TitleSize  float64 `mapstructure:"title_size"`
	XLabel     string  `mapstructure:"x_label"`
	YLabel     string  `mapstructure:"y_label"`
	LabelSize  float64 `mapstructure:"label_size"`
	GridAlpha  float64 `mapstructure:"grid_alpha"`
	Tight      bool    `mapstructure:"tight"`
	TightPadIn float64 `mapstructure:"tight_pad_in"`
	FontPath   string  `mapstructure:"font_path"`
}

// DataConfig points at an optional dataset file (.json, .csv, .xlsx).
// Empty means the built-in sample series.
type DataConfig struct {
	File string `mapstructure:"file"`
}

type TelegramConfig struct {
	BotToken      string `mapstructure:"bot_token"`
	ChatID        string `mapstructure:"chat_id"`
	Caption       string `mapstructure:"caption"`
	RatePerMinute int    `mapstructure:"rate_per_minute"`
	MaxRetries    int    `mapstructure:"max_retries"`
	Timeout       int    `mapstructure:"timeout"` // seconds
}

type AppConfig struct {
	LogDir string `mapstructure:"log_dir"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"kind":         "chart.kind",
	"output":       "chart.output",
	"backend":      "chart.backend",
	"width":        "chart.width_in",
	"height":       "chart.height_in",
	"dpi":          "chart.dpi",
	"title":        "chart.title",
	"title-size":   "chart.title_size",
	"x-label":      "chart.x_label",
	"y-label":      "chart.y_label",
	"label-size":   "chart.label_size",
	"grid-alpha":   "chart.grid_alpha",
	"tight":        "chart.tight",
	"font":         "chart.font_path",
	"data":         "data.file",
	"bot-token":    "telegram.bot_token",
	"chat-id":      "telegram.chat_id",
	"caption":      "telegram.caption",
	"rate":         "telegram.rate_per_minute",
	"max-retries":  "telegram.max_retries",
	"send-timeout": "telegram.timeout",
	"log-dir":      "app.log_dir",
}

// LoadConfig layers configuration, later sources winning:
// 1. defaults
// 2. config.yaml in the working directory, or configFile when given
// 3. .env file (loaded into the environment)
// 4. SALES_CHART_* environment variables and the aliases in setupEnvAliases
// 5. flags that were set explicitly on the command line
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("SALES_CHART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setupEnvAliases(v)

	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	// Unprefixed names commonly found in .env files
	v.BindEnv("telegram.bot_token", "SALES_CHART_TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "SALES_CHART_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID")
	v.BindEnv("app.log_dir", "SALES_CHART_APP_LOG_DIR", "LOG_DIR")
}

func setDefaults(v *viper.Viper) {
	// Chart
	v.SetDefault("chart.kind", "line")
	v.SetDefault("chart.output", "sales_chart.png")
	v.SetDefault("chart.backend", "gg")
	v.SetDefault("chart.width_in", 10.0)
	v.SetDefault("chart.height_in", 6.0)
	v.SetDefault("chart.dpi", 150.0)
	v.SetDefault("chart.title", "Sales Over Time")
	v.SetDefault("chart.title_size", 16.0)
	v.SetDefault("chart.x_label", "Month")
	v.SetDefault("chart.y_label", "Sales ($)")
	v.SetDefault("chart.label_size", 10.0)
	v.SetDefault("chart.grid_alpha", 0.3)
	v.SetDefault("chart.tight", true)
	v.SetDefault("chart.tight_pad_in", 0.1)
	v.SetDefault("chart.font_path", "")

	// Data
	v.SetDefault("data.file", "")

	// Telegram
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.caption", "")
	v.SetDefault("telegram.rate_per_minute", 20)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.timeout", 30)

	// App
	v.SetDefault("app.log_dir", "logs")
}

// bindFlags binds only flags the user actually set, so an unset flag's
// zero default never shadows config.yaml or the environment.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag --%s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Validate checks values that would otherwise fail deep inside rendering or delivery.
func (c *Config) Validate() error {
	if c.Chart.WidthIn <= 0 || c.Chart.HeightIn <= 0 {
		return fmt.Errorf("chart size must be positive: %gx%g in", c.Chart.WidthIn, c.Chart.HeightIn)
	}
	if c.Chart.DPI <= 0 {
		return fmt.Errorf("chart.dpi must be positive: %g", c.Chart.DPI)
	}
	if c.Chart.GridAlpha < 0 || c.Chart.GridAlpha > 1 {
		return fmt.Errorf("chart.grid_alpha must be within [0,1]: %g", c.Chart.GridAlpha)
	}
	switch c.Chart.Backend {
	case "gg", "gonum":
	default:
		return fmt.Errorf("chart.backend must be gg or gonum: %q", c.Chart.Backend)
	}
	if c.Chart.Output == "" {
		return fmt.Errorf("chart.output is required")
	}
	if c.Data.File != "" {
		if _, err := os.Stat(c.Data.File); err != nil {
			return fmt.Errorf("data.file: %w", err)
		}
	}
	if c.Telegram.RatePerMinute < 0 || c.Telegram.MaxRetries < 0 {
		return fmt.Errorf("telegram.rate_per_minute and telegram.max_retries must not be negative")
	}
	return nil
}

// ValidateTelegram checks the settings the publish command needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required (env: TELEGRAM_BOT_TOKEN)")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required (env: TELEGRAM_CHAT_ID)")
	}
	return nil
}
