package commands

// Command to render a chart to PNG
// Loads the series from data.file or uses the built-in sample
// Overwrites the output file on every run

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"sales-chart/internal/features/charts"
	"sales-chart/internal/infra/config"
	storage "sales-chart/internal/infra/fs"
	logging "sales-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the sales chart to a PNG file",
	Long: `Render the sales series as a line, bar or scatter chart. Unknown kinds fall
back to a plain line. Without --data the built-in five month sample is used.`,
	RunE: runRender,
}

func init() {
	addChartFlags(renderCmd.Flags())
}

// addChartFlags registers the flags that map onto chart.* and data.* keys.
// Defaults here are only for help output; config.LoadConfig binds flags the
// user actually set.
func addChartFlags(f *pflag.FlagSet) {
	f.StringP("kind", "k", "line", "chart kind: line, bar, scatter")
	f.StringP("output", "o", "sales_chart.png", "output PNG path")
	f.String("backend", "gg", "drawing backend: gg or gonum")
	f.Float64("width", 10, "figure width in inches")
	f.Float64("height", 6, "figure height in inches")
	f.Float64("dpi", 150, "resolution in dots per inch")
	f.String("title", "Sales Over Time", "chart title")
	f.Float64("title-size", 16, "title font size in points")
	f.String("x-label", "Month", "x axis label")
	f.String("y-label", "Sales ($)", "y axis label")
	f.Float64("label-size", 10, "axis label font size in points")
	f.Float64("grid-alpha", 0.3, "grid line opacity in [0,1]")
	f.Bool("tight", true, "crop the image to the drawn content")
	f.String("font", "", "TrueType font file (default embedded Go Regular)")
	f.String("data", "", "dataset file: .json, .csv or .xlsx")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_, err = renderChart(ctx, cfg)
	return err
}

// renderChart is shared by render and publish.
func renderChart(ctx context.Context, cfg *config.Config) (*charts.Result, error) {
	series, err := loadSeries(cfg.Data.File)
	if err != nil {
		logging.LogError("Failed to load dataset", zap.String("file", cfg.Data.File), zap.Error(err))
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	renderer, err := charts.NewRenderer(chartOptions(cfg.Chart))
	if err != nil {
		logging.LogError("Invalid chart options", zap.Error(err))
		return nil, err
	}

	kind := charts.ParseKind(cfg.Chart.Kind)
	if kind == charts.KindFallback && !strings.EqualFold(cfg.Chart.Kind, charts.KindFallback.String()) {
		logging.LogWarn("Unknown chart kind, drawing fallback line", zap.String("kind", cfg.Chart.Kind))
	}

	res, err := renderer.Render(ctx, series, kind, cfg.Chart.Output)
	if err != nil {
		logging.LogError("Failed to render chart",
			zap.String("kind", kind.String()),
			zap.String("error_kind", charts.KindOf(err).String()),
			zap.Error(err))
		return nil, err
	}
	return res, nil
}

func loadSeries(path string) (charts.Series, error) {
	if path == "" {
		return charts.SampleSeries(), nil
	}
	ds, err := storage.LoadDataset(path)
	if err != nil {
		return charts.Series{}, err
	}
	return charts.NewSeries(ds.X, ds.Y), nil
}

func chartOptions(c config.ChartConfig) charts.Options {
	return charts.Options{
		Backend:    charts.Backend(c.Backend),
		WidthIn:    c.WidthIn,
		HeightIn:   c.HeightIn,
		DPI:        c.DPI,
		Title:      c.Title,
		TitleSize:  c.TitleSize,
		XLabel:     c.XLabel,
		YLabel:     c.YLabel,
		LabelSize:  c.LabelSize,
		GridAlpha:  c.GridAlpha,
		Tight:      c.Tight,
		TightPadIn: c.TightPadIn,
		FontPath:   c.FontPath,
	}
}
