package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"sales-chart/internal/features/charts"
	"sales-chart/internal/infra/config"
)

func TestLoadSeriesDefaultsToSample(t *testing.T) {
	s, err := loadSeries("")
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 5 || s.Y[4] != 30 {
		t.Fatalf("unexpected sample series %+v", s)
	}

	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte("month,sales\n1,5\n2,7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err = loadSeries(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 2 || s.Y[1] != 7 {
		t.Fatalf("unexpected csv series %+v", s)
	}
}

func TestChartOptionsMapsConfig(t *testing.T) {
	opts := chartOptions(config.ChartConfig{
		Backend: "gonum", WidthIn: 8, HeightIn: 4, DPI: 100,
		Title: "T", TitleSize: 12, XLabel: "x", YLabel: "y",
		LabelSize: 9, GridAlpha: 0.5, Tight: true, TightPadIn: 0.2,
	})
	if opts.Backend != charts.BackendGonum || opts.DPI != 100 || opts.Title != "T" || opts.TightPadIn != 0.2 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, err := charts.NewRenderer(opts); err != nil {
		t.Fatalf("mapped options rejected: %v", err)
	}
}

func TestRenderCommandWritesChartAndLogsToConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "chart.png")
	cfgYAML := "app:\n  log_dir: customlogs\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"render", "--kind", "bar", "--output", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Fatalf("chart not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "customlogs", "sales-chart.log")); err != nil {
		t.Fatalf("app.log_dir not used: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Fatalf("default logs dir created, stat err = %v", err)
	}
	// The success line comes from the logger only.
	if stdout.Len() != 0 {
		t.Fatalf("unexpected stdout %q", stdout.String())
	}
}
