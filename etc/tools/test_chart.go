package main

import (
	"fmt"
	"os"
	"path/filepath"

	"sales-chart/internal/features/charts"
)

// go run etc/tools/test_chart.go
// in etc/charts/sales_chart.png
func main() {
	fmt.Println("Generating test chart...")

	chartPath := filepath.Join("etc", "charts", "sales_chart.png")
	if err := os.MkdirAll(filepath.Dir(chartPath), 0755); err != nil {
		fmt.Printf("Error creating chart dir: %v\n", err)
		os.Exit(1)
	}

	for _, kind := range []charts.Kind{charts.KindLine, charts.KindBar, charts.KindScatter} {
		path := chartPath
		if kind != charts.KindLine {
			path = filepath.Join(filepath.Dir(chartPath), "sales_chart_"+kind.String()+".png")
		}
		if err := charts.Render(charts.SampleSeries(), kind, path); err != nil {
			fmt.Printf("Error generating %s chart: %v\n", kind, err)
			os.Exit(1)
		}
		fmt.Printf("Chart generated successfully: %s\n", path)
	}
	fmt.Println("Open the files to see the result!")
}
