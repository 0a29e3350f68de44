package charts

import (
	"fmt"
	"math"
)

// Backend names the drawing library used to rasterise a chart.
type Backend string

const (
	BackendGG    Backend = "gg"
	BackendGonum Backend = "gonum"
)

// maxPixels bounds the surface so a bad size or DPI cannot exhaust memory.
const maxPixels = 100_000_000

// Options describes the figure. Sizes are in inches, font sizes and stroke
// widths in points (1/72 inch), as in print layout.
type Options struct {
	Backend   Backend
	WidthIn   float64
	HeightIn  float64
	DPI       float64
	Title     string
	TitleSize float64
	XLabel    string
	YLabel    string
	LabelSize float64
	GridAlpha float64
	// Tight crops the saved image to the drawn content plus TightPadIn.
	Tight      bool
	TightPadIn float64
	// FontPath overrides the embedded Go Regular face; on load failure the
	// embedded face is used.
	FontPath string
}

// DefaultOptions is the "Sales Over Time" figure: 10x6 in at 150 DPI.
func DefaultOptions() Options {
	return Options{
		Backend:    BackendGG,
		WidthIn:    10,
		HeightIn:   6,
		DPI:        150,
		Title:      "Sales Over Time",
		TitleSize:  16,
		XLabel:     "Month",
		YLabel:     "Sales ($)",
		LabelSize:  10,
		GridAlpha:  0.3,
		Tight:      true,
		TightPadIn: 0.1,
	}
}

func (o Options) Validate() error {
	if !(o.WidthIn > 0) || !(o.HeightIn > 0) {
		return fmt.Errorf("figure size must be positive, got %gx%g in", o.WidthIn, o.HeightIn)
	}
	if !(o.DPI > 0) {
		return fmt.Errorf("dpi must be positive, got %g", o.DPI)
	}
	if w, h := o.pixelSize(); w < 1 || h < 1 || float64(w)*float64(h) > maxPixels {
		return fmt.Errorf("figure of %dx%d px is out of range", w, h)
	}
	if !(o.TitleSize > 0) || !(o.LabelSize > 0) {
		return fmt.Errorf("font sizes must be positive")
	}
	if o.GridAlpha < 0 || o.GridAlpha > 1 || math.IsNaN(o.GridAlpha) {
		return fmt.Errorf("grid alpha must be within [0,1], got %g", o.GridAlpha)
	}
	if o.TightPadIn < 0 {
		return fmt.Errorf("tight pad must not be negative")
	}
	switch o.Backend {
	case BackendGG, BackendGonum:
	default:
		return fmt.Errorf("unknown backend %q", o.Backend)
	}
	return nil
}

func (o Options) pixelSize() (int, int) {
	return int(math.Round(o.WidthIn * o.DPI)), int(math.Round(o.HeightIn * o.DPI))
}

// px converts points to pixels at the figure DPI.
func (o Options) px(points float64) float64 {
	return points * o.DPI / 72
}
