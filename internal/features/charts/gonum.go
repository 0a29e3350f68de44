package charts

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// gonumBackend rasterises charts with gonum/plot. Layout and fonts follow
// gonum's own defaults; colours, stroke widths and marker sizes match ggBackend.
type gonumBackend struct{}

func (gonumBackend) draw(series Series, kind Kind, opts Options) (image.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(opts.TitleSize)
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(opts.LabelSize)
	p.Y.Label.TextStyle.Font.Size = vg.Points(opts.LabelSize)

	if opts.GridAlpha > 0 {
		grid := plotter.NewGrid()
		c := color.NRGBA{gridColor.R, gridColor.G, gridColor.B, uint8(math.Round(opts.GridAlpha * 255))}
		grid.Vertical.Color = c
		grid.Horizontal.Color = c
		grid.Vertical.Width = vg.Points(gridWidthPt)
		grid.Horizontal.Width = vg.Points(gridWidthPt)
		p.Add(grid)
	}

	pts := series.finitePoints()
	if len(pts) > 0 {
		if err := addGonumSeries(p, pts, kind); err != nil {
			return nil, err
		}
	}

	xr, yr := dataRanges(pts, kind)
	p.X.Min, p.X.Max = xr.min, xr.max
	p.Y.Min, p.Y.Max = yr.min, yr.max

	w := vg.Length(opts.WidthIn) * vg.Inch
	h := vg.Length(opts.HeightIn) * vg.Inch
	c := vgimg.NewWith(
		vgimg.UseWH(w, h),
		vgimg.UseDPI(int(math.Round(opts.DPI))),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(c))
	return c.Image(), nil
}

func addGonumSeries(p *plot.Plot, pts []point, kind Kind) error {
	switch kind {
	case KindLine:
		line, markers, err := plotter.NewLinePoints(toXYs(sortedByX(pts)))
		if err != nil {
			return fmt.Errorf("failed to build line: %w", err)
		}
		line.Color = seriesColor
		line.Width = vg.Points(lineWidthPt)
		markers.Shape = draw.CircleGlyph{}
		markers.Color = seriesColor
		markers.Radius = vg.Points(markerRadiusPt)
		p.Add(line, markers)

	case KindBar:
		for _, pt := range pts {
			x0, x1 := pt.X-barWidthData/2, pt.X+barWidthData/2
			bar, err := plotter.NewPolygon(plotter.XYs{
				{X: x0, Y: 0}, {X: x1, Y: 0}, {X: x1, Y: pt.Y}, {X: x0, Y: pt.Y},
			})
			if err != nil {
				return fmt.Errorf("failed to build bar: %w", err)
			}
			bar.Color = barColor
			bar.LineStyle.Width = 0
			p.Add(bar)
		}

	case KindScatter:
		sc, err := plotter.NewScatter(toXYs(pts))
		if err != nil {
			return fmt.Errorf("failed to build scatter: %w", err)
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Color = color.NRGBA{seriesColor.R, seriesColor.G, seriesColor.B, uint8(math.Round(scatterAlpha * 255))}
		sc.GlyphStyle.Radius = vg.Points(math.Sqrt(scatterSizePt2) / 2)
		p.Add(sc)

	default:
		line, err := plotter.NewLine(toXYs(sortedByX(pts)))
		if err != nil {
			return fmt.Errorf("failed to build line: %w", err)
		}
		line.Color = seriesColor
		line.Width = vg.Points(fallbackWidthPt)
		p.Add(line)
	}
	return nil
}

func toXYs(pts []point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	return xys
}
