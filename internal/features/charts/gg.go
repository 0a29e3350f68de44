package charts

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

var (
	seriesColor = color.RGBA{31, 119, 180, 255}
	barColor    = color.RGBA{0x87, 0xce, 0xeb, 255} // skyblue
	gridColor   = color.RGBA{176, 176, 176, 255}
	frameColor  = color.Black
)

const (
	lineWidthPt     = 2.0
	fallbackWidthPt = 1.5
	markerRadiusPt  = 3.0
	// Scatter marker size is an area in pt²; 100 gives a 10pt wide dot.
	scatterSizePt2 = 100.0
	scatterAlpha   = 0.6
	gridWidthPt    = 0.8
	frameWidthPt   = 0.8
	tickLengthPt   = 3.5
	tickPadPt      = 3.5
	labelPadPt     = 4.0
	titlePadPt     = 6.0
)

// ggBackend rasterises charts with fogleman/gg.
type ggBackend struct{}

func (ggBackend) draw(series Series, kind Kind, opts Options) (image.Image, error) {
	fig, err := newFigure(opts)
	if err != nil {
		return nil, err
	}
	defer fig.close()

	faces, err := newFaceSet(opts)
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	dc, err := fig.context()
	if err != nil {
		return nil, err
	}

	dc.SetColor(color.White)
	dc.Clear()

	area := areaFor(fig.width, fig.height)
	pts := series.finitePoints()
	xr, yr := dataRanges(pts, kind)
	xTicks, yTicks := xr.ticks(), yr.ticks()

	drawGrid(dc, opts, area, xr, yr, xTicks, yTicks)

	dc.DrawRectangle(area.left, area.top, area.width(), area.height())
	dc.Clip()
	switch kind {
	case KindLine:
		drawPolyline(dc, area, xr, yr, sortedByX(pts), opts.px(lineWidthPt))
		drawMarkers(dc, area, xr, yr, pts, opts.px(markerRadiusPt), seriesColor)
	case KindBar:
		drawBars(dc, area, xr, yr, pts)
	case KindScatter:
		c := color.NRGBA{seriesColor.R, seriesColor.G, seriesColor.B, uint8(math.Round(scatterAlpha * 255))}
		drawMarkers(dc, area, xr, yr, pts, opts.px(math.Sqrt(scatterSizePt2)/2), c)
	default:
		drawPolyline(dc, area, xr, yr, sortedByX(pts), opts.px(fallbackWidthPt))
	}
	dc.ResetClip()

	drawFrame(dc, opts, area)
	drawAxes(dc, opts, faces, area, xr, yr, xTicks, yTicks)

	return fig.snapshot()
}

func drawGrid(dc *gg.Context, opts Options, area plotArea, xr, yr axisRange, xTicks, yTicks []tick) {
	if opts.GridAlpha == 0 {
		return
	}
	dc.SetRGBA255(int(gridColor.R), int(gridColor.G), int(gridColor.B), int(math.Round(opts.GridAlpha*255)))
	dc.SetLineWidth(opts.px(gridWidthPt))
	for _, t := range xTicks {
		x := area.mapX(xr, t.value)
		dc.DrawLine(x, area.top, x, area.bottom)
		dc.Stroke()
	}
	for _, t := range yTicks {
		y := area.mapY(yr, t.value)
		dc.DrawLine(area.left, y, area.right, y)
		dc.Stroke()
	}
}

func drawPolyline(dc *gg.Context, area plotArea, xr, yr axisRange, pts []point, width float64) {
	if len(pts) == 0 {
		return
	}
	dc.SetColor(seriesColor)
	dc.SetLineWidth(width)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	dc.MoveTo(area.mapX(xr, pts[0].X), area.mapY(yr, pts[0].Y))
	for _, p := range pts[1:] {
		dc.LineTo(area.mapX(xr, p.X), area.mapY(yr, p.Y))
	}
	dc.Stroke()
}

func drawMarkers(dc *gg.Context, area plotArea, xr, yr axisRange, pts []point, radius float64, c color.Color) {
	dc.SetColor(c)
	for _, p := range pts {
		dc.DrawCircle(area.mapX(xr, p.X), area.mapY(yr, p.Y), radius)
		dc.Fill()
	}
}

func drawBars(dc *gg.Context, area plotArea, xr, yr axisRange, pts []point) {
	dc.SetColor(barColor)
	base := area.mapY(yr, 0)
	for _, p := range pts {
		x0 := area.mapX(xr, p.X-barWidthData/2)
		x1 := area.mapX(xr, p.X+barWidthData/2)
		y := area.mapY(yr, p.Y)
		dc.DrawRectangle(x0, math.Min(y, base), x1-x0, math.Abs(base-y))
		dc.Fill()
	}
}

func drawFrame(dc *gg.Context, opts Options, area plotArea) {
	dc.SetColor(frameColor)
	dc.SetLineWidth(opts.px(frameWidthPt))
	dc.DrawRectangle(area.left, area.top, area.width(), area.height())
	dc.Stroke()
}

func drawAxes(dc *gg.Context, opts Options, faces *faceSet, area plotArea, xr, yr axisRange, xTicks, yTicks []tick) {
	tickLen := opts.px(tickLengthPt)
	tickPad := opts.px(tickPadPt)
	labelPad := opts.px(labelPadPt)

	dc.SetColor(frameColor)
	dc.SetLineWidth(opts.px(frameWidthPt))
	dc.SetFontFace(faces.label)
	labelHeight := dc.FontHeight()

	for _, t := range xTicks {
		x := area.mapX(xr, t.value)
		dc.DrawLine(x, area.bottom, x, area.bottom+tickLen)
		dc.Stroke()
		dc.DrawStringAnchored(t.label, x, area.bottom+tickLen+tickPad, 0.5, 1)
	}

	widest := 0.0
	for _, t := range yTicks {
		y := area.mapY(yr, t.value)
		dc.DrawLine(area.left-tickLen, y, area.left, y)
		dc.Stroke()
		dc.DrawStringAnchored(t.label, area.left-tickLen-tickPad, y, 1, 0.5)
		if w, _ := dc.MeasureString(t.label); w > widest {
			widest = w
		}
	}

	centerX := (area.left + area.right) / 2
	centerY := (area.top + area.bottom) / 2

	if opts.XLabel != "" {
		y := area.bottom + tickLen + tickPad + labelHeight + labelPad
		dc.DrawStringAnchored(opts.XLabel, centerX, y, 0.5, 1)
	}

	if opts.YLabel != "" {
		x := area.left - tickLen - tickPad - widest - labelPad - labelHeight/2
		dc.Push()
		dc.RotateAbout(-math.Pi/2, x, centerY)
		dc.DrawStringAnchored(opts.YLabel, x, centerY, 0.5, 0.5)
		dc.Pop()
	}

	if opts.Title != "" {
		dc.SetFontFace(faces.title)
		dc.DrawStringAnchored(opts.Title, centerX, area.top-opts.px(titlePadPt), 0.5, 0)
	}
}
