package charts

import (
	"math"
	"sort"
	"strconv"
)

const (
	// Axes placement as fractions of the figure, matching the usual
	// subplot defaults of print plotting tools.
	areaLeftFrac   = 0.125
	areaRightFrac  = 0.9
	areaTopFrac    = 0.12
	areaBottomFrac = 0.89

	rangeMarginFrac = 0.05
	barWidthData    = 0.8
	targetTicks     = 6
	maxTicks        = 50
)

type axisRange struct {
	min, max float64
}

func (r axisRange) span() float64 {
	return r.max - r.min
}

// plotArea is the data rectangle in pixels; top < bottom in image space.
type plotArea struct {
	left, top, right, bottom float64
}

func areaFor(width, height int) plotArea {
	w, h := float64(width), float64(height)
	return plotArea{
		left:   math.Round(w * areaLeftFrac),
		top:    math.Round(h * areaTopFrac),
		right:  math.Round(w * areaRightFrac),
		bottom: math.Round(h * areaBottomFrac),
	}
}

func (a plotArea) width() float64  { return a.right - a.left }
func (a plotArea) height() float64 { return a.bottom - a.top }

func (a plotArea) mapX(r axisRange, v float64) float64 {
	return a.left + (v-r.min)/r.span()*a.width()
}

func (a plotArea) mapY(r axisRange, v float64) float64 {
	return a.bottom - (v-r.min)/r.span()*a.height()
}

// dataRanges returns padded axis ranges for pts. Bars widen the x range by
// half a bar on each side and pin the y range to include the zero baseline.
func dataRanges(pts []point, kind Kind) (axisRange, axisRange) {
	if len(pts) == 0 {
		return axisRange{0, 1}, axisRange{0, 1}
	}

	xr := axisRange{pts[0].X, pts[0].X}
	yr := axisRange{pts[0].Y, pts[0].Y}
	for _, p := range pts[1:] {
		xr.min = math.Min(xr.min, p.X)
		xr.max = math.Max(xr.max, p.X)
		yr.min = math.Min(yr.min, p.Y)
		yr.max = math.Max(yr.max, p.Y)
	}

	if kind == KindBar {
		xr.min -= barWidthData / 2
		xr.max += barWidthData / 2
		yr.min = math.Min(yr.min, 0)
		yr.max = math.Max(yr.max, 0)
		xr = padRange(nonSingular(xr))
		// The baseline sticks: no margin below a zero floor or above a zero ceiling.
		padded := padRange(nonSingular(yr))
		if yr.min == 0 {
			padded.min = 0
		}
		if yr.max == 0 {
			padded.max = 0
		}
		return xr, padded
	}

	return padRange(nonSingular(xr)), padRange(nonSingular(yr))
}

func nonSingular(r axisRange) axisRange {
	if r.span() > 0 {
		return r
	}
	d := math.Abs(r.min) * rangeMarginFrac
	if d == 0 {
		d = 0.5
	}
	return axisRange{r.min - d, r.max + d}
}

func padRange(r axisRange) axisRange {
	m := r.span() * rangeMarginFrac
	return axisRange{r.min - m, r.max + m}
}

// niceStep picks a tick spacing of 1, 2, 2.5 or 5 times a power of ten.
func niceStep(span float64, target int) float64 {
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

type tick struct {
	value float64
	label string
}

func (r axisRange) ticks() []tick {
	span := r.span()
	if !(span > 0) || math.IsInf(span, 0) {
		return nil
	}
	step := niceStep(span, targetTicks)
	start := math.Ceil(r.min/step-1e-9) * step

	var out []tick
	for i := 0; i < maxTicks; i++ {
		v := start + float64(i)*step
		if v > r.max+step*1e-9 {
			break
		}
		out = append(out, tick{value: v, label: formatTick(v, step)})
	}
	return out
}

// formatTick prints v with as many decimals as step needs.
func formatTick(v, step float64) string {
	decimals := 0
	for s := step; math.Abs(s-math.Round(s)) > 1e-9 && decimals < 6; s *= 10 {
		decimals++
	}
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// sortedByX returns a copy of pts ordered by X, keeping input order for ties.
func sortedByX(pts []point) []point {
	out := append([]point(nil), pts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}
