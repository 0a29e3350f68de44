package charts

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"time"

	"sales-chart/internal/infra/fs"
	logging "sales-chart/internal/infra/log"

	"go.uber.org/zap"
)

const softwareName = "sales-chart"

type drawer interface {
	draw(series Series, kind Kind, opts Options) (image.Image, error)
}

// Renderer turns a Series into a PNG file. It holds only immutable options
// and may be shared between goroutines.
type Renderer struct {
	opts    Options
	backend drawer
}

// Result describes a written chart.
type Result struct {
	Path     string
	Kind     Kind
	Points   int
	Width    int
	Height   int
	Size     int64
	Duration time.Duration
}

func NewRenderer(opts Options) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chart options: %w", err)
	}

	var backend drawer
	switch opts.Backend {
	case BackendGonum:
		backend = gonumBackend{}
	default:
		backend = ggBackend{}
	}
	return &Renderer{opts: opts, backend: backend}, nil
}

func (r *Renderer) Options() Options {
	return r.opts
}

// Render draws series as kind and writes the PNG to outputPath, replacing
// any existing file. The file is written atomically: on failure nothing is
// left at outputPath.
func (r *Renderer) Render(ctx context.Context, series Series, kind Kind, outputPath string) (*Result, error) {
	start := time.Now()

	if err := series.Validate(); err != nil {
		return nil, newRenderError(EmptySeries, outputPath, err)
	}
	if outputPath == "" {
		return nil, newRenderError(IOFailure, outputPath, errors.New("output path is empty"))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := r.drawSafely(series, kind)
	if err != nil {
		return nil, newRenderError(BackendFailure, outputPath, err)
	}

	if r.opts.Tight {
		img = cropTight(img, int(math.Round(r.opts.TightPadIn*r.opts.DPI)))
	}

	data, err := encodePNG(img, []pngText{
		{key: "Title", value: r.opts.Title},
		{key: "Software", value: softwareName},
	})
	if err != nil {
		return nil, newRenderError(BackendFailure, outputPath, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := fs.WriteFileAtomic(outputPath, data, 0644); err != nil {
		return nil, newRenderError(IOFailure, outputPath, err)
	}

	fileInfo, err := os.Stat(outputPath)
	if err != nil {
		return nil, newRenderError(IOFailure, outputPath, fmt.Errorf("failed to stat chart file: %w", err))
	}
	if fileInfo.Size() == 0 {
		os.Remove(outputPath)
		return nil, newRenderError(IOFailure, outputPath, errors.New("chart file is empty after rendering"))
	}

	res := &Result{
		Path:     outputPath,
		Kind:     kind,
		Points:   series.Len(),
		Width:    img.Bounds().Dx(),
		Height:   img.Bounds().Dy(),
		Size:     fileInfo.Size(),
		Duration: time.Since(start),
	}

	logging.LogSuccess("Chart generated successfully",
		zap.String("filename", outputPath),
		zap.String("kind", kind.String()),
		zap.String("backend", string(r.opts.Backend)),
		zap.Int("width", res.Width),
		zap.Int("height", res.Height),
		zap.Int64("fileSize", res.Size),
		zap.Int("pointsCount", res.Points),
		zap.Int64("duration_ms", res.Duration.Milliseconds()))

	return res, nil
}

// drawSafely turns a panic inside the drawing library into an error.
func (r *Renderer) drawSafely(series Series, kind Kind) (img image.Image, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = fmt.Errorf("%s backend panicked: %v", r.opts.Backend, rec)
		}
	}()
	return r.backend.draw(series, kind, r.opts)
}

// Render draws series with DefaultOptions.
func Render(series Series, kind Kind, outputPath string) error {
	r, err := NewRenderer(DefaultOptions())
	if err != nil {
		return err
	}
	_, err = r.Render(context.Background(), series, kind, outputPath)
	return err
}
