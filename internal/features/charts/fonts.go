package charts

import (
	"fmt"
	"os"
	"sync"

	logging "sales-chart/internal/infra/log"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	embeddedOnce sync.Once
	embeddedFont *truetype.Font
	embeddedErr  error
)

func embeddedRegular() (*truetype.Font, error) {
	embeddedOnce.Do(func() {
		embeddedFont, embeddedErr = truetype.Parse(goregular.TTF)
	})
	return embeddedFont, embeddedErr
}

// loadFont returns the font at path, or the embedded Go Regular face when
// path is empty or unreadable.
func loadFont(path string) (*truetype.Font, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var f *truetype.Font
			if f, err = truetype.Parse(data); err == nil {
				return f, nil
			}
		}
		logging.LogWarn("Failed to load chart font, using embedded Go Regular",
			zap.String("path", path),
			zap.Error(err))
	}

	f, err := embeddedRegular()
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	return f, nil
}

// faceSet holds the faces one render needs. truetype faces cache glyphs and
// are not safe for concurrent use, so each render builds its own.
type faceSet struct {
	title font.Face
	label font.Face
}

func newFaceSet(opts Options) (*faceSet, error) {
	f, err := loadFont(opts.FontPath)
	if err != nil {
		return nil, err
	}
	newFace := func(points float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{
			Size:    points,
			DPI:     opts.DPI,
			Hinting: font.HintingFull,
		})
	}
	return &faceSet{
		title: newFace(opts.TitleSize),
		label: newFace(opts.LabelSize),
	}, nil
}

func (fs *faceSet) Close() error {
	if err := fs.title.Close(); err != nil {
		return err
	}
	return fs.label.Close()
}
