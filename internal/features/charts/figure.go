package charts

import (
	"errors"
	"image"

	"github.com/fogleman/gg"
)

var errFigureClosed = errors.New("figure is closed")

// figure owns the gg drawing surface for one render.
type figure struct {
	dc     *gg.Context
	width  int
	height int
}

func newFigure(opts Options) (*figure, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	w, h := opts.pixelSize()
	return &figure{
		dc:     gg.NewContext(w, h),
		width:  w,
		height: h,
	}, nil
}

func (f *figure) context() (*gg.Context, error) {
	if f.dc == nil {
		return nil, errFigureClosed
	}
	return f.dc, nil
}

// snapshot returns the surface pixels; the image stays valid after close.
func (f *figure) snapshot() (image.Image, error) {
	dc, err := f.context()
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// close drops the surface. Safe to call more than once.
func (f *figure) close() {
	if f.dc == nil {
		return
	}
	f.dc.ResetClip()
	f.dc = nil
}
