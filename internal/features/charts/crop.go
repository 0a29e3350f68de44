package charts

import (
	"image"

	"golang.org/x/image/draw"
)

// contentBounds returns the smallest rectangle holding every pixel that is
// not opaque white, or an empty rectangle for a blank image.
func contentBounds(img image.Image) image.Rectangle {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isBackground(img, x, y) {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

func isBackground(img image.Image, x, y int) bool {
	if rgba, ok := img.(*image.RGBA); ok {
		i := rgba.PixOffset(x, y)
		p := rgba.Pix[i : i+4 : i+4]
		return p[0] == 0xff && p[1] == 0xff && p[2] == 0xff && p[3] == 0xff
	}
	r, g, b, a := img.At(x, y).RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff && a == 0xffff
}

// cropTight copies the content of img plus pad pixels on each side into a
// new image whose origin is (0, 0). A blank image is returned unchanged.
func cropTight(img image.Image, pad int) image.Image {
	content := contentBounds(img)
	if content.Empty() {
		return img
	}
	r := content.Inset(-pad).Intersect(img.Bounds())

	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
