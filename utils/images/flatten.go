package images

import (
	"image"
	"image/color"
	"image/draw"
)

// Flatten composites img over a white background removing any transparency.
// Images that are already opaque are returned unchanged.
func Flatten(img image.Image) image.Image {
	opaque := func(im image.Image) bool {
		if oimg, ok := im.(interface{ Opaque() bool }); ok {
			return oimg.Opaque()
		}
		return true
	}(img)
	if opaque {
		return img
	}

	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)
	draw.Draw(dst, img.Bounds(), img, img.Bounds().Min, draw.Over)
	return dst
}
