package image

import (
	"image"
	"image/color"
)

// newImage 由列優先的 RGB 三元組建立影像
func newImage(w, h int, rgb [][3]uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, p := range rgb {
		img.SetNRGBA(i%w, i/w, color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xff})
	}
	return img
}

// solid 建立單色影像
func solid(w, h int, r, g, b uint8) *image.NRGBA {
	rgb := make([][3]uint8, w*h)
	for i := range rgb {
		rgb[i] = [3]uint8{r, g, b}
	}
	return newImage(w, h, rgb)
}

// gradient 建立每個像素都不同的測試影像
func gradient(w, h int) *image.NRGBA {
	rgb := make([][3]uint8, w*h)
	for i := range rgb {
		rgb[i] = [3]uint8{uint8(i * 7), uint8(255 - i*3), uint8(i * 13)}
	}
	return newImage(w, h, rgb)
}

func rgbAt(img *image.NRGBA, x, y int) [3]uint8 {
	c := img.NRGBAAt(x, y)
	return [3]uint8{c.R, c.G, c.B}
}
