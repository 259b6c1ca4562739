package image

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/math/f64"
	"github.com/disintegration/imaging"
)

// 通道數（R、G、B）
const channels = 3

// 量化前加上的容差，避免 0.2*255 這類浮點誤差被截斷成 50 以下
const quantizeGuard = 1e-6

// Buffer 正規化後的浮點影像，每個像素三個 [0,1] 範圍內的通道值
//
// 寬高在 Buffer 生命週期內不變。Pix 依列排列，像素 (x, y) 的 R 通道位於
// Pix[(y*Width+x)*3]。
type Buffer struct {
	Width  int
	Height int
	Pix    []float64
}

// NewBuffer 由任意影像建立正規化的浮點 Buffer，alpha 通道被捨棄
func NewBuffer(img image.Image) *Buffer {
	src, ok := img.(*image.NRGBA)
	if !ok || src.Bounds().Min != (image.Point{}) {
		src = imaging.Clone(img)
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	b := &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]float64, w*h*channels),
	}

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			i := (y*w + x) * channels
			b.Pix[i] = float64(row[x*4]) / 255
			b.Pix[i+1] = float64(row[x*4+1]) / 255
			b.Pix[i+2] = float64(row[x*4+2]) / 255
		}
	}
	return b
}

// Image 將 Buffer 縮放回 8 位元並產生新的不透明影像
func (b *Buffer) Image() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for p := 0; p < b.Width*b.Height; p++ {
		i := p * channels
		o := p * 4
		dst.Pix[o] = quantize(b.Pix[i])
		dst.Pix[o+1] = quantize(b.Pix[i+1])
		dst.Pix[o+2] = quantize(b.Pix[i+2])
		dst.Pix[o+3] = 0xff
	}
	return dst
}

// Clone 複製 Buffer
func (b *Buffer) Clone() *Buffer {
	pix := make([]float64, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// mapChannels 對每個通道值套用 fn 並夾在 [0,1]
func (b *Buffer) mapChannels(fn func(v float64) float64) {
	for i, v := range b.Pix {
		b.Pix[i] = clamp01(fn(v))
	}
}

// mapPixels 對每個像素的 RGB 套用 fn 並夾在 [0,1]
func (b *Buffer) mapPixels(fn func(r, g, bl float64) (float64, float64, float64)) {
	for i := 0; i+2 < len(b.Pix); i += channels {
		r, g, bl := fn(b.Pix[i], b.Pix[i+1], b.Pix[i+2])
		b.Pix[i] = clamp01(r)
		b.Pix[i+1] = clamp01(g)
		b.Pix[i+2] = clamp01(bl)
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return f64.Clamp(v, 0, 1)
}

// quantize 乘上 255、夾在 [0,255] 後截斷成整數
func quantize(v float64) uint8 {
	return uint8(f64.Clamp(math.Floor(v*255+quantizeGuard), 0, 255))
}
