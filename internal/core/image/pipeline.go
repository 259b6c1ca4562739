package image

import (
	"image"

	"github.com/anthonynsimon/bild/math/f64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// stages 固定的套用順序，不可重排
var stages = []func(b *Buffer, adj Adjustments){
	applyExposure,
	applyTonal,
	applyBrightness,
	applyContrast,
	applySaturation,
}

// Apply 對影像套用調整並回傳新的影像，輸入影像不會被修改
//
// 進入時轉成 [0,1] 浮點空間一次，離開時乘上 255、夾在 [0,255] 並截斷成 8 位元一次。
// 每個階段讀取前一階段已夾住的結果。
func Apply(img image.Image, adj Adjustments) *image.NRGBA {
	b := NewBuffer(img)
	ApplyBuffer(b, adj)
	return b.Image()
}

// ApplyBuffer 在 Buffer 上就地執行所有階段
func ApplyBuffer(b *Buffer, adj Adjustments) {
	for _, apply := range stages {
		apply(b, adj)
	}
}

func applyExposure(b *Buffer, adj Adjustments) {
	s, ok := adj.Get(Exposure)
	if !ok {
		return
	}
	b.mapChannels(func(v float64) float64 { return v * s })
}

func applyBrightness(b *Buffer, adj Adjustments) {
	s, ok := adj.Get(Brightness)
	if !ok {
		return
	}
	b.mapChannels(func(v float64) float64 { return v * s })
}

func applyContrast(b *Buffer, adj Adjustments) {
	s, ok := adj.Get(Contrast)
	if !ok {
		return
	}
	b.mapChannels(func(v float64) float64 { return (v-0.5)*s + 0.5 })
}

// applySaturation 在 HSV 空間放大飽和度，S 以 0..255 尺度夾住
func applySaturation(b *Buffer, adj Adjustments) {
	s, ok := adj.Get(Saturation)
	if !ok || s == 1.0 {
		return
	}

	b.mapPixels(func(r, g, bl float64) (float64, float64, float64) {
		h, sat, v := colorful.Color{R: r, G: g, B: bl}.Hsv()
		sat = f64.Clamp(sat*255*s, 0, 255) / 255
		c := colorful.Hsv(h, sat, v)
		return c.R, c.G, c.B
	})
}
