package image

import (
	"github.com/anthonynsimon/bild/math/f64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// tonalRange 以亮度門檻選取像素並平移 L 通道
type tonalRange struct {
	name   Adjustment
	weight float64
	in     func(l float64) bool
}

// tonalRanges 依序套用；L 在每一項之後立即夾在 [0,255]，
// 下一項的門檻判斷讀的是已經調整過的 L
var tonalRanges = []tonalRange{
	{Highlights, 50, func(l float64) bool { return l > 127 }},
	{Shadows, 50, func(l float64) bool { return l < 127 }},
	{Whites, 25, func(l float64) bool { return l > 230 }},
	{Blacks, 25, func(l float64) bool { return l < 25 }},
}

type tonalStep struct {
	in    func(l float64) bool
	delta float64
}

// tonalSteps 取出存在的項目及其位移量，全部位移為 0 時回傳 nil
func tonalSteps(adj Adjustments) []tonalStep {
	var steps []tonalStep
	active := false
	for _, tr := range tonalRanges {
		s, ok := adj.Get(tr.name)
		if !ok {
			continue
		}
		delta := (s - 1.0) * tr.weight
		if delta != 0 {
			active = true
		}
		steps = append(steps, tonalStep{in: tr.in, delta: delta})
	}
	if !active {
		return nil
	}
	return steps
}

// foldLightness 依序將每個步驟套用到 0..255 尺度的 L
func foldLightness(l float64, steps []tonalStep) float64 {
	for _, st := range steps {
		if st.in(l) {
			l = f64.Clamp(l+st.delta, 0, 255)
		}
	}
	return l
}

// applyTonal 在 L*a*b* 空間調整亮部、暗部、白色與黑色
func applyTonal(b *Buffer, adj Adjustments) {
	steps := tonalSteps(adj)
	if steps == nil {
		return
	}

	b.mapPixels(func(r, g, bl float64) (float64, float64, float64) {
		l, la, lb := colorful.Color{R: r, G: g, B: bl}.Lab()
		l = foldLightness(l*255, steps) / 255
		c := colorful.Lab(l, la, lb).Clamped()
		return c.R, c.G, c.B
	})
}
