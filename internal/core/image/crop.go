package image

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"photo-editor/internal/pkg/common"
)

// Rect 裁切矩形，座標為來源影像的像素座標，夾住前不要求在範圍內
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty 寬或高不是正數
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ErrEmptyCropRegion 夾住後寬或高為 0 或負數
var ErrEmptyCropRegion = common.ErrEmptyCropRegion

// ParseRect 解析 JSON 解碼出的 {x, y, width, height}
func ParseRect(raw map[string]interface{}) (Rect, error) {
	var r Rect
	fields := []struct {
		key string
		dst *int
	}{
		{"x", &r.X},
		{"y", &r.Y},
		{"width", &r.Width},
		{"height", &r.Height},
	}

	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok {
			return Rect{}, common.ErrInvalidCropRect.WithMessage(
				fmt.Sprintf("Missing crop field %q", f.key))
		}
		n, err := common.NumberToInt(v)
		if err != nil {
			return Rect{}, common.ErrInvalidCropRect.WithMessage(
				fmt.Sprintf("Invalid crop field %q: %v", f.key, err))
		}
		*f.dst = n
	}
	return r, nil
}

// ClampRect 依影像寬高夾住裁切矩形
//
//	x      = clamp(x, 0, width-1)
//	y      = clamp(y, 0, height-1)
//	width  = min(width, imageWidth-x)
//	height = min(height, imageHeight-y)
//
// 寬高沒有下限：原本就是負數或夾住後變成 0 的值會原樣回傳，由 Crop 決定如何處理。
func ClampRect(imageWidth, imageHeight int, r Rect) Rect {
	r.X = max(0, min(r.X, imageWidth-1))
	r.Y = max(0, min(r.Y, imageHeight-1))
	r.Width = min(r.Width, imageWidth-r.X)
	r.Height = min(r.Height, imageHeight-r.Y)
	return r
}

// Crop 夾住矩形後複製子區域，回傳新影像與實際使用的矩形
//
// 夾住後寬或高不是正數時回傳 ErrEmptyCropRegion，不產生空影像。
func Crop(img image.Image, r Rect) (*image.NRGBA, Rect, error) {
	bounds := img.Bounds()
	clamped := ClampRect(bounds.Dx(), bounds.Dy(), r)
	if clamped.Empty() {
		return nil, clamped, ErrEmptyCropRegion.WithMessage(
			fmt.Sprintf("Crop region is empty after clamping: x=%d y=%d width=%d height=%d",
				clamped.X, clamped.Y, clamped.Width, clamped.Height))
	}

	origin := bounds.Min.Add(image.Pt(clamped.X, clamped.Y))
	rect := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(clamped.Width, clamped.Height))}
	return imaging.Crop(img, rect), clamped, nil
}
