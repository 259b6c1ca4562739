package image

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-editor/internal/pkg/common"
)

func TestClampRect(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside", Rect{1, 1, 2, 2}, Rect{1, 1, 2, 2}},
		{"negative origin covers full image", Rect{-5, -5, 10, 10}, Rect{0, 0, 4, 4}},
		{"overflowing size", Rect{3, 3, 10, 10}, Rect{3, 3, 1, 1}},
		{"origin past edge", Rect{10, 10, 2, 2}, Rect{3, 3, 1, 1}},
		{"zero width kept", Rect{0, 0, 0, 2}, Rect{0, 0, 0, 2}},
		{"negative height kept", Rect{1, 1, 2, -3}, Rect{1, 1, 2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampRect(4, 4, tt.in))
		})
	}
}

func TestClampRectOriginInBounds(t *testing.T) {
	const w, h = 7, 5
	for x := -10; x <= 10; x += 3 {
		for y := -10; y <= 10; y += 3 {
			for _, size := range []int{-2, 0, 1, 3, 20} {
				r := ClampRect(w, h, Rect{X: x, Y: y, Width: size, Height: size})
				assert.True(t, r.X >= 0 && r.X < w, "x=%d out of range for %v", r.X, r)
				assert.True(t, r.Y >= 0 && r.Y < h, "y=%d out of range for %v", r.Y, r)
				assert.LessOrEqual(t, r.X+r.Width, w)
				assert.LessOrEqual(t, r.Y+r.Height, h)
			}
		}
	}
}

func TestCropFullImage(t *testing.T) {
	src := gradient(4, 4)

	out, clamped, err := Crop(src, Rect{X: -5, Y: -5, Width: 10, Height: 10})
	require.NoError(t, err)

	assert.Equal(t, Rect{0, 0, 4, 4}, clamped)
	assert.Equal(t, 4, out.Bounds().Dx())
	assert.Equal(t, 4, out.Bounds().Dy())
	assert.Equal(t, src.Pix, out.Pix)
}

func TestCropCopiesRegion(t *testing.T) {
	src := gradient(4, 4)

	out, clamped, err := Crop(src, Rect{X: 1, Y: 2, Width: 2, Height: 1})
	require.NoError(t, err)

	assert.Equal(t, Rect{1, 2, 2, 1}, clamped)
	assert.Equal(t, image.Rect(0, 0, 2, 1), out.Bounds())
	assert.Equal(t, rgbAt(src, 1, 2), rgbAt(out, 0, 0))
	assert.Equal(t, rgbAt(src, 2, 2), rgbAt(out, 1, 0))

	// 輸出是獨立的副本
	out.Pix[0] = ^out.Pix[0]
	assert.NotEqual(t, out.Pix[0], src.NRGBAAt(1, 2).R)
}

func TestCropSubImageOrigin(t *testing.T) {
	src := gradient(4, 4)
	sub := src.SubImage(image.Rect(1, 1, 4, 4))

	out, clamped, err := Crop(sub, Rect{X: 0, Y: 0, Width: 1, Height: 1})
	require.NoError(t, err)

	assert.Equal(t, Rect{0, 0, 1, 1}, clamped)
	assert.Equal(t, rgbAt(src, 1, 1), rgbAt(out, 0, 0))
}

func TestCropEmptyRegion(t *testing.T) {
	src := gradient(4, 4)

	tests := []struct {
		name string
		rect Rect
	}{
		{"zero width", Rect{0, 0, 0, 2}},
		{"zero height", Rect{0, 0, 2, 0}},
		{"negative width", Rect{1, 1, -3, 2}},
		{"negative height", Rect{1, 1, 2, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := Crop(src, tt.rect)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, common.ErrEmptyCropRegion))

			ce := common.AsCustomError(err)
			assert.Equal(t, 400, ce.Status)
		})
	}
}

func TestParseRect(t *testing.T) {
	t.Run("numbers and strings", func(t *testing.T) {
		var raw map[string]interface{}
		require.NoError(t, common.ParseJSONBytes(
			[]byte(`{"x": 1, "y": "2", "width": 3.9, "height": "4"}`), &raw))

		r, err := ParseRect(raw)
		require.NoError(t, err)
		assert.Equal(t, Rect{X: 1, Y: 2, Width: 3, Height: 4}, r)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := ParseRect(map[string]interface{}{"x": 1, "y": 1, "width": 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrInvalidCropRect))
		assert.Contains(t, err.Error(), "height")
	})

	t.Run("non numeric", func(t *testing.T) {
		_, err := ParseRect(map[string]interface{}{"x": "abc", "y": 1, "width": 1, "height": 1})
		assert.True(t, errors.Is(err, common.ErrInvalidCropRect))
	})
}
