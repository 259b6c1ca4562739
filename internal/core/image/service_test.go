package image

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-editor/internal/infrastructure/storage"
	"photo-editor/internal/pkg/common"
)

func newTestService(t *testing.T, verify bool) (*Service, *storage.Store) {
	t.Helper()
	store := storage.NewWithFs(afero.NewMemMapFs(), storage.Options{
		AllowedExtensions: []string{"png", "jpg", "jpeg"},
		VerifyContent:     verify,
	})
	return NewService(store, DefaultCodec), store
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := DefaultCodec.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestServiceAdjust(t *testing.T) {
	svc, store := newTestService(t, true)
	original := encodePNG(t, solid(3, 2, 100, 50, 25))

	name, err := store.Save("photo.png", bytes.NewReader(original))
	require.NoError(t, err)

	edited, err := svc.Adjust(name, Adjustments{Brightness: 2})
	require.NoError(t, err)
	assert.Equal(t, "edited_photo.png", edited)

	data, err := store.ReadFile(edited)
	require.NoError(t, err)
	out := decodePNG(t, data)
	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Bounds())
	assert.Equal(t, [3]uint8{200, 100, 50}, rgbAt(out, 2, 1))

	// 原始檔案不變
	kept, err := store.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, original, kept)
}

func TestServiceAdjustOverwritesDerived(t *testing.T) {
	svc, store := newTestService(t, true)
	_, err := store.Save("photo.png", bytes.NewReader(encodePNG(t, solid(1, 1, 100, 100, 100))))
	require.NoError(t, err)

	_, err = svc.Adjust("photo.png", Adjustments{Exposure: 0})
	require.NoError(t, err)
	_, err = svc.Adjust("photo.png", Adjustments{Exposure: 2})
	require.NoError(t, err)

	data, err := store.ReadFile("edited_photo.png")
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{200, 200, 200}, rgbAt(decodePNG(t, data), 0, 0))
}

func TestServiceAdjustJPEG(t *testing.T) {
	svc, store := newTestService(t, true)

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(8, 8, 120, 120, 120), &jpeg.Options{Quality: 95}))
	_, err := store.Save("shot.jpg", &buf)
	require.NoError(t, err)

	edited, err := svc.Adjust("shot.jpg", Adjustments{})
	require.NoError(t, err)

	data, err := store.ReadFile(edited)
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestServiceAdjustErrors(t *testing.T) {
	svc, store := newTestService(t, false)

	t.Run("missing filename", func(t *testing.T) {
		_, err := svc.Adjust("", Adjustments{})
		assert.True(t, errors.Is(err, common.ErrMissingFilename))
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := svc.Adjust("nope.png", Adjustments{})
		assert.True(t, errors.Is(err, common.ErrFileNotFound))
		assert.False(t, store.Exists("edited_nope.png"))
	})

	t.Run("invalid adjustment", func(t *testing.T) {
		_, err := svc.Adjust("nope.png", Adjustments{Contrast: -1})
		assert.True(t, errors.Is(err, common.ErrInvalidAdjustment))
	})

	t.Run("undecodable image", func(t *testing.T) {
		_, err := store.Save("broken.png", bytes.NewReader([]byte("definitely not a png")))
		require.NoError(t, err)

		_, err = svc.Adjust("broken.png", Adjustments{Exposure: 2})
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrImageProcessing))
		assert.False(t, store.Exists("edited_broken.png"))
	})
}

func TestServiceCrop(t *testing.T) {
	svc, store := newTestService(t, true)
	_, err := store.Save("photo.png", bytes.NewReader(encodePNG(t, gradient(4, 4))))
	require.NoError(t, err)

	cropped, rect, err := svc.Crop("photo.png", Rect{X: -5, Y: -5, Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Equal(t, "cropped_photo.png", cropped)
	assert.Equal(t, Rect{0, 0, 4, 4}, rect)

	data, err := store.ReadFile(cropped)
	require.NoError(t, err)
	assert.Equal(t, gradient(4, 4).Pix, decodePNG(t, data).Pix)
}

func TestServiceCropEmptyRegion(t *testing.T) {
	svc, store := newTestService(t, true)
	_, err := store.Save("photo.png", bytes.NewReader(encodePNG(t, gradient(4, 4))))
	require.NoError(t, err)

	_, _, err = svc.Crop("photo.png", Rect{X: 1, Y: 1, Width: 0, Height: 2})
	assert.True(t, errors.Is(err, common.ErrEmptyCropRegion))
	assert.False(t, store.Exists("cropped_photo.png"))
}

func TestCodecEncodeUnknownFormat(t *testing.T) {
	_, err := DefaultCodec.Encode(solid(1, 1, 0, 0, 0), "photo.xyz")
	assert.Error(t, err)
}
