package image

import (
	"bytes"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Codec 圖片編解碼設定
type Codec struct {
	JPEGQuality     int
	AutoOrientation bool
}

// DefaultCodec 預設編解碼設定（JPEG 品質 95）
var DefaultCodec = Codec{JPEGQuality: 95, AutoOrientation: true}

// Decode 解碼圖片並轉成不透明的 NRGBA，alpha 通道被捨棄
func (c Codec) Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(c.AutoOrientation))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst, nil
}

// Encode 依檔名副檔名決定格式並編碼
func (c Codec) Encode(img image.Image, filename string) ([]byte, error) {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "unsupported output format for %q", filename)
	}

	quality := c.JPEGQuality
	if quality <= 0 {
		quality = DefaultCodec.JPEGQuality
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s", format)
	}
	return buf.Bytes(), nil
}
