package cli

import (
	stdimage "image"

	"github.com/spf13/afero"

	"photo-editor/internal/core/image"
)

// codec 依設定建立編解碼器
func (a *app) codec() image.Codec {
	return image.Codec{
		JPEGQuality:     a.cfg.Codec.JPEGQuality,
		AutoOrientation: a.cfg.Codec.AutoOrientation,
	}
}

// readImage 從本機路徑讀取並解碼
func (a *app) readImage(path string) (*stdimage.NRGBA, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return a.codec().Decode(f)
}

// writeImage 依輸出路徑副檔名編碼後寫入
func (a *app) writeImage(path string, img stdimage.Image) error {
	data, err := a.codec().Encode(img, path)
	if err != nil {
		return err
	}
	return afero.WriteFile(a.fs, path, data, 0644)
}
