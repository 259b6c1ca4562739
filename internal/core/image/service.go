package image

import (
	"errors"
	"image"
	"io"
	"time"

	"go.uber.org/zap"

	"photo-editor/internal/pkg/common"
)

// 衍生檔案的檔名前綴
const (
	EditedPrefix  = "edited_"
	CroppedPrefix = "cropped_"
)

// Store 服務需要的檔案存取能力
type Store interface {
	OpenReader(name string) (io.ReadCloser, error)
	WriteFile(name string, data []byte) error
}

// Service 圖片處理服務：讀檔、解碼、轉換、編碼、寫檔
//
// 每次呼叫都在同一個 goroutine 內同步完成，影像只存在於該次呼叫中。
// 轉換完整成功後才會寫入衍生檔案。
type Service struct {
	store Store
	codec Codec
}

// NewService 創建圖片處理服務
func NewService(store Store, codec Codec) *Service {
	return &Service{
		store: store,
		codec: codec,
	}
}

// Adjust 套用調整並儲存為 edited_<name>，回傳衍生檔名
func (s *Service) Adjust(name string, adj Adjustments) (string, error) {
	if err := adj.Validate(); err != nil {
		return "", err
	}

	start := time.Now()
	src, err := s.load(name)
	if err != nil {
		return "", err
	}

	out := Apply(src, adj)

	derived := EditedPrefix + name
	if err := s.save(derived, out); err != nil {
		return "", err
	}

	common.LogImageProcessing("info", "adjust",
		zap.String("filename", name),
		zap.String("derived", derived),
		zap.String("adjustments", adj.String()),
		zap.Int("width", out.Bounds().Dx()),
		zap.Int("height", out.Bounds().Dy()),
		zap.Duration("latency", time.Since(start)),
	)
	return derived, nil
}

// Crop 裁切並儲存為 cropped_<name>，回傳衍生檔名與實際使用的矩形
func (s *Service) Crop(name string, r Rect) (string, Rect, error) {
	start := time.Now()
	src, err := s.load(name)
	if err != nil {
		return "", Rect{}, err
	}

	out, clamped, err := Crop(src, r)
	if err != nil {
		return "", clamped, err
	}

	derived := CroppedPrefix + name
	if err := s.save(derived, out); err != nil {
		return "", clamped, err
	}

	common.LogImageProcessing("info", "crop",
		zap.String("filename", name),
		zap.String("derived", derived),
		zap.Any("requested", r),
		zap.Any("clamped", clamped),
		zap.Duration("latency", time.Since(start)),
	)
	return derived, clamped, nil
}

// load 讀取並解碼來源檔案
func (s *Service) load(name string) (*image.NRGBA, error) {
	if name == "" {
		return nil, common.ErrMissingFilename
	}

	// 檔名不合法或檔案不存在時，store 回傳對應的用戶端錯誤
	f, err := s.store.OpenReader(name)
	if err != nil {
		var ce *common.CustomError
		if errors.As(err, &ce) {
			return nil, ce
		}
		return nil, common.ErrImageProcessing.WithErr(err)
	}
	defer f.Close()

	img, err := s.codec.Decode(f)
	if err != nil {
		common.LogImageProcessing("error", "decode", zap.String("filename", name), zap.Error(err))
		return nil, common.ErrImageProcessing.WithErr(err)
	}
	return img, nil
}

// save 編碼後一次寫入，編碼失敗時不會留下檔案
func (s *Service) save(name string, img image.Image) error {
	data, err := s.codec.Encode(img, name)
	if err != nil {
		common.LogImageProcessing("error", "encode", zap.String("filename", name), zap.Error(err))
		return common.ErrImageProcessing.WithErr(err)
	}
	if err := s.store.WriteFile(name, data); err != nil {
		return common.ErrImageProcessing.WithErr(err)
	}
	return nil
}
