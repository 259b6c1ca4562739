// Package storage 提供以檔名定址的扁平上傳目錄。
//
// 所有檔案都放在同一個目錄下，檔名是唯一的識別。衍生檔案（edited_、cropped_）
// 與原始檔案放在一起。寫入先寫到暫存檔再 rename，讀取端不會看到寫到一半的檔案；
// 但同名檔案的並行寫入沒有任何鎖，最後完成 rename 的寫入者勝出。
package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"photo-editor/internal/pkg/common"
)

// 可接受的圖片內容類型
var allowedMIME = []string{"image/png", "image/jpeg"}

// Store 上傳目錄
type Store struct {
	fs            afero.Fs
	dir           string
	allowed       map[string]struct{}
	verifyContent bool
}

// Options Store 設定
type Options struct {
	AllowedExtensions []string
	VerifyContent     bool
}

// New 在 dir 建立以作業系統檔案系統為底的 Store，目錄不存在時建立
func New(dir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}

	s := NewWithFs(afero.NewBasePathFs(afero.NewOsFs(), abs), opts)
	s.dir = abs
	return s, nil
}

// NewWithFs 使用指定的檔案系統建立 Store，fs 的根目錄即上傳目錄
func NewWithFs(fs afero.Fs, opts Options) *Store {
	allowed := make(map[string]struct{}, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &Store{
		fs:            fs,
		dir:           "",
		allowed:       allowed,
		verifyContent: opts.VerifyContent,
	}
}

// Dir 上傳目錄的絕對路徑，記憶體檔案系統時為空字串
func (s *Store) Dir() string {
	return s.dir
}

// AllowedFile 檢查副檔名是否在允許清單中
func (s *Store) AllowedFile(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	_, ok := s.allowed[strings.ToLower(name[i+1:])]
	return ok
}

// Save 清理檔名並原封不動地寫入上傳內容，回傳實際儲存的檔名
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	if filename == "" {
		return "", common.ErrNoSelectedFile
	}
	if !s.AllowedFile(filename) {
		return "", common.ErrFileTypeNotAllowed.WithMessage(
			fmt.Sprintf("File type not allowed: %q", filename))
	}

	name := SanitizeFilename(filename)
	if name == "" || !s.AllowedFile(name) {
		return "", common.ErrInvalidFilename.WithMessage(
			fmt.Sprintf("Invalid filename: %q", filename))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", common.ErrInvalidRequest.WithErr(err)
	}

	if s.verifyContent {
		mtype := mimetype.Detect(data)
		if !mimetype.EqualsAny(mtype.String(), allowedMIME...) {
			return "", common.ErrInvalidImageData.WithMessage(
				fmt.Sprintf("Uploaded file is not a supported image (detected %s)", mtype.String()))
		}
	}

	if err := s.WriteFile(name, data); err != nil {
		return "", err
	}
	return name, nil
}

// Exists 檢查檔案是否存在且為一般檔案
func (s *Store) Exists(name string) bool {
	info, err := s.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// Stat 取得檔案資訊
func (s *Store) Stat(name string) (os.FileInfo, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return s.fs.Stat(name)
}

// Open 開啟檔案以供讀取，不存在時回傳 common.ErrFileNotFound
func (s *Store) Open(name string) (afero.File, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrFileNotFound.WithMessage("File not found: " + name)
		}
		return nil, common.ErrStorage.WithErr(err)
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		f.Close()
		return nil, common.ErrFileNotFound.WithMessage("File not found: " + name)
	}
	return f, nil
}

// OpenReader 與 Open 相同，只暴露 io.ReadCloser
func (s *Store) OpenReader(name string) (io.ReadCloser, error) {
	return s.Open(name)
}

// ReadFile 讀取整個檔案
func (s *Store) ReadFile(name string) ([]byte, error) {
	f, err := s.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, common.ErrStorage.WithErr(err)
	}
	return data, nil
}

// WriteFile 寫入暫存檔後 rename 成目標檔名，覆蓋既有檔案
func (s *Store) WriteFile(name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	tmp, err := afero.TempFile(s.fs, ".", ".tmp-"+name+"-*")
	if err != nil {
		return common.ErrStorage.WithErr(err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		_ = s.fs.Remove(tmpName)
		return common.ErrStorage.WithErr(err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return common.ErrStorage.WithErr(err)
	}

	if err := s.fs.Rename(tmpName, name); err != nil {
		_ = s.fs.Remove(tmpName)
		return common.ErrStorage.WithErr(err)
	}
	return nil
}

// CheckWritable 確認上傳目錄可寫入，供就緒檢查使用
func (s *Store) CheckWritable() error {
	tmp, err := afero.TempFile(s.fs, ".", ".ready-*")
	if err != nil {
		return fmt.Errorf("upload dir not writable: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	if err := s.fs.Remove(name); err != nil {
		return fmt.Errorf("upload dir cleanup failed: %w", err)
	}
	return nil
}

// ValidateName 檔名只能是目錄下的單一名稱，不能包含路徑
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) ||
		path.Base(name) != name {
		return common.ErrInvalidFilename.WithMessage(fmt.Sprintf("Invalid filename: %q", name))
	}
	return nil
}

// SanitizeFilename 將使用者提供的檔名轉成安全的 ASCII 檔名
//
// 先做 NFKD 分解並丟棄非 ASCII 字元，路徑分隔符視為空白，空白折疊成底線，
// 只保留英數字與 "._-"，最後去除首尾的 "." 與 "_"。結果可能為空字串。
func SanitizeFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)

	var b strings.Builder
	for _, r := range decomposed {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		b.WriteRune(r)
	}

	joined := strings.Join(strings.Fields(b.String()), "_")

	var out strings.Builder
	for _, r := range joined {
		if r < unicode.MaxASCII && (r == '.' || r == '_' || r == '-' ||
			unicode.IsLetter(r) || unicode.IsDigit(r)) {
			out.WriteRune(r)
		}
	}

	return strings.Trim(out.String(), "._")
}
