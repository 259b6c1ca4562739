package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Error   string `json:"error"`             // 錯誤信息
	Code    string `json:"code"`              // 錯誤代碼
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 errors.Is 可以對應預定義錯誤
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithErr 複製錯誤並附帶原始錯誤，預定義錯誤本身不會被修改
func (e *CustomError) WithErr(err error) *CustomError {
	return &CustomError{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Err:     err,
	}
}

// WithMessage 複製錯誤並替換錯誤信息
func (e *CustomError) WithMessage(message string) *CustomError {
	return &CustomError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Err:     e.Err,
	}
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// AsCustomError 取出錯誤鏈中的 CustomError，找不到時包裝成內部錯誤
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrInternalError.WithErr(err)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE"  // 413
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "Invalid request", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "Resource not found", http.StatusNotFound, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "Method not allowed", http.StatusMethodNotAllowed, nil)
	ErrRequestTooLarge  = NewError(ErrCodeRequestTooLarge, "Request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "Too many requests", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "Service unavailable", http.StatusServiceUnavailable, nil)

	// 業務錯誤
	ErrMissingFilename    = NewError("MISSING_FILENAME", "No filename provided", http.StatusBadRequest, nil)
	ErrFileNotFound       = NewError("FILE_NOT_FOUND", "File not found", http.StatusNotFound, nil)
	ErrInvalidFilename    = NewError("INVALID_FILENAME", "Invalid filename", http.StatusBadRequest, nil)
	ErrMissingFilePart    = NewError("MISSING_FILE_PART", "No file part", http.StatusBadRequest, nil)
	ErrNoSelectedFile     = NewError("NO_SELECTED_FILE", "No selected file", http.StatusBadRequest, nil)
	ErrFileTypeNotAllowed = NewError("FILE_TYPE_NOT_ALLOWED", "File type not allowed", http.StatusBadRequest, nil)
	ErrInvalidImageData   = NewError("INVALID_IMAGE_DATA", "Uploaded file is not a supported image", http.StatusBadRequest, nil)
	ErrInvalidAdjustment  = NewError("INVALID_ADJUSTMENT", "Invalid adjustment", http.StatusBadRequest, nil)
	ErrMissingCropData    = NewError("MISSING_CROP_DATA", "Missing filename or crop data", http.StatusBadRequest, nil)
	ErrInvalidCropRect    = NewError("INVALID_CROP_RECT", "Invalid crop rectangle", http.StatusBadRequest, nil)
	ErrEmptyCropRegion    = NewError("EMPTY_CROP_REGION", "Crop region is empty after clamping", http.StatusBadRequest, nil)
	ErrImageProcessing    = NewError("IMAGE_PROCESSING_ERROR", "Image processing failed", http.StatusInternalServerError, nil)
	ErrStorage            = NewError("STORAGE_ERROR", "Storage operation failed", http.StatusInternalServerError, nil)
)
