package common

// UploadResponse 上傳成功的回應
type UploadResponse struct {
	Filename string `json:"filename"`
}

// EditRequest 調整圖片的請求
// adjustments 中的數值以 json.Number 保留，交由 core/image 解析
type EditRequest struct {
	Filename    string                 `json:"filename"`
	Adjustments map[string]interface{} `json:"adjustments"`
}

// EditResponse 調整完成的回應
type EditResponse struct {
	EditedFilename string `json:"edited_filename"`
}

// CropRequest 裁切圖片的請求
type CropRequest struct {
	Filename string                 `json:"filename"`
	Crop     map[string]interface{} `json:"crop"`
}

// CropResponse 裁切完成的回應
type CropResponse struct {
	Filename string `json:"filename"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}
