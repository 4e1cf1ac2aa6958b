package dto

// UploadResultDTO 上传成功返回
type UploadResultDTO struct {
	Ok       bool   `json:"ok"`
	URL      string `json:"url"`
	Mime     string `json:"mime"`
	Size     int64  `json:"size"`
	Original string `json:"original,omitempty"`
}
