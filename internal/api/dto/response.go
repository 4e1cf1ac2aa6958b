package dto

// ErrorResponse 失败返回封装
type ErrorResponse struct {
	Ok      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
