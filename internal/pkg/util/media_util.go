package util

import (
	"io"
	"net/http"
)

// GetSafeContentType 嗅探流头部判定真实 MIME，读完把流拨回起点。
// 嗅探不出有意义类型时返回 application/octet-stream，由调用方决定回退策略。
func GetSafeContentType(r io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}
