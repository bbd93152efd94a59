package util

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// ValidateMimeType 读取前 512 字节嗅探 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/", "video/", "application/pdf"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])
	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) {
			return mimeType, nil
		}
	}
	return mimeType, fmt.Errorf("%w: type %s", ErrInvalidFile, mimeType)
}

// IsVideoFile 按扩展名判断
func IsVideoFile(name string) bool {
	return slices.Contains(AllowedVideoExtensions, strings.ToLower(filepath.Ext(name)))
}
