package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxFilenameLength 上传文件名的最大字节长度。
const MaxFilenameLength = 255

var allowedUploadExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
	"svg":  {},
	"avif": {},
}

// AllowedUploadExtensions 返回允许上传的扩展名（不含点）。
func AllowedUploadExtensions() []string {
	return []string{"jpg", "jpeg", "png", "gif", "webp", "svg", "avif"}
}

// ValidateUploadFilename 校验上传文件名并返回小写扩展名。
func ValidateUploadFilename(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("filename is required")
	}
	if len(trimmed) > MaxFilenameLength {
		return "", fmt.Errorf("filename exceeds %d bytes", MaxFilenameLength)
	}
	if !utf8.ValidString(trimmed) {
		return "", fmt.Errorf("filename is not valid utf-8")
	}
	if strings.ContainsAny(trimmed, `/\`) || strings.ContainsRune(trimmed, 0) {
		return "", fmt.Errorf("filename must not contain path separators")
	}
	if trimmed == "." || trimmed == ".." || strings.HasPrefix(trimmed, ".") {
		return "", fmt.Errorf("filename must not start with a dot")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(trimmed), "."))
	if ext == "" {
		return "", fmt.Errorf("filename has no extension")
	}
	if _, ok := allowedUploadExtensions[ext]; !ok {
		return "", fmt.Errorf("file extension %q is not allowed", ext)
	}
	return ext, nil
}

// ParseID 解析路径参数中的正整数 ID。
func ParseID(raw string) (uint, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("id is required")
	}
	id, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// ParsePositiveInt 解析正整数，空值或非法值返回默认值。
func ParsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// ParseBool 解析查询参数中的布尔值，支持 1/0、true/false、yes/no。
func ParseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
