package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"shop/internal/entity/dto"
	"shop/internal/storage"
	"shop/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const multipartOverhead = 1 << 20

// Upload 上传图片。multipart/form-data 读取 file 与 category 字段，
// application/json 则读取 data URL 或 base64 形式的 data 字段。
func (h *HTTPHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		ServiceUnavailable(c, "storage is not configured")
		return
	}
	maxBytes := h.uploadLimit()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	if strings.HasPrefix(c.ContentType(), "application/json") {
		h.uploadBase64(c, maxBytes)
		return
	}

	category, ok := uploadCategory(c, c.PostForm("category"))
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fileTooLarge(c, maxBytes)
			return
		}
		MissingField(c, "file")
		return
	}
	if fileHeader.Size > maxBytes {
		h.fileTooLarge(c, maxBytes)
		return
	}

	ext, err := utils.ValidateUploadFilename(fileHeader.Filename)
	if err != nil {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidFile, err.Error(), gin.H{
			"allowed_extensions": utils.AllowedUploadExtensions(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		logrus.WithError(err).Error("failed to read uploaded file")
		InternalError(c, "failed to read upload")
		return
	}
	if int64(len(data)) > maxBytes {
		h.fileTooLarge(c, maxBytes)
		return
	}

	h.storeUpload(c, data, ext, category)
}

func (h *HTTPHandler) uploadBase64(c *gin.Context, maxBytes int64) {
	var req dto.UploadBase64Request
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fileTooLarge(c, maxBytes)
			return
		}
		InvalidPayloadWithError(c, err)
		return
	}
	category, ok := uploadCategory(c, req.Category)
	if !ok {
		return
	}

	data, ext, err := utils.DecodeMediaPayload(req.Data)
	if err != nil {
		BadRequest(c, ErrCodeInvalidFile, err.Error())
		return
	}
	if int64(len(data)) > maxBytes {
		h.fileTooLarge(c, maxBytes)
		return
	}

	h.storeUpload(c, data, ext, category)
}

// storeUpload 校验内容确为图片后写入存储，文件名使用随机 UUID
func (h *HTTPHandler) storeUpload(c *gin.Context, data []byte, ext, category string) {
	if len(data) == 0 {
		BadRequest(c, ErrCodeInvalidFile, "file is empty")
		return
	}
	contentType := utils.ContentTypeFromExtension(ext)
	if ext != "svg" && ext != "avif" {
		detected := http.DetectContentType(data)
		if !strings.HasPrefix(detected, "image/") {
			BadRequest(c, ErrCodeInvalidFile, "file content is not an image")
			return
		}
		contentType = detected
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	obj, err := h.storage.Put(ctx, data, storage.PutOptions{
		Category:    category,
		Name:        uuid.NewString(),
		Extension:   ext,
		ContentType: contentType,
	})
	if err != nil {
		logrus.WithError(err).WithField("category", category).Error("failed to store upload")
		ErrorResponse(c, http.StatusInternalServerError, ErrCodeUploadFailed, "failed to store file")
		return
	}

	logrus.WithFields(logrus.Fields{
		"key":      obj.Key,
		"category": category,
		"size":     obj.Size,
	}).Info("file uploaded")

	c.JSON(http.StatusCreated, dto.UploadResponse{
		Path:        obj.Key,
		URL:         h.publicURL(obj.Key),
		Size:        obj.Size,
		ContentType: obj.ContentType,
	})
}

// DeleteUpload 删除此前上传的文件，path 为上传接口返回的存储键
func (h *HTTPHandler) DeleteUpload(c *gin.Context) {
	if h.storage == nil {
		ServiceUnavailable(c, "storage is not configured")
		return
	}
	key := strings.TrimSpace(c.Query("path"))
	if key == "" {
		MissingField(c, "path")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.storage.Remove(ctx, key); err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			BadRequest(c, ErrCodeInvalidRequest, "invalid path")
			return
		}
		logrus.WithError(err).WithField("key", key).Error("failed to delete upload")
		ErrorResponse(c, http.StatusInternalServerError, ErrCodeUploadFailed, "failed to delete file")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) uploadLimit() int64 {
	if h.cfg.UploadMaxBytes > 0 {
		return h.cfg.UploadMaxBytes
	}
	return 10 << 20
}

func (h *HTTPHandler) fileTooLarge(c *gin.Context, maxBytes int64) {
	ErrorResponseWithDetails(c, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, "file is too large", gin.H{
		"max_bytes": maxBytes,
	})
}

func uploadCategory(c *gin.Context, raw string) (string, bool) {
	category, err := storage.ParseCategory(raw)
	if err != nil {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest, "unknown upload category", gin.H{
			"allowed_categories": storage.Categories(),
		})
		return "", false
	}
	return category, true
}

func (h *HTTPHandler) publicURL(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return storage.PublicURL(h.storagePublicBase, trimmed)
}
