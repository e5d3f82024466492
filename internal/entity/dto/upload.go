package dto

// UploadResponse describes a stored file.
type UploadResponse struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// UploadBase64Request uploads an image given as a data URL or bare base64.
type UploadBase64Request struct {
	Data     string `json:"data" binding:"required"`
	Category string `json:"category" binding:"max=32"`
}
