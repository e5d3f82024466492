package api

import (
	"github.com/gin-gonic/gin"
)

// uploadCSP 禁止直接打开的上传文件（尤其是 SVG）执行脚本或加载外部资源，
// 不影响文件作为 <img> 被页面引用。
const uploadCSP = "default-src 'none'; style-src 'unsafe-inline'; sandbox"

// ServeUploads 在 prefix 下提供本地存储目录中的上传文件
func ServeUploads(r gin.IRouter, prefix, dir string) {
	files := r.Group(prefix, uploadHeaders())
	files.Static("/", dir)
}

func uploadHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Content-Security-Policy", uploadCSP)
		header.Set("X-Content-Type-Options", "nosniff")
		c.Next()
	}
}
