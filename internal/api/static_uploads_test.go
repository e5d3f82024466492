package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestServeUploadsSandboxesFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "brands"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`
	if err := os.WriteFile(filepath.Join(dir, "brands", "logo.svg"), []byte(svg), 0o644); err != nil {
		t.Fatalf("write svg: %v", err)
	}

	r := gin.New()
	ServeUploads(r, "/files", dir)

	tests := []struct {
		name     string
		path     string
		expected int
	}{
		{"SVG 带沙箱策略", "/files/brands/logo.svg", http.StatusOK},
		{"不存在的文件", "/files/brands/missing.svg", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, w.Code)
			}
			if got := w.Header().Get("Content-Security-Policy"); got != uploadCSP {
				t.Fatalf("unexpected CSP %q", got)
			}
			if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Fatalf("unexpected X-Content-Type-Options %q", got)
			}
		})
	}
}
