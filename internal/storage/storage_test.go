package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLocalStoragePutAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage error: %v", err)
	}
	store.keys.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	obj, err := store.Put(ctx, []byte("png"), PutOptions{Category: "Products", Name: "Red Dress", Extension: ".PNG"})
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if obj.Key != "products/2024-03/red-dress.png" {
		t.Fatalf("unexpected key %q", obj.Key)
	}
	if obj.ContentType != "image/png" || obj.Size != 3 {
		t.Fatalf("unexpected object %+v", obj)
	}

	absPath := filepath.Join(dir, filepath.FromSlash(obj.Key))
	if _, err := os.Stat(absPath); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	if err := store.Remove(ctx, "/"+obj.Key); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := os.Stat(absPath); !os.IsNotExist(err) {
		t.Fatalf("file still exists after remove: %v", err)
	}
	if err := store.Remove(ctx, obj.Key); err != nil {
		t.Fatalf("second Remove should be a no-op, got %v", err)
	}
}

func TestLocalStorageRejects(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage error: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, nil, PutOptions{}); !errors.Is(err, ErrEmptyObject) {
		t.Fatalf("expected ErrEmptyObject, got %v", err)
	}
	if _, err := store.Put(ctx, []byte("x"), PutOptions{Category: "secrets"}); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if err := store.Remove(ctx, " / "); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := store.Put(cancelled, []byte("x"), PutOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLocalStorageRemoveStaysInsideDir(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(root, "uploads"))
	if err != nil {
		t.Fatalf("NewLocalStorage error: %v", err)
	}
	outside := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(outside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write outside file: %v", err)
	}

	if err := store.Remove(context.Background(), "../secret.txt"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("file outside storage dir was removed: %v", err)
	}
}

func TestKeyBuilder(t *testing.T) {
	fixed := time.Date(2025, 11, 2, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		prefix string
		opts   PutOptions
		want   string
	}{
		{"默认分类", "", PutOptions{Name: "logo", Extension: "svg"}, "misc/2025-11/logo.svg"},
		{"带前缀", "/shop/media/", PutOptions{Category: "brands", Name: "Nike", Extension: "webp"}, "shop/media/brands/2025-11/nike.webp"},
		{"清理名称", "", PutOptions{Category: "blog", Name: " Весна 2025! ", Extension: "jpg"}, "blog/2025-11/2025.jpg"},
		{"缺省扩展名", "", PutOptions{Category: "banners", Name: "hero"}, "banners/2025-11/hero.bin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newKeyBuilder(tt.prefix)
			b.now = func() time.Time { return fixed }
			got, err := b.build(tt.opts)
			if err != nil {
				t.Fatalf("build error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContentTypeOf(t *testing.T) {
	if got := contentTypeOf(PutOptions{Extension: "webp"}); got != "image/webp" {
		t.Fatalf("webp content type = %q", got)
	}
	if got := contentTypeOf(PutOptions{Extension: "png", ContentType: "image/x-custom"}); got != "image/x-custom" {
		t.Fatalf("explicit content type ignored: %q", got)
	}
	if got := contentTypeOf(PutOptions{}); got != "application/octet-stream" {
		t.Fatalf("fallback content type = %q", got)
	}
}

func TestParseCategory(t *testing.T) {
	if got, err := ParseCategory(""); err != nil || got != CategoryMisc {
		t.Fatalf("ParseCategory(\"\") = %q, %v", got, err)
	}
	if got, err := ParseCategory(" Banners "); err != nil || got != CategoryBanners {
		t.Fatalf("ParseCategory(Banners) = %q, %v", got, err)
	}
	if _, err := ParseCategory("avatars"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"默认前缀", "/files", "products/a.png", "/files/products/a.png"},
		{"尾部斜杠", "https://cdn.example.com/", "/brands/b.webp", "https://cdn.example.com/brands/b.webp"},
		{"空前缀", "", "a.png", "/a.png"},
		{"空键", "/files", " ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PublicURL(tt.base, tt.key); got != tt.want {
				t.Fatalf("PublicURL(%q, %q) = %q, want %q", tt.base, tt.key, got, tt.want)
			}
		})
	}
}
