package document

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func uploadedFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("documents", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["documents"][0]
}

func TestStoreWritesBlobAndDescribesIt(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, "/static/uploads", 5<<20)

	fh := uploadedFile(t, "contract scan.png", pngHeader)
	d, err := s.Store(fh)
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	if d.MimeType != "image/png" {
		t.Fatalf("sniffed mime %q, want image/png", d.MimeType)
	}
	if d.FileName != "contract_scan.png" {
		t.Fatalf("unsafe name not sanitized: %q", d.FileName)
	}
	if d.Name != "contract_scan" {
		t.Fatalf("display name should drop the extension, got %q", d.Name)
	}
	if !strings.HasPrefix(d.FileURL, "/static/uploads/") {
		t.Fatalf("unexpected URL %q", d.FileURL)
	}

	if _, err := os.Stat(filepath.Join(dir, d.FilePath)); err != nil {
		t.Fatalf("blob missing on disk: %v", err)
	}
}

func TestStoreRejectsOversizeAndEmpty(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, "/static/uploads", 8)

	if _, err := s.Store(uploadedFile(t, "big.png", pngHeader)); err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if _, err := s.Store(uploadedFile(t, "empty.png", nil)); err != ErrEmptyFile {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestStoreRejectsDisallowedMime(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, "/static/uploads", 5<<20)

	html := []byte("<!DOCTYPE html><html><body>hi</body></html>")
	if _, err := s.Store(uploadedFile(t, "page.html", html)); err != ErrInvalidMimeType {
		t.Fatalf("expected ErrInvalidMimeType, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := NewStorage(dir, "/static/uploads", 5<<20)

	d, err := s.Store(uploadedFile(t, "gone.png", pngHeader))
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	if err := s.Remove(d); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(d); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, d.FilePath)); !os.IsNotExist(err) {
		t.Fatal("blob should be gone")
	}
}
