package document

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AllowedMimeTypes is the document whitelist the save/update APIs accept.
var AllowedMimeTypes = map[string]bool{
	"image/jpg":                true,
	"image/jpeg":               true,
	"image/png":                true,
	"video/mp4":                true,
	"video/avi":                true,
	"application/octet-stream": true,
	"video/quicktime":          true,
}

// Storage writes document blobs to the local filesystem. It is the blob
// store collaborator of the lead service: save file -> Document value; the
// caller persists the row.
type Storage struct {
	baseDir    string
	staticBase string
	maxBytes   int64
}

func NewStorage(baseDir, staticBase string, maxBytes int64) *Storage {
	return &Storage{baseDir: baseDir, staticBase: staticBase, maxBytes: maxBytes}
}

// Store writes one uploaded part to disk and returns the Document describing
// it. The returned Document has no ID; the lead service inserts the row
// inside its transaction and calls Remove on rollback.
func (s *Storage) Store(fh *multipart.FileHeader) (*Document, error) {
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	// MIME from content, not from the client header
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}
	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	id := uuid.New().String()
	safeName := sanitizeName(fh.Filename)
	fileName := fmt.Sprintf("%s_%s", id, safeName)
	absPath := filepath.Join(absDir, fileName)

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("write file: %w", err)
	}

	relPath := filepath.Join(relDir, fileName)
	return &Document{
		UUID:     id,
		Name:     strings.TrimSuffix(safeName, filepath.Ext(safeName)),
		FileName: safeName,
		FilePath: relPath,
		FileURL:  s.staticBase + "/" + filepath.ToSlash(relPath),
		MimeType: mimeType,
		Size:     fh.Size,
	}, nil
}

// Remove deletes a stored blob. Used both for delete cascades and for
// compensating cleanup when a surrounding transaction rolls back.
func (s *Storage) Remove(d *Document) error {
	if d.FilePath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, d.FilePath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
