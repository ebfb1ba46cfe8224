// Package uploads stores multipart files under the upload directory.
//
// A file is first written under a random temporary name, then renamed so the
// stored path ends with the original file's extension.
package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohits-web03/blogify/internal/utils"
	"go.uber.org/zap"
)

// PublicPrefix is the URL path the upload directory is served under.
const PublicPrefix = "uploads"

// Mirror receives a copy of every stored upload, keyed by its public path.
type Mirror interface {
	PutFile(ctx context.Context, key, path string) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	dir    string
	mirror Mirror
	logger *zap.Logger
}

// NewStore returns a store rooted at dir. mirror may be nil.
func NewStore(dir string, mirror Mirror, logger *zap.Logger) *Store {
	return &Store{dir: dir, mirror: mirror, logger: logger}
}

func (s *Store) Dir() string { return s.dir }

// Save writes the uploaded file and returns its public path
// (uploads/<name>.<ext>). A nil header means no file was supplied and yields "".
func (s *Store) Save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	tempPath, err := s.writeTemp(fh)
	if err != nil {
		return "", err
	}
	stored, err := Relocate(tempPath, fh.Filename)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", err
	}
	public := PublicPrefix + "/" + filepath.Base(stored)

	if s.mirror != nil {
		if err := s.mirror.PutFile(ctx, public, stored); err != nil {
			s.logger.Warn("upload mirror failed", zap.String("path", public), zap.Error(err))
		}
	}
	return public, nil
}

// LocalPath maps a public upload path to the file under the upload directory.
// ok is false when the path is outside the upload prefix or no such file exists.
func (s *Store) LocalPath(public string) (path string, ok bool) {
	name, found := strings.CutPrefix(public, PublicPrefix+"/")
	if !found || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", false
	}
	path = filepath.Join(s.dir, filepath.FromSlash(name))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Discard removes an upload saved for a write that did not go through.
// Failures are logged; the caller is already reporting the original error.
func (s *Store) Discard(ctx context.Context, public string) {
	if public == "" {
		return
	}
	if path, ok := s.LocalPath(public); ok {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("discard upload failed", zap.String("path", public), zap.Error(err))
		}
	}
	if s.mirror != nil {
		if err := s.mirror.Delete(ctx, public); err != nil {
			s.logger.Warn("discard mirrored upload failed", zap.String("path", public), zap.Error(err))
		}
	}
}

func (s *Store) writeTemp(fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name, err := utils.RandomHex(16)
	if err != nil {
		return "", fmt.Errorf("generate upload name: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

// Relocate renames tempPath to tempPath + "." + the extension of originalName.
// When originalName has no extension tempPath is returned unchanged.
func Relocate(tempPath, originalName string) (string, error) {
	if tempPath == "" {
		return "", nil
	}
	ext := extension(originalName)
	if ext == "" {
		return tempPath, nil
	}
	newPath := tempPath + "." + ext
	if err := os.Rename(tempPath, newPath); err != nil {
		return "", fmt.Errorf("relocate upload: %w", err)
	}
	return newPath, nil
}

func extension(name string) string {
	base := filepath.Base(name)
	i := strings.LastIndex(base, ".")
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return base[i+1:]
}
