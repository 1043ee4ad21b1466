package utils

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"schoolportal/config"

	"github.com/google/uuid"
)

// ErrInvalidFileKey is returned for keys that escape the upload directory.
var ErrInvalidFileKey = errors.New("invalid file key")

// SaveUploadedFile stores an uploaded file under the configured upload
// directory and returns its opaque key.
func SaveUploadedFile(file *multipart.FileHeader, subDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	key := filepath.Join(subDir, uuid.NewString()+ext)

	dst, err := os.Create(filepath.Join(config.AppConfig.UploadDir, key))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return key, nil
}

// StoreFile writes raw bytes (e.g. a rendered PDF) and returns its key.
func StoreFile(data []byte, subDir, ext string) (string, error) {
	destDir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}
	key := filepath.Join(subDir, uuid.NewString()+ext)
	if err := os.WriteFile(filepath.Join(config.AppConfig.UploadDir, key), data, 0644); err != nil {
		return "", err
	}
	return key, nil
}

// FetchFile reads a stored file back by its key.
func FetchFile(key string) ([]byte, error) {
	path, err := resolveKey(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// DeleteFile removes a stored file. Missing files are not an error.
func DeleteFile(key string) error {
	if key == "" {
		return nil
	}
	path, err := resolveKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetFileURL resolves a stored key to a public URL for serving and for
// embedding into generated PDFs.
func GetFileURL(key string) string {
	if key == "" {
		return ""
	}
	return config.AppConfig.BaseURL + "/uploads/" + filepath.ToSlash(key)
}

func resolveKey(key string) (string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", ErrInvalidFileKey
	}
	return filepath.Join(config.AppConfig.UploadDir, clean), nil
}
