package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"go-storefront/errs"

	"github.com/oklog/ulid/v2"
)

const (
	MaxUploadSize = 5 << 20

	ProfilePhotoDir = "profile-photos"
	ReviewPhotoDir  = "review-photos"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Uploader stores images under dir and exposes them below /uploads
type Uploader struct {
	dir string
}

func NewUploader(dir string) *Uploader {
	return &Uploader{dir: dir}
}

func (u *Uploader) Dir() string {
	return u.dir
}

// SaveImage checks size and sniffed type of the file and writes it to
// sub. It returns the public path of the stored file.
func (u *Uploader) SaveImage(file multipart.File, header *multipart.FileHeader, sub string) (string, error) {
	if header.Size > MaxUploadSize {
		return "", errs.ErrFileTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	ext, ok := allowedImageTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", errs.ErrUnsupportedFileType
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewinding upload: %w", err)
	}

	target := filepath.Join(u.dir, sub)
	if err = os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	name := ulid.Make().String() + ext
	dst, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer dst.Close()

	// the header size can lie, so cap the copy as well
	written, err := io.Copy(dst, io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if written > MaxUploadSize {
		dst.Close()
		_ = os.Remove(dst.Name())
		return "", errs.ErrFileTooLarge
	}

	return path.Join("/uploads", sub, name), nil
}
