package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-storefront/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func multipartFile(t *testing.T, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("photo", "photo.bin")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(MaxUploadSize))
	file, header, err := req.FormFile("photo")
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file, header
}

func TestSaveImageStoresPNG(t *testing.T) {
	dir := t.TempDir()
	u := NewUploader(dir)
	file, header := multipartFile(t, append(pngHeader, make([]byte, 64)...))

	public, err := u.SaveImage(file, header, ProfilePhotoDir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(public, "/uploads/profile-photos/"))
	assert.True(t, strings.HasSuffix(public, ".png"))

	_, err = os.Stat(filepath.Join(dir, ProfilePhotoDir, filepath.Base(public)))
	assert.NoError(t, err)
}

func TestSaveImageRejectsText(t *testing.T) {
	file, header := multipartFile(t, []byte("just some text"))
	_, err := NewUploader(t.TempDir()).SaveImage(file, header, ReviewPhotoDir)
	assert.ErrorIs(t, err, errs.ErrUnsupportedFileType)
}

func TestSaveImageRejectsLargeFiles(t *testing.T) {
	file, header := multipartFile(t, append(pngHeader, make([]byte, MaxUploadSize)...))
	_, err := NewUploader(t.TempDir()).SaveImage(file, header, ReviewPhotoDir)
	assert.ErrorIs(t, err, errs.ErrFileTooLarge)
}
