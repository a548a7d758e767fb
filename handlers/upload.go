package handlers

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
)

const (
	// general per-file cap (payment screenshots, homework, materials)
	maxUploadSize = 10 << 20
	// library book PDFs get more headroom
	maxLibraryUploadSize = 50 << 20
)

// uploadDir is set once at startup from config.
var uploadDir = "uploads"

func SetUploadDir(dir string) { uploadDir = dir }

// saveUpload stores a multipart file under uploadDir/<kind>/ with a
// random name and returns the relative path recorded in the database.
// A missing file is not an error ("" is returned) so optional uploads
// share this path; oversized files are a Validation failure.
func saveUpload(c echo.Context, field, kind string, limit int64) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	if fh.Size > limit {
		return "", apperr.ValidationMsg("FILE_TOO_LARGE", "uploaded file exceeds the size limit")
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperr.Upstream(err)
	}
	defer src.Close()

	dir := filepath.Join(uploadDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Upstream(err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", apperr.Upstream(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperr.Upstream(err)
	}
	return filepath.ToSlash(filepath.Join(kind, name)), nil
}
