package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"AdminBackend/logger"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const maxImageSize = 5 << 20

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png"}

func isValidImageExtension(file *multipart.FileHeader) bool {
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowExt := range allowedImageExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

// makeUniqueFileName keeps a slugged form of the original name and appends the upload time.
func makeUniqueFileName(file *multipart.FileHeader, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(file.Filename))
	fileBase := slug.Make(strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)))
	if fileBase == "" {
		fileBase = "image"
	}
	return fmt.Sprintf("%s_%d%s", fileBase, now.UnixNano(), fileExt)
}

// ImageHandler stores product images on disk; the router serves them under publicPath.
type ImageHandler struct {
	dir        string
	publicPath string
	now        func() time.Time
}

func NewImageHandler(dir, publicPath string) *ImageHandler {
	return &ImageHandler{dir: dir, publicPath: publicPath, now: time.Now}
}

func (h *ImageHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, Envelope{Message: "Image file is required"})
		return
	}
	if !isValidImageExtension(file) {
		c.JSON(http.StatusBadRequest, Envelope{Message: "Image must be a jpg, jpeg or png file"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, Envelope{Message: "Image must be at most 5MB"})
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		logger.Error(c.Request.Context(), "create uploads dir", err, zap.String("dir", h.dir))
		c.JSON(http.StatusInternalServerError, Envelope{Message: "Error uploading image"})
		return
	}

	imageName := makeUniqueFileName(file, h.now())
	if err := c.SaveUploadedFile(file, filepath.Join(h.dir, imageName)); err != nil {
		logger.Error(c.Request.Context(), "save uploaded image", err)
		c.JSON(http.StatusInternalServerError, Envelope{Message: "Error uploading image"})
		return
	}

	c.JSON(http.StatusCreated, Envelope{
		Message: "Image uploaded successfully",
		Data:    gin.H{"image_url": path.Join(h.publicPath, imageName)},
	})
}
