package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/images", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImageHandler_Upload(t *testing.T) {
	dir := t.TempDir()
	h := NewImageHandler(filepath.Join(dir, "uploads"), "/uploads")
	h.now = func() time.Time { return time.Unix(0, 42) }

	router := gin.New()
	router.POST("/api/products/images", h.Upload)

	testCases := []struct {
		name           string
		field          string
		filename       string
		expectedStatus int
		expectedURL    string
	}{
		{name: "png", field: "image", filename: "Arm Chair.PNG", expectedStatus: http.StatusCreated, expectedURL: "/uploads/arm-chair_42.png"},
		{name: "jpeg", field: "image", filename: "desk.jpeg", expectedStatus: http.StatusCreated, expectedURL: "/uploads/desk_42.jpeg"},
		{name: "gif rejected", field: "image", filename: "anim.gif", expectedStatus: http.StatusBadRequest},
		{name: "wrong field", field: "file", filename: "desk.png", expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, uploadRequest(t, tc.field, tc.filename, []byte("fake image bytes")))

			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedURL == "" {
				return
			}
			env := decode(t, w)
			assert.Equal(t, "Image uploaded successfully", env.Message)
			assert.Contains(t, string(env.Data), tc.expectedURL)

			stored, err := os.ReadFile(filepath.Join(dir, "uploads", strings.TrimPrefix(tc.expectedURL, "/uploads/")))
			require.NoError(t, err)
			assert.Equal(t, "fake image bytes", string(stored))
		})
	}
}
