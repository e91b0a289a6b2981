package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unedp/careers/internal/upload"
)

type stubStore struct{}

func (stubStore) SignedPutURL(_ context.Context, objectName, _ string, _ time.Duration) (string, error) {
	return "https://storage.example.test/put/" + objectName, nil
}

func (stubStore) PublicURL(objectName string) string {
	return "https://storage.example.test/" + objectName
}

func (stubStore) Upload(_ context.Context, objectName, _ string, _ io.Reader) (string, error) {
	return objectName, nil
}

func uploadRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := stubStore{}
	h := NewUploadHandler(upload.NewBroker(s, s, "test-secret"))
	r := gin.New()
	r.POST("/api/uploads/resume", h.IssueToken)
	r.POST("/api/uploads/resume/file", h.Upload)
	return r
}

func multipartResume(t *testing.T, contentType string, body []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="cv.pdf"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadHandlerIssueToken(t *testing.T) {
	r := uploadRouter()

	w := postJSON(t, r, "/api/uploads/resume", IssueTokenRequest{
		Filename: "cv.pdf", ContentType: "application/pdf", Size: 2048,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var desc upload.Descriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &desc))
	assert.NotEmpty(t, desc.UploadURL)
	assert.NotEmpty(t, desc.ClaimToken)
}

func TestUploadHandlerDirectUpload(t *testing.T) {
	r := uploadRouter()

	body, contentType := multipartResume(t, "application/pdf", []byte("%PDF-1.7 resume"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/resume/file", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var desc upload.Descriptor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &desc))
	assert.NotEmpty(t, desc.ClaimToken)
	assert.NotEmpty(t, desc.ResumeURL)
	assert.Empty(t, desc.UploadURL)
}

func TestUploadHandlerDirectUploadRejectsImage(t *testing.T) {
	r := uploadRouter()

	body, contentType := multipartResume(t, "image/png", []byte("not a resume"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/resume/file", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadHandlerMissingFile(t *testing.T) {
	r := uploadRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/resume/file", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
