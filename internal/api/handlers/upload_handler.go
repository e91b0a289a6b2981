package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unedp/careers/internal/upload"
	"github.com/unedp/careers/internal/utils"
)

type UploadHandler struct {
	broker *upload.Broker
}

func NewUploadHandler(broker *upload.Broker) *UploadHandler {
	return &UploadHandler{broker: broker}
}

type IssueTokenRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// IssueToken hands the candidate a signed upload descriptor. Type and size
// are checked against the allow-list before anything is signed.
func (h *UploadHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UploadHandler.IssueToken", "invalid request body", err))
		return
	}

	desc, err := h.broker.IssueToken(c.Request.Context(), req.Filename, req.ContentType, req.Size)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, desc)
}

// Upload is the fallback for clients that cannot PUT to a signed URL: the
// résumé arrives as multipart form data and is stored server-side. The same
// allow-list applies before the body is read.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UploadHandler.Upload", "multipart field 'file' is required", err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UploadHandler.Upload", "could not read uploaded file", err))
		return
	}
	defer f.Close()

	desc, err := h.broker.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, desc)
}
