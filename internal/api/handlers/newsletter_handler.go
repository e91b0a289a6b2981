package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unedp/careers/internal/services"
	"github.com/unedp/careers/internal/utils"
)

type NewsletterHandler struct {
	svc services.NewsletterService
}

func NewNewsletterHandler(svc services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "NewsletterHandler.Subscribe", "invalid request body", err))
		return
	}

	row, err := h.svc.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, row)
}
