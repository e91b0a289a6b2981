package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unedp/careers/internal/models"
	pgrepo "github.com/unedp/careers/internal/repositories/postgres"
	"github.com/unedp/careers/internal/services"
	"github.com/unedp/careers/internal/utils"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Submit is the public application intake endpoint. Whatever status the
// client sends is ignored; the service forces "new".
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var in services.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.Submit", "invalid request body", err))
		return
	}
	if in.IdempotencyKey == "" {
		in.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	app, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.svc.List(c.Request.Context(), pgrepo.ApplicationFilter{
		JobID: c.Query("job_id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

type UpdateStatusRequest struct {
	Status models.ApplicationStatus `json:"status"`
	Notes  string                   `json:"notes"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ApplicationHandler.UpdateStatus", "invalid request body", err))
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), actorID, c.GetString("user_email"), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
