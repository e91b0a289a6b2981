package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unedp/careers/internal/models"
	"github.com/unedp/careers/internal/services"
	"github.com/unedp/careers/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// ListPublic returns open postings for the careers site.
func (h *JobHandler) ListPublic(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context(), true)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetBySlug(c *gin.Context) {
	job, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListAdmin(c *gin.Context) {
	jobs, err := h.svc.List(c.Request.Context(), false)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Create(c *gin.Context) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Create", "invalid request body", err))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), actorID, &job)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *JobHandler) Update(c *gin.Context) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var job models.Job
	if err := c.ShouldBindJSON(&job); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Update", "invalid request body", err))
		return
	}
	job.ID = c.Param("id")

	updated, err := h.svc.Update(c.Request.Context(), actorID, &job)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *JobHandler) Delete(c *gin.Context) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actorID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
