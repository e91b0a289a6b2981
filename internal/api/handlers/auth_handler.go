package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/unedp/careers/internal/api/middleware"
	"github.com/unedp/careers/internal/authz"
	"github.com/unedp/careers/internal/credstore"
	"github.com/unedp/careers/internal/services"
	"github.com/unedp/careers/internal/utils"
)

type AuthHandler struct {
	creds  credstore.Store
	admins services.AdminService
}

func NewAuthHandler(creds credstore.Store, admins services.AdminService) *AuthHandler {
	return &AuthHandler{creds: creds, admins: admins}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register creates a back-office account. The domain gate runs first and its
// rejection message never reveals which domains are accepted.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Register", "invalid request body", err))
		return
	}

	if !authz.IsAllowedDomain(req.Email) {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Register", authz.GenericDomainError(), nil))
		return
	}
	if len(req.Password) < 8 {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Register", "password must be at least 8 characters", nil))
		return
	}

	sess, err := h.creds.SignUp(c.Request.Context(), req.Email, req.Password, map[string]any{
		"full_name": req.FullName,
	})
	if err != nil {
		writeError(c, utils.E(utils.CodeUnavailable, "AuthHandler.Register", "failed to create account", err))
		return
	}

	c.JSON(http.StatusCreated, sess)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Session *credstore.Session `json:"session"`
	IsAdmin bool               `json:"is_admin"`
	Warning string             `json:"warning,omitempty"`
}

// Login signs in against the credential store, then runs the gate so the
// client learns its admin standing in the same round trip. A non-admin login
// still succeeds; only the flag differs.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	sess, err := h.creds.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, credstore.ErrInvalidCredentials) {
			writeError(c, utils.E(utils.CodeUnauthorized, "AuthHandler.Login", "invalid email or password", err))
			return
		}
		writeError(c, utils.E(utils.CodeUnavailable, "AuthHandler.Login", "sign-in service unavailable", err))
		return
	}

	out := LoginResponse{Session: sess}
	res, gateErr := h.admins.Authorize(c.Request.Context(), &services.Session{
		UserID:   sess.User.ID,
		Email:    sess.User.Email,
		Metadata: sess.User.Metadata,
	})
	switch {
	case gateErr == nil:
		out.IsAdmin = res.Status.IsAdmin
		out.Warning = res.RepairWarning
	case utils.IsCode(gateErr, utils.CodeUnavailable):
		// directory outage must not read as "not admin"
		writeError(c, gateErr)
		return
	default:
		out.IsAdmin = false
	}

	c.JSON(http.StatusOK, out)
}

// Me returns the credential store's current view of the caller, metadata
// included. After a repair the JWT still carries the old metadata bag until
// it is refreshed; this is how a client picks up the new flag without
// logging out.
func (h *AuthHandler) Me(c *gin.Context) {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))

	user, err := h.creds.GetUser(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, credstore.ErrInvalidCredentials) {
			writeError(c, utils.E(utils.CodeUnauthorized, "AuthHandler.Me", "invalid or expired session", err))
			return
		}
		writeError(c, utils.E(utils.CodeUnavailable, "AuthHandler.Me", "failed to load account", err))
		return
	}

	c.JSON(http.StatusOK, user)
}

// Verify is the explicit sync action: it re-derives admin standing from the
// directory and repairs stale session metadata without forcing a logout.
func (h *AuthHandler) Verify(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	res, err := h.admins.VerifyStatus(c.Request.Context(), sess)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_admin":   res.Status.IsAdmin,
		"email":      res.Status.Email,
		"full_name":  res.Status.FullName,
		"department": res.Status.Department,
		"warning":    res.RepairWarning,
		"message":    "Admin status verified",
	})
}
