package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/invoice-api/apierr"
	"github.com/yourusername/invoice-api/config"
	"github.com/yourusername/invoice-api/middleware"
	"github.com/yourusername/invoice-api/models"
	"github.com/yourusername/invoice-api/utils"
)

// RolePolicy decides which role a subject is issued. The policy is wired at
// startup, not fixed here.
type RolePolicy func(username string) string

// DefaultRolePolicy maps the configured administrative username to the
// administrator role and everyone else to the standard role.
func DefaultRolePolicy(adminUsername string) RolePolicy {
	return func(username string) string {
		if strings.EqualFold(username, adminUsername) {
			return models.RoleAdministrator
		}
		return models.RoleUser
	}
}

type AuthHandler struct {
	cfg    *config.Config
	policy RolePolicy
}

func NewAuthHandler(cfg *config.Config, policy RolePolicy) *AuthHandler {
	return &AuthHandler{cfg: cfg, policy: policy}
}

// Login issues a bearer token for the supplied credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apierr.WithError(err).
			WithHint("invalid credentials").
			Mark(apierr.ErrBadRequest))
		c.Abort()
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		c.Error(apierr.NewError("blank username or password").
			WithHint("invalid credentials").
			Mark(apierr.ErrBadRequest))
		c.Abort()
		return
	}

	role := h.policy(req.Username)
	token, err := middleware.GenerateToken(req.Username, role, h.cfg)
	if err != nil {
		c.Error(apierr.WithError(err).
			WithMessage("token signing failed").
			Mark(apierr.ErrInternal))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, utils.OK(models.LoginResponse{Token: token}, "token issued"))
}
