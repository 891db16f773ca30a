package handlers

import (
	"errors"
	"net/http"

	"github.com/01moynul/agencyhub/internal/auth"
	"github.com/01moynul/agencyhub/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// invalidCredentials is the login failure message the admin panel matches on.
const invalidCredentials = "Invalid Cradentials"

// Login is the handler for POST /api/admin/login
// It checks the configured admin credentials and issues a session token.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	// 2. --- Check Credentials ---
	if err := h.Admin.Verify(input.Email, input.Password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.log(c).Error("credential check failed", zap.Error(err))
		}
		fail(c, http.StatusUnauthorized, invalidCredentials)
		return
	}

	// 3. --- Issue Token ---
	// The token names the configured admin, not whatever casing was typed.
	token, expiresAt, err := h.Tokens.GenerateToken(h.Admin.Email)
	if err != nil {
		h.serverError(c, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"expiresAt": expiresAt,
	})
}
