package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorportal/mentor-portal-api/internal/middleware"
	"github.com/mentorportal/mentor-portal-api/internal/models"
	"github.com/mentorportal/mentor-portal-api/internal/services"
)

// AuthHandler handles the magic-link authentication endpoints
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// RequestLogin handles POST /api/v1/auth/request-login
// Issues a magic-link token and sends it via email
func (h *AuthHandler) RequestLogin(c *gin.Context) {
	var req models.RequestLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	resp, err := h.service.RequestLogin(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrMentorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "We couldn't find a mentor with that email address",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Something went wrong sending your login link. Please try again.",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Callback handles GET /auth/callback?token=…
// Verifies the emailed link, sets the session cookie, and redirects to the
// dashboard so the token disappears from the visible URL
func (h *AuthHandler) Callback(c *gin.Context) {
	magicToken := c.Query("token")
	if magicToken == "" {
		c.Redirect(http.StatusFound, "/?login_error=invalid")
		return
	}

	_, jwtToken, err := h.service.VerifyMagicLink(c.Request.Context(), magicToken)
	if err != nil {
		if errors.Is(err, services.ErrLinkInvalid) {
			c.Redirect(http.StatusFound, "/?login_error=expired")
			return
		}
		c.Redirect(http.StatusFound, "/?login_error=invalid")
		return
	}

	middleware.SetSessionCookie(
		c,
		jwtToken,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.Redirect(http.StatusFound, "/")
}

// VerifyLogin handles POST /api/v1/auth/verify
// JSON variant of the callback for SPA clients
func (h *AuthHandler) VerifyLogin(c *gin.Context) {
	var req models.VerifyLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid token format",
		})
		return
	}

	session, jwtToken, err := h.service.VerifyMagicLink(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, services.ErrLinkInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "This login link is invalid or has expired. Please request a new one.",
			})
			return
		}
		if errors.Is(err, services.ErrMentorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "We couldn't find a mentor account for this link",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Something went wrong verifying your link",
		})
		return
	}

	middleware.SetSessionCookie(
		c,
		jwtToken,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.VerifyLoginResponse{
		Success: true,
		Session: session,
	})
}

// PreviewLogin handles POST /api/v1/auth/preview
// Admin impersonation of any mentor account
func (h *AuthHandler) PreviewLogin(c *gin.Context) {
	var req models.PreviewLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": ParseValidationErrors(err),
		})
		return
	}

	session, jwtToken, err := h.service.PreviewLogin(c.Request.Context(), req.PreviewEmail, req.AdminKey)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAdminKey) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Invalid admin key",
			})
			return
		}
		if errors.Is(err, services.ErrMentorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "We couldn't find a mentor with that email address",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Something went wrong creating the preview session",
		})
		return
	}

	middleware.SetSessionCookie(
		c,
		jwtToken,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.VerifyLoginResponse{
		Success: true,
		Session: session,
	})
}

// Logout handles POST /api/v1/auth/logout
// Clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(
		c,
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.LogoutResponse{
		Success: true,
	})
}

// GetSession handles GET /api/v1/auth/session
// Returns the current session info (for session validation)
func (h *AuthHandler) GetSession(c *gin.Context) {
	session, err := middleware.GetSession(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
	})
}
