package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/jobtrack/internal/api/dto"
	"github.com/martijn/jobtrack/internal/api/middleware"
	"github.com/martijn/jobtrack/internal/core/service"
)

type AuthHandler struct {
	store    *service.CredentialStore
	sessions *service.SessionService
}

func NewAuthHandler(store *service.CredentialStore, sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{
		store:    store,
		sessions: sessions,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if err := h.store.Register(c.Request.Context(), username, email, req.Password); err != nil {
		writeCredentialError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	email := strings.TrimSpace(req.Email)
	if err := h.store.Verify(ctx, email, req.Password); err != nil {
		// Do not reveal whether the account exists.
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrInvalidPassword) {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid credentials",
				Code:    http.StatusUnauthorized,
			})
			return
		}
		writeCredentialError(c, err)
		return
	}

	user, err := h.store.GetUser(ctx, email)
	if err != nil {
		writeCredentialError(c, err)
		return
	}

	token, _, err := h.sessions.Issue(user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(service.SessionLifetime / time.Second),
	})
}

// ForgotPassword handles POST /auth/password/forgot
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.store.InitiatePasswordReset(c.Request.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		writeCredentialError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ForgotPasswordResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	})
}

// ResetPassword handles POST /auth/password/reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.store.ResetPassword(c.Request.Context(), strings.TrimSpace(req.Email), req.Token, req.NewPassword); err != nil {
		writeCredentialError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset successful"})
}

// ChangePassword handles POST /auth/password/change
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Missing session",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.store.ChangePassword(c.Request.Context(), claims.Email(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeCredentialError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password changed successfully"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetSessionClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Missing session",
			Code:    http.StatusUnauthorized,
		})
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), claims.Email())
	if err != nil {
		writeCredentialError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
