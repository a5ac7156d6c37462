package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portssvc "github.com/SscSPs/simple_invoice_app/internal/core/ports/services"
	"github.com/SscSPs/simple_invoice_app/internal/core/services"
	"github.com/SscSPs/simple_invoice_app/internal/dto"
	"github.com/SscSPs/simple_invoice_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler turns a verified provider identity into an application JWT.
// googleOAuth and firebaseAuth are optional; their routes are only
// registered when they are configured.
type authHandler struct {
	googleOAuth  portssvc.GoogleOAuthSvcFacade
	firebaseAuth portssvc.FirebaseAuthSvc
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func newAuthHandler(container *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		googleOAuth:  container.GoogleOAuth,
		firebaseAuth: container.FirebaseAuth,
		userService:  container.User,
		tokenService: container.TokenService,
	}
}

// RegisterAuthRoutes sets up the public sign-in routes. A nil authLimiter
// disables rate limiting.
func RegisterAuthRoutes(rg *gin.RouterGroup, container *portssvc.ServiceContainer, authLimiter *limiter.Limiter) {
	h := newAuthHandler(container)

	auth := rg.Group("/auth")
	if authLimiter != nil {
		auth.Use(middleware.RateLimit(authLimiter))
	}
	if h.googleOAuth != nil {
		auth.GET("/google/login-url", h.getGoogleLoginURL)
		auth.POST("/google/exchange-code", h.exchangeCodeGoogle)
	}
	if h.firebaseAuth != nil {
		auth.POST("/firebase/session", h.createFirebaseSession)
	}
}

// getGoogleLoginURL godoc
// @Summary Google sign-in URL
// @Description Returns the Google consent URL and the state value the frontend must check on return
// @Tags auth
// @Produce  json
// @Success 200 {object} dto.LoginURLResponse
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to start Google sign-in"
// @Router /auth/google/login-url [get]
func (h *authHandler) getGoogleLoginURL(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuth.GenerateStateString(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate OAuth state", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to start Google sign-in.")
		c.JSON(appErr.Code, appErr)
		return
	}
	c.JSON(http.StatusOK, dto.LoginURLResponse{
		URL:   h.googleOAuth.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// exchangeCodeGoogle godoc
// @Summary Exchange a Google authorization code for an access token
// @Description Exchanges the code with Google, validates the ID token, records the sign-in and returns the application JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Failure 401 {object} map[string]string "Invalid Google ID token"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to sign in"
// @Failure 504 {object} map[string]string "Google did not answer"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnContext(ctx, "Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	oauth2Token, err := h.googleOAuth.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		// Google answers a stale or reused code with invalid_grant.
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.ErrorContext(ctx, "ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google.")
		c.JSON(appErr.Code, appErr)
		return
	}

	payload, err := h.googleOAuth.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.WarnContext(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	identity, err := services.GoogleIdentity(payload)
	if err != nil {
		logger.WarnContext(ctx, "Essential claims missing from Google ID token", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Essential user information missing from Google token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	h.issueSession(c, identity)
}

// createFirebaseSession godoc
// @Summary Exchange a Firebase ID token for an access token
// @Description Verifies the Firebase Authentication ID token, records the sign-in and returns the application JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   session body dto.FirebaseSessionRequest true "Firebase ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid request payload"
// @Failure 401 {object} map[string]string "Invalid Firebase ID token"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to sign in"
// @Router /auth/firebase/session [post]
func (h *authHandler) createFirebaseSession(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.FirebaseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnContext(ctx, "Failed to bind JSON for firebase session request", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	identity, err := h.firebaseAuth.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		logger.WarnContext(ctx, "Firebase ID token verification failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Firebase ID token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	h.issueSession(c, *identity)
}

// issueSession records the sign-in of a verified identity and answers with
// the application JWT.
func (h *authHandler) issueSession(c *gin.Context, identity domain.User) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("provider", string(identity.AuthProvider)),
		slog.String("provider_user_id", identity.UserID),
	)

	user, err := h.userService.SignIn(ctx, identity)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to record sign-in", slog.String("error", err.Error()))
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			appErr = apperrors.NewInternalServerError("Failed to process user authentication.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate application access token", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to generate access token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	logger.InfoContext(ctx, "User signed in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken})
}
