package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/identity"
	"blog-backend/internal/shared/middleware"
	"blog-backend/internal/shared/response"
)

const (
	refreshCookieName   = "refresh_token"
	refreshCookieMaxAge = 72 * 3600 // matches the refresh token expiry
)

// AuthorHandler translates HTTP requests into author service calls.
// Stateless - only holds dependencies.
type AuthorHandler struct {
	service author.Service
	fetcher identity.ProfileFetcher
}

func NewAuthorHandler(service author.Service, fetcher identity.ProfileFetcher) *AuthorHandler {
	return &AuthorHandler{
		service: service,
		fetcher: fetcher,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register handles POST /authors
func (h *AuthorHandler) Register(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req author.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: CALL SERVICE LAYER
	// Service validates, hashes the password and persists the author.
	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: SUCCESS RESPONSE
	// 201 Created + Location header of the new resource.
	c.Header("Location", "/api/v1/authors/"+res.ID.String())
	response.Success(c, http.StatusCreated, res)
}

// Login handles POST /authors/login
func (h *AuthorHandler) Login(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req author.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// STEP 2: AUTHENTICATE
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: SET REFRESH TOKEN IN HTTPONLY COOKIE
	// The refresh token never appears in the response body.
	h.setRefreshCookie(c, res.RefreshToken)

	response.Success(c, http.StatusOK, res)
}

// RefreshToken handles POST /authors/refresh-token
func (h *AuthorHandler) RefreshToken(c *gin.Context) {
	// STEP 1: READ REFRESH TOKEN FROM COOKIE (not the body)
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil {
		response.Unauthorized(c, "Missing refresh token")
		return
	}

	// STEP 2: ROTATE TOKENS
	res, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// STEP 3: SET ROTATED REFRESH TOKEN
	h.setRefreshCookie(c, res.RefreshToken)

	response.Success(c, http.StatusOK, res)
}

// Logout handles POST /authors/logout
// Clears the refresh cookie; access tokens simply expire.
func (h *AuthorHandler) Logout(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/", "", true, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// googleCallbackRequest carries the provider access token obtained by the
// client after the provider-side consent flow.
type googleCallbackRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// GoogleCallback handles POST /authors/google/callback
func (h *AuthorHandler) GoogleCallback(c *gin.Context) {
	// STEP 1: PARSE REQUEST BODY
	var req googleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "access_token is required")
		return
	}

	// STEP 2: EXCHANGE TOKEN FOR VERIFIED PROFILE
	profile, err := h.fetcher.Fetch(c.Request.Context(), req.AccessToken)
	if err != nil {
		if errors.Is(err, identity.ErrTokenRejected) {
			response.Unauthorized(c, "Identity provider rejected the token")
			return
		}
		log.Error().Err(err).Msg("userinfo exchange failed")
		response.InternalServerError(c, "Identity provider unavailable")
		return
	}

	// STEP 3: LOG IN OR PROVISION ON FIRST SIGHT
	res, err := h.service.ExternalLogin(c.Request.Context(), author.ExternalProfile{
		Email:      profile.Email,
		GivenName:  profile.GivenName,
		FamilyName: profile.FamilyName,
		ExternalID: profile.Subject,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	response.Success(c, http.StatusOK, res)
}

// ========================================
// SELF-SERVICE ENDPOINTS (PROTECTED)
// ========================================

// GetMe handles GET /authors/me
func (h *AuthorHandler) GetMe(c *gin.Context) {
	authorID, ok := middleware.GetAuthorID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), authorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateMe handles PUT /authors/me
func (h *AuthorHandler) UpdateMe(c *gin.Context) {
	authorID, ok := middleware.GetAuthorID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), authorID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteMe handles DELETE /authors/me
func (h *AuthorHandler) DeleteMe(c *gin.Context) {
	authorID, ok := middleware.GetAuthorID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), authorID); err != nil {
		h.handleError(c, err)
		return
	}

	c.SetCookie(refreshCookieName, "", -1, "/", "", true, true)
	response.Success(c, http.StatusOK, gin.H{"message": "Author deleted successfully"})
}

// GetByID handles GET /authors/:id (any authenticated author)
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author ID")
		return
	}

	profile, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// ========================================
// ADMIN ENDPOINTS (PROTECTED + ROLE CHECK)
// ========================================

// List handles GET /authors - admin only
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, authors)
}

// UpdateByID handles PUT /authors/:id - admin only
func (h *AuthorHandler) UpdateByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author ID")
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateByID(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteByID handles DELETE /authors/:id - admin only
func (h *AuthorHandler) DeleteByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid author ID")
		return
	}

	if err := h.service.DeleteByID(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Author deleted successfully"})
}

// ========================================
// HELPER FUNCTIONS
// ========================================

func (h *AuthorHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(
		refreshCookieName,   // Cookie name
		token,               // Cookie value
		refreshCookieMaxAge, // Max age in seconds
		"/",                 // Path
		"",                  // Domain (empty = auto-detect)
		true,                // Secure (HTTPS only)
		true,                // HttpOnly (JavaScript cannot access)
	)
}

// handleError maps domain errors to HTTP responses.
// Centralized so the endpoints stay uniform.
func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var validationErrs validation.Errors

	switch {
	// 400 Bad Request - field validation failed
	case errors.As(err, &validationErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", validationErrs)

	// 401 Unauthorized - authentication failed
	case errors.Is(err, author.ErrInvalidCredentials),
		errors.Is(err, author.ErrInvalidToken):
		response.Unauthorized(c, err.Error())

	// 404 Not Found
	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, err.Error())

	// 409 Conflict - email already taken
	case errors.Is(err, author.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())

	// 500 Internal Server Error - never expose details to the client
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
		response.InternalServerError(c, "Internal server error")
	}
}
