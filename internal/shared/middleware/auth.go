package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-backend/internal/shared/response"
	"blog-backend/pkg/jwt"
)

// Context keys set by AuthMiddleware and read by downstream handlers.
const (
	ContextAuthorID = "authorID"
	ContextRole     = "role"
)

// AuthMiddleware verifies the Bearer access token and attaches the author
// id and role claims to the request context. The protected handler is never
// invoked when verification fails.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Grab token from the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify signature, expiry and token type
		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		// 4. Author id in the claim must be a UUID
		authorID, err := uuid.Parse(claims.AuthorID)
		if err != nil {
			response.Unauthorized(c, "invalid author id in token")
			c.Abort()
			return
		}

		// 5. Attach claims for handlers and the admin gate
		c.Set(ContextAuthorID, authorID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// GetAuthorID returns the authenticated author id placed by AuthMiddleware.
func GetAuthorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ContextAuthorID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
