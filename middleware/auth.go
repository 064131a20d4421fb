package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yourusername/invoice-api/apierr"
	"github.com/yourusername/invoice-api/config"
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed, time-bounded token binding a subject to
// its role.
func GenerateToken(username, role string, cfg *config.Config) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    cfg.JWTIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenExpiry())),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// JWTAuth validates the bearer token and sets the principal in the context.
// Every failure goes through the error-normalization middleware so callers
// always get the uniform envelope, never a bare framework response.
func JWTAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortUnauthorized(c, "token has expired")
			} else {
				abortUnauthorized(c, "invalid token")
			}
			return
		}
		if !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireRole gates an operation on role membership. A verified principal
// whose role is outside the set is forbidden; a missing principal is
// unauthorized.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			abortUnauthorized(c, "no verified principal")
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			c.Error(apierr.NewError("non-string role in context").Mark(apierr.ErrInternal))
			c.Abort()
			return
		}

		for _, role := range roles {
			if roleStr == role {
				c.Next()
				return
			}
		}

		c.Error(apierr.NewError("role not permitted for operation").
			WithHint("insufficient permissions").
			Mark(apierr.ErrForbidden))
		c.Abort()
	}
}

func abortUnauthorized(c *gin.Context, reason string) {
	c.Error(apierr.NewError(reason).
		WithHint("authentication required").
		Mark(apierr.ErrUnauthorized))
	c.Abort()
}
