package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingHeader = errors.New("authorization header required")
	errHeaderFormat  = errors.New("authorization header format must be Bearer {token}")
	errInvalidClaims = errors.New("invalid token claims")
)

// AuthMiddleware creates a Gin middleware handler that requires a valid JWT.
// The token subject becomes the request's user ID.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, jwtSecret, true)
	}
}

// OptionalAuthMiddleware accepts requests without an Authorization header as
// anonymous. A header that is present must still carry a valid token.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, jwtSecret, false)
	}
}

func authenticate(c *gin.Context, jwtSecret string, required bool) {
	logger := GetLoggerFromCtx(c.Request.Context())

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" && !required {
		c.Next()
		return
	}

	userID, err := parseBearer(authHeader, jwtSecret)
	if err != nil {
		logger.Warn("Authentication failed", slog.String("error", err.Error()))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authErrorMessage(err)})
		return
	}

	// Add user ID to the logger and store both in the request context
	enrichedLogger := logger.With(slog.String("user_id", userID))
	ctx := WithLogger(WithUserID(c.Request.Context(), userID), enrichedLogger)
	c.Request = c.Request.WithContext(ctx)

	c.Next()
}

// parseBearer validates an "Authorization: Bearer <jwt>" header and returns the subject.
func parseBearer(authHeader, jwtSecret string) (string, error) {
	if authHeader == "" {
		return "", errMissingHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errHeaderFormat
	}

	token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errInvalidClaims
	}
	return claims.Subject, nil
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, errMissingHeader):
		return "Authorization header required"
	case errors.Is(err, errHeaderFormat):
		return "Authorization header format must be Bearer {token}"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token not valid yet"
	case errors.Is(err, errInvalidClaims):
		return "Invalid token claims"
	default:
		return "Invalid token"
	}
}
