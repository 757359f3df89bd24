package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/drkhamzat/bizon/httpapi"
	"github.com/drkhamzat/bizon/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const userKey = "user"

// userFromToken verifies the bearer token and re-derives the user from its
// subject claim.
func userFromToken(db *gorm.DB, header string) (*models.User, error) {
	if header == "" {
		return nil, httpapi.Authentication("authorization header is missing")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, httpapi.Authentication("invalid or expired token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, httpapi.Authentication("invalid token claims")
	}

	var user models.User
	if err := db.First(&user, "id = ?", sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpapi.Authentication("invalid or expired token")
		}
		return nil, httpapi.Persistence(err)
	}
	return &user, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved user in the context.
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userFromToken(db, c.GetHeader("Authorization"))
		if err != nil {
			httpapi.Fail(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the user when a token is present but lets anonymous
// requests through. Used by guest-capable endpoints like order creation.
func OptionalAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if user, err := userFromToken(db, header); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			httpapi.Fail(c, httpapi.Authorization("admin access required"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
