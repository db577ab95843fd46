package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

func ValidateJWT(secret, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token is required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// RequireUser resolves the caller's user ID from the X-User-ID header
// (set by the gateway) or a Bearer token, and stores it in the context
// under "userID".
func RequireUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("X-User-ID"); header != "" {
			userID, err := strconv.ParseInt(header, 10, 64)
			if err == nil {
				c.Set("userID", userID)
				c.Next()
				return
			}
		}

		tokenString := c.GetHeader("Authorization")
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		claims, err := ValidateJWT(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "User ID is required",
				"code":  "MISSING_USER_ID",
			})
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
