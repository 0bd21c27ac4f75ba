package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// bearerClaims parses the Authorization bearer token, returning nil for
// missing or invalid tokens.
func bearerClaims(c *gin.Context) jwt.MapClaims {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		return nil
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// userIDFromToken extracts the user id from a bearer token. Admin
// tokens carry no user identity.
func userIDFromToken(c *gin.Context) string {
	claims := bearerClaims(c)
	if claims == nil {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}
