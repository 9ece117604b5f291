package authentication

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"breboot/configuration"
	"breboot/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Session tokens are short lived; a fresh login is required afterwards.
const TokenTTL = time.Hour

func jwtKey() []byte {
	if s := configuration.Config.JWTSecret; s != "" {
		return []byte(s)
	}
	return []byte("secretKey")
}

// GenerateUserToken creates a signed token carrying the account id and role.
func GenerateUserToken(userID uint, userType string) (string, error) {
	claims := &models.UserClaims{
		ID:       userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// AuthenticateUser parses a signed token and returns the account id and role.
func AuthenticateUser(signedToken string) (uint, string, error) {
	var claims models.UserClaims
	token, err := jwt.ParseWithClaims(signedToken, &claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil {
		return 0, "", err
	}
	if !token.Valid {
		return 0, "", errors.New("token is not valid")
	}
	return claims.ID, claims.UserType, nil
}

// UserAuthMiddleware validates the bearer token and attaches the account to
// the request context under "user".
func UserAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is required"})
			return
		}

		authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))
		userID, userType, err := AuthenticateUser(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		var user models.User
		if err := configuration.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("userType", userType)
		c.Next()
	}
}
