package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/alternovafilms/internal/model"
)

// Claims are the JWT claims for token clients.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RequireAuth protects an endpoint. A cookie session satisfies it first;
// failing that, a JWT from the token cookie or the Authorization header.
// Unauthenticated browser requests are redirected to the login page, API
// requests get a 401.
func RequireAuth(appSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := SessionUser(c); ok {
			setUserContext(c, user.ID, user.Username)
			c.Next()
			return
		}

		claims, err := extractClaims(c, appSecret)
		if err != nil {
			if wantsHTML(c) {
				c.Redirect(http.StatusFound, "/login/?redirect="+c.Request.URL.Path)
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided"})
			c.Abort()
			return
		}

		setUserContext(c, claims.UserID, claims.Username)
		c.Next()
	}
}

// OptionalAuth resolves the user when present without requiring one.
func OptionalAuth(appSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := SessionUser(c); ok {
			setUserContext(c, user.ID, user.Username)
		} else if claims, err := extractClaims(c, appSecret); err == nil {
			setUserContext(c, claims.UserID, claims.Username)
		}
		c.Next()
	}
}

// SessionUser reads the logged-in user from the cookie session.
func SessionUser(c *gin.Context) (model.SessionUser, bool) {
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			return su, true
		}
	}
	return model.SessionUser{}, false
}

// GetUserID returns the authenticated user id, 0 when anonymous.
func GetUserID(c *gin.Context) int {
	if userID, exists := c.Get("user_id"); exists {
		return userID.(int)
	}
	return 0
}

// GenerateToken issues a signed JWT for API clients.
func GenerateToken(userID int, username, appSecret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(appSecret))
}

func setUserContext(c *gin.Context, userID int, username string) {
	c.Set("user_id", userID)
	c.Set("username", username)
}

// extractClaims pulls a JWT from the token cookie or the Authorization
// header and validates it.
func extractClaims(c *gin.Context, appSecret string) (*Claims, error) {
	var tokenString string

	if cookie, err := c.Cookie("token"); err == nil {
		tokenString = cookie
	} else {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(appSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// wantsHTML reports whether the client is a browser page request rather
// than an API client.
func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
