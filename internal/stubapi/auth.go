package stubapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ebuy-client/internal/domain"
)

const ctxUserKey = "stubapi.user"

type tokenManager struct {
	secret []byte
	ttl    time.Duration
}

func newTokenManager(secret string, ttl time.Duration) *tokenManager {
	return &tokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *tokenManager) Issue(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         user.ID,
		"email":       user.Email,
		"name":        user.Name,
		"merchant_id": user.MerchantID,
		"iat":         now.Unix(),
		"exp":         now.Add(m.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *tokenManager) Verify(raw string) (domain.User, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.User{}, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.User{}, errors.New("invalid claims")
	}
	user := domain.User{
		ID:         claimString(claims, "sub"),
		Email:      claimString(claims, "email"),
		Name:       claimString(claims, "name"),
		MerchantID: claimString(claims, "merchant_id"),
	}
	if user.ID == "" {
		return domain.User{}, errors.New("missing subject")
	}
	return user, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func authRequired(tokens *tokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		user, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

func merchantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsMerchant() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "merchant account required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) domain.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if user, ok := v.(domain.User); ok {
			return user
		}
	}
	return domain.User{}
}
