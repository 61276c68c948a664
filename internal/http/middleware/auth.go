package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextAddressKey = "address"
	ContextRoleKey    = "role"
)

// SessionMiddleware проверяет токен сессии и кладёт адрес кошелька и
// роль в контекст запроса.
func SessionMiddleware(tokens *service.SessionTokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "требуется подключённый кошелёк"})
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		address, role, err := tokens.Parse(raw)
		if err != nil || address == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "сессия невалидна"})
			return
		}

		c.Set(ContextAddressKey, address)
		c.Set(ContextRoleKey, role)
		c.Next()
	}
}
