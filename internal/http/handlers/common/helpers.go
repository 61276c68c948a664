package common

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
)

// Ключи должны совпадать с middleware.SessionMiddleware.
const (
	contextAddressKey = "address"
	contextRoleKey    = "role"
)

// CurrentAddress извлекает адрес кошелька текущей сессии.
func CurrentAddress(c *gin.Context) (string, error) {
	raw, ok := c.Get(contextAddressKey)
	if !ok {
		return "", fmt.Errorf("требуется подключённый кошелёк")
	}
	address, ok := raw.(string)
	if !ok || address == "" {
		return "", fmt.Errorf("требуется подключённый кошелёк")
	}
	return address, nil
}

// CurrentRole извлекает роль текущей сессии.
func CurrentRole(c *gin.Context) (valueobject.Role, error) {
	raw, ok := c.Get(contextRoleKey)
	if !ok {
		return "", fmt.Errorf("роль сессии не определена")
	}
	role, ok := raw.(valueobject.Role)
	if !ok || !role.IsValid() {
		return "", fmt.Errorf("роль сессии не определена")
	}
	return role, nil
}
