package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
	"github.com/ignatzorin/chainlance-backend/internal/dto"
	"github.com/ignatzorin/chainlance-backend/internal/http/handlers/common"
	"github.com/ignatzorin/chainlance-backend/internal/models"
	"github.com/ignatzorin/chainlance-backend/internal/pkg/apperror"
	"github.com/ignatzorin/chainlance-backend/internal/service"
	"github.com/ignatzorin/chainlance-backend/internal/wallet"
)

// SessionHandler управляет сессией: подключение кошелька, смена роли.
type SessionHandler struct {
	wallet    *wallet.Adapter
	tokens    *service.SessionTokenManager
	walletURL string
}

// NewSessionHandler создаёт экземпляр.
func NewSessionHandler(walletAdapter *wallet.Adapter, tokens *service.SessionTokenManager, walletURL string) *SessionHandler {
	return &SessionHandler{
		wallet:    walletAdapter,
		tokens:    tokens,
		walletURL: walletURL,
	}
}

// Connect подключает кошелёк и выпускает токен сессии. Новая сессия
// всегда начинается в роли клиента.
func (h *SessionHandler) Connect(c *gin.Context) {
	address, err := h.wallet.Connect(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperror.ErrWalletMissing) {
			// Кошелька нет — предлагаем страницу установки, это не сбой.
			c.JSON(http.StatusOK, dto.WalletMissingResponse{
				Error:     apperror.ErrWalletMissing.Message,
				WalletURL: h.walletURL,
			})
			return
		}
		c.Error(err)
		return
	}

	h.issueSession(c, address, valueobject.RoleClient)
}

// Disconnect отключает кошелёк. Токен сессии после этого просто
// перестаёт использоваться клиентом.
func (h *SessionHandler) Disconnect(c *gin.Context) {
	if err := h.wallet.Disconnect(c.Request.Context()); err != nil && !errors.Is(err, apperror.ErrWalletMissing) {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SwitchRole перевыпускает токен с новой ролью. Роли взаимоисключающие
// и переключаются в любой момент одной и той же сессией.
func (h *SessionHandler) SwitchRole(c *gin.Context) {
	var req dto.SwitchRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "роль обязательна"})
		return
	}

	role, err := valueobject.NewRole(req.Role)
	if err != nil {
		c.Error(err)
		return
	}

	address, err := common.CurrentAddress(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	h.issueSession(c, address, role)
}

func (h *SessionHandler) issueSession(c *gin.Context, address string, role valueobject.Role) {
	token, err := h.tokens.Issue(address, role)
	if err != nil {
		c.Error(apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить сессию"))
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		Address:      address,
		ShortAddress: models.ShortAddress(address),
		Role:         string(role),
		Token:        token,
	})
}
