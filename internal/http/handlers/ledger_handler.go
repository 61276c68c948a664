package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/service"
)

// LedgerHandler отдаёт сессионный леджер транзакций.
type LedgerHandler struct {
	marketplace *service.MarketplaceService
}

// NewLedgerHandler создаёт экземпляр.
func NewLedgerHandler(marketplace *service.MarketplaceService) *LedgerHandler {
	return &LedgerHandler{marketplace: marketplace}
}

// ListTransactions возвращает леджер текущей сессии, новые — первыми.
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.marketplace.Ledger())
}
