package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/dto"
	"github.com/ignatzorin/chainlance-backend/internal/service"
)

// AdvisorHandler отдаёт вспомогательные AI-операции, не привязанные к
// конкретному проекту.
type AdvisorHandler struct {
	marketplace *service.MarketplaceService
}

// NewAdvisorHandler создаёт экземпляр.
func NewAdvisorHandler(marketplace *service.MarketplaceService) *AdvisorHandler {
	return &AdvisorHandler{marketplace: marketplace}
}

// GenerateDescription превращает черновой запрос клиента в готовое
// описание вакансии.
func (h *AdvisorHandler) GenerateDescription(c *gin.Context) {
	var req dto.GenerateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "черновик описания обязателен"})
		return
	}

	text, err := h.marketplace.GenerateDescription(c.Request.Context(), req.Prompt)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TextResponse{Text: text})
}

// EscrowExplainer — публичная справка о механике эскроу.
func (h *AdvisorHandler) EscrowExplainer(c *gin.Context) {
	text, err := h.marketplace.EscrowExplainer(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TextResponse{Text: text})
}
