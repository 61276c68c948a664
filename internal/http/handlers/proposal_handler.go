package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/dto"
	"github.com/ignatzorin/chainlance-backend/internal/service"
)

// ProposalHandler отвечает за отклики и найм.
type ProposalHandler struct {
	marketplace *service.MarketplaceService
}

// NewProposalHandler создаёт экземпляр.
func NewProposalHandler(marketplace *service.MarketplaceService) *ProposalHandler {
	return &ProposalHandler{marketplace: marketplace}
}

// SubmitProposal подаёт отклик на проект. Если приложено резюме,
// советник прикладывает к отклику разбор соответствия.
func (h *ProposalHandler) SubmitProposal(c *gin.Context) {
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "текст отклика обязателен"})
		return
	}

	address, role, ok := sessionIdentity(c)
	if !ok {
		return
	}

	proposal, err := h.marketplace.SubmitProposal(c.Request.Context(), role, address, c.Param("id"), req.Message, req.ResumeBase64)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// ListProposals возвращает отклики проекта владеющему клиенту.
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	address, role, ok := sessionIdentity(c)
	if !ok {
		return
	}

	proposals, err := h.marketplace.Proposals(role, address, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

// AcceptProposal нанимает автора отклика: советник оценивает срок,
// проект получает дедлайн и переходит в работу.
func (h *ProposalHandler) AcceptProposal(c *gin.Context) {
	address, role, ok := sessionIdentity(c)
	if !ok {
		return
	}

	project, err := h.marketplace.AcceptProposal(c.Request.Context(), role, address, c.Param("id"), c.Param("proposalID"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project)
}
