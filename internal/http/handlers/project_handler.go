package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/chainlance-backend/internal/domain/valueobject"
	"github.com/ignatzorin/chainlance-backend/internal/dto"
	"github.com/ignatzorin/chainlance-backend/internal/http/handlers/common"
	"github.com/ignatzorin/chainlance-backend/internal/models"
	"github.com/ignatzorin/chainlance-backend/internal/pkg/apperror"
	"github.com/ignatzorin/chainlance-backend/internal/service"
	"github.com/ignatzorin/chainlance-backend/internal/store"
	"github.com/ignatzorin/chainlance-backend/internal/validation"
)

// ProjectHandler отвечает за пул проектов и их жизненный цикл.
type ProjectHandler struct {
	marketplace *service.MarketplaceService
}

// NewProjectHandler создаёт экземпляр.
func NewProjectHandler(marketplace *service.MarketplaceService) *ProjectHandler {
	return &ProjectHandler{marketplace: marketplace}
}

// ListProjects возвращает проекты, видимые текущей роли.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	role, err := common.CurrentRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.marketplace.VisibleProjects(role, address))
}

// CreateProject размещает новый проект в пуле.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "заполните обязательные поля"})
		return
	}

	address, err := common.CurrentAddress(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	role, err := common.CurrentRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	budget, err := validation.ParseBudget(req.Budget)
	if err != nil {
		c.Error(apperror.Wrap(err, apperror.ErrCodeValidation, err.Error()))
		return
	}

	project, err := h.marketplace.CreateProject(role, address, store.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      budget,
		Category:    req.Category,
		Skills:      models.SplitSkills(req.Skills),
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// FundProject вносит депозит по проекту.
func (h *ProjectHandler) FundProject(c *gin.Context) {
	address, role, ok := sessionIdentity(c)
	if !ok {
		return
	}

	tx, err := h.marketplace.Fund(role, address, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// SubmitWork сдаёт работу по контракту.
func (h *ProjectHandler) SubmitWork(c *gin.Context) {
	var req dto.SubmitWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ссылка на результат обязательна"})
		return
	}

	address, role, ok := sessionIdentity(c)
	if !ok {
		return
	}

	project, err := h.marketplace.SubmitWork(c.Request.Context(), role, address, c.Param("id"), req.URL)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ReleaseFunds выплачивает бюджет и завершает проект.
func (h *ProjectHandler) ReleaseFunds(c *gin.Context) {
	address, role, ok := sessionIdentity(c)
	if !ok {
		return
	}

	tx, err := h.marketplace.Release(role, address, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

// sessionIdentity достаёт адрес и роль сессии, отвечая 401 при их
// отсутствии.
func sessionIdentity(c *gin.Context) (string, valueobject.Role, bool) {
	address, err := common.CurrentAddress(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return "", "", false
	}
	role, err := common.CurrentRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return "", "", false
	}
	return address, role, true
}
