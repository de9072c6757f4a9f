package reports

import (
	"net/http"
	"strconv"

	"github.com/Josue-Alexander/gestionitp/pkg/roles"
	"github.com/Josue-Alexander/gestionitp/pkg/security"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	repo ReportRepository
}

func NewReportHandler(repo ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

func (h *ReportHandler) RegisterRoutes(api *gin.RouterGroup) {
	staff := security.Authorize(roles.Staff()...)

	api.GET("/reportes/valor-inventario", staff, h.InventoryValue)
	api.GET("/reportes/resumen-por-estado", staff, h.StatusSummary)
	api.GET("/reportes/costos-por-categoria", staff, h.CategoryCosts)
	api.GET("/reportes/riesgo-operativo", staff, h.OperationalRisk)
}

func departmentFilter(c *gin.Context) (*int, bool) {
	raw := c.Query("departamento")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Filtro de departamento inválido"})
		return nil, false
	}
	return &id, true
}

func (h *ReportHandler) InventoryValue(c *gin.Context) {
	departamentoID, ok := departmentFilter(c)
	if !ok {
		return
	}

	value, err := h.repo.InventoryValue(departamentoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, value)
}

func (h *ReportHandler) StatusSummary(c *gin.Context) {
	departamentoID, ok := departmentFilter(c)
	if !ok {
		return
	}

	rows, err := h.repo.StatusSummary(departamentoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) CategoryCosts(c *gin.Context) {
	departamentoID, ok := departmentFilter(c)
	if !ok {
		return
	}

	rows, err := h.repo.CategoryCosts(departamentoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) OperationalRisk(c *gin.Context) {
	departamentoID, ok := departmentFilter(c)
	if !ok {
		return
	}

	rows, err := h.repo.OperationalRisk(departamentoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
