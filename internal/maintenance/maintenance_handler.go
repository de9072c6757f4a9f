package maintenance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Josue-Alexander/gestionitp/pkg/auditlog"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"
	"github.com/Josue-Alexander/gestionitp/pkg/security"

	"github.com/gin-gonic/gin"
)

type MaintenanceHandler struct {
	repo  MaintenanceRepository
	audit *auditlog.Auditlog
}

func NewHandler(repo MaintenanceRepository, audit *auditlog.Auditlog) *MaintenanceHandler {
	return &MaintenanceHandler{repo: repo, audit: audit}
}

func (h *MaintenanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := security.Authorize(roles.Staff()...)

	router.GET("/mantenimientos", staff, h.ListMaintenances)
	router.PUT("/mantenimientos/:id/finalizar", staff, h.FinalizeMaintenance)
	router.GET("/activos/:id/mantenimientos", h.ListByAsset)
	router.POST("/activos/:id/mantenimientos", staff, h.OpenMaintenance)
}

func (h *MaintenanceHandler) ListMaintenances(c *gin.Context) {
	records, err := h.repo.ListMaintenances()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los mantenimientos", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *MaintenanceHandler) ListByAsset(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de activo inválido"})
		return
	}

	records, err := h.repo.ListByAsset(assetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el historial de mantenimientos", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *MaintenanceHandler) OpenMaintenance(c *gin.Context) {
	assetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de activo inválido"})
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida", "details": err.Error()})
		return
	}
	req.AssetID = assetID

	record, err := h.repo.OpenMaintenance(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar el mantenimiento", "details": err.Error()})
		return
	}

	go h.audit.Log(currentUser(c), models.EventoMantenimiento, map[string]interface{}{
		"id_objeto": assetID,
		"tipo":      req.Tipo,
	}, record)

	c.JSON(http.StatusCreated, record)
}

func (h *MaintenanceHandler) FinalizeMaintenance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de mantenimiento inválido"})
		return
	}

	var req FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida", "details": err.Error()})
		return
	}

	if err := h.repo.FinalizeMaintenance(id, req); err != nil {
		if errors.Is(err, ErrMaintenanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No existe un mantenimiento abierto con ese ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo finalizar el mantenimiento", "details": err.Error()})
		return
	}

	record := models.Maintenance{ID: id}
	go h.audit.Log(currentUser(c), models.EventoFinalizacion, map[string]interface{}{
		"id_mantenimiento": id,
	}, &record)

	c.JSON(http.StatusOK, gin.H{"message": "Mantenimiento finalizado"})
}

func currentUser(c *gin.Context) *int {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
