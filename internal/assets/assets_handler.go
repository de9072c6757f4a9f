package assets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Josue-Alexander/gestionitp/pkg/auditlog"
	custom_error "github.com/Josue-Alexander/gestionitp/pkg/errors"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"
	"github.com/Josue-Alexander/gestionitp/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssetHandler struct {
	repo  AssetRepository
	audit *auditlog.Auditlog
}

func NewHandler(repo AssetRepository, audit *auditlog.Auditlog) *AssetHandler {
	return &AssetHandler{repo: repo, audit: audit}
}

func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := security.Authorize(roles.Staff()...)

	router.GET("/activos", staff, h.ListAssets)
	router.POST("/activos", staff, h.CreateAsset)
	router.GET("/activos/:id", h.GetAsset)
	router.GET("/activos/qr/:qrId", h.GetAssetByQR)
	router.PUT("/activos/:id", staff, h.UpdateAsset)
	router.PUT("/activos/:id/baja", staff, h.RetireAsset)
}

func (h *AssetHandler) ListAssets(c *gin.Context) {
	includeRetired := c.Query("includeRetired") == "true"

	assets, err := h.repo.ListAssets(includeRetired)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los activos", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de activo inválido"})
		return
	}

	asset, err := h.repo.GetAsset(id)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) GetAssetByQR(c *gin.Context) {
	asset, err := h.repo.GetAssetByQR(c.Param("qrId"))
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida", "details": err.Error()})
		return
	}

	if !models.ValidAssetStatus(req.Estado) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado de activo inválido"})
		return
	}

	asset, err := h.repo.PersistAsset(req, uuid.NewString())
	if err != nil {
		var unique *custom_error.UniqueViolationError
		if errors.As(err, &unique) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ya existe un activo con ese número de inventario"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar el activo", "details": err.Error()})
		return
	}

	userID := currentUser(c)
	go h.audit.Log(userID, models.EventoCreacion, map[string]interface{}{
		"nombre": asset.Nombre,
		"qr_id":  asset.QRID,
	}, asset)

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de activo inválido"})
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida", "details": err.Error()})
		return
	}

	if !models.ValidAssetStatus(req.Estado) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Estado de activo inválido"})
		return
	}

	if err := h.repo.UpdateAsset(id, req); err != nil {
		var unique *custom_error.UniqueViolationError
		switch {
		case errors.As(err, &unique):
			c.JSON(http.StatusConflict, gin.H{"error": "Ya existe un activo con ese número de inventario"})
		case errors.Is(err, ErrAssetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Activo no encontrado"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el activo", "details": err.Error()})
		}
		return
	}

	asset := models.Asset{ID: id}
	go h.audit.Log(currentUser(c), models.EventoActualizacion, map[string]interface{}{
		"nombre": req.Nombre,
	}, &asset)

	updated, err := h.repo.GetAsset(id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Activo actualizado"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// RetireAsset marca el activo como De_Baja. La baja es un cambio de estado,
// nunca un borrado físico: el historial de asignaciones lo sigue referenciando.
func (h *AssetHandler) RetireAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de activo inválido"})
		return
	}

	asset, err := h.repo.GetAsset(id)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	if asset.Estado == models.EstadoDeBaja {
		c.JSON(http.StatusConflict, gin.H{"error": "El activo ya está dado de baja"})
		return
	}

	if err := h.repo.UpdateAssetStatus(id, models.EstadoDeBaja); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo dar de baja el activo", "details": err.Error()})
		return
	}

	go h.audit.Log(currentUser(c), models.EventoBaja, map[string]interface{}{
		"nombre":          asset.Nombre,
		"estado_anterior": asset.Estado,
	}, asset)

	c.JSON(http.StatusOK, gin.H{"message": "Activo dado de baja"})
}

func (h *AssetHandler) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, ErrAssetNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Activo no encontrado"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo consultar el activo", "details": err.Error()})
}

func currentUser(c *gin.Context) *int {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
