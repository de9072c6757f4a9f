package auditlog

import (
	"net/http"
	"strconv"

	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"
	"github.com/Josue-Alexander/gestionitp/pkg/security"

	"github.com/gin-gonic/gin"
)

// EventSource es lo que el handler necesita del repositorio de bitácora.
type EventSource interface {
	GetEvents(limit int) ([]models.AuditEvent, error)
}

type Handler struct {
	events EventSource
}

func NewHandler(events EventSource) *Handler {
	return &Handler{events: events}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/bitacora", security.Authorize(roles.AdminGeneral), h.ListEvents)
}

func (h *Handler) ListEvents(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro limit inválido"})
			return
		}
		limit = parsed
	}

	events, err := h.events.GetEvents(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo consultar la bitácora", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}
