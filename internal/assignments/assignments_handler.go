package assignments

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

type AssignmentHandler struct {
	service Service
	audit   *auditlog.Auditlog
}

func NewHandler(service Service, audit *auditlog.Auditlog) *AssignmentHandler {
	return &AssignmentHandler{service: service, audit: audit}
}

func (h *AssignmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := security.Authorize(roles.Staff()...)

	router.GET("/asignaciones", staff, h.ListAssignments)
	router.POST("/asignaciones", staff, h.CreateAssignment)
	router.PUT("/asignaciones/:id/finalizar", staff, h.FinalizeAssignment)
	router.GET("/asignaciones/:id/movimientos", staff, h.GetMovements)
	router.POST("/asignaciones/:id/movimientos", staff, h.RegisterMovement)
	router.GET("/me/asignaciones", h.MyAssignments)
}

func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.service.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las asignaciones", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// MyAssignments lista las asignaciones activas del usuario del token.
// Cualquier rol puede consultar lo que tiene bajo su resguardo.
func (h *AssignmentHandler) MyAssignments(c *gin.Context) {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sesión inválida"})
		return
	}

	assignments, err := h.service.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar tus asignaciones", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida", "details": err.Error()})
		return
	}

	assignment, err := h.service.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAssetAlreadyAssigned):
			c.JSON(http.StatusConflict, gin.H{"error": "El activo ya tiene una asignación activa"})
		case errors.Is(err, ErrAssetNotAssignable):
			c.JSON(http.StatusConflict, gin.H{"error": "El activo está dado de baja y no puede asignarse"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la asignación", "details": err.Error()})
		}
		return
	}

	go h.audit.Log(currentUser(c), models.EventoAsignacion, map[string]interface{}{
		"id_objeto":  req.AssetID,
		"id_usuario": req.UserID,
	}, assignment)

	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) FinalizeAssignment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de asignación inválido"})
		return
	}

	assignment, err := h.service.Finalize(id)
	if err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No existe una asignación activa con ese ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo finalizar la asignación", "details": err.Error()})
		return
	}

	go h.audit.Log(currentUser(c), models.EventoFinalizacion, map[string]interface{}{
		"id_objeto": assignment.Activo.ID,
	}, assignment)

	c.JSON(http.StatusOK, assignment)
}

func (h *AssignmentHandler) GetMovements(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de asignación inválido"})
		return
	}

	movements, err := h.service.History(id)
	if err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asignación no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el historial", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movements)
}

func (h *AssignmentHandler) RegisterMovement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de asignación inválido"})
		return
	}

	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida", "details": err.Error()})
		return
	}

	if err := h.service.RegisterMovement(id, req); err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No existe una asignación activa con ese ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar el movimiento", "details": err.Error()})
		return
	}

	assignment := models.Assignment{ID: id}
	go h.audit.Log(currentUser(c), models.EventoMovimiento, map[string]interface{}{
		"id_ubicacion": req.UbicacionID,
	}, &assignment)

	c.JSON(http.StatusCreated, gin.H{"message": "Movimiento registrado"})
}

func currentUser(c *gin.Context) *int {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
