package users

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
	"golang.org/x/crypto/bcrypt"
)

type UsersHandler struct {
	Repository UserRepository
	audit      *auditlog.Auditlog
}

func NewHandler(r UserRepository, audit *auditlog.Auditlog) *UsersHandler {
	return &UsersHandler{Repository: r, audit: audit}
}

func (h *UsersHandler) RegisterRoutes(api *gin.RouterGroup) {
	admins := security.Authorize(roles.Admins()...)

	// La pantalla de asignaciones necesita el catálogo de usuarios, así que
	// la lectura queda abierta a todo el personal; las mutaciones no.
	api.GET("/usuarios", security.Authorize(roles.Staff()...), h.GetUserList)
	api.GET("/usuarios/:id", admins, h.GetUser)
	api.POST("/usuarios", admins, h.RegisterUser)
	api.PUT("/usuarios/:id", admins, h.UpdateUser)
	api.DELETE("/usuarios/:id", security.Authorize(roles.AdminGeneral), h.DeleteUser)
}

func (h *UsersHandler) RegisterUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	if !req.Rol.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rol inválido"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La contraseña debe tener al menos 6 caracteres"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo procesar la contraseña"})
		return
	}

	user, err := h.Repository.PersistUser(req, hashedPassword)
	if err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			c.JSON(http.StatusConflict, gin.H{"error": uniqueErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el usuario", "details": err.Error()})
		return
	}

	go h.audit.Log(currentUser(c), models.EventoCreacion, map[string]interface{}{"email": user.Email, "rol": user.Rol}, user)

	c.JSON(http.StatusCreated, user)
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrUserNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	changes := &models.UserChanges{}

	if req.Nombre != nil && *req.Nombre != user.Nombre {
		changes.Nombre = req.Nombre
	}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La contraseña debe tener al menos 6 caracteres"})
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo procesar la contraseña"})
			return
		}
		passwordHash := string(hashedPassword)
		changes.PasswordHash = &passwordHash
	}

	if req.Rol != nil && *req.Rol != user.Rol {
		if !req.Rol.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rol inválido"})
			return
		}
		changes.Rol = req.Rol
	}

	if req.DepartamentoID != nil {
		changes.DepartamentoID = req.DepartamentoID
	}

	// Sin cambios no hay nada que persistir
	if !changes.HasChanges() {
		c.JSON(http.StatusOK, user)
		return
	}

	if err := h.Repository.UpdateUser(userID, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el usuario", "details": err.Error()})
		return
	}

	updatedUser, err := h.Repository.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go h.audit.Log(currentUser(c), models.EventoActualizacion, map[string]interface{}{"email": updatedUser.Email}, updatedUser)

	c.JSON(http.StatusOK, updatedUser)
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	user, err := h.Repository.GetUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrUserNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UsersHandler) GetUserList(c *gin.Context) {
	users, err := h.Repository.GetUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de usuarios", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	if self := currentUser(c); self != nil && *self == userID {
		c.JSON(http.StatusConflict, gin.H{"error": "No puedes eliminar tu propia cuenta"})
		return
	}

	if err := h.Repository.DeleteUser(userID); err != nil {
		var fkErr *custom_error.ForeignKeyViolationError
		switch {
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": ErrUserNotFound.Error()})
		case errors.As(err, &fkErr):
			c.JSON(http.StatusConflict, gin.H{"error": fkErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	go h.audit.Log(currentUser(c), models.EventoEliminacion, map[string]interface{}{"id_usuario": userID}, &models.User{ID: userID})

	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado"})
}

func currentUser(c *gin.Context) *int {
	userID, err := security.CurrentUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
