package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Josue-Alexander/gestionitp/internal/rate_limiter"
	"github.com/Josue-Alexander/gestionitp/pkg/auditlog"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginHandler struct {
	users       UserStore
	audit       *auditlog.Auditlog
	rateLimiter *rate_limiter.RateLimiter
}

func NewLoginHandler(users UserStore, audit *auditlog.Auditlog) *LoginHandler {
	return &LoginHandler{
		users:       users,
		audit:       audit,
		rateLimiter: rate_limiter.NewRateLimiter(10, 5*time.Minute), // 10 intentos por 5 minutos
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/auth/login", l.Login())
	router.POST("/api/auth/register", l.Register())
}

func (l *LoginHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := clientKey(c)

		if !l.rateLimiter.IsAllowed(clientIP) {
			remaining := l.rateLimiter.GetRemainingRequests(clientIP)
			c.Header("X-RateLimit-Limit", "10")
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiados intentos de inicio de sesión. Intenta de nuevo más tarde.",
			})
			return
		}

		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"contraseña" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida"})
			return
		}

		user, err := AuthenticateUser(req.Email, req.Password, l.users)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Correo o contraseña incorrectos"})
			return
		}

		token, err := GenerateJWT(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el token"})
			return
		}

		go l.audit.Log(&user.ID, models.EventoLogin, map[string]interface{}{
			"email": user.Email,
		}, user)

		c.JSON(http.StatusOK, gin.H{"accessToken": token})
	}
}

// Register da de alta un usuario con el rol base. La gestión de roles se hace
// después desde la pantalla de usuarios, nunca desde el registro público.
func (l *LoginHandler) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Nombre   string `json:"nombre" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"contraseña" binding:"required,min=6"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Solicitud inválida", "details": err.Error()})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo procesar la contraseña"})
			return
		}

		user, err := l.users.PersistUser(models.CreateUserRequest{
			Nombre: req.Nombre,
			Email:  req.Email,
			Rol:    roles.UsuarioGeneral,
		}, hashedPassword)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "No se pudo registrar el usuario", "details": err.Error()})
			return
		}

		go l.audit.Log(&user.ID, models.EventoRegistro, map[string]interface{}{
			"email": user.Email,
		}, user)

		c.JSON(http.StatusCreated, gin.H{"message": "Usuario registrado correctamente"})
	}
}

// clientKey arma la clave del rate limiter a partir de la IP del cliente,
// considerando proxies y redes privadas igual que el resto del despliegue.
func clientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.Split(clientIP, ",")[0]
	}

	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.", "172.16.", "172.17.", "172.18.", "172.19.", "172.20.",
		"172.21.", "172.22.", "172.23.", "172.24.", "172.25.", "172.26.",
		"172.27.", "172.28.", "172.29.", "172.30.", "172.31.",
		"192.168.", "127.", "169.254.", "::1", "fc00::", "fe80::",
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
