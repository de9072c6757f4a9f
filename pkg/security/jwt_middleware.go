package security

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Josue-Alexander/gestionitp/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTMiddleware valida la firma y expiración del token y deja las claims en
// el contexto de la petición.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Falta el encabezado Authorization"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return secret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o expirado"})
			c.Abort()
			return
		}

		claims := token.Claims.(jwt.MapClaims)

		if userID, ok := claims["userId"].(float64); ok {
			c.Set("userID", int(userID))
		}
		if role, ok := claims["role"].(string); ok {
			c.Set("role", roles.Role(role))
		}
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}

		c.Next()
	}
}

// Authorize exige que el rol del token esté en la lista permitida de la ruta.
// Consume el mismo predicado que usa la consola para decidir qué renderizar.
func Authorize(allowed ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para acceder a este recurso"})
			c.Abort()
			return
		}

		role, ok := value.(roles.Role)
		if !ok || !roles.Allowed(role, allowed) {
			c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para acceder a este recurso"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID devuelve el id del usuario autenticado de la petición.
func CurrentUserID(c *gin.Context) (int, error) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, fmt.Errorf("no authenticated user in context")
	}

	userID, ok := value.(int)
	if !ok {
		return 0, fmt.Errorf("userID is not an int")
	}

	return userID, nil
}

// CurrentRole devuelve el rol del usuario autenticado de la petición.
func CurrentRole(c *gin.Context) (roles.Role, bool) {
	value, exists := c.Get("role")
	if !exists {
		return "", false
	}
	role, ok := value.(roles.Role)
	return role, ok
}
