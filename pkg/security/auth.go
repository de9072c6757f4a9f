package security

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL es la vigencia del token de acceso emitido por el servicio.
const TokenTTL = 8 * time.Hour

var (
	jwtSecret []byte
	secretOnce sync.Once
)

func secret() []byte {
	secretOnce.Do(func() {
		s := os.Getenv("JWT_SECRET")
		if s == "" {
			// Puede que el proceso arrancara sin .env cargado todavía.
			if err := godotenv.Load(); err != nil {
				log.Printf("No se pudo cargar .env: %v", err)
			}
			s = os.Getenv("JWT_SECRET")
		}
		if s == "" {
			log.Fatal("JWT_SECRET environment variable is not set")
		}
		jwtSecret = []byte(s)
	})
	return jwtSecret
}

// UserStore es lo mínimo que security necesita del repositorio de usuarios.
type UserStore interface {
	GetUserByEmail(email string) (*models.User, error)
	PersistUser(req models.CreateUserRequest, passwordHash []byte) (*models.User, error)
}

func AuthenticateUser(email, password string, store UserStore) (*models.User, error) {
	user, err := store.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return user, nil
}

// GenerateJWT emite un HS256 con las claims que la consola decodifica
// localmente: identidad, rol, departamento y expiración.
func GenerateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   string(user.Rol),
		"nombre": user.Nombre,
		"exp":    time.Now().Add(TokenTTL).Unix(),
	}
	if user.DepartamentoID != nil {
		claims["id_departamento"] = *user.DepartamentoID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}
