package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Josue-Alexander/gestionitp/pkg/roles"

	"github.com/golang-jwt/jwt/v5"
)

// Claims es la carga decodificada del token: quién es el usuario según la
// última autenticación exitosa.
type Claims struct {
	UserID         int        `json:"userId"`
	Email          string     `json:"email"`
	Nombre         string     `json:"nombre"`
	Role           roles.Role `json:"role"`
	DepartamentoID *int       `json:"id_departamento,omitempty"`
	ExpiresAt      time.Time  `json:"-"`
}

// Store es la única fuente de verdad sobre la sesión activa. Initialize corre
// una sola vez; después de eso Loading queda en false para siempre.
type Store struct {
	storage TokenStorage

	initOnce sync.Once

	mu         sync.Mutex
	credential *Claims
	token      string
	loading    bool
}

func NewStore(storage TokenStorage) *Store {
	return &Store{storage: storage, loading: true}
}

// Initialize restaura la sesión desde el almacenamiento persistente. Un token
// ausente, caducado o ilegible deja la consola sin sesión, sin error visible.
func (s *Store) Initialize() {
	s.initOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}()

		token, err := s.storage.Load()
		if err != nil {
			return
		}

		claims, err := decodeClaims(token)
		if err != nil || !claims.ExpiresAt.After(time.Now()) {
			_ = s.storage.Clear()
			return
		}

		s.mu.Lock()
		s.credential = claims
		s.token = token
		s.mu.Unlock()
	})
}

// Login persiste el token y decodifica sus claims sin verificar firma ni
// caducidad: confía en la llamada de autenticación que acaba de devolverlo.
func (s *Store) Login(token string) error {
	claims, err := decodeClaims(token)
	if err != nil {
		return err
	}
	if err := s.storage.Save(token); err != nil {
		return err
	}

	s.mu.Lock()
	s.credential = claims
	s.token = token
	s.mu.Unlock()

	return nil
}

func (s *Store) Logout() {
	_ = s.storage.Clear()

	s.mu.Lock()
	s.credential = nil
	s.token = ""
	s.mu.Unlock()
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential != nil
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Credential devuelve una copia de los claims actuales, o nil sin sesión.
func (s *Store) Credential() *Claims {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential == nil {
		return nil
	}
	c := *s.credential
	return &c
}

// Token devuelve el bearer token crudo para las llamadas al servicio.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// decodeClaims hace la decodificación local del token, sin red y sin
// verificación de firma. La validez criptográfica la comprueba el servicio
// en cada petición.
func decodeClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()

	mapClaims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, mapClaims); err != nil {
		return nil, err
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("token sin claim de caducidad")
	}

	claims := &Claims{ExpiresAt: exp.Time}

	if v, ok := mapClaims["userId"].(float64); ok {
		claims.UserID = int(v)
	}
	if v, ok := mapClaims["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := mapClaims["nombre"].(string); ok {
		claims.Nombre = v
	}
	if v, ok := mapClaims["role"].(string); ok {
		claims.Role = roles.Role(v)
	}
	if v, ok := mapClaims["id_departamento"].(float64); ok {
		id := int(v)
		claims.DepartamentoID = &id
	}

	if claims.UserID == 0 || !claims.Role.IsValid() {
		return nil, errors.New("token con claims incompletos")
	}

	return claims, nil
}
