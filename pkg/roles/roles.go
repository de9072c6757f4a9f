package roles

// Role representa el nivel de privilegio de un usuario del sistema.
type Role string

const (
	AdminGeneral   Role = "Admin_General"
	AdminDepto     Role = "Admin_Depto"
	Gestor         Role = "Gestor"
	UsuarioGeneral Role = "Usuario_General"
)

// All lista los cuatro roles válidos del sistema.
var All = []Role{AdminGeneral, AdminDepto, Gestor, UsuarioGeneral}

// IsValid comprueba que el rol sea uno de los cuatro valores fijos.
func (r Role) IsValid() bool {
	switch r {
	case AdminGeneral, AdminDepto, Gestor, UsuarioGeneral:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Allowed es el predicado de autorización único del sistema: tanto las rutas
// protegidas como el renderizado condicional dentro de las vistas deben
// consultarlo, nunca comparar strings de rol por su cuenta.
func Allowed(r Role, allowed []Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Staff son los roles con acceso operativo al inventario.
func Staff() []Role {
	return []Role{AdminGeneral, AdminDepto, Gestor}
}

// Admins son los roles con acceso a la administración de usuarios y ubicaciones.
func Admins() []Role {
	return []Role{AdminGeneral, AdminDepto}
}
