package gate

import (
	"github.com/Josue-Alexander/gestionitp/internal/console/session"
	"github.com/Josue-Alexander/gestionitp/pkg/roles"
)

// Decision es el resultado de evaluar una navegación contra la sesión.
type Decision int

const (
	// Placeholder: la sesión todavía se está restaurando; no hay que decidir
	// aún, para no mandar al login antes de revisar el token guardado.
	Placeholder Decision = iota
	// RedirectLogin reemplaza la entrada del historial, de modo que volver
	// atrás no regrese a la pantalla protegida.
	RedirectLogin
	// RedirectDashboard es el fallo de autorización silencioso: sesión
	// válida, rol insuficiente.
	RedirectDashboard
	Render
)

func (d Decision) String() string {
	switch d {
	case Placeholder:
		return "placeholder"
	case RedirectLogin:
		return "redirect-login"
	case RedirectDashboard:
		return "redirect-dashboard"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Evaluate decide si la ruta solicitada puede renderizarse. Es una función
// pura de la sesión y de la lista de roles permitidos; una lista vacía nunca
// renderiza.
func Evaluate(s *session.Store, allowed []roles.Role) Decision {
	if s.Loading() {
		return Placeholder
	}

	credential := s.Credential()
	if credential == nil {
		return RedirectLogin
	}

	if !roles.Allowed(credential.Role, allowed) {
		return RedirectDashboard
	}

	return Render
}

// Routes es la tabla fija de rutas de la consola con su lista de roles. Las
// pantallas de solo-staff excluyen a Usuario_General; las administrativas
// quedan para los admins.
var Routes = map[string][]roles.Role{
	DashboardPath:            roles.All,
	"/activos":               roles.Staff(),
	"/activos/nuevo":         roles.Staff(),
	"/asignaciones":          roles.Staff(),
	"/mis-asignaciones":      roles.All,
	"/mantenimientos":        roles.Staff(),
	"/categorias":            roles.Staff(),
	"/solicitudes-categoria": roles.Staff(),
	"/departamentos":         roles.Admins(),
	"/ubicaciones":           roles.Admins(),
	"/usuarios":              roles.Admins(),
	"/reportes":              roles.Staff(),
	"/bitacora":              {roles.AdminGeneral},
}

// EvaluatePath evalúa una ruta de la tabla. Una ruta desconocida se trata
// como lista vacía: nunca renderiza.
func EvaluatePath(s *session.Store, path string) Decision {
	return Evaluate(s, Routes[path])
}
