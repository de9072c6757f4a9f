package models

import "time"

// Estados del ciclo de vida de una asignación.
const (
	AsignacionActiva     = "Activa"
	AsignacionFinalizada = "Finalizada"
)

type Assignment struct {
	ID               int        `json:"id_asignacion"`
	FechaAsignacion  time.Time  `json:"fecha_asignacion"`
	FechaFinPrevista *time.Time `json:"fecha_fin_prevista"`
	FechaFinReal     *time.Time `json:"fecha_fin_real"`
	Estado           string     `json:"estado"`
	Observaciones    *string    `json:"observaciones"`
	Activo           AssetRef   `json:"activo"`
	Usuario          UserRef    `json:"usuario"`
	Movimientos      []Movement `json:"movimientos"`
}

// FlatAssignmentRecord es la fila cruda que devuelve el join de asignaciones;
// se aplana en el repositorio y se transforma al DTO anidado del API.
type FlatAssignmentRecord struct {
	ID               int        `db:"id_asignacion"`
	FechaAsignacion  time.Time  `db:"fecha_asignacion"`
	FechaFinPrevista *time.Time `db:"fecha_fin_prevista"`
	FechaFinReal     *time.Time `db:"fecha_fin_real"`
	Estado           string     `db:"estado"`
	Observaciones    *string    `db:"observaciones"`
	AssetID          int        `db:"id_objeto"`
	AssetNombre      string     `db:"asset_nombre"`
	AssetInventario  *string    `db:"num_inventario"`
	UserID           int        `db:"id_usuario"`
	UserNombre       string     `db:"usuario_nombre"`
	UserEmail        string     `db:"usuario_email"`
}

func (f *FlatAssignmentRecord) TransformToAssignment() Assignment {
	return Assignment{
		ID:               f.ID,
		FechaAsignacion:  f.FechaAsignacion,
		FechaFinPrevista: f.FechaFinPrevista,
		FechaFinReal:     f.FechaFinReal,
		Estado:           f.Estado,
		Observaciones:    f.Observaciones,
		Activo: AssetRef{
			ID:            f.AssetID,
			Nombre:        f.AssetNombre,
			NumInventario: f.AssetInventario,
		},
		Usuario: UserRef{
			ID:     f.UserID,
			Nombre: f.UserNombre,
			Email:  f.UserEmail,
		},
		Movimientos: []Movement{},
	}
}

func (a *Assignment) CreateLogView() AuditEvent {
	return AuditEvent{
		ReferenciaID: &a.ID,
		TipoEvento:   "ASIGNACION",
	}
}
