package models

import "time"

// Tipos de mantenimiento.
const (
	MantenimientoPreventivo = "Preventivo"
	MantenimientoCorrectivo = "Correctivo"
)

type Maintenance struct {
	ID             int        `json:"id_mantenimiento" db:"id_mantenimiento"`
	Tipo           string     `json:"tipo" db:"tipo"`
	FechaInicio    time.Time  `json:"fecha_inicio" db:"fecha_inicio"`
	FechaFin       *time.Time `json:"fecha_fin" db:"fecha_fin"`
	DescProblema   string     `json:"descripcion_problema" db:"descripcion_problema"`
	Solucion       *string    `json:"solucion_aplicada" db:"solucion_aplicada"`
	Costo          *float64   `json:"costo" db:"costo"`
	NombreTecnico  *string    `json:"nombre_tecnico" db:"nombre_tecnico"`
	Activo         AssetRef   `json:"activo"`
}

type FlatMaintenanceRecord struct {
	ID            int        `db:"id_mantenimiento"`
	Tipo          string     `db:"tipo"`
	FechaInicio   time.Time  `db:"fecha_inicio"`
	FechaFin      *time.Time `db:"fecha_fin"`
	DescProblema  string     `db:"descripcion_problema"`
	Solucion      *string    `db:"solucion_aplicada"`
	Costo         *float64   `db:"costo"`
	NombreTecnico *string    `db:"nombre_tecnico"`
	AssetID       int        `db:"id_objeto"`
	AssetNombre   string     `db:"asset_nombre"`
	AssetInv      *string    `db:"num_inventario"`
}

func (f *FlatMaintenanceRecord) TransformToMaintenance() Maintenance {
	return Maintenance{
		ID:            f.ID,
		Tipo:          f.Tipo,
		FechaInicio:   f.FechaInicio,
		FechaFin:      f.FechaFin,
		DescProblema:  f.DescProblema,
		Solucion:      f.Solucion,
		Costo:         f.Costo,
		NombreTecnico: f.NombreTecnico,
		Activo: AssetRef{
			ID:            f.AssetID,
			Nombre:        f.AssetNombre,
			NumInventario: f.AssetInv,
		},
	}
}

func (m *Maintenance) CreateLogView() AuditEvent {
	return AuditEvent{
		ReferenciaID: &m.ID,
		TipoEvento:   "MANTENIMIENTO",
	}
}
