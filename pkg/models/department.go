package models

type Department struct {
	ID     int    `json:"id_departamento" db:"id_departamento"`
	Nombre string `json:"nombre" db:"nombre"`
}

func (d *Department) CreateLogView() AuditEvent {
	return AuditEvent{
		ReferenciaID: &d.ID,
		TipoEvento:   "DEPARTAMENTO",
	}
}
