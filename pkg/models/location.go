package models

type Location struct {
	ID             int     `json:"id_ubicacion" db:"id_ubicacion"`
	NombreArea     string  `json:"nombre_area" db:"nombre_area"`
	Descripcion    *string `json:"descripcion" db:"descripcion"`
	DepartamentoID *int    `json:"id_departamento" db:"id_departamento"`
}

func (l *Location) CreateLogView() AuditEvent {
	return AuditEvent{
		ReferenciaID: &l.ID,
		TipoEvento:   "UBICACION",
	}
}
