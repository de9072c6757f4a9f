package models

import "time"

type Category struct {
	ID          int     `json:"id_categoria" db:"id_categoria"`
	Nombre      string  `json:"nombre_categoria" db:"nombre_categoria"`
	Descripcion *string `json:"descripcion" db:"descripcion"`
}

func (c *Category) CreateLogView() AuditEvent {
	return AuditEvent{
		ReferenciaID: &c.ID,
		TipoEvento:   "CATEGORIA",
	}
}

// Estados de una solicitud de categoría.
const (
	SolicitudPendiente = "Pendiente"
	SolicitudAprobada  = "Aprobada"
	SolicitudRechazada = "Rechazada"
)

// Decisiones admitidas al revisar una solicitud.
const (
	DecisionAprobar  = "Aprobar"
	DecisionRechazar = "Rechazar"
)

type CategoryRequest struct {
	ID               int       `json:"id_solicitud" db:"id_solicitud"`
	NombreSugerido   string    `json:"nombre_sugerido" db:"nombre_sugerido"`
	Justificacion    string    `json:"justificacion" db:"justificacion"`
	Estado           string    `json:"estado" db:"estado"`
	SolicitanteID    int       `json:"id_solicitante" db:"id_solicitante"`
	NombreSolicitante *string  `json:"nombre_solicitante,omitempty" db:"nombre_solicitante"`
	Fecha            time.Time `json:"fecha" db:"fecha"`
}

func (s *CategoryRequest) CreateLogView() AuditEvent {
	return AuditEvent{
		ReferenciaID: &s.ID,
		TipoEvento:   "SOLICITUD_CATEGORIA",
	}
}
