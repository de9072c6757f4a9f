package models

import (
	"encoding/json"
	"time"
)

// Tipos de evento registrados en la bitácora.
const (
	EventoCreacion      = "CREACION"
	EventoActualizacion = "ACTUALIZACION"
	EventoBaja          = "BAJA"
	EventoAsignacion    = "ASIGNACION"
	EventoFinalizacion  = "FINALIZACION"
	EventoMovimiento    = "MOVIMIENTO"
	EventoMantenimiento = "MANTENIMIENTO"
	EventoLogin         = "LOGIN"
	EventoRegistro      = "REGISTRO"
	EventoRevision      = "REVISION"
	EventoEliminacion   = "ELIMINACION"
)

// AuditEvent es una entrada append-only de la bitácora. Detalle viaja como
// JSON libre; DetalleRaw existe sólo para el round-trip con la base.
type AuditEvent struct {
	ID           int                    `json:"id_evento" db:"id_evento"`
	UsuarioID    *int                   `json:"id_usuario,omitempty" db:"id_usuario"`
	ReferenciaID *int                   `json:"id_referencia,omitempty" db:"id_referencia"`
	TipoEvento   string                 `json:"tipo_evento" db:"tipo_evento"`
	Accion       string                 `json:"accion" db:"accion"`
	DetalleRaw   string                 `json:"-" db:"detalle"`
	Detalle      map[string]interface{} `json:"detalle" db:"-"`
	Fecha        time.Time              `json:"fecha" db:"fecha"`
	NombreUsuario *string               `json:"nombre_usuario,omitempty" db:"nombre_usuario"`
}

func (a *AuditEvent) LoadFromDB() {
	if a.DetalleRaw != "" {
		_ = json.Unmarshal([]byte(a.DetalleRaw), &a.Detalle)
	}
}
