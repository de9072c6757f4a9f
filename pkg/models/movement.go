package models

import "time"

// Movement registra un cambio de ubicación dentro de una asignación.
// El historial de una asignación es la secuencia de movimientos por fecha.
type Movement struct {
	ID           int         `json:"id_movimiento" db:"id_movimiento"`
	AsignacionID int         `json:"id_asignacion" db:"id_asignacion"`
	Fecha        time.Time   `json:"fecha" db:"fecha"`
	Ubicacion    LocationRef `json:"ubicacion"`
}

type LocationRef struct {
	ID         int    `json:"id_ubicacion" db:"id_ubicacion"`
	NombreArea string `json:"nombre_area" db:"nombre_area"`
}
