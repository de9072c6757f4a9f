package assignments

import "time"

// AssignmentRequest es el payload de alta de una asignación. La ubicación
// inicial genera el primer movimiento del historial en la misma transacción.
type AssignmentRequest struct {
	AssetID          int        `json:"id_objeto" binding:"required"`
	UserID           int        `json:"id_usuario" binding:"required"`
	UbicacionInicial int        `json:"idUbicacionInicial" binding:"required"`
	Observaciones    *string    `json:"observaciones"`
	FechaFinPrevista *time.Time `json:"fecha_fin_prevista"`
}

type MovementRequest struct {
	UbicacionID int `json:"id_ubicacion" binding:"required"`
}
