package models

import "time"

// Estados posibles de un activo.
const (
	EstadoBueno          = "Bueno"
	EstadoRegular        = "Regular"
	EstadoMalo           = "Malo"
	EstadoEnMantenimiento = "En_Mantenimiento"
	EstadoDeBaja         = "De_Baja"
)

func ValidAssetStatus(estado string) bool {
	switch estado {
	case EstadoBueno, EstadoRegular, EstadoMalo, EstadoEnMantenimiento, EstadoDeBaja:
		return true
	default:
		return false
	}
}

type Asset struct {
	ID                 int        `json:"id_objeto" db:"id_objeto"`
	Nombre             string     `json:"nombre" db:"nombre"`
	NombreGenerico     *string    `json:"nombre_generico" db:"nombre_generico"`
	NumInventario      *string    `json:"num_inventario" db:"num_inventario"`
	Marca              *string    `json:"marca" db:"marca"`
	Modelo             *string    `json:"modelo" db:"modelo"`
	NoSerie            *string    `json:"no_serie" db:"no_serie"`
	Estado             string     `json:"estado" db:"estado"`
	Observaciones      *string    `json:"observaciones" db:"observaciones"`
	DescAdquisicion    *string    `json:"descripcion_adquisicion" db:"descripcion_adquisicion"`
	ImagenObjeto       *string    `json:"imagen_objeto" db:"imagen_objeto"`
	CostoAdquisicion   *float64   `json:"costo_adquisicion" db:"costo_adquisicion"`
	QRID               string     `json:"qr_id" db:"qr_id"`
	DepartamentoID     *int       `json:"id_departamento" db:"id_departamento"`
	CategoriaID        int        `json:"id_categoria" db:"id_categoria"`
	UbicacionID        *int       `json:"id_ubicacion" db:"id_ubicacion"`
	FechaRegistro      time.Time  `json:"fecha_registro" db:"fecha_registro"`
	NombreDepartamento *string    `json:"nombre_departamento,omitempty" db:"nombre_departamento"`
	NombreCategoria    *string    `json:"nombre_categoria,omitempty" db:"nombre_categoria"`
	NombreUbicacion    *string    `json:"nombre_ubicacion,omitempty" db:"nombre_ubicacion"`
}

// AssetRef es la vista mínima de un activo incrustada en otras entidades.
type AssetRef struct {
	ID            int     `json:"id_objeto" db:"id_objeto"`
	Nombre        string  `json:"nombre" db:"nombre"`
	NumInventario *string `json:"num_inventario" db:"num_inventario"`
}

func (a *Asset) CreateLogView() AuditEvent {
	return AuditEvent{
		ReferenciaID: &a.ID,
		TipoEvento:   "ACTIVO",
	}
}
