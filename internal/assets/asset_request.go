package assets

// AssetRequest es el payload de alta/edición de un activo tal como lo envía
// la consola.
type AssetRequest struct {
	Nombre           string   `json:"nombre" binding:"required"`
	NombreGenerico   *string  `json:"nombre_generico"`
	NumInventario    *string  `json:"num_inventario"`
	Marca            *string  `json:"marca"`
	Modelo           *string  `json:"modelo"`
	NoSerie          *string  `json:"no_serie"`
	Estado           string   `json:"estado" binding:"required"`
	Observaciones    *string  `json:"observaciones"`
	DescAdquisicion  *string  `json:"descripcion_adquisicion"`
	ImagenObjeto     *string  `json:"imagen_objeto"`
	CostoAdquisicion *float64 `json:"costo_adquisicion"`
	DepartamentoID   *int     `json:"id_departamento"`
	CategoriaID      int      `json:"id_categoria" binding:"required"`
	UbicacionID      *int     `json:"id_ubicacion"`
}
