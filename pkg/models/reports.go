package models

// DTOs de los reportes estratégicos. Se comparten entre el servicio, que los
// agrega en SQL, y la consola, que los exporta tal cual llegan.

type StatusSummaryRow struct {
	Estado string `json:"estado" db:"estado"`
	Total  int    `json:"total" db:"total"`
}

type InventoryValue struct {
	TotalActivos int     `json:"total_activos" db:"total_activos"`
	ValorTotal   float64 `json:"valor_total" db:"valor_total"`
}

type CategoryCostRow struct {
	Categoria   string  `json:"categoria" db:"categoria"`
	CostoTotal  float64 `json:"costo_total" db:"costo_total"`
	TotalFallas int     `json:"total_fallas" db:"total_fallas"`
}

type RiskAssetRow struct {
	ID          int     `json:"id_objeto" db:"id_objeto"`
	Nombre      string  `json:"nombre" db:"nombre"`
	Estado      string  `json:"estado" db:"estado"`
	Costo       float64 `json:"costo" db:"costo"`
	TotalFallas int     `json:"total_fallas" db:"total_fallas"`
}
