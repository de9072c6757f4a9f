package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Josue-Alexander/gestionitp/pkg/models"
)

// Los exportes se arman a partir de colecciones ya cargadas por la vista,
// nunca disparan peticiones propias.

func WriteAssetsCSV(w io.Writer, assets []models.Asset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Nombre", "No. Inventario", "Marca", "Modelo", "Estado", "Departamento", "Categoría", "Ubicación", "Costo"}); err != nil {
		return err
	}

	for _, a := range assets {
		record := []string{
			strconv.Itoa(a.ID),
			a.Nombre,
			deref(a.NumInventario),
			deref(a.Marca),
			deref(a.Modelo),
			a.Estado,
			deref(a.NombreDepartamento),
			deref(a.NombreCategoria),
			deref(a.NombreUbicacion),
			formatCost(a.CostoAdquisicion),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteStatusSummaryCSV(w io.Writer, rows []models.StatusSummaryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Estado", "Total"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Estado, strconv.Itoa(r.Total)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteCategoryCostsCSV(w io.Writer, rows []models.CategoryCostRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Categoría", "Costo total", "Total de fallas"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Categoria,
			strconv.FormatFloat(r.CostoTotal, 'f', 2, 64),
			strconv.Itoa(r.TotalFallas),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteRiskAssetsCSV(w io.Writer, rows []models.RiskAssetRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Nombre", "Estado", "Costo", "Total de fallas"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.ID),
			r.Nombre,
			r.Estado,
			strconv.FormatFloat(r.Costo, 'f', 2, 64),
			strconv.Itoa(r.TotalFallas),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatCost(cost *float64) string {
	if cost == nil {
		return ""
	}
	return strconv.FormatFloat(*cost, 'f', 2, 64)
}
