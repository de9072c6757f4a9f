package reports

import (
	"fmt"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ReportRepository interface {
	InventoryValue(departamentoID *int) (*models.InventoryValue, error)
	StatusSummary(departamentoID *int) ([]models.StatusSummaryRow, error)
	CategoryCosts(departamentoID *int) ([]models.CategoryCostRow, error)
	OperationalRisk(departamentoID *int) ([]models.RiskAssetRow, error)
}

type reportRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) ReportRepository {
	return &reportRepository{r: r}
}

func scopeByDepartment(ds *goqu.SelectDataset, departamentoID *int) *goqu.SelectDataset {
	if departamentoID != nil {
		return ds.Where(goqu.I("a.id_departamento").Eq(*departamentoID))
	}
	return ds
}

// InventoryValue suma el costo de adquisición de todo lo que no está De_Baja.
func (rr *reportRepository) InventoryValue(departamentoID *int) (*models.InventoryValue, error) {
	var value models.InventoryValue

	query := rr.r.GoquDBWrapper.
		Select(
			goqu.COUNT("a.id_objeto").As("total_activos"),
			goqu.COALESCE(goqu.SUM("a.costo_adquisicion"), 0).As("valor_total"),
		).
		From(goqu.T("activos").As("a")).
		Where(goqu.I("a.estado").Neq(models.EstadoDeBaja))

	query = scopeByDepartment(query, departamentoID)

	if _, err := query.Executor().ScanStruct(&value); err != nil {
		return nil, fmt.Errorf("failed to compute inventory value: %w", err)
	}

	return &value, nil
}

func (rr *reportRepository) StatusSummary(departamentoID *int) ([]models.StatusSummaryRow, error) {
	var rows []models.StatusSummaryRow

	query := rr.r.GoquDBWrapper.
		Select(
			goqu.I("a.estado"),
			goqu.COUNT("a.id_objeto").As("total"),
		).
		From(goqu.T("activos").As("a")).
		GroupBy(goqu.I("a.estado")).
		Order(goqu.I("total").Desc())

	query = scopeByDepartment(query, departamentoID)

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to compute status summary: %w", err)
	}

	return rows, nil
}

// CategoryCosts agrega costo de mantenimiento y número de fallas por categoría.
func (rr *reportRepository) CategoryCosts(departamentoID *int) ([]models.CategoryCostRow, error) {
	var rows []models.CategoryCostRow

	query := rr.r.GoquDBWrapper.
		Select(
			goqu.I("c.nombre_categoria").As("categoria"),
			goqu.COALESCE(goqu.SUM("m.costo"), 0).As("costo_total"),
			goqu.COUNT("m.id_mantenimiento").As("total_fallas"),
		).
		From(goqu.T("mantenimientos").As("m")).
		InnerJoin(goqu.T("activos").As("a"), goqu.On(goqu.Ex{"m.id_objeto": goqu.I("a.id_objeto")})).
		InnerJoin(goqu.T("categorias").As("c"), goqu.On(goqu.Ex{"a.id_categoria": goqu.I("c.id_categoria")})).
		GroupBy(goqu.I("c.nombre_categoria")).
		Order(goqu.I("costo_total").Desc())

	query = scopeByDepartment(query, departamentoID)

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to compute category costs: %w", err)
	}

	return rows, nil
}

// OperationalRisk lista los activos con más mantenimientos correctivos
// acumulados, los candidatos naturales a baja.
func (rr *reportRepository) OperationalRisk(departamentoID *int) ([]models.RiskAssetRow, error) {
	var rows []models.RiskAssetRow

	query := rr.r.GoquDBWrapper.
		Select(
			goqu.I("a.id_objeto"),
			goqu.I("a.nombre"),
			goqu.I("a.estado"),
			goqu.COALESCE(goqu.I("a.costo_adquisicion"), 0).As("costo"),
			goqu.COUNT("m.id_mantenimiento").As("total_fallas"),
		).
		From(goqu.T("activos").As("a")).
		InnerJoin(goqu.T("mantenimientos").As("m"), goqu.On(goqu.Ex{"m.id_objeto": goqu.I("a.id_objeto")})).
		Where(goqu.I("m.tipo").Eq(models.MantenimientoCorrectivo)).
		GroupBy(goqu.I("a.id_objeto"), goqu.I("a.nombre"), goqu.I("a.estado"), goqu.I("a.costo_adquisicion")).
		Order(goqu.I("total_fallas").Desc()).
		Limit(20)

	query = scopeByDepartment(query, departamentoID)

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to compute operational risk: %w", err)
	}

	return rows, nil
}
