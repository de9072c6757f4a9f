package views

import (
	"context"

	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"golang.org/x/sync/errgroup"
)

// ReportsView trae los cuatro reportes de una vez, opcionalmente acotados a
// un departamento. Como en el resto de pantallas, si un reporte falla la
// carga entera falla.
type ReportsView struct {
	client *client.Client

	Inventory     *models.InventoryValue
	StatusSummary []models.StatusSummaryRow
	CategoryCosts []models.CategoryCostRow
	RiskAssets    []models.RiskAssetRow
	Err           string
}

func NewReportsView(c *client.Client) *ReportsView {
	return &ReportsView{client: c}
}

func (v *ReportsView) Load(ctx context.Context, departamentoID *int) error {
	var (
		inventory *models.InventoryValue
		summary   []models.StatusSummaryRow
		costs     []models.CategoryCostRow
		risk      []models.RiskAssetRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		inventory, err = v.client.InventoryValue(gctx, departamentoID)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = v.client.StatusSummary(gctx, departamentoID)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = v.client.CategoryCosts(gctx, departamentoID)
		return err
	})
	g.Go(func() error {
		var err error
		risk, err = v.client.OperationalRisk(gctx, departamentoID)
		return err
	})

	if err := g.Wait(); err != nil {
		v.Err = err.Error()
		return err
	}

	v.Inventory = inventory
	v.StatusSummary = summary
	v.CategoryCosts = costs
	v.RiskAssets = risk
	v.Err = ""
	return nil
}
