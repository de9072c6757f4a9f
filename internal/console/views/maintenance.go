package views

import (
	"context"

	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/internal/maintenance"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
)

type MaintenanceView struct {
	client   *client.Client
	notifier Notifier

	Records []models.Maintenance
	Err     string
}

func NewMaintenanceView(c *client.Client, n Notifier) *MaintenanceView {
	return &MaintenanceView{client: c, notifier: n}
}

func (v *MaintenanceView) Load(ctx context.Context) error {
	records, err := v.client.ListMaintenance(ctx)
	if err != nil {
		v.Err = err.Error()
		return err
	}

	v.Records = records
	v.Err = ""
	return nil
}

func (v *MaintenanceView) Open(ctx context.Context, assetID int, req maintenance.MaintenanceRequest) error {
	if _, err := v.client.OpenMaintenance(ctx, assetID, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *MaintenanceView) Finalize(ctx context.Context, id int, req maintenance.FinalizeRequest) error {
	if _, err := v.client.FinalizeMaintenance(ctx, id, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

// AssetHistory trae el historial de mantenimientos de un activo concreto,
// para la ficha de detalle.
func (v *MaintenanceView) AssetHistory(ctx context.Context, assetID int) ([]models.Maintenance, error) {
	records, err := v.client.ListAssetMaintenance(ctx, assetID)
	if err != nil {
		v.Err = err.Error()
		return nil, err
	}
	return records, nil
}
