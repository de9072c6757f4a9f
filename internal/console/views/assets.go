package views

import (
	"context"

	"github.com/Josue-Alexander/gestionitp/internal/assets"
	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"golang.org/x/sync/errgroup"
)

// AssetsView es el controlador de la pantalla de inventario: la colección de
// activos más los catálogos de referencia que necesita el formulario de alta.
type AssetsView struct {
	client   *client.Client
	notifier Notifier
	confirm  Confirmer

	Assets      []models.Asset
	Categories  []models.Category
	Departments []models.Department
	Locations   []models.Location
	Err         string
}

func NewAssetsView(c *client.Client, n Notifier, cf Confirmer) *AssetsView {
	return &AssetsView{client: c, notifier: n, confirm: cf}
}

// Load trae activos y los tres catálogos en paralelo. Si cualquiera falla,
// la carga completa se reporta como fallida y el estado no se toca.
func (v *AssetsView) Load(ctx context.Context) error {
	var (
		assetList   []models.Asset
		categories  []models.Category
		departments []models.Department
		locations   []models.Location
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assetList, err = v.client.ListAssets(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = v.client.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		departments, err = v.client.ListDepartments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = v.client.ListLocations(gctx, nil)
		return err
	})

	if err := g.Wait(); err != nil {
		v.Err = err.Error()
		return err
	}

	v.Assets = assetList
	v.Categories = categories
	v.Departments = departments
	v.Locations = locations
	v.Err = ""
	return nil
}

// Create da de alta el activo y devuelve el registro creado para que el
// llamador navegue a su detalle.
func (v *AssetsView) Create(ctx context.Context, req assets.AssetRequest) (*models.Asset, error) {
	created, err := v.client.CreateAsset(ctx, req)
	if err != nil {
		v.notifier.Notify(err.Error())
		return nil, err
	}

	if err := v.Load(ctx); err != nil {
		return created, err
	}
	return created, nil
}

func (v *AssetsView) Update(ctx context.Context, id int, req assets.AssetRequest) error {
	if _, err := v.client.UpdateAsset(ctx, id, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

// Retire pide confirmación y da de baja. La baja es lógica: el activo pasa a
// De_Baja y desaparece del listado normal.
func (v *AssetsView) Retire(ctx context.Context, id int) error {
	if ok := v.confirm.Confirm("¿Dar de baja este activo?"); !ok.Confirmed {
		return nil
	}

	if err := v.client.RetireAsset(ctx, id); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}
