package views

import (
	"context"

	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/internal/departments"
	"github.com/Josue-Alexander/gestionitp/internal/locations"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"golang.org/x/sync/errgroup"
)

type DepartmentsView struct {
	client   *client.Client
	notifier Notifier
	confirm  Confirmer

	Departments []models.Department
	Err         string
}

func NewDepartmentsView(c *client.Client, n Notifier, cf Confirmer) *DepartmentsView {
	return &DepartmentsView{client: c, notifier: n, confirm: cf}
}

func (v *DepartmentsView) Load(ctx context.Context) error {
	departmentList, err := v.client.ListDepartments(ctx)
	if err != nil {
		v.Err = err.Error()
		return err
	}

	v.Departments = departmentList
	v.Err = ""
	return nil
}

func (v *DepartmentsView) Create(ctx context.Context, req departments.DepartmentInput) error {
	if _, err := v.client.CreateDepartment(ctx, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *DepartmentsView) Update(ctx context.Context, id int, req departments.DepartmentInput) error {
	if _, err := v.client.UpdateDepartment(ctx, id, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *DepartmentsView) Delete(ctx context.Context, id int) error {
	if ok := v.confirm.Confirm("¿Eliminar este departamento?"); !ok.Confirmed {
		return nil
	}

	if err := v.client.DeleteDepartment(ctx, id); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

// LocationsView carga ubicaciones junto con el catálogo de departamentos que
// necesita el formulario para asignar propietario.
type LocationsView struct {
	client   *client.Client
	notifier Notifier
	confirm  Confirmer

	Locations   []models.Location
	Departments []models.Department
	Err         string
}

func NewLocationsView(c *client.Client, n Notifier, cf Confirmer) *LocationsView {
	return &LocationsView{client: c, notifier: n, confirm: cf}
}

func (v *LocationsView) Load(ctx context.Context) error {
	var (
		locationList   []models.Location
		departmentList []models.Department
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		locationList, err = v.client.ListLocations(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		departmentList, err = v.client.ListDepartments(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		v.Err = err.Error()
		return err
	}

	v.Locations = locationList
	v.Departments = departmentList
	v.Err = ""
	return nil
}

func (v *LocationsView) Create(ctx context.Context, req locations.LocationInput) error {
	if _, err := v.client.CreateLocation(ctx, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *LocationsView) Update(ctx context.Context, id int, req locations.LocationInput) error {
	if _, err := v.client.UpdateLocation(ctx, id, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *LocationsView) Delete(ctx context.Context, id int) error {
	if ok := v.confirm.Confirm("¿Eliminar esta ubicación?"); !ok.Confirmed {
		return nil
	}

	if err := v.client.DeleteLocation(ctx, id); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}
