package views

import (
	"context"

	"github.com/Josue-Alexander/gestionitp/internal/assignments"
	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"golang.org/x/sync/errgroup"
)

type AssignmentsView struct {
	client   *client.Client
	notifier Notifier
	confirm  Confirmer

	Assignments []models.Assignment
	Assets      []models.Asset
	Users       []models.User
	Locations   []models.Location
	Err         string
}

func NewAssignmentsView(c *client.Client, n Notifier, cf Confirmer) *AssignmentsView {
	return &AssignmentsView{client: c, notifier: n, confirm: cf}
}

func (v *AssignmentsView) Load(ctx context.Context) error {
	var (
		assignmentList []models.Assignment
		assetList      []models.Asset
		userList       []models.User
		locationList   []models.Location
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignmentList, err = v.client.ListAssignments(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		assetList, err = v.client.ListAssets(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		userList, err = v.client.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		locationList, err = v.client.ListLocations(gctx, nil)
		return err
	})

	if err := g.Wait(); err != nil {
		v.Err = err.Error()
		return err
	}

	v.Assignments = assignmentList
	v.Assets = assetList
	v.Users = userList
	v.Locations = locationList
	v.Err = ""
	return nil
}

func (v *AssignmentsView) Create(ctx context.Context, req assignments.AssignmentRequest) error {
	if _, err := v.client.CreateAssignment(ctx, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

// Finalize es el parche optimista del patrón: en lugar de recargar todo,
// sustituye en sitio el registro afectado con lo que devolvió el servicio.
func (v *AssignmentsView) Finalize(ctx context.Context, id int) error {
	if ok := v.confirm.Confirm("¿Finalizar esta asignación?"); !ok.Confirmed {
		return nil
	}

	updated, err := v.client.FinalizeAssignment(ctx, id)
	if err != nil {
		v.notifier.Notify(err.Error())
		return err
	}

	for i := range v.Assignments {
		if v.Assignments[i].ID == id {
			v.Assignments[i] = *updated
			break
		}
	}
	return nil
}

func (v *AssignmentsView) RegisterMovement(ctx context.Context, assignmentID int, req assignments.MovementRequest) error {
	if _, err := v.client.RegisterMovement(ctx, assignmentID, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

// History trae los movimientos de una asignación, del más antiguo al más
// reciente.
func (v *AssignmentsView) History(ctx context.Context, assignmentID int) ([]models.Movement, error) {
	movements, err := v.client.ListMovements(ctx, assignmentID)
	if err != nil {
		v.Err = err.Error()
		return nil, err
	}
	return movements, nil
}

// MyAssignmentsView es la pantalla personal de Usuario_General: solo sus
// asignaciones activas, sin catálogos de apoyo.
type MyAssignmentsView struct {
	client *client.Client

	Assignments []models.Assignment
	Err         string
}

func NewMyAssignmentsView(c *client.Client) *MyAssignmentsView {
	return &MyAssignmentsView{client: c}
}

func (v *MyAssignmentsView) Load(ctx context.Context) error {
	assignmentList, err := v.client.ListMyAssignments(ctx)
	if err != nil {
		v.Err = err.Error()
		return err
	}

	v.Assignments = assignmentList
	v.Err = ""
	return nil
}
