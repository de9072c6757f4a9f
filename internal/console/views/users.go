package views

import (
	"context"

	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"golang.org/x/sync/errgroup"
)

type UsersView struct {
	client   *client.Client
	notifier Notifier
	confirm  Confirmer

	Users       []models.User
	Departments []models.Department
	Err         string
}

func NewUsersView(c *client.Client, n Notifier, cf Confirmer) *UsersView {
	return &UsersView{client: c, notifier: n, confirm: cf}
}

func (v *UsersView) Load(ctx context.Context) error {
	var (
		userList       []models.User
		departmentList []models.Department
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userList, err = v.client.ListUsers(gctx)
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

	v.Users = userList
	v.Departments = departmentList
	v.Err = ""
	return nil
}

func (v *UsersView) Create(ctx context.Context, req models.CreateUserRequest) error {
	if _, err := v.client.CreateUser(ctx, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *UsersView) Update(ctx context.Context, id int, req models.UpdateUserRequest) error {
	if _, err := v.client.UpdateUser(ctx, id, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *UsersView) Delete(ctx context.Context, id int) error {
	if ok := v.confirm.Confirm("¿Eliminar este usuario?"); !ok.Confirmed {
		return nil
	}

	if err := v.client.DeleteUser(ctx, id); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}
