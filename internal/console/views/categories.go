package views

import (
	"context"

	"github.com/Josue-Alexander/gestionitp/internal/categories"
	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"golang.org/x/sync/errgroup"
)

// CategoriesView cubre el catálogo de categorías y el flujo de solicitudes:
// un Gestor propone, un Admin_General revisa.
type CategoriesView struct {
	client   *client.Client
	notifier Notifier
	confirm  Confirmer

	Categories []models.Category
	Requests   []models.CategoryRequest
	Err        string
}

func NewCategoriesView(c *client.Client, n Notifier, cf Confirmer) *CategoriesView {
	return &CategoriesView{client: c, notifier: n, confirm: cf}
}

func (v *CategoriesView) Load(ctx context.Context) error {
	var (
		categoryList []models.Category
		requestList  []models.CategoryRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categoryList, err = v.client.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		requestList, err = v.client.ListCategoryRequests(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		v.Err = err.Error()
		return err
	}

	v.Categories = categoryList
	v.Requests = requestList
	v.Err = ""
	return nil
}

// LoadCatalog carga solo las categorías, para los roles que no pueden ver
// las solicitudes.
func (v *CategoriesView) LoadCatalog(ctx context.Context) error {
	categoryList, err := v.client.ListCategories(ctx)
	if err != nil {
		v.Err = err.Error()
		return err
	}

	v.Categories = categoryList
	v.Err = ""
	return nil
}

func (v *CategoriesView) Create(ctx context.Context, req categories.CategoryInput) error {
	if _, err := v.client.CreateCategory(ctx, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *CategoriesView) Update(ctx context.Context, id int, req categories.CategoryInput) error {
	if _, err := v.client.UpdateCategory(ctx, id, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *CategoriesView) Delete(ctx context.Context, id int) error {
	if ok := v.confirm.Confirm("¿Eliminar esta categoría?"); !ok.Confirmed {
		return nil
	}

	if err := v.client.DeleteCategory(ctx, id); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

func (v *CategoriesView) Propose(ctx context.Context, req categories.RequestInput) error {
	if _, err := v.client.CreateCategoryRequest(ctx, req); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}

// Approve aprueba la solicitud; el servicio crea la categoría en la misma
// operación.
func (v *CategoriesView) Approve(ctx context.Context, id int) error {
	return v.review(ctx, id, categories.ReviewInput{Decision: models.DecisionAprobar})
}

// Reject pide la justificación del rechazo a través del Confirmer y la envía
// junto con la decisión.
func (v *CategoriesView) Reject(ctx context.Context, id int) error {
	result := v.confirm.Confirm("Justificación del rechazo:")
	if !result.Confirmed {
		return nil
	}

	input := categories.ReviewInput{Decision: models.DecisionRechazar}
	if result.Input != "" {
		justificacion := result.Input
		input.JustificacionRechazo = &justificacion
	}
	return v.review(ctx, id, input)
}

func (v *CategoriesView) review(ctx context.Context, id int, input categories.ReviewInput) error {
	if _, err := v.client.ReviewCategoryRequest(ctx, id, input); err != nil {
		v.notifier.Notify(err.Error())
		return err
	}
	return v.Load(ctx)
}
