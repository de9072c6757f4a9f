package categories

import (
	"errors"
	"fmt"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	custom_error "github.com/Josue-Alexander/gestionitp/pkg/errors"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var (
	ErrCategoryNotFound = errors.New("categoría no encontrada")
	ErrCategoryInUse    = errors.New("la categoría tiene activos relacionados")
	ErrRequestNotFound  = errors.New("solicitud no encontrada")
	ErrRequestResolved  = errors.New("la solicitud ya fue revisada")
)

type CategoryInput struct {
	Nombre      string  `json:"nombre_categoria" binding:"required"`
	Descripcion *string `json:"descripcion"`
}

type RequestInput struct {
	NombreSugerido string `json:"nombre_sugerido" binding:"required"`
	Justificacion  string `json:"justificacion" binding:"required"`
}

type ReviewInput struct {
	Decision             string  `json:"decision" binding:"required"`
	JustificacionRechazo *string `json:"justificacion_rechazo"`
}

type CategoryRepository interface {
	ListCategories() ([]models.Category, error)
	PersistCategory(input CategoryInput) (*models.Category, error)
	UpdateCategory(id int, input CategoryInput) error
	DeleteCategory(id int) error
	HasRelatedAssets(id int) (bool, error)
	ListRequests() ([]models.CategoryRequest, error)
	PersistRequest(input RequestInput, solicitanteID int) (*models.CategoryRequest, error)
	ReviewRequest(id int, input ReviewInput) (*models.CategoryRequest, error)
}

type categoryRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) CategoryRepository {
	return &categoryRepository{r: r}
}

func (cr *categoryRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category

	query := cr.r.GoquDBWrapper.
		Select("id_categoria", "nombre_categoria", "descripcion").
		From("categorias").
		Order(goqu.I("nombre_categoria").Asc())

	if err := query.Executor().ScanStructs(&categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, nil
}

func (cr *categoryRepository) PersistCategory(input CategoryInput) (*models.Category, error) {
	category := models.Category{Nombre: input.Nombre, Descripcion: input.Descripcion}

	query := cr.r.GoquDBWrapper.Insert("categorias").
		Rows(goqu.Record{
			"nombre_categoria": input.Nombre,
			"descripcion":      input.Descripcion,
		}).
		Returning("id_categoria")

	if _, err := query.Executor().ScanVal(&category.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, custom_error.WrapDBError("Nombre de categoría duplicado", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &category, nil
}

func (cr *categoryRepository) UpdateCategory(id int, input CategoryInput) error {
	query := cr.r.GoquDBWrapper.Update("categorias").
		Set(goqu.Record{
			"nombre_categoria": input.Nombre,
			"descripcion":      input.Descripcion,
		}).
		Where(goqu.Ex{"id_categoria": id})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update category %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (cr *categoryRepository) HasRelatedAssets(id int) (bool, error) {
	var count int

	query := cr.r.GoquDBWrapper.Select(goqu.COUNT("id_objeto")).
		From("activos").
		Where(goqu.Ex{"id_categoria": id})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("failed to check related assets: %w", err)
	}

	return count > 0, nil
}

func (cr *categoryRepository) DeleteCategory(id int) error {
	inUse, err := cr.HasRelatedAssets(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrCategoryInUse
	}

	result, err := cr.r.GoquDBWrapper.Delete("categorias").
		Where(goqu.Ex{"id_categoria": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (cr *categoryRepository) requestSelect() *goqu.SelectDataset {
	return cr.r.GoquDBWrapper.
		Select(
			goqu.I("s.id_solicitud"),
			goqu.I("s.nombre_sugerido"),
			goqu.I("s.justificacion"),
			goqu.I("s.estado"),
			goqu.I("s.id_solicitante"),
			goqu.I("s.fecha"),
			goqu.I("u.nombre").As("nombre_solicitante"),
		).
		From(goqu.T("solicitudes_categoria").As("s")).
		LeftJoin(goqu.T("usuarios").As("u"), goqu.On(goqu.Ex{"s.id_solicitante": goqu.I("u.id_usuario")}))
}

func (cr *categoryRepository) ListRequests() ([]models.CategoryRequest, error) {
	var requests []models.CategoryRequest

	query := cr.requestSelect().Order(goqu.I("s.fecha").Desc())
	if err := query.Executor().ScanStructs(&requests); err != nil {
		return nil, fmt.Errorf("failed to fetch category requests: %w", err)
	}

	return requests, nil
}

func (cr *categoryRepository) PersistRequest(input RequestInput, solicitanteID int) (*models.CategoryRequest, error) {
	request := models.CategoryRequest{
		NombreSugerido: input.NombreSugerido,
		Justificacion:  input.Justificacion,
		Estado:         models.SolicitudPendiente,
		SolicitanteID:  solicitanteID,
	}

	query := cr.r.GoquDBWrapper.Insert("solicitudes_categoria").
		Rows(goqu.Record{
			"nombre_sugerido": input.NombreSugerido,
			"justificacion":   input.Justificacion,
			"estado":          models.SolicitudPendiente,
			"id_solicitante":  solicitanteID,
		}).
		Returning("id_solicitud")

	if _, err := query.Executor().ScanVal(&request.ID); err != nil {
		return nil, fmt.Errorf("failed to insert category request: %w", err)
	}

	return &request, nil
}

// ReviewRequest resuelve una solicitud pendiente. Aprobar crea la categoría
// en la misma transacción; rechazar anota la justificación del rechazo sobre
// la original.
func (cr *categoryRepository) ReviewRequest(id int, input ReviewInput) (*models.CategoryRequest, error) {
	err := repository.WithTransaction(cr.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var request models.CategoryRequest

		lookup := cr.requestSelectOn(tx).Where(goqu.Ex{"s.id_solicitud": id})
		found, err := lookup.Executor().ScanStruct(&request)
		if err != nil {
			return fmt.Errorf("failed to fetch category request %d: %w", id, err)
		}
		if !found {
			return ErrRequestNotFound
		}
		if request.Estado != models.SolicitudPendiente {
			return ErrRequestResolved
		}

		estado := models.SolicitudRechazada
		justificacion := request.Justificacion

		if input.Decision == models.DecisionAprobar {
			estado = models.SolicitudAprobada

			insert := tx.Insert("categorias").Rows(goqu.Record{
				"nombre_categoria": request.NombreSugerido,
			})
			if _, err := insert.Executor().Exec(); err != nil {
				if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
					return custom_error.WrapDBError("La categoría ya existe", string(pqErr.Code))
				}
				return fmt.Errorf("failed to create approved category: %w", err)
			}
		} else if input.JustificacionRechazo != nil {
			justificacion = justificacion + " | Rechazo: " + *input.JustificacionRechazo
		}

		update := tx.Update("solicitudes_categoria").
			Set(goqu.Record{"estado": estado, "justificacion": justificacion}).
			Where(goqu.Ex{"id_solicitud": id})

		if _, err := update.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to update category request %d: %w", id, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var request models.CategoryRequest
	if _, err := cr.requestSelect().Where(goqu.Ex{"s.id_solicitud": id}).Executor().ScanStruct(&request); err != nil {
		return nil, fmt.Errorf("failed to reload category request %d: %w", id, err)
	}

	return &request, nil
}

func (cr *categoryRepository) requestSelectOn(tx *goqu.TxDatabase) *goqu.SelectDataset {
	return tx.
		Select(
			goqu.I("s.id_solicitud"),
			goqu.I("s.nombre_sugerido"),
			goqu.I("s.justificacion"),
			goqu.I("s.estado"),
			goqu.I("s.id_solicitante"),
			goqu.I("s.fecha"),
		).
		From(goqu.T("solicitudes_categoria").As("s"))
}
