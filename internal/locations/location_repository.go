package locations

import (
	"errors"
	"fmt"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var (
	ErrLocationNotFound = errors.New("ubicación no encontrada")
	ErrLocationInUse    = errors.New("la ubicación tiene movimientos registrados")
)

type LocationInput struct {
	NombreArea     string  `json:"nombre_area" binding:"required"`
	Descripcion    *string `json:"descripcion"`
	DepartamentoID *int    `json:"id_departamento"`
}

type LocationRepository interface {
	ListLocations(departamentoID *int) ([]models.Location, error)
	PersistLocation(input LocationInput) (*models.Location, error)
	UpdateLocation(id int, input LocationInput) error
	DeleteLocation(id int) error
}

type locationRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) LocationRepository {
	return &locationRepository{r: r}
}

func (lr *locationRepository) ListLocations(departamentoID *int) ([]models.Location, error) {
	var locations []models.Location

	query := lr.r.GoquDBWrapper.
		Select("id_ubicacion", "nombre_area", "descripcion", "id_departamento").
		From("ubicaciones").
		Order(goqu.I("nombre_area").Asc())

	if departamentoID != nil {
		query = query.Where(goqu.Ex{"id_departamento": *departamentoID})
	}

	if err := query.Executor().ScanStructs(&locations); err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	return locations, nil
}

func (lr *locationRepository) PersistLocation(input LocationInput) (*models.Location, error) {
	location := models.Location{
		NombreArea:     input.NombreArea,
		Descripcion:    input.Descripcion,
		DepartamentoID: input.DepartamentoID,
	}

	query := lr.r.GoquDBWrapper.Insert("ubicaciones").
		Rows(goqu.Record{
			"nombre_area":     input.NombreArea,
			"descripcion":     input.Descripcion,
			"id_departamento": input.DepartamentoID,
		}).
		Returning("id_ubicacion")

	if _, err := query.Executor().ScanVal(&location.ID); err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	return &location, nil
}

func (lr *locationRepository) UpdateLocation(id int, input LocationInput) error {
	result, err := lr.r.GoquDBWrapper.Update("ubicaciones").
		Set(goqu.Record{
			"nombre_area":     input.NombreArea,
			"descripcion":     input.Descripcion,
			"id_departamento": input.DepartamentoID,
		}).
		Where(goqu.Ex{"id_ubicacion": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update location %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrLocationNotFound
	}

	return nil
}

func (lr *locationRepository) DeleteLocation(id int) error {
	result, err := lr.r.GoquDBWrapper.Delete("ubicaciones").
		Where(goqu.Ex{"id_ubicacion": id}).
		Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrLocationInUse
		}
		return fmt.Errorf("failed to delete location %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrLocationNotFound
	}

	return nil
}
