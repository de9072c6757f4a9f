package departments

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
	ErrDepartmentNotFound = errors.New("departamento no encontrado")
	ErrDepartmentInUse    = errors.New("el departamento tiene registros relacionados")
)

type DepartmentInput struct {
	Nombre string `json:"nombre" binding:"required"`
}

type DepartmentRepository interface {
	ListDepartments() ([]models.Department, error)
	PersistDepartment(input DepartmentInput) (*models.Department, error)
	UpdateDepartment(id int, input DepartmentInput) error
	DeleteDepartment(id int) error
}

type departmentRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) DepartmentRepository {
	return &departmentRepository{r: r}
}

func (dr *departmentRepository) ListDepartments() ([]models.Department, error) {
	var departments []models.Department

	query := dr.r.GoquDBWrapper.
		Select("id_departamento", "nombre").
		From("departamentos").
		Order(goqu.I("nombre").Asc())

	if err := query.Executor().ScanStructs(&departments); err != nil {
		return nil, fmt.Errorf("failed to fetch departments: %w", err)
	}

	return departments, nil
}

func (dr *departmentRepository) PersistDepartment(input DepartmentInput) (*models.Department, error) {
	department := models.Department{Nombre: input.Nombre}

	query := dr.r.GoquDBWrapper.Insert("departamentos").
		Rows(goqu.Record{"nombre": input.Nombre}).
		Returning("id_departamento")

	if _, err := query.Executor().ScanVal(&department.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, custom_error.WrapDBError("Nombre de departamento duplicado", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert department: %w", err)
	}

	return &department, nil
}

func (dr *departmentRepository) UpdateDepartment(id int, input DepartmentInput) error {
	result, err := dr.r.GoquDBWrapper.Update("departamentos").
		Set(goqu.Record{"nombre": input.Nombre}).
		Where(goqu.Ex{"id_departamento": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update department %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}

func (dr *departmentRepository) DeleteDepartment(id int) error {
	result, err := dr.r.GoquDBWrapper.Delete("departamentos").
		Where(goqu.Ex{"id_departamento": id}).
		Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrDepartmentInUse
		}
		return fmt.Errorf("failed to delete department %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}
