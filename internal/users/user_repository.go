package users

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	custom_error "github.com/Josue-Alexander/gestionitp/pkg/errors"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("usuario no encontrado")

// UserRepository cubre también lo que necesita el login (security.UserStore).
type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error)
	GetUser(id int) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id int, changes *models.UserChanges) error
	DeleteUser(id int) error
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	user := models.User{
		Nombre:         req.Nombre,
		Email:          req.Email,
		Rol:            req.Rol,
		DepartamentoID: req.DepartamentoID,
	}

	query := r.repository.GoquDBWrapper.Insert("usuarios").
		Rows(goqu.Record{
			"nombre":          req.Nombre,
			"email":           req.Email,
			"password_hash":   string(hashedPassword),
			"rol":             req.Rol,
			"id_departamento": req.DepartamentoID,
		}).
		Returning("id_usuario")

	if _, err := query.Executor().ScanVal(&user.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, custom_error.WrapDBError("El correo ya está registrado", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User

	query := r.repository.GoquDBWrapper.
		Select("id_usuario", "nombre", "email", "rol", "id_departamento").
		From("usuarios").
		Order(goqu.I("nombre").Asc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	var user models.User

	query := r.repository.GoquDBWrapper.
		Select("id_usuario", "nombre", "email", "password_hash", "rol", "id_departamento").
		From("usuarios").
		Where(goqu.Ex{"id_usuario": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUserByEmail(email string) (*models.User, error) {
	var user models.User

	query := r.repository.GoquDBWrapper.
		Select("id_usuario", "nombre", "email", "password_hash", "rol", "id_departamento").
		From("usuarios").
		Where(goqu.Ex{"email": email})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !found {
		return nil, sql.ErrNoRows
	}

	return &user, nil
}

func (r *userRepositoryImpl) UpdateUser(id int, changes *models.UserChanges) error {
	record := goqu.Record{}

	if changes.Nombre != nil {
		record["nombre"] = *changes.Nombre
	}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.Rol != nil {
		record["rol"] = *changes.Rol
	}
	if changes.DepartamentoID != nil {
		record["id_departamento"] = *changes.DepartamentoID
	}

	result, err := r.repository.GoquDBWrapper.Update("usuarios").
		Set(record).
		Where(goqu.Ex{"id_usuario": id}).
		Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *userRepositoryImpl) DeleteUser(id int) error {
	result, err := r.repository.GoquDBWrapper.Delete("usuarios").
		Where(goqu.Ex{"id_usuario": id}).
		Executor().Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return custom_error.WrapDBError("El usuario tiene registros relacionados", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
