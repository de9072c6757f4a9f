package models

import "github.com/Josue-Alexander/gestionitp/pkg/roles"

type User struct {
	ID             int        `json:"id_usuario" db:"id_usuario"`
	Nombre         string     `json:"nombre" db:"nombre"`
	Email          string     `json:"email" db:"email"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	Rol            roles.Role `json:"rol" db:"rol"`
	DepartamentoID *int       `json:"id_departamento" db:"id_departamento"`
}

// UserRef es la vista mínima de un usuario incrustada en otras entidades.
type UserRef struct {
	ID     int    `json:"id_usuario" db:"id_usuario"`
	Nombre string `json:"nombre" db:"nombre"`
	Email  string `json:"email" db:"email"`
}

type CreateUserRequest struct {
	Nombre         string     `json:"nombre" binding:"required"`
	Email          string     `json:"email" binding:"required,email"`
	Password       string     `json:"password" binding:"required"`
	Rol            roles.Role `json:"rol"`
	DepartamentoID *int       `json:"id_departamento"`
}

type UpdateUserRequest struct {
	Nombre         *string     `json:"nombre"`
	Password       *string     `json:"password"`
	Rol            *roles.Role `json:"rol"`
	DepartamentoID *int        `json:"id_departamento"`
}

// UserChanges acumula sólo los campos que realmente cambian en un PUT.
type UserChanges struct {
	Nombre         *string
	PasswordHash   *string
	Rol            *roles.Role
	DepartamentoID *int
}

func (c *UserChanges) HasChanges() bool {
	return c.Nombre != nil || c.PasswordHash != nil || c.Rol != nil || c.DepartamentoID != nil
}

func (u *User) CreateLogView() AuditEvent {
	return AuditEvent{
		ReferenciaID: &u.ID,
		TipoEvento:   "USUARIO",
	}
}
