package assignments

import (
	"errors"
	"fmt"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// AssetSource es la vista que el servicio de asignaciones necesita del
// repositorio de activos.
type AssetSource interface {
	GetAsset(id int) (*models.Asset, error)
}

var ErrAssetNotAssignable = errors.New("el activo no está disponible para asignación")

// Service agrupa las operaciones de asignaciones que consume el handler.
type Service interface {
	Create(req AssignmentRequest) (*models.Assignment, error)
	Finalize(id int) (*models.Assignment, error)
	List() ([]models.Assignment, error)
	ListForUser(userID int) ([]models.Assignment, error)
	RegisterMovement(id int, req MovementRequest) error
	History(id int) ([]models.Movement, error)
}

type assignmentService struct {
	r      *repository.Repository
	ar     AssignmentRepository
	assets AssetSource
}

func NewService(r *repository.Repository, ar AssignmentRepository, assets AssetSource) Service {
	return &assignmentService{r: r, ar: ar, assets: assets}
}

// Create inserta la asignación y su primer movimiento en una transacción.
// Un activo sólo puede tener una asignación activa; la violación se reporta
// como conflicto, no como error interno.
func (s *assignmentService) Create(req AssignmentRequest) (*models.Assignment, error) {
	asset, err := s.assets.GetAsset(req.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.Estado == models.EstadoDeBaja {
		return nil, ErrAssetNotAssignable
	}

	var assignmentID int

	err = repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		active, err := s.ar.HasActiveAssignment(tx, req.AssetID)
		if err != nil {
			return err
		}
		if active {
			return ErrAssetAlreadyAssigned
		}

		if assignmentID, err = s.ar.InsertAssignment(tx, req); err != nil {
			return err
		}

		if _, err = s.ar.InsertMovement(tx, assignmentID, req.UbicacionInicial); err != nil {
			return fmt.Errorf("failed to record initial movement: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.get(assignmentID)
}

func (s *assignmentService) Finalize(id int) (*models.Assignment, error) {
	err := repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		return s.ar.FinalizeAssignment(tx, id)
	})
	if err != nil {
		return nil, err
	}

	return s.get(id)
}

func (s *assignmentService) List() ([]models.Assignment, error) {
	rows, err := s.ar.ListAssignments()
	if err != nil {
		return nil, err
	}
	return s.attachMovements(rows)
}

func (s *assignmentService) ListForUser(userID int) ([]models.Assignment, error) {
	rows, err := s.ar.ListAssignmentsByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.attachMovements(rows)
}

// RegisterMovement añade un cambio de ubicación al historial de una
// asignación activa.
func (s *assignmentService) RegisterMovement(id int, req MovementRequest) error {
	row, err := s.ar.GetAssignmentRow(id)
	if err != nil {
		return err
	}
	if row.Estado != models.AsignacionActiva {
		return ErrAssignmentNotFound
	}

	return repository.WithTransaction(s.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		_, err := s.ar.InsertMovement(tx, id, req.UbicacionID)
		return err
	})
}

func (s *assignmentService) History(id int) ([]models.Movement, error) {
	if _, err := s.ar.GetAssignmentRow(id); err != nil {
		return nil, err
	}
	return s.ar.GetMovements([]int{id})
}

func (s *assignmentService) get(id int) (*models.Assignment, error) {
	row, err := s.ar.GetAssignmentRow(id)
	if err != nil {
		return nil, err
	}

	assignments, err := s.attachMovements([]models.FlatAssignmentRecord{*row})
	if err != nil {
		return nil, err
	}

	return &assignments[0], nil
}

// attachMovements resuelve el historial de todas las filas en una sola
// consulta y lo reparte por asignación.
func (s *assignmentService) attachMovements(rows []models.FlatAssignmentRecord) ([]models.Assignment, error) {
	assignments := make([]models.Assignment, 0, len(rows))
	ids := make([]int, 0, len(rows))
	byID := make(map[int]int, len(rows))

	for i, row := range rows {
		assignments = append(assignments, row.TransformToAssignment())
		ids = append(ids, row.ID)
		byID[row.ID] = i
	}

	movements, err := s.ar.GetMovements(ids)
	if err != nil {
		return nil, err
	}

	for _, m := range movements {
		if i, ok := byID[m.AsignacionID]; ok {
			assignments[i].Movimientos = append(assignments[i].Movimientos, m)
		}
	}

	return assignments, nil
}
