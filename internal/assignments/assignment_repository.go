package assignments

import (
	"errors"
	"fmt"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var (
	ErrAssignmentNotFound  = errors.New("asignación no encontrada")
	ErrAssetAlreadyAssigned = errors.New("el activo ya tiene una asignación activa")
)

// AssignmentRepository cubre las operaciones de asignaciones y su historial
// de movimientos. Las escrituras que tocan más de una tabla reciben la
// transacción desde el servicio.
type AssignmentRepository interface {
	HasActiveAssignment(tx *goqu.TxDatabase, assetID int) (bool, error)
	InsertAssignment(tx *goqu.TxDatabase, req AssignmentRequest) (int, error)
	InsertMovement(tx *goqu.TxDatabase, assignmentID, ubicacionID int) (int, error)
	FinalizeAssignment(tx *goqu.TxDatabase, assignmentID int) error
	GetAssignmentRow(assignmentID int) (*models.FlatAssignmentRecord, error)
	ListAssignments() ([]models.FlatAssignmentRecord, error)
	ListAssignmentsByUser(userID int) ([]models.FlatAssignmentRecord, error)
	GetMovements(assignmentIDs []int) ([]models.Movement, error)
}

type assignmentRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) AssignmentRepository {
	return &assignmentRepository{r: r}
}

func (ar *assignmentRepository) HasActiveAssignment(tx *goqu.TxDatabase, assetID int) (bool, error) {
	var count int

	query := tx.Select(goqu.COUNT("id_asignacion")).
		From("asignaciones").
		Where(goqu.Ex{"id_objeto": assetID, "estado": models.AsignacionActiva})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return false, fmt.Errorf("failed to check active assignments: %w", err)
	}

	return count > 0, nil
}

func (ar *assignmentRepository) InsertAssignment(tx *goqu.TxDatabase, req AssignmentRequest) (int, error) {
	var id int

	query := tx.Insert("asignaciones").
		Rows(goqu.Record{
			"id_objeto":          req.AssetID,
			"id_usuario":         req.UserID,
			"estado":             models.AsignacionActiva,
			"observaciones":      req.Observaciones,
			"fecha_fin_prevista": req.FechaFinPrevista,
		}).
		Returning("id_asignacion")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return 0, fmt.Errorf("failed to insert assignment record: %w", err)
	}

	return id, nil
}

func (ar *assignmentRepository) InsertMovement(tx *goqu.TxDatabase, assignmentID, ubicacionID int) (int, error) {
	var id int

	query := tx.Insert("movimientos").
		Rows(goqu.Record{
			"id_asignacion": assignmentID,
			"id_ubicacion":  ubicacionID,
		}).
		Returning("id_movimiento")

	if _, err := query.Executor().ScanVal(&id); err != nil {
		return 0, fmt.Errorf("failed to insert movement record: %w", err)
	}

	return id, nil
}

func (ar *assignmentRepository) FinalizeAssignment(tx *goqu.TxDatabase, assignmentID int) error {
	query := tx.Update("asignaciones").
		Set(goqu.Record{
			"estado":         models.AsignacionFinalizada,
			"fecha_fin_real": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id_asignacion": assignmentID, "estado": models.AsignacionActiva})

	result, err := query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to finalize assignment %d: %w", assignmentID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

func (ar *assignmentRepository) baseSelect() *goqu.SelectDataset {
	return ar.r.GoquDBWrapper.
		Select(
			goqu.I("s.id_asignacion"),
			goqu.I("s.fecha_asignacion"),
			goqu.I("s.fecha_fin_prevista"),
			goqu.I("s.fecha_fin_real"),
			goqu.I("s.estado"),
			goqu.I("s.observaciones"),
			goqu.I("a.id_objeto"),
			goqu.I("a.nombre").As("asset_nombre"),
			goqu.I("a.num_inventario"),
			goqu.I("u.id_usuario"),
			goqu.I("u.nombre").As("usuario_nombre"),
			goqu.I("u.email").As("usuario_email"),
		).
		From(goqu.T("asignaciones").As("s")).
		Join(goqu.T("activos").As("a"), goqu.On(goqu.Ex{"s.id_objeto": goqu.I("a.id_objeto")})).
		Join(goqu.T("usuarios").As("u"), goqu.On(goqu.Ex{"s.id_usuario": goqu.I("u.id_usuario")}))
}

func (ar *assignmentRepository) GetAssignmentRow(assignmentID int) (*models.FlatAssignmentRecord, error) {
	var row models.FlatAssignmentRecord

	found, err := ar.baseSelect().Where(goqu.Ex{"s.id_asignacion": assignmentID}).Executor().ScanStruct(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment: %w", err)
	}
	if !found {
		return nil, ErrAssignmentNotFound
	}

	return &row, nil
}

func (ar *assignmentRepository) ListAssignments() ([]models.FlatAssignmentRecord, error) {
	var rows []models.FlatAssignmentRecord

	query := ar.baseSelect().Order(goqu.I("s.fecha_asignacion").Desc())
	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	return rows, nil
}

func (ar *assignmentRepository) ListAssignmentsByUser(userID int) ([]models.FlatAssignmentRecord, error) {
	var rows []models.FlatAssignmentRecord

	query := ar.baseSelect().
		Where(goqu.Ex{"s.id_usuario": userID, "s.estado": models.AsignacionActiva}).
		Order(goqu.I("s.fecha_asignacion").Desc())

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to fetch assignments for user %d: %w", userID, err)
	}

	return rows, nil
}

// movementsQuery arma la consulta del historial, del más antiguo al más
// reciente: el historial de ubicaciones es una secuencia ordenada.
func (ar *assignmentRepository) movementsQuery(assignmentIDs []int) *goqu.SelectDataset {
	return ar.r.GoquDBWrapper.
		Select(
			goqu.I("m.id_movimiento"),
			goqu.I("m.id_asignacion"),
			goqu.I("m.fecha"),
			goqu.I("ub.id_ubicacion"),
			goqu.I("ub.nombre_area"),
		).
		From(goqu.T("movimientos").As("m")).
		Join(goqu.T("ubicaciones").As("ub"), goqu.On(goqu.Ex{"m.id_ubicacion": goqu.I("ub.id_ubicacion")})).
		Where(goqu.Ex{"m.id_asignacion": assignmentIDs}).
		Order(goqu.I("m.fecha").Asc(), goqu.I("m.id_movimiento").Asc())
}

func (ar *assignmentRepository) GetMovements(assignmentIDs []int) ([]models.Movement, error) {
	if len(assignmentIDs) == 0 {
		return []models.Movement{}, nil
	}

	sql, args, err := ar.movementsQuery(assignmentIDs).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build movements query: %w", err)
	}

	dbRows, err := ar.r.DB.Query(sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movements: %w", err)
	}
	defer dbRows.Close()

	var movements []models.Movement
	for dbRows.Next() {
		var m models.Movement
		if err := dbRows.Scan(&m.ID, &m.AsignacionID, &m.Fecha, &m.Ubicacion.ID, &m.Ubicacion.NombreArea); err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}

	return movements, dbRows.Err()
}
