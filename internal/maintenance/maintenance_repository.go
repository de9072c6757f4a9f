package maintenance

import (
	"errors"
	"fmt"
	"time"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var ErrMaintenanceNotFound = errors.New("registro de mantenimiento no encontrado")

// MaintenanceRequest abre un registro de mantenimiento sobre un activo.
type MaintenanceRequest struct {
	AssetID       int        `json:"-"`
	Tipo          string     `json:"tipo" binding:"required"`
	DescProblema  string     `json:"descripcion_problema" binding:"required"`
	FechaInicio   *time.Time `json:"fecha_inicio"`
	NombreTecnico *string    `json:"nombre_tecnico"`
	Costo         *float64   `json:"costo"`
}

// FinalizeRequest cierra un registro abierto y fija el estado final del
// activo reparado.
type FinalizeRequest struct {
	Solucion          string   `json:"solucion_aplicada" binding:"required"`
	Costo             *float64 `json:"costo"`
	EstadoActivoFinal string   `json:"estado_activo_final"`
}

type MaintenanceRepository interface {
	ListMaintenances() ([]models.Maintenance, error)
	ListByAsset(assetID int) ([]models.Maintenance, error)
	OpenMaintenance(req MaintenanceRequest) (*models.Maintenance, error)
	FinalizeMaintenance(id int, req FinalizeRequest) error
}

type maintenanceRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) MaintenanceRepository {
	return &maintenanceRepository{r: r}
}

func (mr *maintenanceRepository) baseSelect() *goqu.SelectDataset {
	return mr.r.GoquDBWrapper.
		Select(
			goqu.I("m.id_mantenimiento"),
			goqu.I("m.tipo"),
			goqu.I("m.fecha_inicio"),
			goqu.I("m.fecha_fin"),
			goqu.I("m.descripcion_problema"),
			goqu.I("m.solucion_aplicada"),
			goqu.I("m.costo"),
			goqu.I("m.nombre_tecnico"),
			goqu.I("a.id_objeto"),
			goqu.I("a.nombre").As("asset_nombre"),
			goqu.I("a.num_inventario"),
		).
		From(goqu.T("mantenimientos").As("m")).
		Join(goqu.T("activos").As("a"), goqu.On(goqu.Ex{"m.id_objeto": goqu.I("a.id_objeto")}))
}

func (mr *maintenanceRepository) ListMaintenances() ([]models.Maintenance, error) {
	return mr.list(mr.baseSelect().Order(goqu.I("m.fecha_inicio").Desc()))
}

func (mr *maintenanceRepository) ListByAsset(assetID int) ([]models.Maintenance, error) {
	return mr.list(mr.baseSelect().
		Where(goqu.Ex{"m.id_objeto": assetID}).
		Order(goqu.I("m.fecha_inicio").Desc()))
}

func (mr *maintenanceRepository) list(query *goqu.SelectDataset) ([]models.Maintenance, error) {
	var rows []models.FlatMaintenanceRecord
	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("failed to fetch maintenance records: %w", err)
	}

	records := make([]models.Maintenance, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].TransformToMaintenance())
	}

	return records, nil
}

// OpenMaintenance inserta el registro y pasa el activo a En_Mantenimiento en
// la misma transacción.
func (mr *maintenanceRepository) OpenMaintenance(req MaintenanceRequest) (*models.Maintenance, error) {
	fechaInicio := time.Now()
	if req.FechaInicio != nil {
		fechaInicio = *req.FechaInicio
	}

	var id int

	err := repository.WithTransaction(mr.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		insert := tx.Insert("mantenimientos").
			Rows(goqu.Record{
				"id_objeto":            req.AssetID,
				"tipo":                 req.Tipo,
				"fecha_inicio":         fechaInicio,
				"descripcion_problema": req.DescProblema,
				"nombre_tecnico":       req.NombreTecnico,
				"costo":                req.Costo,
			}).
			Returning("id_mantenimiento")

		if _, err := insert.Executor().ScanVal(&id); err != nil {
			return fmt.Errorf("failed to insert maintenance record: %w", err)
		}

		update := tx.Update("activos").
			Set(goqu.Record{"estado": models.EstadoEnMantenimiento}).
			Where(goqu.Ex{"id_objeto": req.AssetID})

		if _, err := update.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to flag asset under maintenance: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return mr.getOne(id)
}

// FinalizeMaintenance cierra el registro y restaura el estado del activo.
// Si la consola no manda estado final se asume que quedó en buen estado.
func (mr *maintenanceRepository) FinalizeMaintenance(id int, req FinalizeRequest) error {
	estadoFinal := req.EstadoActivoFinal
	if !models.ValidAssetStatus(estadoFinal) {
		estadoFinal = models.EstadoBueno
	}

	return repository.WithTransaction(mr.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var assetID int

		lookup := tx.Select("id_objeto").
			From("mantenimientos").
			Where(goqu.Ex{"id_mantenimiento": id, "fecha_fin": nil})

		found, err := lookup.Executor().ScanVal(&assetID)
		if err != nil {
			return fmt.Errorf("failed to fetch maintenance record %d: %w", id, err)
		}
		if !found {
			return ErrMaintenanceNotFound
		}

		update := tx.Update("mantenimientos").
			Set(goqu.Record{
				"fecha_fin":         goqu.L("NOW()"),
				"solucion_aplicada": req.Solucion,
				"costo":             req.Costo,
			}).
			Where(goqu.Ex{"id_mantenimiento": id})

		if _, err := update.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to finalize maintenance %d: %w", id, err)
		}

		restore := tx.Update("activos").
			Set(goqu.Record{"estado": estadoFinal}).
			Where(goqu.Ex{"id_objeto": assetID})

		if _, err := restore.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to restore asset status: %w", err)
		}

		return nil
	})
}

func (mr *maintenanceRepository) getOne(id int) (*models.Maintenance, error) {
	var row models.FlatMaintenanceRecord

	found, err := mr.baseSelect().Where(goqu.Ex{"m.id_mantenimiento": id}).Executor().ScanStruct(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch maintenance record: %w", err)
	}
	if !found {
		return nil, ErrMaintenanceNotFound
	}

	record := row.TransformToMaintenance()
	return &record, nil
}
