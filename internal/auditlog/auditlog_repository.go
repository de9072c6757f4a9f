package auditlog

import (
	"encoding/json"
	"fmt"

	"github.com/Josue-Alexander/gestionitp/internal/repository"
	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AuditLogRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{r: r}
}

// PersistEvent inserta una entrada de bitácora. La bitácora es append-only:
// no existe update ni delete sobre esta tabla.
func (a *AuditLogRepository) PersistEvent(event models.AuditEvent, detalle map[string]interface{}) error {
	raw, err := json.Marshal(detalle)
	if err != nil {
		return fmt.Errorf("failed to serialize bitacora detail: %w", err)
	}

	query := a.r.GoquDBWrapper.Insert("bitacora").Rows(goqu.Record{
		"id_usuario":    event.UsuarioID,
		"id_referencia": event.ReferenciaID,
		"tipo_evento":   event.TipoEvento,
		"accion":        event.Accion,
		"detalle":       string(raw),
	})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert bitacora entry: %w", err)
	}

	return nil
}

// GetEvents devuelve las entradas más recientes primero, con el nombre del
// usuario resuelto para la vista.
func (a *AuditLogRepository) GetEvents(limit int) ([]models.AuditEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	query := a.r.GoquDBWrapper.
		Select(
			goqu.I("b.id_evento"),
			goqu.I("b.id_usuario"),
			goqu.I("b.id_referencia"),
			goqu.I("b.tipo_evento"),
			goqu.I("b.accion"),
			goqu.I("b.detalle"),
			goqu.I("b.fecha"),
			goqu.I("u.nombre").As("nombre_usuario"),
		).
		From(goqu.T("bitacora").As("b")).
		LeftJoin(goqu.T("usuarios").As("u"), goqu.On(goqu.Ex{"b.id_usuario": goqu.I("u.id_usuario")})).
		Order(goqu.I("b.fecha").Desc()).
		Limit(uint(limit))

	var events []models.AuditEvent
	if err := query.Executor().ScanStructs(&events); err != nil {
		return nil, fmt.Errorf("failed to fetch bitacora entries: %w", err)
	}

	for i := range events {
		events[i].LoadFromDB()
	}

	return events, nil
}
