package views

import (
	"testing"
	"time"

	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestFilterAssets(t *testing.T) {
	assets := []models.Asset{
		{ID: 1, Nombre: "Proyector Epson", NumInventario: strPtr("INV-001"), Marca: strPtr("Epson")},
		{ID: 2, Nombre: "Laptop Dell", NumInventario: strPtr("INV-002"), Marca: strPtr("Dell")},
		{ID: 3, Nombre: "Impresora", Marca: nil},
	}

	assert.Len(t, FilterAssets(assets, ""), 3)
	assert.Len(t, FilterAssets(assets, "  "), 3)

	matched := FilterAssets(assets, "epson")
	assert.Len(t, matched, 1)
	assert.Equal(t, 1, matched[0].ID)

	matched = FilterAssets(assets, "inv-00")
	assert.Len(t, matched, 2)

	assert.Empty(t, FilterAssets(assets, "microscopio"))
}

func TestFilterAssetsByStatus(t *testing.T) {
	assets := []models.Asset{
		{ID: 1, Estado: models.EstadoBueno},
		{ID: 2, Estado: models.EstadoEnMantenimiento},
	}

	assert.Len(t, FilterAssetsByStatus(assets, ""), 2)

	matched := FilterAssetsByStatus(assets, models.EstadoEnMantenimiento)
	assert.Len(t, matched, 1)
	assert.Equal(t, 2, matched[0].ID)
}

func TestFilterAssignmentsByStatus(t *testing.T) {
	assignments := []models.Assignment{
		{ID: 1, Estado: models.AsignacionActiva},
		{ID: 2, Estado: models.AsignacionFinalizada},
		{ID: 3, Estado: models.AsignacionActiva},
	}

	assert.Len(t, FilterAssignmentsByStatus(assignments, models.AsignacionActiva), 2)
	assert.Len(t, FilterAssignmentsByStatus(assignments, ""), 3)
}

func TestFilterEventsByRange(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []models.AuditEvent{
		{ID: 1, Fecha: base.AddDate(0, 0, -5)},
		{ID: 2, Fecha: base},
		{ID: 3, Fecha: base.AddDate(0, 0, 5)},
	}

	matched := FilterEventsByRange(events, base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
	assert.Len(t, matched, 1)
	assert.Equal(t, 2, matched[0].ID)

	// Extremos en cero dejan el rango abierto por ese lado.
	assert.Len(t, FilterEventsByRange(events, time.Time{}, base), 2)
	assert.Len(t, FilterEventsByRange(events, base, time.Time{}), 2)
	assert.Len(t, FilterEventsByRange(events, time.Time{}, time.Time{}), 3)
}
