package views

import (
	"strings"
	"time"

	"github.com/Josue-Alexander/gestionitp/pkg/models"
)

// Los filtros operan sobre la colección ya cargada, nunca contra el
// servicio. Son funciones puras sobre slices.

// FilterAssets busca por subcadena en nombre, número de inventario, marca y
// modelo, sin distinguir mayúsculas.
func FilterAssets(assets []models.Asset, query string) []models.Asset {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return assets
	}

	var matched []models.Asset
	for _, a := range assets {
		haystack := strings.ToLower(strings.Join([]string{a.Nombre, strDeref(a.NumInventario), strDeref(a.Marca), strDeref(a.Modelo)}, " "))
		if strings.Contains(haystack, query) {
			matched = append(matched, a)
		}
	}
	return matched
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func FilterAssetsByStatus(assets []models.Asset, estado string) []models.Asset {
	if estado == "" {
		return assets
	}

	var matched []models.Asset
	for _, a := range assets {
		if a.Estado == estado {
			matched = append(matched, a)
		}
	}
	return matched
}

func FilterAssignmentsByStatus(assignments []models.Assignment, estado string) []models.Assignment {
	if estado == "" {
		return assignments
	}

	var matched []models.Assignment
	for _, a := range assignments {
		if a.Estado == estado {
			matched = append(matched, a)
		}
	}
	return matched
}

// FilterEventsByRange filtra la bitácora por rango de fechas inclusivo. Un
// extremo en cero deja ese lado abierto.
func FilterEventsByRange(events []models.AuditEvent, from, to time.Time) []models.AuditEvent {
	var matched []models.AuditEvent
	for _, e := range events {
		if !from.IsZero() && e.Fecha.Before(from) {
			continue
		}
		if !to.IsZero() && e.Fecha.After(to) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}
