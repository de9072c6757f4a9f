package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/Josue-Alexander/gestionitp/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestWriteAssetsCSV(t *testing.T) {
	costo := 12500.50
	inv := "INV-001"
	marca := "Epson"

	var buf bytes.Buffer
	err := WriteAssetsCSV(&buf, []models.Asset{
		{ID: 1, Nombre: "Proyector", NumInventario: &inv, Marca: &marca, Estado: models.EstadoBueno, CostoAdquisicion: &costo},
		{ID: 2, Nombre: "Silla", Estado: models.EstadoRegular},
	})
	assert.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, "Nombre", records[0][1])
	assert.Equal(t, []string{"1", "Proyector", "INV-001", "Epson", "", models.EstadoBueno, "", "", "", "12500.50"}, records[1])
	assert.Equal(t, "", records[2][9])
}

func TestWriteStatusSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStatusSummaryCSV(&buf, []models.StatusSummaryRow{
		{Estado: models.EstadoBueno, Total: 40},
		{Estado: models.EstadoMalo, Total: 3},
	})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Bueno,40", lines[1])
}

func TestWriteLabels(t *testing.T) {
	inv := "INV-777"

	var buf bytes.Buffer
	err := WriteLabels(&buf, []models.Asset{
		{ID: 7, Nombre: "Osciloscopio", NumInventario: &inv, QRID: "qr-abc-123"},
	})
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "width: 51mm")
	assert.Contains(t, out, "height: 25mm")
	assert.Contains(t, out, "Osciloscopio")
	assert.Contains(t, out, "INV-777")
	assert.Contains(t, out, "qr-abc-123")
}

func TestWriteLabelsEscapesMarkup(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLabels(&buf, []models.Asset{
		{ID: 1, Nombre: "<script>alert(1)</script>", QRID: "qr-1"},
	})
	assert.NoError(t, err)

	assert.NotContains(t, buf.String(), "<script>")
}
