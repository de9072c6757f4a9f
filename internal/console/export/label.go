package export

import (
	"html/template"
	"io"

	"github.com/Josue-Alexander/gestionitp/pkg/models"
)

// La etiqueta mantiene las dimensiones físicas del formato original de
// impresión: 51 x 25 mm por activo.
var labelTemplate = template.Must(template.New("label").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Etiquetas de inventario</title>
<style>
  @page { margin: 0; }
  body { margin: 0; font-family: sans-serif; }
  .label {
    width: 51mm;
    height: 25mm;
    box-sizing: border-box;
    padding: 2mm;
    border: 0.2mm solid #000;
    page-break-after: always;
    overflow: hidden;
  }
  .nombre { font-size: 8pt; font-weight: bold; white-space: nowrap; }
  .inventario { font-size: 7pt; }
  .qr { font-size: 6pt; font-family: monospace; }
</style>
</head>
<body>
{{range .}}
<div class="label">
  <div class="nombre">{{.Nombre}}</div>
  {{with .NumInventario}}<div class="inventario">No. {{.}}</div>{{end}}
  <div class="qr">{{.QRID}}</div>
</div>
{{end}}
</body>
</html>
`))

// WriteLabels genera el documento imprimible con una etiqueta por activo.
func WriteLabels(w io.Writer, assets []models.Asset) error {
	return labelTemplate.Execute(w, assets)
}
