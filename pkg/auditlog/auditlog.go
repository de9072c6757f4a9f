package auditlog

import (
	"log"

	"github.com/Josue-Alexander/gestionitp/pkg/models"
)

// Recorder persiste entradas de bitácora. Lo implementa el repositorio de
// bitácora; las pruebas lo sustituyen por un fake.
type Recorder interface {
	PersistEvent(event models.AuditEvent, detalle map[string]interface{}) error
}

type Auditlog struct {
	r Recorder
}

type Auditable interface {
	CreateLogView() models.AuditEvent
}

// Log registra un evento de bitácora. Los handlers lo invocan en una
// goroutine propia; un fallo al persistir no interrumpe la mutación que lo
// originó, sólo queda en el log del proceso.
func (a *Auditlog) Log(userID *int, accion string, detalle map[string]interface{}, item Auditable) {
	event := item.CreateLogView()
	event.Accion = accion
	event.UsuarioID = userID

	if err := a.r.PersistEvent(event, detalle); err != nil {
		log.Println("Unable to create bitacora entry for id ", event.ReferenciaID)
		return
	}
}

func NewAuditLog(recorder Recorder) *Auditlog {
	return &Auditlog{r: recorder}
}
