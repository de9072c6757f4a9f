package views

import (
	"context"

	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/pkg/models"
)

// AuditView es la bitácora: solo lectura, el servicio no expone mutaciones
// sobre ella.
type AuditView struct {
	client *client.Client

	Events []models.AuditEvent
	Err    string
}

func NewAuditView(c *client.Client) *AuditView {
	return &AuditView{client: c}
}

func (v *AuditView) Load(ctx context.Context, limit int) error {
	events, err := v.client.ListAuditEvents(ctx, limit)
	if err != nil {
		v.Err = err.Error()
		return err
	}

	v.Events = events
	v.Err = ""
	return nil
}
