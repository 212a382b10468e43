package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CRedX1/Proyecto-DulceriaLilis/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailWorker delivers supplier notifications when an order is sent.
// Best-effort: a failed send is logged, never retried here. The order's
// state change already committed and must not depend on SMTP.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Handle(_ context.Context, raw json.RawMessage) {
	var p NotificacionOrdenPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error().Err(err).Msg("notificacion_orden: payload inválido")
		return
	}

	numero := p.Numero
	if numero == "" {
		numero = p.OrdenID
	}
	subject := fmt.Sprintf("Orden de compra %s — Dulcería Lilis", numero)
	body := fmt.Sprintf(
		"Estimado %s:\n\nLe enviamos la orden de compra %s por un total de $%s.\n\nSaludos,\nDulcería Lilis",
		p.Proveedor, numero, p.Total,
	)

	if err := w.mailer.Send(p.ProveedorEmail, subject, body, p.PDFPath); err != nil {
		log.Error().
			Str("orden_id", p.OrdenID).
			Str("to", p.ProveedorEmail).
			Err(err).
			Msg("notificacion_orden: envío fallido")
		return
	}
	log.Info().Str("orden_id", p.OrdenID).Str("to", p.ProveedorEmail).Msg("notificacion_orden enviada")
}
