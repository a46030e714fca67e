package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"comanda/internal/infra"
	"comanda/internal/model"
	"comanda/internal/repository"
	"comanda/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibos.
type ReciboJobPayload struct {
	TenantID string `json:"tenant_id"`
	VentaID  string `json:"venta_id"`
}

// Mailer is the part of infra.Mailer the worker needs.
type Mailer interface {
	Configured() bool
	SendRecibo(to, subject, body, pdfPath string) error
}

// ReciboWorker renders the receipt PDF of a venta and mails it to the
// customer when the customer has a real address.
type ReciboWorker struct {
	ventas      repository.VentaRepository
	pedidos     repository.PedidoRepository
	mailer      Mailer
	storagePath string
	negocio     string
	backoff     time.Duration
}

func NewReciboWorker(ventas repository.VentaRepository, pedidos repository.PedidoRepository, mailer Mailer, storagePath, negocio string) *ReciboWorker {
	return &ReciboWorker{
		ventas:      ventas,
		pedidos:     pedidos,
		mailer:      mailer,
		storagePath: storagePath,
		negocio:     negocio,
		backoff:     time.Second,
	}
}

// Process handles one recibo job. A bad payload or a missing venta is logged
// and dropped, since retrying cannot fix it; a send that fails every retry is
// returned so the pool moves the job to the DLQ.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return nil
	}
	tenantID, err1 := uuid.Parse(payload.TenantID)
	ventaID, err2 := uuid.Parse(payload.VentaID)
	if err1 != nil || err2 != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("recibo_worker: invalid ids")
		return nil
	}

	venta, err := w.ventas.FindByID(ctx, tenantID, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("recibo_worker: venta not found")
		return nil
	}

	info := infra.ReciboPDF{Negocio: w.negocio}
	if pedido, err := w.pedidos.FindByID(ctx, tenantID, venta.PedidoID); err == nil && pedido.Mesa != nil {
		info.MesaNumero = &pedido.Mesa.Numero
	}
	if venta.Cliente != nil {
		info.ClienteNombre = venta.Cliente.Nombre
	}

	path, err := infra.GenerateReciboPDF(venta, info, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("venta_id", payload.VentaID).Str("path", path).Msg("recibo_worker: pdf generado")

	to := destinatario(venta.Cliente)
	if to == "" || w.mailer == nil || !w.mailer.Configured() {
		return nil
	}

	subject := "Tu recibo"
	body := fmt.Sprintf("Hola %s, adjuntamos el recibo de tu consumo por $%s.", info.ClienteNombre, venta.TotalPago.StringFixed(2))
	err = withRetry(ctx, maxAttempts, w.backoff, func(attempt int) error {
		err := w.mailer.SendRecibo(to, subject, body, path)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Str("to", to).Msg("recibo_worker: envio fallido")
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("recibo_worker: send to %s: %w", to, err)
	}
	log.Info().Str("to", to).Str("venta_id", payload.VentaID).Msg("recibo_worker: recibo enviado")
	return nil
}

// destinatario returns the customer's mailbox, or "" for walk-in customers
// whose email is only a synthesized key.
func destinatario(c *model.Cliente) string {
	if c == nil || c.Email == "" || service.EsEmailSintetico(c.Email) {
		return ""
	}
	return c.Email
}
