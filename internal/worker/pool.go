package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueNotificaciones = "jobs:notificaciones"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NotificacionOrdenPayload carries what the email worker needs to notify a
// supplier that an order was sent.
type NotificacionOrdenPayload struct {
	OrdenID        string `json:"orden_id"`
	Numero         string `json:"numero"`
	Proveedor      string `json:"proveedor"`
	ProveedorEmail string `json:"proveedor_email"`
	Total          string `json:"total"`
	// PDFPath points at the rendered order document, when one exists.
	PDFPath string `json:"pdf_path,omitempty"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueNotificacionOrden pushes a supplier-notification job to Redis.
func (d *Dispatcher) EnqueueNotificacionOrden(ctx context.Context, payload NotificacionOrdenPayload) error {
	return d.enqueue(ctx, QueueNotificaciones, "notificacion_orden", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers bundles the job handlers wired in at the composition root.
type Handlers struct {
	Notificaciones *EmailWorker
}

// StartPool launches numWorkers goroutines consuming the queues.
// Each goroutine blocks on BRPOP, so an idle pool burns no CPU.
func StartPool(ctx context.Context, rdb *redis.Client, handlers *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *Handlers, id int) {
	queues := []string{QueueNotificaciones}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "notificacion_orden":
		if handlers != nil && handlers.Notificaciones != nil {
			handlers.Notificaciones.Handle(ctx, job.Payload)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
