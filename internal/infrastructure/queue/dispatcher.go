package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes payment gateway events to a fixed set of workers using
// consistent hashing on the transaction id, guaranteeing per-donation event
// ordering while the webhook handler returns immediately.
type Dispatcher struct {
	workers []chan ports.PaymentEventInput
	service ports.PaymentEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.PaymentEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.PaymentEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.PaymentEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its transaction id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.PaymentEventInput) {
	d.workers[d.shardIndex(event.TransactionID)] <- event
}

// shardIndex maps a transaction id deterministically to a worker index.
func (d *Dispatcher) shardIndex(transactionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(transactionID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.PaymentEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("transaction_id", event.TransactionID).
					Int("worker_id", id).
					Msg("payment event processing failed")
			}
		}
	}
}
