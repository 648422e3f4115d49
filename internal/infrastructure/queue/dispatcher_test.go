package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgconnect/alumni-portal/internal/core/ports"
)

type recordingService struct {
	mu     sync.Mutex
	events []ports.PaymentEventInput
	done   chan struct{}
	want   int
}

func (s *recordingService) Process(_ context.Context, event ports.PaymentEventInput) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	n := len(s.events)
	s.mu.Unlock()
	if n == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_PreservesOrderPerTransaction(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}), want: 3}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, status := range []string{"completed", "refunded", "refunded"} {
		d.Enqueue(ports.PaymentEventInput{TransactionID: "txn_1", Status: status})
	}

	select {
	case <-svc.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not processed in time")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.events[0].Status != "completed" || svc.events[1].Status != "refunded" {
		t.Fatalf("per-transaction order lost: %+v", svc.events)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingService{done: make(chan struct{}), want: -1}, zerolog.Nop())

	first := d.shardIndex("txn_42")
	for i := 0; i < 100; i++ {
		if d.shardIndex("txn_42") != first {
			t.Fatalf("shard index must be deterministic")
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingService{done: make(chan struct{}), want: -1}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
