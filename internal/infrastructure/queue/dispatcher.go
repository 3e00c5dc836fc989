package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/newyears/event-organizer/internal/api/metrics"
	"github.com/newyears/event-organizer/internal/core/domain"
	"github.com/newyears/event-organizer/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher writes audit entries asynchronously through a fixed set of
// workers. Entries are sharded by event id, so the entries of one event are
// written in the order they were recorded.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.AuditRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// drains its pending entries and exits; Wait blocks until they are done.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Record hands entry to the worker responsible for its event. It never
// blocks: when the worker's channel is full the entry is dropped.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	metrics.EventMutationsTotal.WithLabelValues(string(entry.Action)).Inc()

	idx := d.shardIndex(entry.EventID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEntriesTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("event_id", entry.EventID).
			Str("action", string(entry.Action)).
			Int("worker_id", idx).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an event id deterministically to a worker index.
func (d *Dispatcher) shardIndex(eventID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			d.drain(context.WithoutCancel(ctx), id, ch)
			metrics.AuditQueueDepth.WithLabelValues(label).Set(0)
			return
		case entry := <-ch:
			metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.write(ctx, id, entry)
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case entry := <-ch:
			d.write(ctx, id, entry)
		default:
			return
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, entry domain.AuditEntry) {
	start := time.Now()
	err := d.repo.Insert(ctx, entry)
	metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AuditEntriesTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("event_id", entry.EventID).
			Str("action", string(entry.Action)).
			Int("worker_id", id).
			Msg("audit write failed")
		return
	}
	metrics.AuditEntriesTotal.WithLabelValues("written").Inc()
}
