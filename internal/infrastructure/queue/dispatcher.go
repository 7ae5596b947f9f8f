package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-console/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	settlePoll     = 2 * time.Millisecond
)

// Job is a unit of side-effect work. Jobs sharing a Key run on the same
// worker, in enqueue order.
type Job struct {
	Key  string
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher routes jobs to a fixed set of workers using consistent hashing
// on the job key, guaranteeing per-key ordering.
type Dispatcher struct {
	workers []chan Job
	pending atomic.Int64
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Job, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its key.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job Job) {
	idx := d.shardIndex(job.Key)
	d.pending.Add(1)
	metrics.EffectQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	d.workers[idx] <- job
}

// Settle blocks until no job is queued or running, or ctx is done.
func (d *Dispatcher) Settle(ctx context.Context) error {
	t := time.NewTicker(settlePoll)
	defer t.Stop()
	for {
		if d.pending.Load() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Job) {
	depth := metrics.EffectQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			if err := job.Run(ctx); err != nil {
				metrics.EffectErrorsTotal.WithLabelValues(job.Name).Inc()
				d.log.Error().Err(err).
					Str("effect", job.Name).
					Str("key", job.Key).
					Int("worker_id", id).
					Msg("effect failed")
			}
			d.pending.Add(-1)
		}
	}
}
